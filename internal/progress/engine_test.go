package progress

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

func TestLevel(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{0, 1}, {10, 1}, {99, 1}, {100, 2}, {101, 2}, {199, 2}, {200, 3}, {1234, 13},
	}
	for _, tt := range tests {
		if got := Level(tt.score); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord(t0)
	if rec.Score() != 0 || rec.Level() != 1 || rec.CurrentStreak() != 0 || rec.BestStreak() != 0 {
		t.Errorf("unexpected initial record: score=%d level=%d streak=%d best=%d",
			rec.Score(), rec.Level(), rec.CurrentStreak(), rec.BestStreak())
	}
	if rec.SolvedCount() != 0 || len(rec.Achievements()) != 0 {
		t.Error("new record should have no solved cases or achievements")
	}
	if !rec.StartedAt().Equal(t0) {
		t.Errorf("StartedAt = %v, want %v", rec.StartedAt(), t0)
	}
}

func TestAwardPoints_SolvesCase(t *testing.T) {
	rec := NewRecord(t0)
	a, err := AwardPoints(rec, 10, "marketing_conversion_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.PointsAwarded != 10 || rec.Score() != 10 {
		t.Errorf("awarded %d, score %d; want 10, 10", a.PointsAwarded, rec.Score())
	}
	if !rec.IsSolved("marketing_conversion_1") {
		t.Error("case should be marked solved")
	}
	if rec.CurrentStreak() != 1 || rec.BestStreak() != 1 {
		t.Errorf("streak = %d/%d, want 1/1", rec.CurrentStreak(), rec.BestStreak())
	}
	if len(a.NewAchievements) != 1 || a.NewAchievements[0] != FirstSteps {
		t.Errorf("NewAchievements = %v, want [first_steps]", a.NewAchievements)
	}
}

func TestAwardPoints_RepeatIDIsSetNoOp(t *testing.T) {
	rec := NewRecord(t0)
	AwardPoints(rec, 5, "a")
	AwardPoints(rec, 0, "a")
	if rec.SolvedCount() != 1 {
		t.Errorf("SolvedCount = %d, want 1", rec.SolvedCount())
	}
}

func TestAwardPoints_EmptyCaseID(t *testing.T) {
	rec := NewRecord(t0)
	AwardPoints(rec, 10, "")
	if rec.SolvedCount() != 0 {
		t.Errorf("SolvedCount = %d, want 0", rec.SolvedCount())
	}
	if rec.CurrentStreak() != 1 {
		t.Errorf("CurrentStreak = %d, want 1", rec.CurrentStreak())
	}
}

func TestAwardPoints_NegativeRejectedWithoutMutation(t *testing.T) {
	rec := NewRecord(t0)
	AwardPoints(rec, 30, "a")
	before := rec.Snapshot(t0)

	_, err := AwardPoints(rec, -1, "b")
	if !errors.Is(err, ErrInvalidAward) {
		t.Fatalf("err = %v, want ErrInvalidAward", err)
	}
	after := rec.Snapshot(t0)
	if after.Score != before.Score || after.CurrentStreak != before.CurrentStreak || rec.IsSolved("b") {
		t.Errorf("record mutated by rejected award: before %+v after %+v", before, after)
	}
}

func TestAwardPoints_LevelUpBoundary(t *testing.T) {
	rec := NewRecord(t0)
	a, _ := AwardPoints(rec, 99, "")
	if a.LevelUp != nil {
		t.Fatalf("0->99 should not level up, got %+v", a.LevelUp)
	}

	a, _ = AwardPoints(rec, 1, "")
	if a.LevelUp == nil || a.LevelUp.From != 1 || a.LevelUp.To != 2 {
		t.Errorf("99->100 LevelUp = %+v, want 1->2", a.LevelUp)
	}

	a, _ = AwardPoints(rec, 1, "")
	if a.LevelUp != nil {
		t.Errorf("100->101 should not level up, got %+v", a.LevelUp)
	}
}

func TestAwardPoints_MultiLevelJump(t *testing.T) {
	rec := NewRecord(t0)
	a, _ := AwardPoints(rec, 250, "")
	if a.LevelUp == nil || a.LevelUp.From != 1 || a.LevelUp.To != 3 {
		t.Errorf("LevelUp = %+v, want 1->3", a.LevelUp)
	}
	if !rec.HasAchievement(SeasonedSleuth) {
		t.Error("level 3 should unlock SeasonedSleuth")
	}
}

func TestAwardPoints_Monotonic(t *testing.T) {
	rec := NewRecord(t0)
	prevScore, prevBest := 0, 0
	for i, amt := range []int{5, 0, 20, 0, 100, 3} {
		AwardPoints(rec, amt, "")
		if i%2 == 1 {
			ResetStreak(rec)
		}
		if rec.Score() < prevScore || rec.BestStreak() < prevBest {
			t.Fatalf("step %d: score %d (prev %d), best %d (prev %d)", i, rec.Score(), prevScore, rec.BestStreak(), prevBest)
		}
		prevScore, prevBest = rec.Score(), rec.BestStreak()
	}
}

func TestStreakDetective(t *testing.T) {
	rec := NewRecord(t0)
	for i := range 4 {
		a, _ := AwardPoints(rec, 0, "")
		for _, ach := range a.NewAchievements {
			if ach == StreakDetective {
				t.Fatalf("StreakDetective unlocked at streak %d", i+1)
			}
		}
	}
	a, _ := AwardPoints(rec, 0, "")
	found := false
	for _, ach := range a.NewAchievements {
		found = found || ach == StreakDetective
	}
	if !found {
		t.Errorf("streak 5 should unlock StreakDetective, got %v", a.NewAchievements)
	}
}

func TestEvaluateAchievements_Idempotent(t *testing.T) {
	rec := NewRecord(t0)
	AwardPoints(rec, 250, "")
	if got := EvaluateAchievements(rec); len(got) != 0 {
		t.Errorf("second evaluation unlocked %v, want none", got)
	}
	if got := EvaluateAchievements(rec); len(got) != 0 {
		t.Errorf("third evaluation unlocked %v, want none", got)
	}
	if n := len(rec.Achievements()); n != 2 {
		t.Errorf("achievements = %v, want FirstSteps and SeasonedSleuth", rec.Achievements())
	}
}

func TestAchievementsSurviveStreakReset(t *testing.T) {
	rec := NewRecord(t0)
	for range 5 {
		AwardPoints(rec, 0, "")
	}
	ResetStreak(rec)
	if !rec.HasAchievement(StreakDetective) {
		t.Error("ResetStreak should not revoke achievements")
	}
	for range 5 {
		a, _ := AwardPoints(rec, 0, "")
		if len(a.NewAchievements) != 0 {
			t.Errorf("re-earned streak unlocked %v again", a.NewAchievements)
		}
	}
}

func TestResetStreakVsResetProgression(t *testing.T) {
	rec := NewRecord(t0)
	for range 7 {
		AwardPoints(rec, 10, "")
	}
	if rec.CurrentStreak() != 7 {
		t.Fatalf("CurrentStreak = %d, want 7", rec.CurrentStreak())
	}

	ResetStreak(rec)
	if rec.CurrentStreak() != 0 || rec.BestStreak() != 7 || rec.Score() != 70 {
		t.Errorf("after ResetStreak: streak=%d best=%d score=%d, want 0 7 70",
			rec.CurrentStreak(), rec.BestStreak(), rec.Score())
	}

	later := t0.Add(time.Hour)
	AwardPoints(rec, 5, "x")
	MarkScenarioCompleted(rec, "s")
	ResetProgression(rec, later)
	if rec.CurrentStreak() != 0 || rec.BestStreak() != 0 || rec.Score() != 0 || rec.Level() != 1 {
		t.Errorf("after ResetProgression: streak=%d best=%d score=%d level=%d",
			rec.CurrentStreak(), rec.BestStreak(), rec.Score(), rec.Level())
	}
	if rec.SolvedCount() != 0 || len(rec.Achievements()) != 0 || len(rec.CompletedScenarioIDs()) != 0 {
		t.Error("ResetProgression should clear sets")
	}
	if !rec.StartedAt().Equal(later) {
		t.Errorf("StartedAt = %v, want %v", rec.StartedAt(), later)
	}

	// The record stays usable after a reset.
	AwardPoints(rec, 10, "y")
	if !rec.IsSolved("y") {
		t.Error("record unusable after reset")
	}
}

func TestSnapshot(t *testing.T) {
	rec := NewRecord(t0)
	for range 5 {
		AwardPoints(rec, 50, "")
	}
	MarkScenarioCompleted(rec, "s1")
	MarkScenarioCompleted(rec, "s1")

	s := rec.Snapshot(t0.Add(90*time.Second + 400*time.Millisecond))
	if s.Score != 250 || s.Level != 3 {
		t.Errorf("score/level = %d/%d, want 250/3", s.Score, s.Level)
	}
	if s.LevelProgress != 50 || s.ToNextLevel != 50 {
		t.Errorf("progress = %d, to next = %d, want 50/50", s.LevelProgress, s.ToNextLevel)
	}
	if s.CompletedScenarios != 1 {
		t.Errorf("CompletedScenarios = %d, want 1", s.CompletedScenarios)
	}
	if s.PlayTime != 90*time.Second {
		t.Errorf("PlayTime = %v, want 1m30s", s.PlayTime)
	}
	want := []Achievement{StreakDetective, SeasonedSleuth, FirstSteps}
	if len(s.Recent) != len(want) {
		t.Fatalf("Recent = %v, want %v", s.Recent, want)
	}
	for i := range want {
		if s.Recent[i] != want[i] {
			t.Errorf("Recent[%d] = %s, want %s", i, s.Recent[i], want[i])
		}
	}
	if f := s.LevelFraction(); f != 0.5 {
		t.Errorf("LevelFraction = %v, want 0.5", f)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	rec := NewRecord(t0)
	AwardPoints(rec, 10, "")
	s := rec.Snapshot(t0)
	s.Achievements[0] = "tampered"
	if rec.Achievements()[0] != FirstSteps {
		t.Error("snapshot shares achievement storage with the record")
	}
}

func TestAchievementLabels(t *testing.T) {
	for _, a := range AllAchievements() {
		if a.DisplayName() == string(a) || a.Description() == "" || a.Icon() == "✦" {
			t.Errorf("achievement %q missing display metadata", a)
		}
	}
}
