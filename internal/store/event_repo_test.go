package store

import (
	"context"
	"testing"
	"time"
)

func TestAppendAndQuerySessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	fixedClock(repo, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, sid := range []string{"s1", "s2"} {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: sid, Action: ActionStart, Level: 1}); err != nil {
			t.Fatalf("append start: %v", err)
		}
		for i, correct := range []bool{true, false, true} {
			err := repo.AppendAnswerEvent(ctx, AnswerEventData{
				SessionID: sid, Family: "analysis", CaseID: "c", Choice: i, Correct: correct, Points: 10,
			})
			if err != nil {
				t.Fatalf("append answer: %v", err)
			}
		}
		err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: sid, Action: ActionEnd, Score: 20, Level: 1, SolvedCount: 2, BestStreak: 1, DurationSecs: 90,
		})
		if err != nil {
			t.Fatalf("append end: %v", err)
		}
	}

	got, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	if got[0].SessionID != "s2" {
		t.Errorf("newest session = %q, want s2", got[0].SessionID)
	}
	if got[0].Answers != 3 || got[0].CorrectAnswers != 2 {
		t.Errorf("answers = %d/%d, want 2/3", got[0].CorrectAnswers, got[0].Answers)
	}
	if got[0].Score != 20 || got[0].DurationSecs != 90 || got[0].SolvedCount != 2 {
		t.Errorf("summary = %+v", got[0])
	}
	if !got[0].Timestamp.After(got[1].Timestamp) {
		t.Errorf("timestamps not ordered: %v then %v", got[0].Timestamp, got[1].Timestamp)
	}

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1 returned %d", len(limited))
	}

	one, err := repo.QuerySessionSummaries(ctx, QueryOpts{SessionID: "s1"})
	if err != nil {
		t.Fatalf("query by session: %v", err)
	}
	if len(one) != 1 || one[0].SessionID != "s1" {
		t.Errorf("by session = %+v", one)
	}
}

func TestAnswerStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []AnswerEventData{
		{SessionID: "a", Family: "analysis", CaseID: "c1", Correct: true, Points: 10},
		{SessionID: "a", Family: "analysis", CaseID: "c2", Correct: false},
		{SessionID: "a", Family: "scenario", CaseID: "s1", Step: 0, Correct: true, Points: 10},
		{SessionID: "b", Family: "bias", CaseID: "b1", Choice: -1, Correct: true, Points: 20},
	}
	for _, e := range events {
		if err := repo.AppendAnswerEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := repo.AnswerStats(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := map[string]AnswerStat{
		"analysis": {Family: "analysis", Total: 2, Correct: 1, Points: 10},
		"bias":     {Family: "bias", Total: 1, Correct: 1, Points: 20},
		"scenario": {Family: "scenario", Total: 1, Correct: 1, Points: 10},
	}
	if len(stats) != len(want) {
		t.Fatalf("stats = %+v", stats)
	}
	for _, st := range stats {
		if st != want[st.Family] {
			t.Errorf("stat %s = %+v, want %+v", st.Family, st, want[st.Family])
		}
	}

	onlyB, err := repo.AnswerStats(ctx, QueryOpts{SessionID: "b"})
	if err != nil {
		t.Fatalf("stats b: %v", err)
	}
	if len(onlyB) != 1 || onlyB[0].Family != "bias" {
		t.Errorf("session b stats = %+v", onlyB)
	}
}

func TestAchievements(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, a := range []string{"first_steps", "streak_detective"} {
		if err := repo.AppendAchievementEvent(ctx, AchievementEventData{SessionID: "s", Achievement: a, Score: 50, Level: 1}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryAchievements(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 || got[0].Achievement != "streak_detective" || got[1].Achievement != "first_steps" {
		t.Fatalf("achievements = %+v", got)
	}
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("sequence not descending: %d, %d", got[0].Sequence, got[1].Sequence)
	}

	none, err := repo.QueryAchievements(ctx, QueryOpts{SessionID: "other"})
	if err != nil {
		t.Fatalf("query other: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("other session achievements = %+v", none)
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s", Family: "analysis", CaseID: "c", Correct: true})
	repo.AppendAchievementEvent(ctx, AchievementEventData{SessionID: "s", Achievement: "first_steps"})

	got, err := repo.QueryAchievements(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Sequence != 2 {
		t.Errorf("achievement sequence = %+v, want 2", got)
	}
}

func TestClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s", Action: ActionEnd})
	repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s", Family: "analysis", CaseID: "c"})
	repo.AppendAchievementEvent(ctx, AchievementEventData{SessionID: "s", Achievement: "first_steps"})

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	sessions, _ := repo.QuerySessionSummaries(ctx, QueryOpts{})
	stats, _ := repo.AnswerStats(ctx, QueryOpts{})
	achievements, _ := repo.QueryAchievements(ctx, QueryOpts{})
	if len(sessions)+len(stats)+len(achievements) != 0 {
		t.Errorf("history not cleared: %d sessions, %d stats, %d achievements", len(sessions), len(stats), len(achievements))
	}

	// Appending still works and the sequence keeps growing.
	if err := repo.AppendAchievementEvent(ctx, AchievementEventData{SessionID: "s", Achievement: "first_steps"}); err != nil {
		t.Fatalf("append after clear: %v", err)
	}
	got, _ := repo.QueryAchievements(ctx, QueryOpts{})
	if len(got) != 1 || got[0].Sequence != 4 {
		t.Errorf("after clear = %+v, want one event with sequence 4", got)
	}
}
