package progress

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidAward is returned for a negative point amount.
var ErrInvalidAward = errors.New("invalid award")

// LevelUp reports a level threshold crossing.
type LevelUp struct {
	From int
	To   int
}

// Award is the result of AwardPoints.
type Award struct {
	PointsAwarded   int
	Score           int
	Level           int
	LevelUp         *LevelUp
	NewAchievements []Achievement
}

// AwardPoints adds amount to the score, marks caseID solved when non-empty,
// extends the streak and unlocks any achievements now satisfied. A negative
// amount is rejected before the record is touched.
func AwardPoints(rec *Record, amount int, caseID string) (Award, error) {
	if amount < 0 {
		return Award{}, fmt.Errorf("%w: amount %d is negative", ErrInvalidAward, amount)
	}

	before := rec.Level()
	rec.score += amount
	if caseID != "" {
		rec.solved[caseID] = struct{}{}
	}
	rec.currentStreak++
	rec.bestStreak = max(rec.bestStreak, rec.currentStreak)

	a := Award{
		PointsAwarded: amount,
		Score:         rec.score,
		Level:         rec.Level(),
	}
	if a.Level > before {
		a.LevelUp = &LevelUp{From: before, To: a.Level}
	}
	a.NewAchievements = EvaluateAchievements(rec)
	return a, nil
}

// EvaluateAchievements unlocks every achievement whose predicate holds and
// returns the ones unlocked by this call. Calling it again without a state
// change returns nothing.
func EvaluateAchievements(rec *Record) []Achievement {
	var unlocked []Achievement
	for _, a := range AllAchievements() {
		if rec.HasAchievement(a) || !a.unlocked(rec) {
			continue
		}
		rec.achievements = append(rec.achievements, a)
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// ResetStreak zeroes the current streak. Best streak, score and
// achievements are untouched.
func ResetStreak(rec *Record) {
	rec.currentStreak = 0
}

// MarkScenarioCompleted records that a scenario run reached its end.
func MarkScenarioCompleted(rec *Record, scenarioID string) {
	rec.completed[scenarioID] = struct{}{}
}

// ResetProgression returns rec to its initial state, started at now.
func ResetProgression(rec *Record, now time.Time) {
	*rec = *NewRecord(now)
}
