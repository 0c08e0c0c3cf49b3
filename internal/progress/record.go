// Package progress holds the per-session progression record and the scoring
// and leveling engine that mutates it.
package progress

import (
	"slices"
	"time"
)

// PointsPerLevel is the score span of one level.
const PointsPerLevel = 100

// Level returns the level for a score: floor(score/100) + 1.
func Level(score int) int {
	if score < 0 {
		score = 0
	}
	return score/PointsPerLevel + 1
}

// Record is the mutable scorekeeping state of one play session. Fields are
// only changed through the engine functions in this package.
type Record struct {
	score         int
	currentStreak int
	bestStreak    int
	solved        map[string]struct{}
	completed     map[string]struct{}
	achievements  []Achievement
	startedAt     time.Time
}

// NewRecord returns a record in its initial state.
func NewRecord(now time.Time) *Record {
	return &Record{
		solved:    make(map[string]struct{}),
		completed: make(map[string]struct{}),
		startedAt: now,
	}
}

func (r *Record) Score() int           { return r.score }
func (r *Record) Level() int           { return Level(r.score) }
func (r *Record) CurrentStreak() int   { return r.currentStreak }
func (r *Record) BestStreak() int      { return r.bestStreak }
func (r *Record) StartedAt() time.Time { return r.startedAt }
func (r *Record) SolvedCount() int     { return len(r.solved) }

// IsSolved reports whether caseID has been solved this session.
func (r *Record) IsSolved(caseID string) bool {
	_, ok := r.solved[caseID]
	return ok
}

// SolvedIDs returns the solved case IDs, sorted.
func (r *Record) SolvedIDs() []string {
	return sortedKeys(r.solved)
}

// IsScenarioCompleted reports whether the scenario has been played to the end.
func (r *Record) IsScenarioCompleted(id string) bool {
	_, ok := r.completed[id]
	return ok
}

// CompletedScenarioIDs returns the completed scenario IDs, sorted.
func (r *Record) CompletedScenarioIDs() []string {
	return sortedKeys(r.completed)
}

// Achievements returns unlocked achievements in unlock order.
func (r *Record) Achievements() []Achievement {
	return slices.Clone(r.achievements)
}

// HasAchievement reports whether a has been unlocked.
func (r *Record) HasAchievement(a Achievement) bool {
	return slices.Contains(r.achievements, a)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
