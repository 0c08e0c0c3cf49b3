package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	SessionID string // restrict to one session ("" = all)
}

// Session actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
	ActionReset = "reset"
)

// Answer families recorded in AnswerEventData.Family.
const (
	FamilyAnalysis = "analysis"
	FamilyBias     = "bias"
	FamilyScenario = "scenario"
)

// SessionEventData captures a session lifecycle event with the progression
// totals at that moment.
type SessionEventData struct {
	SessionID          string
	Action             string
	Score              int
	Level              int
	SolvedCount        int
	CompletedScenarios int
	BestStreak         int
	DurationSecs       int
}

// AnswerEventData captures one checked answer. Scenario steps use the
// scenario ID as CaseID and set Step; bias completions have Choice -1.
type AnswerEventData struct {
	SessionID string
	Family    string
	CaseID    string
	Step      int
	Choice    int
	Correct   bool
	Points    int
}

// AchievementEventData captures an achievement unlock.
type AchievementEventData struct {
	SessionID   string
	Achievement string
	Score       int
	Level       int
}

// SessionSummaryRecord is a completed session as shown in history.
type SessionSummaryRecord struct {
	SessionID      string
	Timestamp      time.Time
	Score          int
	Level          int
	SolvedCount    int
	BestStreak     int
	DurationSecs   int
	Answers        int
	CorrectAnswers int
}

// AchievementRecord is a stored achievement unlock.
type AchievementRecord struct {
	Achievement string
	SessionID   string
	Score       int
	Level       int
	Sequence    int64
	Timestamp   time.Time
}

// AnswerStat aggregates answers for one case family.
type AnswerStat struct {
	Family  string
	Total   int
	Correct int
	Points  int
}

// EventRepo provides append and query access to the play history.
type EventRepo interface {
	// AppendSessionEvent records a session start, end or reset.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a checked answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendAchievementEvent records an achievement unlock.
	AppendAchievementEvent(ctx context.Context, data AchievementEventData) error

	// QuerySessionSummaries returns ended sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryAchievements returns achievement unlocks, newest first.
	QueryAchievements(ctx context.Context, opts QueryOpts) ([]AchievementRecord, error)

	// AnswerStats aggregates answers per family.
	AnswerStats(ctx context.Context, opts QueryOpts) ([]AnswerStat, error)

	// Clear deletes all recorded history.
	Clear(ctx context.Context) error
}
