package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/detective/internal/cases"
	"github.com/abhisek/detective/internal/logging"
	"github.com/abhisek/detective/internal/progress"
	"github.com/abhisek/detective/internal/scenario"
	"github.com/abhisek/detective/internal/store"
)

// Session owns the state of one play session: its progression record and
// one scenario run per scenario. It is not safe for concurrent use; the
// TUI update loop is its only caller.
type Session struct {
	id     string
	repo   *cases.Repository
	rec    *progress.Record
	runs   map[string]*scenario.Run
	events store.EventRepo
	logger *slog.Logger
	now    func() time.Time
	ctx    context.Context
}

// Option configures a Session.
type Option func(*Session)

// WithEventRepo records history to repo. Without it nothing is persisted.
func WithEventRepo(repo store.EventRepo) Option {
	return func(s *Session) { s.events = repo }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession starts a session over repo and records its start.
func NewSession(ctx context.Context, repo *cases.Repository, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString()[:8],
		repo:   repo,
		runs:   make(map[string]*scenario.Run),
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rec = progress.NewRecord(s.now())
	s.ctx = logging.WithAttrs(ctx, slog.String("session_id", s.id))

	s.logger.InfoContext(s.ctx, "session started")
	s.appendSession(store.ActionStart)
	return s
}

// ID returns the short session identifier.
func (s *Session) ID() string { return s.id }

// Repo returns the case catalog.
func (s *Session) Repo() *cases.Repository { return s.repo }

// Record returns the progression record. Callers must only read it.
func (s *Session) Record() *progress.Record { return s.rec }

// Snapshot projects the progression record now.
func (s *Session) Snapshot() progress.Snapshot { return s.rec.Snapshot(s.now()) }

// Check answers an analysis case.
func (s *Session) Check(c cases.AnalysisCase, k int) (CheckResult, error) {
	res, err := CheckAnswer(s.rec, c, k)
	if err != nil {
		s.logger.WarnContext(s.ctx, "check rejected", slog.String("case_id", c.ID), slog.Int("choice", k), slog.Any("error", err))
		return res, err
	}
	s.logger.InfoContext(s.ctx, "answer checked",
		slog.String("case_id", c.ID), slog.Bool("correct", res.Correct), slog.Bool("repeat", res.Repeat))
	s.appendAnswer(store.AnswerEventData{
		Family: store.FamilyAnalysis, CaseID: c.ID, Choice: k, Correct: res.Correct, Points: res.PointsAwarded,
	})
	s.appendGain(res.Gain)
	return res, nil
}

// CompleteBias records the self-report for a bias case.
func (s *Session) CompleteBias(c cases.BiasCase, understood bool) (BiasResult, error) {
	res, err := CompleteBias(s.rec, c, understood)
	if err != nil {
		return res, err
	}
	s.logger.InfoContext(s.ctx, "bias case reported",
		slog.String("case_id", c.ID), slog.Bool("understood", understood), slog.Bool("repeat", res.Repeat))
	if understood {
		s.appendAnswer(store.AnswerEventData{
			Family: store.FamilyBias, CaseID: c.ID, Choice: -1, Correct: true, Points: res.PointsAwarded,
		})
		s.appendGain(res.Gain)
	}
	return res, nil
}

// Run returns the run for sc, creating it on first use. An abandoned run
// is returned as left, so play resumes at its current step.
func (s *Session) Run(sc cases.Scenario) *scenario.Run {
	run, ok := s.runs[sc.ID]
	if !ok {
		run = scenario.NewRun(sc)
		s.runs[sc.ID] = run
	}
	return run
}

// ExistingRun returns the run for the scenario id without creating one.
func (s *Session) ExistingRun(id string) (*scenario.Run, bool) {
	run, ok := s.runs[id]
	return run, ok
}

// Advance answers the current step of sc's run.
func (s *Session) Advance(sc cases.Scenario, k int) (AdvanceResult, error) {
	run := s.Run(sc)
	step := run.CurrentStep()
	res, err := AdvanceScenario(s.rec, run, sc, k)
	if err != nil {
		s.logger.WarnContext(s.ctx, "advance rejected", slog.String("scenario_id", sc.ID), slog.Int("choice", k), slog.Any("error", err))
		return res, err
	}
	s.logger.InfoContext(s.ctx, "scenario step answered",
		slog.String("scenario_id", sc.ID), slog.Int("step", step), slog.Bool("correct", res.Correct))
	s.appendAnswer(store.AnswerEventData{
		Family: store.FamilyScenario, CaseID: sc.ID, Step: step, Choice: k, Correct: res.Correct, Points: res.PointsAwarded,
	})
	s.appendGain(res.Gain)
	if res.Summary != nil {
		s.logger.InfoContext(s.ctx, "scenario completed",
			slog.String("scenario_id", sc.ID), slog.Int("score", res.Summary.Score), slog.String("outcome", res.Summary.Outcome.String()))
	}
	return res, nil
}

// RestartScenario discards the run for sc and starts a new one.
func (s *Session) RestartScenario(sc cases.Scenario) *scenario.Run {
	run := scenario.NewRun(sc)
	s.runs[sc.ID] = run
	s.logger.InfoContext(s.ctx, "scenario restarted", slog.String("scenario_id", sc.ID))
	return run
}

// ResetProgression returns the record to its initial state and discards
// every scenario run. The session ID is kept.
func (s *Session) ResetProgression() {
	s.appendSession(store.ActionReset)
	progress.ResetProgression(s.rec, s.now())
	clear(s.runs)
	s.logger.InfoContext(s.ctx, "progression reset")
}

// End records the session end with its final totals.
func (s *Session) End() {
	s.appendSession(store.ActionEnd)
	s.logger.InfoContext(s.ctx, "session ended", slog.Int("score", s.rec.Score()))
}

// History returns the store backing this session, or nil.
func (s *Session) History() store.EventRepo { return s.events }

func (s *Session) appendSession(action string) {
	if s.events == nil {
		return
	}
	snap := s.Snapshot()
	err := s.events.AppendSessionEvent(s.ctx, store.SessionEventData{
		SessionID:          s.id,
		Action:             action,
		Score:              snap.Score,
		Level:              snap.Level,
		SolvedCount:        snap.SolvedCount,
		CompletedScenarios: snap.CompletedScenarios,
		BestStreak:         snap.BestStreak,
		DurationSecs:       int(snap.PlayTime.Seconds()),
	})
	s.warnHistory(err, "session event")
}

func (s *Session) appendAnswer(data store.AnswerEventData) {
	if s.events == nil {
		return
	}
	data.SessionID = s.id
	s.warnHistory(s.events.AppendAnswerEvent(s.ctx, data), "answer event")
}

func (s *Session) appendGain(g Gain) {
	if g.LevelUp != nil {
		s.logger.InfoContext(s.ctx, "level up", slog.Int("from", g.LevelUp.From), slog.Int("to", g.LevelUp.To))
	}
	for _, a := range g.NewAchievements {
		s.logger.InfoContext(s.ctx, "achievement unlocked", slog.String("achievement", string(a)))
		if s.events == nil {
			continue
		}
		err := s.events.AppendAchievementEvent(s.ctx, store.AchievementEventData{
			SessionID:   s.id,
			Achievement: string(a),
			Score:       s.rec.Score(),
			Level:       s.rec.Level(),
		})
		s.warnHistory(err, "achievement event")
	}
}

// warnHistory logs a failed history write. History is best effort and
// never fails a game operation.
func (s *Session) warnHistory(err error, what string) {
	if err != nil {
		s.logger.WarnContext(s.ctx, "history write failed", slog.Any("error", fmt.Errorf("append %s: %w", what, err)))
	}
}
