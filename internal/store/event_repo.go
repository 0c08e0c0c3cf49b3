package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builders and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	sb  *entsql.DialectBuilder
	seq *sequenceCounter
	now func() time.Time
}

func newEventRepo(drv *entsql.Driver, seq *sequenceCounter) *eventRepo {
	return &eventRepo{
		drv: drv,
		sb:  entsql.Dialect(dialect.SQLite),
		seq: seq,
		now: time.Now,
	}
}

// insert appends one row to table, stamping sequence and timestamp.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.sb.Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seqNum, r.now().UnixMilli()}, values...)...).
		Query()
	return r.drv.Exec(ctx, query, args, nil)
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, tableSessionEvents,
		[]string{"session_id", "action", "score", "level", "solved_count", "completed_scenarios", "best_streak", "duration_secs"},
		[]any{data.SessionID, data.Action, data.Score, data.Level, data.SolvedCount, data.CompletedScenarios, data.BestStreak, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, tableAnswerEvents,
		[]string{"session_id", "family", "case_id", "step", "choice", "correct", "points"},
		[]any{data.SessionID, data.Family, data.CaseID, data.Step, data.Choice, data.Correct, data.Points},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAchievementEvent(ctx context.Context, data AchievementEventData) error {
	err := r.insert(ctx, tableAchievementEvents,
		[]string{"session_id", "achievement", "score", "level"},
		[]any{data.SessionID, data.Achievement, data.Score, data.Level},
	)
	if err != nil {
		return fmt.Errorf("save achievement event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := r.sb.Select("session_id", "timestamp", "score", "level", "solved_count", "best_streak", "duration_secs").
		From(r.sb.Table(tableSessionEvents)).
		Where(sessionPredicate(entsql.EQ("action", ActionEnd), opts)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var records []SessionSummaryRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var rec SessionSummaryRecord
		var ts int64
		if err := rows.Scan(&rec.SessionID, &ts, &rec.Score, &rec.Level, &rec.SolvedCount, &rec.BestStreak, &rec.DurationSecs); err != nil {
			return err
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}

	// Rows must be closed before the per-session counts: the pool holds one
	// connection.
	for i := range records {
		stats, err := r.AnswerStats(ctx, QueryOpts{SessionID: records[i].SessionID})
		if err != nil {
			return nil, err
		}
		for _, s := range stats {
			records[i].Answers += s.Total
			records[i].CorrectAnswers += s.Correct
		}
	}
	return records, nil
}

func (r *eventRepo) QueryAchievements(ctx context.Context, opts QueryOpts) ([]AchievementRecord, error) {
	sel := r.sb.Select("achievement", "session_id", "score", "level", "sequence", "timestamp").
		From(r.sb.Table(tableAchievementEvents)).
		OrderBy(entsql.Desc("sequence"))
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var records []AchievementRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var rec AchievementRecord
		var ts int64
		if err := rows.Scan(&rec.Achievement, &rec.SessionID, &rec.Score, &rec.Level, &rec.Sequence, &ts); err != nil {
			return err
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query achievement events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) AnswerStats(ctx context.Context, opts QueryOpts) ([]AnswerStat, error) {
	sel := r.sb.Select("family", entsql.Count("*"), entsql.Sum("correct"), entsql.Sum("points")).
		From(r.sb.Table(tableAnswerEvents)).
		GroupBy("family").
		OrderBy("family")
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}

	var stats []AnswerStat
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var s AnswerStat
		if err := rows.Scan(&s.Family, &s.Total, &s.Correct, &s.Points); err != nil {
			return err
		}
		stats = append(stats, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query answer stats: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) Clear(ctx context.Context) error {
	for _, table := range []string{tableSessionEvents, tableAnswerEvents, tableAchievementEvents} {
		query, args := r.sb.Delete(table).Query()
		if err := r.drv.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// query runs sel and calls scan for each row.
func (r *eventRepo) query(ctx context.Context, sel *entsql.Selector, scan func(*entsql.Rows) error) error {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func sessionPredicate(p *entsql.Predicate, opts QueryOpts) *entsql.Predicate {
	if opts.SessionID == "" {
		return p
	}
	return entsql.And(p, entsql.EQ("session_id", opts.SessionID))
}
