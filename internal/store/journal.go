package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// patternSeparator joins emotional patterns in the emotional_patterns column.
const patternSeparator = "; "

type journalRepo struct {
	drv *entsql.Driver
}

func (r *journalRepo) Add(ctx context.Context, e JournalEntry) (int64, error) {
	if e.EntryDate.IsZero() {
		e.EntryDate = time.Now()
	}
	query, args := builder().Insert(tableJournal).
		Columns(
			"username", "entry_date", "content", "sentiment_score", "emotional_patterns",
			"sleep_hours", "sleep_quality", "energy_level", "work_hours",
		).
		Values(
			e.Username, e.EntryDate.UTC(), e.Content, e.Sentiment, strings.Join(e.Patterns, patternSeparator),
			nullFloat(e.SleepHours), nullInt(e.SleepQuality), nullInt(e.EnergyLevel), nullFloat(e.WorkHours),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("save journal entry: %w", err)
	}
	return res.LastInsertId()
}

func (r *journalRepo) Query(ctx context.Context, opts QueryOpts) ([]JournalEntry, error) {
	sel := builder().
		Select(
			"id", "username", "entry_date", "content", "sentiment_score", "emotional_patterns",
			"sleep_hours", "sleep_quality", "energy_level", "work_hours",
		).
		From(entsql.Table(tableJournal))
	query, args := applyOpts(sel, opts, "id", "entry_date").Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var (
			e        JournalEntry
			patterns string
			sleep    sql.NullFloat64
			quality  sql.NullInt64
			energy   sql.NullInt64
			work     sql.NullFloat64
		)
		if err := rows.Scan(
			&e.ID, &e.Username, &e.EntryDate, &e.Content, &e.Sentiment, &patterns,
			&sleep, &quality, &energy, &work,
		); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Patterns = splitPatterns(patterns)
		e.SleepHours = floatPtr(sleep)
		e.SleepQuality = intPtr(quality)
		e.EnergyLevel = intPtr(energy)
		e.WorkHours = floatPtr(work)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return out, nil
}

func (r *journalRepo) DeleteUser(ctx context.Context, username string) (int64, error) {
	query, args := builder().Delete(tableJournal).
		Where(entsql.EQ("username", username)).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("delete journal entries: %w", err)
	}
	return res.RowsAffected()
}

func splitPatterns(s string) []string {
	var out []string
	for _, p := range strings.Split(s, patternSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
