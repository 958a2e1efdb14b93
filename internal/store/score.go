package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// scoreRepo implements ScoreRepo with ent's SQL builder.
type scoreRepo struct {
	drv *entsql.Driver
}

var scoreSelectColumns = []string{
	"id", "session_id", "username", "age", "age_group", "total_score",
	"max_score", "reflection_text", "sentiment_score", "duration_ms", "created_at",
}

func (r *scoreRepo) SaveExam(ctx context.Context, rec ExamRecord) (int64, error) {
	sc := rec.Score
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now()
	}
	if sc.AgeGroup == "" {
		sc.AgeGroup = "unknown"
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args := builder().Insert(tableScores).
		Columns(
			"session_id", "username", "age", "age_group", "total_score",
			"max_score", "reflection_text", "sentiment_score", "duration_ms", "created_at",
		).
		Values(
			sc.SessionID, sc.Username, nullInt(sc.Age), sc.AgeGroup, sc.TotalScore,
			sc.MaxScore, sc.Reflection, nullFloat(sc.Sentiment), sc.DurationMs, sc.CreatedAt.UTC(),
		).
		Query()
	var res sql.Result
	if err := tx.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("insert score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("score id: %w", err)
	}

	if len(rec.Responses) > 0 {
		ins := builder().Insert(tableResponses).
			Columns(
				"score_id", "username", "question_id", "question_index",
				"response_value", "age_group", "elapsed_ms", "created_at",
			)
		for _, rr := range rec.Responses {
			ts := rr.CreatedAt
			if ts.IsZero() {
				ts = sc.CreatedAt
			}
			ins.Values(
				id, sc.Username, rr.QuestionID, rr.QuestionIndex,
				rr.Value, sc.AgeGroup, rr.ElapsedMs, ts.UTC(),
			)
		}
		query, args := ins.Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return 0, fmt.Errorf("insert responses: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (r *scoreRepo) QueryScores(ctx context.Context, opts QueryOpts) ([]ScoreRecord, error) {
	sel := builder().Select(scoreSelectColumns...).From(entsql.Table(tableScores))
	query, args := applyOpts(sel, opts, "id", "created_at").Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreRecord
	for rows.Next() {
		var (
			rec       ScoreRecord
			age       sql.NullInt64
			sentiment sql.NullFloat64
		)
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.Username, &age, &rec.AgeGroup, &rec.TotalScore,
			&rec.MaxScore, &rec.Reflection, &sentiment, &rec.DurationMs, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		rec.Age = intPtr(age)
		rec.Sentiment = floatPtr(sentiment)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return out, nil
}

func (r *scoreRepo) Responses(ctx context.Context, scoreID int64) ([]ResponseRecord, error) {
	query, args := builder().
		Select("id", "score_id", "username", "question_id", "question_index",
			"response_value", "age_group", "elapsed_ms", "created_at").
		From(entsql.Table(tableResponses)).
		Where(entsql.EQ("score_id", scoreID)).
		OrderBy(entsql.Asc("question_index")).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []ResponseRecord
	for rows.Next() {
		var rr ResponseRecord
		if err := rows.Scan(
			&rr.ID, &rr.ScoreID, &rr.Username, &rr.QuestionID, &rr.QuestionIndex,
			&rr.Value, &rr.AgeGroup, &rr.ElapsedMs, &rr.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return out, nil
}

func (r *scoreRepo) Users(ctx context.Context) ([]string, error) {
	query, args := builder().
		Select("username").
		Distinct().
		From(entsql.Table(tableScores)).
		OrderBy("username").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *scoreRepo) DeleteUser(ctx context.Context, username string) (int64, error) {
	query, args := builder().Delete(tableScores).
		Where(entsql.EQ("username", username)).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("delete scores: %w", err)
	}
	return res.RowsAffected()
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// applyOpts adds the QueryOpts filters, ordering and limit to sel.
func applyOpts(sel *entsql.Selector, opts QueryOpts, idCol, timeCol string) *entsql.Selector {
	if opts.Username != "" {
		sel.Where(entsql.EQ("username", opts.Username))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT(idCol, opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(idCol, opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(timeCol, opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(timeCol, opts.To.UTC()))
	}
	if opts.Oldest {
		sel.OrderBy(entsql.Asc(timeCol), entsql.Asc(idCol))
	} else {
		sel.OrderBy(entsql.Desc(timeCol), entsql.Desc(idCol))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
