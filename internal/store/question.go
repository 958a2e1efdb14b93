package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type questionRepo struct {
	drv *entsql.Driver
}

func (r *questionRepo) Replace(ctx context.Context, qs []QuestionRecord) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args := builder().Delete(tableQuestions).Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}

	if len(qs) > 0 {
		ins := builder().Insert(tableQuestions).
			Columns("id", "text", "tooltip", "age_min", "age_max")
		for _, q := range qs {
			ins.Values(q.ID, q.Text, q.Tooltip, q.AgeMin, q.AgeMax)
		}
		query, args := ins.Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *questionRepo) Load(ctx context.Context, age *int, limit int) ([]QuestionRecord, error) {
	sel := builder().
		Select("id", "text", "tooltip", "age_min", "age_max").
		From(entsql.Table(tableQuestions)).
		OrderBy(entsql.Asc("id"))
	if age != nil {
		sel.Where(entsql.And(
			entsql.LTE("age_min", *age),
			entsql.GTE("age_max", *age),
		))
	}
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []QuestionRecord
	for rows.Next() {
		var q QuestionRecord
		if err := rows.Scan(&q.ID, &q.Text, &q.Tooltip, &q.AgeMin, &q.AgeMax); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}

func (r *questionRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(tableQuestions)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan count: %w", err)
		}
	}
	return n, rows.Err()
}
