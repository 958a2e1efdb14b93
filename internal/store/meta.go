package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type metaRepo struct {
	drv *entsql.Driver
}

// Get returns the value for key, or ErrNotFound.
func (r *metaRepo) Get(ctx context.Context, key string) (string, error) {
	query, args := builder().Select("value").
		From(entsql.Table(tableMeta)).
		Where(entsql.EQ("key", key)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return "", fmt.Errorf("query meta %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", fmt.Errorf("query meta %q: %w", key, err)
		}
		return "", fmt.Errorf("meta %q: %w", key, ErrNotFound)
	}
	var v string
	if err := rows.Scan(&v); err != nil {
		return "", fmt.Errorf("scan meta %q: %w", key, err)
	}
	return v, nil
}

// Set upserts key.
func (r *metaRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().Insert(tableMeta).
		Columns("key", "value").
		Values(key, value).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("set meta %q: %w", key, err)
	}
	return nil
}
