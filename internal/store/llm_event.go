package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the global monotonic sequence stored in the
// global_sequence table. The mutex serializes within the process; the
// RETURNING clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	rows := &entsql.Rows{}
	err := sc.drv.Query(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
		[]any{}, rows)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	var seq int64
	if !rows.Next() {
		return 0, fmt.Errorf("next sequence: no row")
	}
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo backed by the global sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var llmEventColumns = []string{
	"sequence", "timestamp", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableLLMRequests).
		Columns(llmEventColumns...).
		Values(
			seqNum, time.Now().UTC(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	opts.Username = ""
	sel := builder().Select(llmEventColumns...).From(entsql.Table(tableLLMRequests))
	query, args := applyOpts(sel, opts, "sequence", "timestamp").Query()
	return r.scan(ctx, query, args)
}

func (r *eventRepo) GetLLMRequest(ctx context.Context, seq int64) (*LLMRequestEvent, error) {
	query, args := builder().Select(llmEventColumns...).
		From(entsql.Table(tableLLMRequests)).
		Where(entsql.EQ("sequence", seq)).
		Query()
	events, err := r.scan(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("LLM request %d: %w", seq, ErrNotFound)
	}
	return &events[0], nil
}

func (r *eventRepo) scan(ctx context.Context, query string, args []any) ([]LLMRequestEvent, error) {
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query LLM requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var e LLMRequestEvent
		if err := rows.Scan(
			&e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
		); err != nil {
			return nil, fmt.Errorf("scan LLM request: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LLM requests: %w", err)
	}
	return out, nil
}
