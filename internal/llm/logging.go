package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/soulsense/internal/store"
)

// LoggingProvider records every call in the LLM request audit table. A
// failed audit write is logged and never fails the call.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   *slog.Logger
}

// WithLogging wraps p so that each call is appended to events.
func WithLogging(p Provider, provider string, events store.EventRepo) *LoggingProvider {
	return &LoggingProvider{inner: p, provider: provider, events: events, logger: slog.Default()}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.logger.Debug("llm request",
		"provider", data.Provider, "model", data.Model, "purpose", data.Purpose,
		"latency_ms", data.LatencyMs, "success", data.Success)

	// Audit writes use a detached context so a cancelled call is still recorded.
	if logErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		l.logger.Warn("record llm request", "error", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	if req.Input != "" {
		fmt.Fprintf(&b, "[input]\n%s\n\n", req.Input)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
