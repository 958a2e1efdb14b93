package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/soulsense/internal/llm"
)

const llmSystemPrompt = `You rate the emotional tone of short personal reflections and journal entries.
Return a score from -100 (very negative) to 100 (very positive); 0 is neutral.
Also list which of these emotional patterns are clearly present, using the exact names:
%s.
Use an empty list when none apply. Do not add commentary.`

func sentimentSchema() *llm.Schema {
	names := make([]any, 0, len(families))
	for _, n := range PatternNames() {
		names = append(names, n)
	}
	return &llm.Schema{
		Name:        "text-sentiment",
		Description: "Sentiment score and emotional patterns for a piece of text",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"score": map[string]any{
					"type":        "number",
					"description": "Tone from -100 to 100",
				},
				"patterns": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string", "enum": names},
				},
			},
			"required":             []any{"score", "patterns"},
			"additionalProperties": false,
		},
	}
}

// LLM scores text with a language model. The response is constrained by a
// JSON schema and the score is clamped to -100..100.
type LLM struct {
	provider llm.Provider
	purpose  string
	timeout  time.Duration
}

// LLMOption configures an LLM analyzer.
type LLMOption func(*LLM)

// WithPurpose sets the audit label recorded for each call.
func WithPurpose(p string) LLMOption { return func(a *LLM) { a.purpose = p } }

// WithTimeout bounds each call, retries included.
func WithTimeout(d time.Duration) LLMOption { return func(a *LLM) { a.timeout = d } }

func NewLLM(p llm.Provider, opts ...LLMOption) *LLM {
	a := &LLM{provider: p, purpose: llm.PurposeReflection, timeout: 20 * time.Second}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *LLM) Analyze(ctx context.Context, text string) (float64, error) {
	r, err := a.AnalyzeDetailed(ctx, text)
	return r.Score, err
}

func (a *LLM) AnalyzeDetailed(ctx context.Context, text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, errors.New("sentiment: empty text")
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, a.purpose)

	var out struct {
		Score    float64  `json:"score"`
		Patterns []string `json:"patterns"`
	}
	_, err := llm.GenerateJSON(ctx, a.provider, llm.Request{
		System:    fmt.Sprintf(llmSystemPrompt, strings.Join(PatternNames(), ", ")),
		Input:     text,
		Schema:    sentimentSchema(),
		MaxTokens: 200,
	}, &out)
	if err != nil {
		return Result{}, err
	}

	r := Result{Score: clamp(out.Score)}
	for _, p := range out.Patterns {
		if KnownPattern(p) {
			r.Patterns = append(r.Patterns, p)
		}
	}
	return r, nil
}
