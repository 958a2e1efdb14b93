// Package sentiment scores free text on a -100..100 scale and tags it with
// emotional patterns. The Lexicon analyzer works offline; the LLM analyzer
// asks the configured model and is normally chained in front of it with
// Fallback.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// MinScore and MaxScore bound every analyzer's output.
const (
	MinScore = -100.0
	MaxScore = 100.0
)

// Result is a full analysis of one text.
type Result struct {
	Score    float64
	Patterns []string
}

// Analyzer scores text. Positive means favorable.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (float64, error)
}

// Detailed is an Analyzer that also reports emotional patterns.
type Detailed interface {
	Analyzer
	AnalyzeDetailed(ctx context.Context, text string) (Result, error)
}

// Describe runs a detailed analysis when a supports it. Otherwise it
// takes the score from a and the patterns from DetectPatterns.
func Describe(ctx context.Context, a Analyzer, text string) (Result, error) {
	if d, ok := a.(Detailed); ok {
		return d.AnalyzeDetailed(ctx, text)
	}
	score, err := a.Analyze(ctx, text)
	if err != nil {
		return Result{}, err
	}
	return Result{Score: score, Patterns: DetectPatterns(text)}, nil
}

// Fallback tries each analyzer in order and returns the first success.
type Fallback struct {
	analyzers []Analyzer
	logger    *slog.Logger
}

// NewFallback chains analyzers. Nil entries are skipped.
func NewFallback(analyzers ...Analyzer) *Fallback {
	f := &Fallback{logger: slog.Default()}
	for _, a := range analyzers {
		if a != nil {
			f.analyzers = append(f.analyzers, a)
		}
	}
	return f
}

func (f *Fallback) Analyze(ctx context.Context, text string) (float64, error) {
	r, err := f.AnalyzeDetailed(ctx, text)
	return r.Score, err
}

func (f *Fallback) AnalyzeDetailed(ctx context.Context, text string) (Result, error) {
	if len(f.analyzers) == 0 {
		return Result{}, errors.New("sentiment: no analyzers configured")
	}
	var errs []error
	for i, a := range f.analyzers {
		r, err := Describe(ctx, a, text)
		if err == nil {
			return r, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		f.logger.Warn("sentiment analyzer failed", "analyzer", i, "error", err)
		errs = append(errs, err)
	}
	return Result{}, fmt.Errorf("all sentiment analyzers failed: %w", errors.Join(errs...))
}

func clamp(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(MinScore, math.Min(MaxScore, score))
}
