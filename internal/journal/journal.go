// Package journal writes diary entries with their sentiment and emotional
// patterns, and derives short wellbeing nudges from recent entries.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/soulsense/internal/profile"
	"github.com/abhisek/soulsense/internal/sentiment"
	"github.com/abhisek/soulsense/internal/store"
)

var (
	ErrEmptyContent = errors.New("journal entry is empty")
	ErrMetricRange  = errors.New("metric out of range")
)

// Draft is a journal entry before analysis.
type Draft struct {
	Username     string
	Content      string
	Date         time.Time // zero means now
	SleepHours   *float64  // 0..24
	SleepQuality *int      // 1..10
	EnergyLevel  *int      // 1..10
	WorkHours    *float64  // 0..24
}

// Validate checks the content and the wellbeing metrics.
func (d Draft) Validate() error {
	if _, err := profile.ValidateName(d.Username); err != nil {
		return err
	}
	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyContent
	}
	if err := floatRange("sleep hours", d.SleepHours, 0, 24); err != nil {
		return err
	}
	if err := intRange("sleep quality", d.SleepQuality, 1, 10); err != nil {
		return err
	}
	if err := intRange("energy level", d.EnergyLevel, 1, 10); err != nil {
		return err
	}
	return floatRange("work hours", d.WorkHours, 0, 24)
}

func floatRange(name string, v *float64, lo, hi float64) error {
	if v != nil && (*v < lo || *v > hi) {
		return fmt.Errorf("%w: %s %g is outside %g..%g", ErrMetricRange, name, *v, lo, hi)
	}
	return nil
}

func intRange(name string, v *int, lo, hi int) error {
	if v != nil && (*v < lo || *v > hi) {
		return fmt.Errorf("%w: %s %d is outside %d..%d", ErrMetricRange, name, *v, lo, hi)
	}
	return nil
}

// Service writes and reads journal entries.
type Service struct {
	repo     store.JournalRepo
	analyzer sentiment.Analyzer
	logger   *slog.Logger
	now      func() time.Time
}

// NewService returns a Service. A nil analyzer means the offline lexicon.
func NewService(repo store.JournalRepo, analyzer sentiment.Analyzer) *Service {
	if analyzer == nil {
		analyzer = sentiment.NewLexicon()
	}
	return &Service{repo: repo, analyzer: analyzer, logger: slog.Default(), now: time.Now}
}

// Write analyzes d and stores it. When the analyzer fails the entry is
// still saved with a neutral score and keyword-detected patterns.
func (s *Service) Write(ctx context.Context, d Draft) (store.JournalEntry, error) {
	if err := d.Validate(); err != nil {
		return store.JournalEntry{}, err
	}
	name, _ := profile.ValidateName(d.Username)
	content := strings.TrimSpace(d.Content)

	res, err := sentiment.Describe(ctx, s.analyzer, content)
	if err != nil {
		s.logger.Warn("journal sentiment failed", "user", name, "error", err)
		res = sentiment.Result{Patterns: sentiment.DetectPatterns(content)}
	}

	date := d.Date
	if date.IsZero() {
		date = s.now()
	}
	e := store.JournalEntry{
		Username:     name,
		EntryDate:    date,
		Content:      content,
		Sentiment:    res.Score,
		Patterns:     res.Patterns,
		SleepHours:   d.SleepHours,
		SleepQuality: d.SleepQuality,
		EnergyLevel:  d.EnergyLevel,
		WorkHours:    d.WorkHours,
	}
	id, err := s.repo.Add(ctx, e)
	if err != nil {
		return store.JournalEntry{}, fmt.Errorf("save journal entry: %w", err)
	}
	e.ID = id
	s.logger.Info("journal entry saved", "user", name, "id", id, "sentiment", res.Score)
	return e, nil
}

// Entries lists a user's entries, newest first. A limit of 0 returns all.
func (s *Service) Entries(ctx context.Context, username string, limit int) ([]store.JournalEntry, error) {
	return s.repo.Query(ctx, store.QueryOpts{Username: username, Limit: limit})
}

// Nudge returns a short wellbeing nudge from the user's last three days of
// entries, or "" when there is nothing to say.
func (s *Service) Nudge(ctx context.Context, username string, now time.Time) (string, error) {
	entries, err := s.repo.Query(ctx, store.QueryOpts{
		Username: username,
		From:     now.Add(-NudgeWindow),
		To:       now,
	})
	if err != nil {
		return "", fmt.Errorf("load recent journal entries: %w", err)
	}
	return NudgeFor(entries), nil
}
