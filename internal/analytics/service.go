package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/soulsense/internal/journal"
	"github.com/abhisek/soulsense/internal/store"
)

// Dashboard is everything the dashboard screen and the stats command show.
type Dashboard struct {
	Username string
	EQ       EQStats
	Chart    string
	Journal  JournalStats
	Insights []string
	Health   []string
	Nudge    string
}

// Service loads history from the store and summarizes it.
type Service struct {
	scores  store.ScoreRepo
	journal store.JournalRepo
}

func NewService(scores store.ScoreRepo, journal store.JournalRepo) *Service {
	return &Service{scores: scores, journal: journal}
}

// Dashboard builds the full summary for username at time now.
func (s *Service) Dashboard(ctx context.Context, username string, now time.Time) (Dashboard, error) {
	scores, err := s.scores.QueryScores(ctx, store.QueryOpts{Username: username, Oldest: true})
	if err != nil {
		return Dashboard{}, fmt.Errorf("load scores: %w", err)
	}
	entries, err := s.journal.Query(ctx, store.QueryOpts{Username: username})
	if err != nil {
		return Dashboard{}, fmt.Errorf("load journal: %w", err)
	}

	d := Dashboard{Username: username}
	d.EQ = ComputeEQ(scores)
	d.Chart = BarChart(d.EQ.Scores)
	d.Journal = ComputeJournal(entries)
	d.Insights = Insights(d.EQ, d.Journal)
	d.Health = HealthInsights(entries)
	d.Nudge = journal.NudgeFor(recent(entries, now))
	return d, nil
}

// recent keeps the newest-first entries inside the nudge window.
func recent(entries []store.JournalEntry, now time.Time) []store.JournalEntry {
	var out []store.JournalEntry
	for _, e := range entries {
		if !e.EntryDate.After(now) && now.Sub(e.EntryDate) <= journal.NudgeWindow {
			out = append(out, e)
		}
	}
	return out
}
