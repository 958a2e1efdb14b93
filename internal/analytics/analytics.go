// Package analytics summarizes a user's assessment and journal history:
// score trends, journal sentiment, short textual insights and a text bar
// chart.
package analytics

import (
	"cmp"
	"slices"

	"github.com/abhisek/soulsense/internal/store"
)

// EQStats summarizes a user's scores in chronological order.
type EQStats struct {
	Count   int
	Latest  int
	Best    int
	First   int
	Average float64

	// Improvement is (latest-first)/first*100. It is zero with fewer than
	// two scores or a first score of zero.
	Improvement float64
	Scores      []int
}

// ComputeEQ summarizes scores. The input may be in any order; it is
// sorted by creation time.
func ComputeEQ(records []store.ScoreRecord) EQStats {
	if len(records) == 0 {
		return EQStats{}
	}
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b store.ScoreRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	s := EQStats{Count: len(sorted), Scores: make([]int, len(sorted))}
	sum := 0
	for i, r := range sorted {
		s.Scores[i] = r.TotalScore
		sum += r.TotalScore
		s.Best = max(s.Best, r.TotalScore)
	}
	s.First = s.Scores[0]
	s.Latest = s.Scores[len(s.Scores)-1]
	s.Average = float64(sum) / float64(s.Count)
	s.Improvement = Improvement(s.First, s.Latest, s.Count)
	return s
}

// Improvement is the percentage change from first to last.
func Improvement(first, last, count int) float64 {
	if count < 2 || first == 0 {
		return 0
	}
	return float64(last-first) / float64(first) * 100
}

// PatternCount is how often a pattern appears across journal entries.
type PatternCount struct {
	Name    string
	Count   int
	Percent float64 // of entries
}

// JournalStats summarizes journal entries.
type JournalStats struct {
	Count        int
	AvgSentiment float64
	MostPositive float64
	TopPatterns  []PatternCount // at most three, most frequent first
}

// ComputeJournal summarizes entries.
func ComputeJournal(entries []store.JournalEntry) JournalStats {
	if len(entries) == 0 {
		return JournalStats{}
	}
	js := JournalStats{Count: len(entries), MostPositive: entries[0].Sentiment}
	counts := map[string]int{}
	var order []string
	sum := 0.0
	for _, e := range entries {
		sum += e.Sentiment
		js.MostPositive = max(js.MostPositive, e.Sentiment)
		for _, p := range e.Patterns {
			if counts[p] == 0 {
				order = append(order, p)
			}
			counts[p]++
		}
	}
	js.AvgSentiment = sum / float64(js.Count)

	// ties keep first-seen order
	slices.SortStableFunc(order, func(a, b string) int { return cmp.Compare(counts[b], counts[a]) })
	for _, p := range order[:min(3, len(order))] {
		js.TopPatterns = append(js.TopPatterns, PatternCount{
			Name:    p,
			Count:   counts[p],
			Percent: float64(counts[p]) / float64(js.Count) * 100,
		})
	}
	return js
}
