package analytics

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/soulsense/internal/journal"
	"github.com/abhisek/soulsense/internal/store"
)

var base = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func scores(values ...int) []store.ScoreRecord {
	out := make([]store.ScoreRecord, len(values))
	for i, v := range values {
		out[i] = store.ScoreRecord{ID: int64(i + 1), TotalScore: v, CreatedAt: base.AddDate(0, 0, i)}
	}
	return out
}

func TestComputeEQ(t *testing.T) {
	recs := scores(20, 25, 18, 30)
	// newest-first input is re-sorted
	for l, r := 0, len(recs)-1; l < r; l, r = l+1, r-1 {
		recs[l], recs[r] = recs[r], recs[l]
	}

	s := ComputeEQ(recs)
	if s.Count != 4 || s.Latest != 30 || s.Best != 30 || s.First != 20 {
		t.Errorf("stats = %+v", s)
	}
	if s.Average != 23.25 {
		t.Errorf("Average = %v, want 23.25", s.Average)
	}
	if s.Improvement != 50 {
		t.Errorf("Improvement = %v, want 50", s.Improvement)
	}
	assert.Equal(t, []int{20, 25, 18, 30}, s.Scores)
}

func TestImprovement(t *testing.T) {
	tests := []struct {
		first, last, count int
		want               float64
	}{
		{20, 30, 2, 50},
		{40, 30, 5, -25},
		{20, 20, 3, 0},
		{0, 30, 2, 0},
		{20, 20, 1, 0},
	}
	for _, tt := range tests {
		if got := Improvement(tt.first, tt.last, tt.count); got != tt.want {
			t.Errorf("Improvement(%d, %d, %d) = %v, want %v", tt.first, tt.last, tt.count, got, tt.want)
		}
	}
}

func TestComputeEQEmpty(t *testing.T) {
	if s := ComputeEQ(nil); s.Count != 0 || s.Scores != nil {
		t.Errorf("ComputeEQ(nil) = %+v", s)
	}
}

func TestComputeJournal(t *testing.T) {
	entries := []store.JournalEntry{
		{Sentiment: 40, Patterns: []string{"Stress", "Joy"}},
		{Sentiment: -10, Patterns: []string{"Stress"}},
		{Sentiment: 60, Patterns: []string{"Gratitude", "Joy"}},
		{Sentiment: 10, Patterns: []string{"Stress", "Fatigue"}},
	}
	js := ComputeJournal(entries)

	assert.Equal(t, 4, js.Count)
	assert.InDelta(t, 25, js.AvgSentiment, 1e-9)
	assert.Equal(t, 60.0, js.MostPositive)
	require.Len(t, js.TopPatterns, 3)
	assert.Equal(t, PatternCount{Name: "Stress", Count: 3, Percent: 75}, js.TopPatterns[0])
	assert.Equal(t, PatternCount{Name: "Joy", Count: 2, Percent: 50}, js.TopPatterns[1])
	assert.Equal(t, "Gratitude", js.TopPatterns[2].Name)
}

func TestComputeJournalNegativeOnly(t *testing.T) {
	js := ComputeJournal([]store.JournalEntry{{Sentiment: -40}, {Sentiment: -20}})
	assert.Equal(t, -20.0, js.MostPositive)
	assert.Empty(t, js.TopPatterns)
}

func TestInsights(t *testing.T) {
	tests := []struct {
		name string
		eq   EQStats
		js   JournalStats
		want []string
	}{
		{"no data", EQStats{}, JournalStats{}, []string{InsightNeedsMoreData}},
		{"single score only", EQStats{Count: 1}, JournalStats{}, []string{InsightNeedsMoreData}},
		{"big gain", EQStats{Count: 3, Improvement: 12}, JournalStats{}, []string{InsightGreatProgress}},
		{"steady", EQStats{Count: 2, Improvement: 5}, JournalStats{}, []string{InsightSteady}},
		{"flat", EQStats{Count: 2, Improvement: 0}, JournalStats{}, []string{InsightFocus}},
		{"positive journal", EQStats{}, JournalStats{Count: 2, AvgSentiment: 25}, []string{InsightPositive}},
		{"negative journal", EQStats{Count: 2, Improvement: -3}, JournalStats{Count: 1, AvgSentiment: -21}, []string{InsightFocus, InsightStress}},
		{"balanced", EQStats{}, JournalStats{Count: 1, AvgSentiment: 20}, []string{InsightBalanced}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Insights(tt.eq, tt.js))
		})
	}
}

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func metrics(sleep *float64, energy *int, work *float64) store.JournalEntry {
	return store.JournalEntry{SleepHours: sleep, EnergyLevel: energy, WorkHours: work}
}

func TestHealthInsights(t *testing.T) {
	tests := []struct {
		name    string
		entries []store.JournalEntry
		want    []string
	}{
		{"no rows", nil, []string{HealthStartTracking}},
		{"rows without metrics", []store.JournalEntry{{Content: "x"}}, []string{HealthStartTracking}},
		{"well rested and energetic", []store.JournalEntry{
			metrics(fp(8), ip(9), fp(6)),
			metrics(fp(8), ip(8), fp(6)),
		}, []string{HealthGoodSleep, HealthHighEnergy}},
		{"short sleep low energy", []store.JournalEntry{
			metrics(fp(5), ip(3), nil),
			metrics(fp(5), ip(4), nil),
			metrics(fp(6), ip(2), nil),
		}, []string{HealthShortSleep, HealthLowEnergy}},
		{"energy trending up", []store.JournalEntry{
			metrics(fp(7), ip(6), nil),
			metrics(fp(7), ip(5), nil),
			metrics(fp(7), ip(3), nil),
		}, []string{HealthBalancedSleep, HealthEnergyUp}},
		{"long hours", []store.JournalEntry{
			metrics(nil, nil, fp(12)),
			metrics(nil, nil, fp(11)),
		}, []string{HealthLongHours}},
		{"relaxing", []store.JournalEntry{
			metrics(nil, ip(6), fp(1)),
			metrics(nil, ip(6), fp(0)),
		}, []string{HealthRelaxing}},
		{"stable", []store.JournalEntry{
			metrics(nil, ip(6), fp(8)),
			metrics(nil, ip(5), fp(8)),
		}, []string{HealthStable}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HealthInsights(tt.entries))
		})
	}
}

func TestHealthInsightsUsesSevenNewest(t *testing.T) {
	var entries []store.JournalEntry
	for range 7 {
		entries = append(entries, metrics(fp(8), nil, nil))
	}
	for range 20 {
		entries = append(entries, metrics(fp(3), nil, nil))
	}
	assert.Equal(t, []string{HealthGoodSleep}, HealthInsights(entries))
}

func TestBar(t *testing.T) {
	tests := []struct {
		score, best, want int
	}{
		{40, 40, 20},
		{20, 40, 10},
		{31, 40, 16}, // 15.5 rounds up
		{1, 40, 1},
		{0, 40, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := len([]rune(Bar(tt.score, tt.best))); got != tt.want {
			t.Errorf("Bar(%d, %d) has %d blocks, want %d", tt.score, tt.best, got, tt.want)
		}
	}
}

func TestBarChart(t *testing.T) {
	chart := BarChart([]int{20, 40})
	lines := strings.Split(strings.TrimRight(chart, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Test  1: "+strings.Repeat("█", 10)+" 20", lines[0])
	assert.Equal(t, "Test  2: "+strings.Repeat("█", 20)+" 40", lines[1])
	assert.Empty(t, BarChart(nil))
}

func TestDashboard(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "analytics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	for i, total := range []int{20, 24} {
		_, err := s.ScoreRepo().SaveExam(ctx, store.ExamRecord{Score: store.ScoreRecord{
			SessionID:  "s" + string(rune('a'+i)),
			Username:   "Ann",
			AgeGroup:   "unknown",
			TotalScore: total,
			MaxScore:   40,
			CreatedAt:  base.AddDate(0, 0, i),
		}})
		require.NoError(t, err)
	}
	now := base.AddDate(0, 0, 5)
	for d := range 2 {
		_, err := s.JournalRepo().Add(ctx, store.JournalEntry{
			Username:   "Ann",
			EntryDate:  now.Add(-time.Duration(d+1) * time.Hour),
			Content:    "short night",
			Sentiment:  30,
			Patterns:   []string{"Fatigue"},
			SleepHours: fp(5),
		})
		require.NoError(t, err)
	}

	d, err := NewService(s.ScoreRepo(), s.JournalRepo()).Dashboard(ctx, "Ann", now)
	require.NoError(t, err)
	assert.Equal(t, 2, d.EQ.Count)
	assert.Equal(t, 20.0, d.EQ.Improvement)
	assert.Equal(t, []string{InsightGreatProgress, InsightPositive}, d.Insights)
	assert.Equal(t, []string{HealthShortSleep}, d.Health)
	assert.Equal(t, journal.NudgeLowSleep, d.Nudge)
	assert.Contains(t, d.Chart, "Test  2:")
	require.Len(t, d.Journal.TopPatterns, 1)
	assert.Equal(t, 100.0, d.Journal.TopPatterns[0].Percent)
}
