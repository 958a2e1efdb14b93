package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"scores", "responses", "questions", "journal_entries", "llm_request_events", "meta"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.ScoreRepo().SaveExam(ctx, ExamRecord{Score: ScoreRecord{SessionID: "a", Username: "Ann", TotalScore: 20, MaxScore: 40}})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	scores, err := s.ScoreRepo().QueryScores(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, scores, 1)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLLMRequestEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"sentiment", "insights"} {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock",
			Purpose:      purpose,
			InputTokens:  10,
			OutputTokens: 5,
			Success:      true,
			ResponseBody: `{"score":12}`,
		}))
	}

	events, err := repo.QueryLLMRequests(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(2), events[0].Sequence, "newest first")
	assert.Equal(t, "insights", events[0].Purpose)

	ev, err := repo.GetLLMRequest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "sentiment", ev.Purpose)
	assert.Equal(t, `{"score":12}`, ev.ResponseBody)

	_, err = repo.GetLLMRequest(ctx, 99)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMetaGetSet(t *testing.T) {
	s := openTestStore(t)
	repo := s.MetaRepo()
	ctx := context.Background()

	_, err := repo.Get(ctx, "bank_version")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Set(ctx, "bank_version", "v1.0.0"))
	require.NoError(t, repo.Set(ctx, "bank_version", "v1.1.0"))

	v, err := repo.Get(ctx, "bank_version")
	require.NoError(t, err)
	assert.Equal(t, "v1.1.0", v)
}

func TestJournalAddAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.JournalRepo()
	ctx := context.Background()

	sleep := 6.5
	energy := 4
	base := time.Now().UTC().Truncate(time.Second)
	for i, content := range []string{"first", "second", "third"} {
		_, err := repo.Add(ctx, JournalEntry{
			Username:    "Ann",
			EntryDate:   base.Add(time.Duration(i) * time.Hour),
			Content:     content,
			Sentiment:   float64(i * 10),
			Patterns:    []string{"Stress", "Gratitude"},
			SleepHours:  &sleep,
			EnergyLevel: &energy,
		})
		require.NoError(t, err)
	}
	_, err := repo.Add(ctx, JournalEntry{Username: "Bob", Content: "other"})
	require.NoError(t, err)

	entries, err := repo.Query(ctx, QueryOpts{Username: "Ann", Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].Content)
	assert.Equal(t, []string{"Stress", "Gratitude"}, entries[0].Patterns)
	require.NotNil(t, entries[0].SleepHours)
	assert.Equal(t, 6.5, *entries[0].SleepHours)
	assert.Nil(t, entries[0].WorkHours)

	since, err := repo.Query(ctx, QueryOpts{Username: "Ann", From: base.Add(90 * time.Minute), Oldest: true})
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, "third", since[0].Content)

	n, err := repo.DeleteUser(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
