package history

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/soulsense/internal/profile"
	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen/screentest"
	"github.com/abhisek/soulsense/internal/store"
)

func seedScore(t *testing.T, env *screentest.Env, user string, values ...int) int64 {
	t.Helper()
	rec := store.ExamRecord{Score: store.ScoreRecord{
		SessionID: user + time.Now().String(),
		Username:  user,
		MaxScore:  4 * len(values),
		CreatedAt: screentest.Now,
	}}
	for i, v := range values {
		rec.Score.TotalScore += v
		rec.Responses = append(rec.Responses, store.ResponseRecord{
			Username: user, QuestionID: i + 1, QuestionIndex: i, Value: v, CreatedAt: screentest.Now,
		})
	}
	id, err := env.Svc.Scores.SaveExam(context.Background(), rec)
	require.NoError(t, err)
	return id
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	msgs := screentest.Drain(s.Init())
	require.Len(t, msgs, 1)
	s.Update(msgs[0])
}

func TestEmptyHistory(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Svc)
	assert.Contains(t, s.View(100, 30), "Loading history...")
	load(t, s)
	assert.Contains(t, s.View(100, 30), "No assessments yet.")
}

func TestListsCurrentUserOnly(t *testing.T) {
	env := screentest.New(t)
	seedScore(t, env, "Asha", 4, 4, 3)
	seedScore(t, env, "Ravi", 1, 1, 1)
	env.Svc.User = &profile.Profile{Name: "Asha"}

	s := New(env.Svc)
	load(t, s)
	require.Len(t, s.scores, 1)
	view := s.View(120, 30)
	assert.Contains(t, view, "1 assessment")
	assert.Contains(t, view, " 11/12")
	assert.NotContains(t, view, "Ravi")
}

func TestAllUsersWithoutProfile(t *testing.T) {
	env := screentest.New(t)
	seedScore(t, env, "Asha", 4)
	seedScore(t, env, "Ravi", 1)

	s := New(env.Svc)
	load(t, s)
	view := s.View(120, 30)
	assert.Contains(t, view, "2 assessments")
	assert.Contains(t, view, "Asha")
	assert.Contains(t, view, "Ravi")
}

func TestExpandLoadsResponsesOnce(t *testing.T) {
	env := screentest.New(t)
	seedScore(t, env, "Asha", 1, 4)
	s := New(env.Svc)
	load(t, s)

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(120, 30), "Loading answers...")
	s.Update(cmd())

	view := s.View(120, 30)
	assert.Contains(t, view, "Never")
	assert.Contains(t, view, "Always")

	// collapse, then expand again from cache
	_, cmd = s.Update(screentest.Special(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.NotContains(t, s.View(120, 30), "Always")
	_, cmd = s.Update(screentest.Special(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(120, 30), "Always")
}

func TestNavigation(t *testing.T) {
	env := screentest.New(t)
	seedScore(t, env, "Asha", 1)
	seedScore(t, env, "Asha", 2)
	s := New(env.Svc)
	load(t, s)

	s.Update(screentest.Special(tea.KeyUp))
	assert.Equal(t, 0, s.selected)
	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Special(tea.KeyDown))
	assert.Equal(t, 1, s.selected)

	_, cmd := s.Update(screentest.Special(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61500 * time.Millisecond, "1:02"},
		{10 * time.Minute, "10:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
