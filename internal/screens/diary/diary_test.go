package diary

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen/screentest"
)

func newDiary(t *testing.T) (*DiaryScreen, *screentest.Env) {
	t.Helper()
	env := screentest.New(t)
	s := New(env.Svc, "Asha")
	s.content.Focus()
	return s, env
}

func TestSaveEntry(t *testing.T) {
	s, env := newDiary(t)
	s.content.SetValue("Work was stressful but the evening walk helped")
	s.metrics[fieldSleep].SetValue("6.5")
	s.metrics[fieldEnergy].SetValue("4")

	_, cmd := s.Update(screentest.Ctrl('s'))
	require.NotNil(t, cmd)
	assert.True(t, s.saving)

	msg, ok := cmd().(savedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, screentest.Now, msg.Entry.EntryDate)
	require.NotNil(t, msg.Entry.SleepHours)
	assert.Equal(t, 6.5, *msg.Entry.SleepHours)
	assert.Nil(t, msg.Entry.SleepQuality)

	s.Update(msg)
	assert.False(t, s.saving)
	assert.Contains(t, s.notice, "Entry saved.")
	assert.Empty(t, s.content.Value(), "form clears after saving")

	entries, err := env.Svc.Journal.Entries(context.Background(), "Asha", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEmptyContentRejected(t *testing.T) {
	s, _ := newDiary(t)
	_, cmd := s.Update(screentest.Ctrl('s'))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, s.errMsg)
	assert.False(t, s.saving)
}

func TestMetricOutOfRange(t *testing.T) {
	s, _ := newDiary(t)
	s.content.SetValue("ok day")
	s.metrics[fieldQuality].SetValue("11")

	_, cmd := s.Update(screentest.Ctrl('s'))
	assert.Nil(t, cmd)
	assert.Contains(t, s.errMsg, "sleep quality")
}

func TestUnparsableMetric(t *testing.T) {
	s, _ := newDiary(t)
	s.content.SetValue("ok day")
	s.metrics[fieldWork].SetValue("8.5.1")

	_, cmd := s.Update(screentest.Ctrl('s'))
	assert.Nil(t, cmd)
	assert.Equal(t, "not a number", s.metrics[fieldWork].Err)
}

func TestFocusCycle(t *testing.T) {
	s, _ := newDiary(t)
	for want := fieldSleep; want < numFields; want++ {
		s.Update(screentest.Special(tea.KeyTab))
		assert.Equal(t, want, s.focus)
	}
	s.Update(screentest.Special(tea.KeyTab))
	assert.Equal(t, fieldContent, s.focus)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, fieldWork, s.focus)
}

func TestMetricInputFiltersLetters(t *testing.T) {
	s, _ := newDiary(t)
	s.Update(screentest.Special(tea.KeyTab))
	for _, r := range "7a.5" {
		s.Update(screentest.Key(r))
	}
	assert.Equal(t, "7.5", s.metrics[fieldSleep].Value())
}

func TestRecentEntries(t *testing.T) {
	s, _ := newDiary(t)
	s.content.SetValue("first entry")
	_, cmd := s.Update(screentest.Ctrl('s'))
	s.Update(cmd())

	msgs := screentest.Drain(s.loadRecent())
	require.Len(t, msgs, 1)
	s.Update(msgs[0])
	require.Len(t, s.recent, 1)
	assert.Contains(t, s.View(100, 60), "first entry")
}

func TestEscapePops(t *testing.T) {
	s, _ := newDiary(t)
	_, cmd := s.Update(screentest.Special(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
