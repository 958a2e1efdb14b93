package preferences

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/soulsense/internal/settings"
	"github.com/abhisek/soulsense/internal/screen/screentest"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

func TestChangeRows(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Svc)
	start := s.Draft()

	s.Update(screentest.Special(tea.KeyRight))
	assert.Equal(t, start.QuestionCount+1, s.Draft().QuestionCount)

	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Special(tea.KeyRight))
	assert.NotEqual(t, start.Theme, s.Draft().Theme)

	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Special(tea.KeyLeft))
	assert.Equal(t, !start.SoundEffects, s.Draft().SoundEffects)

	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Special(tea.KeyRight))
	assert.Equal(t, "es", s.Draft().Language)

	assert.Equal(t, start, env.Svc.Prefs, "nothing applies before saving")
}

func TestQuestionCountClamped(t *testing.T) {
	env := screentest.New(t)
	env.Svc.Prefs.QuestionCount = settings.MinQuestionCount
	s := New(env.Svc)
	s.Update(screentest.Special(tea.KeyLeft))
	assert.Equal(t, settings.MinQuestionCount, s.Draft().QuestionCount)
}

func TestSaveApplies(t *testing.T) {
	t.Cleanup(func() { theme.Apply(theme.Dark) })
	env := screentest.New(t)
	s := New(env.Svc)

	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Special(tea.KeyRight)) // dark -> light
	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Special(tea.KeyRight)) // en -> es

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Equal(t, settings.ThemeLight, env.Svc.Prefs.Theme)
	assert.Equal(t, settings.ThemeLight, theme.Current())
	assert.Equal(t, "es", env.Svc.T.Lang())

	stored := env.Svc.Settings.Load()
	assert.Equal(t, env.Svc.Prefs, stored)
	assert.NotEmpty(t, s.notice)
}

func TestCycle(t *testing.T) {
	vals := []string{"a", "b", "c"}
	tests := []struct {
		cur  string
		dir  int
		want string
	}{
		{"a", 1, "b"},
		{"c", 1, "a"},
		{"a", -1, "c"},
		{"zzz", 1, "b"},
	}
	for _, tt := range tests {
		if got := cycle(vals, tt.cur, tt.dir); got != tt.want {
			t.Errorf("cycle(%q, %d) = %q, want %q", tt.cur, tt.dir, got, tt.want)
		}
	}
}
