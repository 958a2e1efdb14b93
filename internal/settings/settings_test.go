package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{"defaults kept", Defaults(), Defaults()},
		{"count too low", Settings{QuestionCount: 2, Theme: "dark", Language: "en"}, Settings{QuestionCount: 5, Theme: "dark", Language: "en"}},
		{"count too high", Settings{QuestionCount: 99, Theme: "light", Language: "es"}, Settings{QuestionCount: 50, Theme: "light", Language: "es"}},
		{"zero count reset", Settings{Theme: "dark", Language: "en"}, Settings{QuestionCount: 10, Theme: "dark", Language: "en"}},
		{"unknown theme", Settings{QuestionCount: 10, Theme: "neon", Language: "en"}, Settings{QuestionCount: 10, Theme: "dark", Language: "en"}},
		{"case and space", Settings{QuestionCount: 10, Theme: " Light ", Language: "ES"}, Settings{QuestionCount: 10, Theme: "light", Language: "es"}},
		{"unknown language", Settings{QuestionCount: 10, Theme: "dark", Language: "fr"}, Settings{QuestionCount: 10, Theme: "dark", Language: "en"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := Open(t.TempDir())
	assert.Equal(t, Defaults(), s.Load())
}

func TestSaveAndReopen(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	saved, err := s.Save(Settings{QuestionCount: 70, Theme: "light", SoundEffects: false, Language: "es"})
	require.NoError(t, err)
	assert.Equal(t, 50, saved.QuestionCount)

	_, err = os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)

	got := Open(dir).Load()
	assert.Equal(t, Settings{QuestionCount: 50, Theme: "light", SoundEffects: false, Language: "es"}, got)
	assert.Equal(t, got, s.Load())
}

func TestLoadClampsFileValues(t *testing.T) {
	dir := t.TempDir()
	data := `{"question_count": 3, "theme": "purple", "sound_effects": false, "language": "de"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(data), 0o644))

	got := Open(dir).Load()
	assert.Equal(t, Settings{QuestionCount: 5, Theme: "dark", SoundEffects: false, Language: "en"}, got)
}

func TestCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{oops"), 0o644))
	assert.Equal(t, Defaults(), Open(dir).Load())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SOULSENSE_QUESTION_COUNT", "20")
	t.Setenv("SOULSENSE_THEME", "light")

	got := Open(t.TempDir()).Load()
	if got.QuestionCount != 20 {
		t.Errorf("QuestionCount = %d, want 20", got.QuestionCount)
	}
	if got.Theme != ThemeLight {
		t.Errorf("Theme = %q, want light", got.Theme)
	}
}

func TestSet(t *testing.T) {
	s := Open(t.TempDir())

	got, err := s.Set(KeyQuestionCount, "15")
	require.NoError(t, err)
	assert.Equal(t, 15, got.QuestionCount)

	got, err = s.Set(KeySoundEffects, "false")
	require.NoError(t, err)
	assert.False(t, got.SoundEffects)
	assert.Equal(t, 15, got.QuestionCount)

	_, err = s.Set(KeyQuestionCount, "many")
	assert.Error(t, err)

	_, err = s.Set("volume", "11")
	assert.ErrorIs(t, err, ErrUnknownKey)

	v, err := s.Load().Get(KeySoundEffects)
	require.NoError(t, err)
	assert.Equal(t, "false", v)
}
