// Package settings persists user preferences in settings.json.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the settings file inside the data dir.
const FileName = "settings.json"

// Setting keys as they appear in the file. Environment overrides use the
// upper-cased key with a SOULSENSE_ prefix, e.g. SOULSENSE_QUESTION_COUNT.
const (
	KeyQuestionCount = "question_count"
	KeyTheme         = "theme"
	KeySoundEffects  = "sound_effects"
	KeyLanguage      = "language"
)

// Keys lists every setting key in display order.
var Keys = []string{KeyQuestionCount, KeyTheme, KeySoundEffects, KeyLanguage}

const (
	MinQuestionCount     = 5
	MaxQuestionCount     = 50
	DefaultQuestionCount = 10

	ThemeLight = "light"
	ThemeDark  = "dark"

	DefaultLanguage = "en"
)

// Themes and Languages are the accepted values.
var (
	Themes    = []string{ThemeLight, ThemeDark}
	Languages = []string{"en", "es"}
)

// ErrUnknownKey is returned by Set for keys not in Keys.
var ErrUnknownKey = errors.New("unknown setting")

// Settings are the user preferences.
type Settings struct {
	QuestionCount int    `mapstructure:"question_count" json:"question_count"`
	Theme         string `mapstructure:"theme" json:"theme"`
	SoundEffects  bool   `mapstructure:"sound_effects" json:"sound_effects"`
	Language      string `mapstructure:"language" json:"language"`
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Settings {
	return Settings{
		QuestionCount: DefaultQuestionCount,
		Theme:         ThemeDark,
		SoundEffects:  true,
		Language:      DefaultLanguage,
	}
}

// Normalize clamps the question count into range and resets unknown
// themes and languages to their defaults. A non-positive count is reset
// rather than clamped.
func (s Settings) Normalize() Settings {
	d := Defaults()
	switch {
	case s.QuestionCount <= 0:
		s.QuestionCount = d.QuestionCount
	default:
		s.QuestionCount = min(max(s.QuestionCount, MinQuestionCount), MaxQuestionCount)
	}
	s.Theme = strings.ToLower(strings.TrimSpace(s.Theme))
	if !slices.Contains(Themes, s.Theme) {
		s.Theme = d.Theme
	}
	s.Language = strings.ToLower(strings.TrimSpace(s.Language))
	if !slices.Contains(Languages, s.Language) {
		s.Language = d.Language
	}
	return s
}

// Get returns the value of key formatted for display.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case KeyQuestionCount:
		return strconv.Itoa(s.QuestionCount), nil
	case KeyTheme:
		return s.Theme, nil
	case KeySoundEffects:
		return strconv.FormatBool(s.SoundEffects), nil
	case KeyLanguage:
		return s.Language, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
}

// Store reads and writes one settings file.
type Store struct {
	path string
	v    *viper.Viper
}

// Open prepares the settings file in dir. A missing file is not an error.
// A file that cannot be parsed is logged and ignored.
func Open(dir string) *Store {
	path := filepath.Join(dir, FileName)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	d := Defaults()
	v.SetDefault(KeyQuestionCount, d.QuestionCount)
	v.SetDefault(KeyTheme, d.Theme)
	v.SetDefault(KeySoundEffects, d.SoundEffects)
	v.SetDefault(KeyLanguage, d.Language)

	v.SetEnvPrefix("SOULSENSE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("ignoring unreadable settings file", "path", path, "error", err)
	}
	return &Store{path: path, v: v}
}

// Path is the settings file location.
func (s *Store) Path() string { return s.path }

// Load returns the current settings, environment overrides applied.
func (s *Store) Load() Settings {
	out := Settings{
		QuestionCount: s.v.GetInt(KeyQuestionCount),
		Theme:         s.v.GetString(KeyTheme),
		SoundEffects:  s.v.GetBool(KeySoundEffects),
		Language:      s.v.GetString(KeyLanguage),
	}
	return out.Normalize()
}

// Save normalizes st and writes it to the file.
func (s *Store) Save(st Settings) (Settings, error) {
	st = st.Normalize()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return st, fmt.Errorf("create settings dir: %w", err)
	}
	w := viper.New()
	w.SetConfigType("json")
	w.Set(KeyQuestionCount, st.QuestionCount)
	w.Set(KeyTheme, st.Theme)
	w.Set(KeySoundEffects, st.SoundEffects)
	w.Set(KeyLanguage, st.Language)
	if err := w.WriteConfigAs(s.path); err != nil {
		return st, fmt.Errorf("write settings: %w", err)
	}

	if err := s.v.ReadInConfig(); err != nil {
		return st, fmt.Errorf("reload settings: %w", err)
	}
	return st, nil
}

// Set parses value for key, then saves the result.
func (s *Store) Set(key, value string) (Settings, error) {
	st := s.Load()
	switch key {
	case KeyQuestionCount:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return st, fmt.Errorf("parse %s: %w", key, err)
		}
		st.QuestionCount = n
	case KeyTheme:
		st.Theme = value
	case KeySoundEffects:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return st, fmt.Errorf("parse %s: %w", key, err)
		}
		st.SoundEffects = b
	case KeyLanguage:
		st.Language = value
	default:
		return st, fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return s.Save(st)
}
