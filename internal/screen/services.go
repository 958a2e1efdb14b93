package screen

import (
	"io"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soulsense/internal/analytics"
	"github.com/abhisek/soulsense/internal/i18n"
	"github.com/abhisek/soulsense/internal/journal"
	"github.com/abhisek/soulsense/internal/profile"
	"github.com/abhisek/soulsense/internal/questions"
	"github.com/abhisek/soulsense/internal/risk"
	"github.com/abhisek/soulsense/internal/sentiment"
	"github.com/abhisek/soulsense/internal/settings"
	"github.com/abhisek/soulsense/internal/store"
)

// Services are the collaborators screens share. A single *Services is
// handed to every screen and only touched from the UI goroutine, except
// for the read-only repositories used inside commands.
type Services struct {
	Bank      *questions.Bank
	Scores    store.ScoreRepo
	Journal   *journal.Service
	Analytics *analytics.Service
	Analyzer  sentiment.Analyzer
	Settings  *settings.Store

	// Risk returns the risk model, training it on first use.
	Risk func() (*risk.Model, error)

	Prefs settings.Settings
	T     *i18n.Translator

	// User is the last profile entered this run, nil before the first.
	User *profile.Profile

	// Bell receives BEL when sound effects are on.
	Bell io.Writer

	Now    func() time.Time
	Logger *slog.Logger
}

// Username is the current user's name, or "" before a profile exists.
func (s *Services) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Name
}

// Ring sounds the terminal bell when sound effects are enabled.
func (s *Services) Ring() tea.Cmd {
	if !s.Prefs.SoundEffects || s.Bell == nil {
		return nil
	}
	w := s.Bell
	return func() tea.Msg {
		_, _ = io.WriteString(w, "\a")
		return nil
	}
}

// Clock returns the current time through Now when set.
func (s *Services) Clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Log returns Logger, or the default logger when unset.
func (s *Services) Log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
