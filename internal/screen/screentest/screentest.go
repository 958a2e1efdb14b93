// Package screentest builds screen.Services over a temporary database for
// screen tests.
package screentest

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soulsense/internal/analytics"
	"github.com/abhisek/soulsense/internal/i18n"
	"github.com/abhisek/soulsense/internal/journal"
	"github.com/abhisek/soulsense/internal/questions"
	"github.com/abhisek/soulsense/internal/risk"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/sentiment"
	"github.com/abhisek/soulsense/internal/settings"
	"github.com/abhisek/soulsense/internal/store"
)

// Now is the fixed clock of every Services built here.
var Now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// Env is a Services plus the store behind it.
type Env struct {
	Svc   *screen.Services
	Store *store.Store
	Bell  *bytes.Buffer
}

// New opens a seeded store in t.TempDir and wires Services over it. The
// risk model is left nil; tests that need it set Svc.Risk.
func New(t *testing.T) *Env {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	bank := questions.NewBank(st.QuestionRepo(), st.MetaRepo())
	if _, err := bank.EnsureSeeded(context.Background()); err != nil {
		t.Fatalf("seed bank: %v", err)
	}

	lex := sentiment.NewLexicon()
	bell := &bytes.Buffer{}
	prefs := settings.Defaults()
	prefs.QuestionCount = 5

	svc := &screen.Services{
		Bank:      bank,
		Scores:    st.ScoreRepo(),
		Journal:   journal.NewService(st.JournalRepo(), lex),
		Analytics: analytics.NewService(st.ScoreRepo(), st.JournalRepo()),
		Analyzer:  lex,
		Settings:  settings.Open(dir),
		Prefs:     prefs,
		T:         i18n.Must("en"),
		Bell:      bell,
		Now:       func() time.Time { return Now },
	}
	return &Env{Svc: svc, Store: st, Bell: bell}
}

// WithRisk installs m as the risk model.
func (e *Env) WithRisk(m *risk.Model) *Env {
	e.Svc.Risk = func() (*risk.Model, error) { return m, nil }
	return e
}

// Key builds a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Ctrl builds ctrl+r.
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// Drain runs cmd and any batch it returns, collecting the non-nil
// messages. Commands that block, such as cursor blinks, must not be
// passed in.
func Drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch m := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, Drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
