// Package reflection asks for a short free-text reflection after the last
// question, scores its sentiment and saves the session.
package reflection

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/exam"
	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/screens/results"
	"github.com/abhisek/soulsense/internal/ui/components"
	"github.com/abhisek/soulsense/internal/ui/layout"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

const (
	maxReflection = 2000
	finishTimeout = 30 * time.Second
)

// finishedMsg reports that the session was finalized.
type finishedMsg struct {
	Saved bool
	Err   error
}

// ReflectionScreen collects the reflection. While busy, the session is
// owned by the running command and keys other than ctrl+c are ignored.
type ReflectionScreen struct {
	svc     *screen.Services
	session *exam.Session
	input   components.TextArea

	busy        bool
	confirmSkip bool
	errMsg      string
}

var (
	_ screen.Screen          = (*ReflectionScreen)(nil)
	_ screen.KeyHintProvider = (*ReflectionScreen)(nil)
	_ screen.EscapeHandler   = (*ReflectionScreen)(nil)
)

// New creates the screen for a session awaiting its reflection.
func New(svc *screen.Services, session *exam.Session) *ReflectionScreen {
	input := components.NewTextArea(svc.T.T("reflection.prompt"), "", 56, 5, maxReflection)
	return &ReflectionScreen{svc: svc, session: session, input: input}
}

func (s *ReflectionScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *ReflectionScreen) Title() string { return s.svc.T.T("reflection.title") }

// HandlesEscape keeps esc from leaving a session that has not been saved.
func (s *ReflectionScreen) HandlesEscape() bool { return true }

func (s *ReflectionScreen) KeyHints() []layout.KeyHint {
	if s.busy {
		return nil
	}
	if s.confirmSkip {
		return []layout.KeyHint{
			{Key: "y", Description: "Skip"},
			{Key: "n", Description: "Write one"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Alt+Enter", Description: "New line"},
		{Key: "Ctrl+S", Description: "Skip"},
	}
}

// Busy reports whether analysis and saving are in flight.
func (s *ReflectionScreen) Busy() bool { return s.busy }

func (s *ReflectionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case finishedMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		next := results.New(s.svc, s.session.Result(), s.session.SaveErr())
		return s, tea.Batch(router.Replace(next), s.svc.Ring())

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		if s.confirmSkip {
			return s.handleConfirm(msg.String())
		}
		switch msg.String() {
		case "enter":
			if strings.TrimSpace(s.input.Value()) == "" {
				s.confirmSkip = true
				s.input.Blur()
				return s, nil
			}
			return s.submit(s.input.Value())
		case "ctrl+s":
			return s.submit("")
		case "esc":
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// handleConfirm answers the skip question shown for an empty reflection.
func (s *ReflectionScreen) handleConfirm(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		s.confirmSkip = false
		return s.submit("")
	case "n", "N", "esc":
		s.confirmSkip = false
		return s, s.input.Focus()
	}
	return s, nil
}

// submit hands the session to a command that analyzes text, when given,
// and saves the score.
func (s *ReflectionScreen) submit(text string) (screen.Screen, tea.Cmd) {
	s.busy = true
	s.errMsg = ""
	s.input.Blur()

	sess, scores := s.session, s.svc.Scores
	var analyzer exam.SentimentAnalyzer = s.svc.Analyzer
	text = strings.TrimSpace(text)
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), finishTimeout)
		defer cancel()
		if err := sess.SubmitReflection(ctx, text, analyzer); err != nil {
			return finishedMsg{Err: err}
		}
		saved, err := sess.Finish(ctx, scores)
		return finishedMsg{Saved: saved, Err: err}
	}
}

func (s *ReflectionScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw).Render(s.svc.T.T("reflection.title")))
	b.WriteString("\n\n")
	if s.busy {
		b.WriteString(theme.Hint.Render(s.svc.T.T("reflection.analyzing")))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
	}

	if s.confirmSkip {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(1, 3).
			Render(s.svc.T.T("reflection.skip_confirm") + "\n\n" +
				components.Button("y  Skip", false) + "  " + components.Button("n  Write", true))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}

	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	if s.errMsg != "" {
		b.WriteString(theme.Negative.Render(s.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(theme.Hint.Render(s.svc.T.T("reflection.hint")))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
