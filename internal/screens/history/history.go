// Package history lists past assessments with their answers on demand.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/exam"
	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/store"
	"github.com/abhisek/soulsense/internal/ui/layout"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Scores []store.ScoreRecord
	Err    error
}

type responsesLoadedMsg struct {
	ScoreID   int64
	Responses []store.ResponseRecord
	Err       error
}

// HistoryScreen displays past scores, newest first.
type HistoryScreen struct {
	svc      *screen.Services
	username string

	scores    []store.ScoreRecord
	responses map[int64][]store.ResponseRecord
	selected  int
	expanded  map[int64]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. It shows the current user's scores, or
// everyone's before a profile has been entered.
func New(svc *screen.Services) *HistoryScreen {
	return &HistoryScreen{
		svc:       svc,
		username:  svc.Username(),
		responses: make(map[int64][]store.ResponseRecord),
		expanded:  make(map[int64]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, user := s.svc.Scores, s.username
	return func() tea.Msg {
		scores, err := repo.QueryScores(context.Background(), store.QueryOpts{Username: user, Limit: historyLimit})
		return historyLoadedMsg{Scores: scores, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return s.svc.T.T("history.title")
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.scores = msg.Scores
		}
		s.loaded = true
		return s, nil

	case responsesLoadedMsg:
		if msg.Err != nil {
			s.svc.Log().Warn("load responses", "score", msg.ScoreID, "error", msg.Err)
			return s, nil
		}
		s.responses[msg.ScoreID] = msg.Responses
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.scores)-1 {
				s.selected++
			}
		case "enter":
			return s, s.toggle()
		}
	}
	return s, nil
}

// toggle expands or collapses the selected score, fetching its answers
// the first time.
func (s *HistoryScreen) toggle() tea.Cmd {
	if len(s.scores) == 0 {
		return nil
	}
	id := s.scores[s.selected].ID
	s.expanded[id] = !s.expanded[id]
	if _, ok := s.responses[id]; ok || !s.expanded[id] {
		return nil
	}
	repo := s.svc.Scores
	return func() tea.Msg {
		rs, err := repo.Responses(context.Background(), id)
		return responsesLoadedMsg{ScoreID: id, Responses: rs, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return layout.RenderMessage(width, theme.Negative, "Error: "+s.errMsg)
	case !s.loaded:
		return layout.RenderMessage(width, theme.Hint, "Loading history...")
	case len(s.scores) == 0:
		return layout.RenderMessage(width, theme.Hint, s.svc.T.T("history.empty"))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Subtitle.Render(s.svc.T.Tp("history.count", len(s.scores)))))
	b.WriteString("\n\n")

	for i, sc := range s.scores {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(layout.Center(width, style.Render(prefix+scoreLine(sc, s.username == ""))))
		b.WriteString("\n")

		if s.expanded[sc.ID] {
			b.WriteString(s.renderDetails(sc, width))
		}
	}
	return b.String()
}

func scoreLine(sc store.ScoreRecord, withUser bool) string {
	pct := 0.0
	if sc.MaxScore > 0 {
		pct = 100 * float64(sc.TotalScore) / float64(sc.MaxScore)
	}
	line := fmt.Sprintf("%s  %3d/%-3d  %3.0f%%  %s",
		sc.CreatedAt.Local().Format("Jan 02, 2006 15:04"), sc.TotalScore, sc.MaxScore, pct,
		formatDuration(time.Duration(sc.DurationMs)*time.Millisecond))
	if withUser {
		line = fmt.Sprintf("%-12s %s", sc.Username, line)
	}
	return line
}

func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (s *HistoryScreen) renderDetails(sc store.ScoreRecord, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var lines []string
	if sc.Sentiment != nil {
		lines = append(lines, fmt.Sprintf("Reflection sentiment %+.0f", *sc.Sentiment))
	}
	if sc.Reflection != "" {
		lines = append(lines, fmt.Sprintf("%q", truncate(sc.Reflection, 60)))
	}
	rs, ok := s.responses[sc.ID]
	switch {
	case !ok:
		lines = append(lines, "Loading answers...")
	case len(rs) == 0:
		lines = append(lines, "No answers recorded")
	default:
		for _, r := range rs {
			lines = append(lines, fmt.Sprintf("Q%-3d %s", r.QuestionIndex+1, optionLabel(s.svc.T.T, r.Value)))
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(layout.Center(width, dim.Render("    "+l)))
		b.WriteString("\n")
	}
	return b.String()
}

func optionLabel(tr func(string) string, v int) string {
	for _, o := range exam.Options {
		if o.Value == v {
			return tr(o.MessageID)
		}
	}
	return fmt.Sprint(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
