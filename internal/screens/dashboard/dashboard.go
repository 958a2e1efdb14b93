// Package dashboard shows score trends, journal sentiment and insights for
// one user.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/analytics"
	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/ui/components"
	"github.com/abhisek/soulsense/internal/ui/layout"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

type dashboardLoadedMsg struct {
	Dashboard analytics.Dashboard
	Err       error
}

// DashboardScreen renders an analytics.Dashboard.
type DashboardScreen struct {
	svc      *screen.Services
	username string

	data   *analytics.Dashboard
	errMsg string
}

var (
	_ screen.Screen          = (*DashboardScreen)(nil)
	_ screen.KeyHintProvider = (*DashboardScreen)(nil)
	_ screen.Resumer         = (*DashboardScreen)(nil)
)

func New(svc *screen.Services, username string) *DashboardScreen {
	return &DashboardScreen{svc: svc, username: username}
}

func (s *DashboardScreen) Init() tea.Cmd { return s.load() }

func (s *DashboardScreen) Resume() tea.Cmd { return s.load() }

func (s *DashboardScreen) load() tea.Cmd {
	an, user, now := s.svc.Analytics, s.username, s.svc.Clock()
	return func() tea.Msg {
		d, err := an.Dashboard(context.Background(), user, now)
		return dashboardLoadedMsg{Dashboard: d, Err: err}
	}
}

func (s *DashboardScreen) Title() string { return s.svc.T.T("dashboard.title") }

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		d := msg.Dashboard
		s.data = &d
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Pop
		case "r", "R":
			return s, s.load()
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	t := s.svc.T
	switch {
	case s.errMsg != "":
		return layout.RenderMessage(width, theme.Negative, "Error: "+s.errMsg)
	case s.data == nil:
		return layout.RenderMessage(width, theme.Hint, "Loading...")
	case s.data.EQ.Count == 0 && s.data.Journal.Count == 0:
		return layout.RenderMessage(width, theme.Hint, t.T("dashboard.empty"))
	}

	d := s.data
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(fmt.Sprintf("%s · %s", t.T("dashboard.title"), d.Username)))
	b.WriteString("\n")

	if d.EQ.Count > 0 {
		b.WriteString(components.Card(t.T("dashboard.eq"), renderEQ(d.EQ, d.Chart), cw))
		b.WriteString("\n")
	}
	if d.Journal.Count > 0 {
		b.WriteString(components.Card(t.T("dashboard.journal"), renderJournal(d.Journal), cw))
		b.WriteString("\n")
	}
	if len(d.Insights) > 0 {
		b.WriteString(components.Card(t.T("dashboard.insights"), bullets(d.Insights), cw))
		b.WriteString("\n")
	}
	if len(d.Health) > 0 || d.Nudge != "" {
		health := bullets(d.Health)
		if d.Nudge != "" {
			if health != "" {
				health += "\n\n"
			}
			health += lipgloss.NewStyle().Foreground(theme.Accent).Render(d.Nudge)
		}
		b.WriteString(components.Card(t.T("dashboard.health"), health, cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func renderEQ(eq analytics.EQStats, chart string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tests %d   Latest %d   Best %d   Average %.1f\n", eq.Count, eq.Latest, eq.Best, eq.Average)
	if eq.Count >= 2 {
		style := theme.Positive
		if eq.Improvement < 0 {
			style = theme.Negative
		}
		b.WriteString(style.Render(fmt.Sprintf("Change since first test: %+.1f%%", eq.Improvement)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.TrimRight(chart, "\n")))
	return b.String()
}

func renderJournal(js analytics.JournalStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Entries %d   Avg sentiment %+.1f   Most positive %+.1f", js.Count, js.AvgSentiment, js.MostPositive)
	if len(js.TopPatterns) > 0 {
		b.WriteString("\n")
		for _, p := range js.TopPatterns {
			fmt.Fprintf(&b, "\n%-20s %d (%.0f%%)", p.Name, p.Count, p.Percent)
		}
	}
	return b.String()
}

func bullets(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "• " + l
	}
	return strings.Join(out, "\n")
}
