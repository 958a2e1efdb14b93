// Package results shows the outcome of a finished assessment.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/exam"
	"github.com/abhisek/soulsense/internal/risk"
	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/screens/dashboard"
	"github.com/abhisek/soulsense/internal/screens/history"
	"github.com/abhisek/soulsense/internal/ui/components"
	"github.com/abhisek/soulsense/internal/ui/layout"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

// predictionMsg carries the risk model's verdict for the result.
type predictionMsg struct {
	Prediction risk.Prediction
	Err        error
}

// ResultsScreen renders an exam.Result.
type ResultsScreen struct {
	svc     *screen.Services
	result  exam.Result
	saveErr error

	prediction *risk.Prediction
	riskErr    error
}

var (
	_ screen.Screen          = (*ResultsScreen)(nil)
	_ screen.KeyHintProvider = (*ResultsScreen)(nil)
)

// New creates the screen. saveErr is the persistence failure, if any.
func New(svc *screen.Services, result exam.Result, saveErr error) *ResultsScreen {
	return &ResultsScreen{svc: svc, result: result, saveErr: saveErr}
}

func (s *ResultsScreen) Init() tea.Cmd {
	if s.svc.Risk == nil || len(s.result.Answers) == 0 {
		return nil
	}
	load, features := s.svc.Risk, risk.FromResult(s.result)
	return func() tea.Msg {
		m, err := load()
		if err != nil {
			return predictionMsg{Err: err}
		}
		return predictionMsg{Prediction: m.Predict(features)}
	}
}

func (s *ResultsScreen) Title() string { return s.svc.T.T("results.title") }

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "D", Description: "Dashboard"},
		{Key: "H", Description: "History"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case predictionMsg:
		if msg.Err != nil {
			s.riskErr = msg.Err
			s.svc.Log().Warn("risk prediction", "error", msg.Err)
			return s, nil
		}
		p := msg.Prediction
		s.prediction = &p
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "esc", "q":
			return s, router.PopToRoot
		case "d", "D":
			return s, tea.Sequence(router.PopToRoot, router.Push(dashboard.New(s.svc, s.result.Username)))
		case "h", "H":
			return s, tea.Sequence(router.PopToRoot, router.Push(history.New(s.svc)))
		}
	}
	return s, nil
}

// Prediction is the risk verdict once it has arrived.
func (s *ResultsScreen) Prediction() *risk.Prediction { return s.prediction }

func (s *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	t := s.svc.T
	r := s.result

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(t.T("results.title")))
	b.WriteString("\n\n")

	score := t.Td("results.score", map[string]any{
		"Score":   r.Score,
		"Max":     r.MaxScore,
		"Percent": fmt.Sprintf("%.0f", r.Percentage),
	})
	summary := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(score) + "\n" +
		lipgloss.NewStyle().Width(cw-4).Foreground(theme.Text).Render(t.T(r.Band.MessageID()))
	if r.Sentiment != nil {
		summary += "\n\n" + theme.Hint.Render(t.Td("results.sentiment", map[string]any{
			"Score": fmt.Sprintf("%+.0f", *r.Sentiment),
		}))
	}
	b.WriteString(components.Card("", summary, cw))
	b.WriteString("\n")

	if len(r.Categories) > 0 {
		b.WriteString(components.Card(t.T("results.categories"), renderCategories(t.T, r.Categories, cw-4), cw))
		b.WriteString("\n")
	}

	if risky := s.renderRisk(); risky != "" {
		b.WriteString(components.Card(t.T("results.risk"), risky, cw))
		b.WriteString("\n")
	}

	if s.saveErr != nil || !r.Saved {
		b.WriteString(theme.Negative.Render(t.T("results.not_saved")))
	} else {
		b.WriteString(theme.Positive.Render(t.T("results.saved")))
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(t.T("results.hint")))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func renderCategories(tr func(string) string, cats []exam.CategoryScore, width int) string {
	lines := make([]string, len(cats))
	for i, c := range cats {
		pct := 0.0
		if c.Max > 0 {
			pct = 100 * float64(c.Score) / float64(c.Max)
		}
		label := fmt.Sprintf("%s %d/%d", tr(c.MessageID), c.Score, c.Max)
		lines[i] = components.NewProgressBar(label, pct, false, width).View()
	}
	return strings.Join(lines, "\n")
}

func (s *ResultsScreen) renderRisk() string {
	switch {
	case s.riskErr != nil:
		return theme.Hint.Render("Risk model unavailable.")
	case s.prediction == nil:
		if s.svc.Risk == nil {
			return ""
		}
		return theme.Hint.Render("Computing...")
	}
	p := *s.prediction
	style := theme.Positive
	switch p.Level {
	case risk.High:
		style = theme.Negative
	case risk.Moderate:
		style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}

	var b strings.Builder
	b.WriteString(style.Render(fmt.Sprintf("%s (%.0f%%)", p.Level, 100*p.Confidence)))
	b.WriteString("\n")
	b.WriteString(p.Level.Description())
	b.WriteString("\n")
	for i, fw := range p.TopFeatures[:min(3, len(p.TopFeatures))] {
		fmt.Fprintf(&b, "\n%d. %s", i+1, fw.Name)
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(risk.Disclaimer))
	return b.String()
}
