package assessment

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/ui/components"
	"github.com/abhisek/soulsense/internal/ui/layout"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

func (s *AssessmentScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return layout.RenderMessage(width, theme.Negative, "Error: "+s.errMsg)
	case s.session == nil:
		return layout.RenderMessage(width, theme.Hint, "Loading questions...")
	case s.confirmQuit:
		return renderQuitConfirm(s.svc.T.T("exam.quit_confirm"), width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *AssessmentScreen) renderQuestion(width, height int) string {
	cw := components.ContentWidth(width)
	p := s.session.Progress()
	q, err := s.session.CurrentQuestion()
	if err != nil {
		return layout.RenderMessage(width, theme.Hint, err.Error())
	}

	var b strings.Builder
	counter := s.svc.T.Td("exam.progress", map[string]any{"Current": p.Position(), "Total": p.Total})
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(counter))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", p.Percent, true, cw).View())
	b.WriteString("\n\n")

	textStyle := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true)
	b.WriteString(textStyle.Render(q.Text))
	b.WriteString("\n")
	if q.Tooltip != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Italic(true).Render(q.Tooltip))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.choice.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(s.svc.T.T("exam.hint")))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func renderQuitConfirm(text string, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Foreground(theme.Text).
		Render(text + "\n\n" + components.Button("y  Quit", false) + "  " + components.Button("n  Stay", true))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
