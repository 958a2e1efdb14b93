package components

import (
	"fmt"

	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/ui/theme"
)

// ProgressBar is a static bar: a label, the bubbles progress bar and an
// optional percentage.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..100
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	var head, tail string
	if p.Label != "" {
		head = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	if p.ShowPercent {
		tail = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %3.0f%%", p.Percent))
	}

	bar := progress.New(
		progress.WithWidth(max(p.Width-lipgloss.Width(head)-lipgloss.Width(tail), 4)),
		progress.WithoutPercentage(),
	)
	bar.Full, bar.Empty = '█', '░'
	return head + bar.ViewAs(min(max(p.Percent, 0), 100)/100) + tail
}
