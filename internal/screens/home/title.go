package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/ui/components"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

const titleFull = `╔═╗┌─┐┬ ┬┬    ╔═╗┌─┐┌┐┌┌─┐┌─┐
╚═╗│ ││ ││    ╚═╗├┤ │││└─┐├┤
╚═╝└─┘└─┘┴─┘  ╚═╝└─┘┘└┘└─┘└─┘`

const titleCompact = "S · O · U · L   S · E · N · S · E"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

func renderTitle(tagline string, cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	block := style.Render(art) + "\n" + theme.Hint.Render(tagline)
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(block)
}

// renderStats renders the signed-in user's totals in a bordered strip.
func renderStats(st stats, cw int) string {
	accent := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	switch {
	case st.user == "":
		line = dim.Render("no profile yet")
	case st.assessments == 0:
		line = accent.Render("● "+st.user) + dim.Render("  no assessments yet")
	default:
		line = fmt.Sprintf("%s  %s  %s",
			accent.Render("● "+st.user),
			accent.Render(fmt.Sprintf("◆ %d taken", st.assessments)),
			accent.Render(fmt.Sprintf("★ last %d/%d", st.latest, st.latestMax)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

func renderMenu(m components.Menu, cw int, compact bool) string {
	var buttons []string
	for i, item := range m.Items {
		if compact {
			style := theme.Unselected
			prefix := "   "
			if i == m.Selected {
				style = theme.Selected
				prefix = " ▸ "
			}
			buttons = append(buttons, style.Render(prefix+item.Label))
			continue
		}
		buttons = append(buttons, components.MenuButton(item.Label, i == m.Selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}
