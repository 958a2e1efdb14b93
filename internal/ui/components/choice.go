package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soulsense/internal/ui/theme"
)

// Choice is a vertical single-choice picker for a fixed option list.
// Digit keys choose directly; arrows move the cursor and enter confirms.
type Choice struct {
	Options  []string
	Selected int
	chosen   int // 1-based, 0 while undecided
}

// NewChoice creates a picker with the cursor on the first option.
func NewChoice(options []string) Choice {
	return Choice{Options: options}
}

// Chosen reports the 1-based option picked by the last Update, or 0.
func (c Choice) Chosen() int { return c.chosen }

// Reset clears the pick and moves the cursor to selected (0-based).
func (c Choice) Reset(selected int) Choice {
	c.chosen = 0
	c.Selected = min(max(selected, 0), max(len(c.Options)-1, 0))
	return c
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	c.chosen = 0
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch k := kmsg.String(); {
	case key.Matches(kmsg, menuUp):
		c.Selected = max(c.Selected-1, 0)
	case key.Matches(kmsg, menuDown):
		c.Selected = min(c.Selected+1, len(c.Options)-1)
	case key.Matches(kmsg, menuSelect):
		c.chosen = c.Selected + 1
	default:
		if len(k) == 1 && k[0] >= '1' && int(k[0]-'0') <= len(c.Options) {
			c.Selected = int(k[0] - '1')
			c.chosen = c.Selected + 1
		}
	}
	return c, nil
}

// View renders the options with their digit shortcuts.
func (c Choice) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		style := theme.Unselected
		if i == c.Selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)))
		b.WriteString("\n")
	}
	return b.String()
}
