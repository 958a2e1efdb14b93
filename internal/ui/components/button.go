package components

import (
	"github.com/abhisek/soulsense/internal/ui/theme"
)

// Button renders a one-line button, filled when focused.
func Button(label string, focused bool) string {
	if focused {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}
