// Package layout draws the chrome around the active screen: a header with
// the app name, screen title and user, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/ui/theme"
)

const (
	MinWidth  = 72
	MinHeight = 22

	// Header and footer are one line of text over or under a rule.
	HeaderHeight = 2
	FooterHeight = 2

	compactWidth  = 96
	compactHeight = 30
)

const appName = "Soul Sense"

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool   { return width < compactWidth }
func IsCompactHeight(height int) bool { return height < compactHeight }

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Center places s horizontally centered in width.
func Center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal too small.\n\nSoul Sense needs at least %d×%d,\nthis window is %d×%d.",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(text))
}

func rule(width int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
}

// RenderHeader draws the app name on the left, title in the middle and the
// current user, if any, on the right.
func RenderHeader(title, user string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" ♥ " + appName)
	right := ""
	if user != "" {
		right = lipgloss.NewStyle().Foreground(theme.Accent).Render("● "+user) + " "
	}
	middle := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)).
		Align(lipgloss.Center).
		Render(title)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, middle, right) + "\n" + rule(width)
}

// RenderFooter draws the key hints under a rule.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	sep := desc.Render("  ·  ")
	return rule(width) + "\n" + lipgloss.NewStyle().Width(width).Render(" "+strings.Join(parts, sep))
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// RenderMessage shows a single centered line for loading, empty and error
// states.
func RenderMessage(width int, style lipgloss.Style, msg string) string {
	return "\n\n" + Center(width, style.Render(msg))
}
