package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is a named set of colors the styles are built from.
type Palette struct {
	Name      string
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Highlight color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
}

// Dark is a calm night palette.
var Dark = Palette{
	Name:      "dark",
	Primary:   lipgloss.Color("#A78BFA"), // Lavender
	Secondary: lipgloss.Color("#2DD4BF"), // Teal
	Accent:    lipgloss.Color("#FB923C"), // Peach
	Highlight: lipgloss.Color("#FDE68A"), // Soft gold
	Success:   lipgloss.Color("#4ADE80"),
	Error:     lipgloss.Color("#FB7185"),
	Text:      lipgloss.Color("#F1F5F9"),
	TextDim:   lipgloss.Color("#94A3B8"),
	Bg:        lipgloss.Color("#0F172A"),
	BgCard:    lipgloss.Color("#1E293B"),
	Border:    lipgloss.Color("#334155"),
}

// Light is the daytime palette.
var Light = Palette{
	Name:      "light",
	Primary:   lipgloss.Color("#6D28D9"),
	Secondary: lipgloss.Color("#0F766E"),
	Accent:    lipgloss.Color("#C2410C"),
	Highlight: lipgloss.Color("#B45309"),
	Success:   lipgloss.Color("#15803D"),
	Error:     lipgloss.Color("#BE123C"),
	Text:      lipgloss.Color("#0F172A"),
	TextDim:   lipgloss.Color("#64748B"),
	Bg:        lipgloss.Color("#F8FAFC"),
	BgCard:    lipgloss.Color("#E2E8F0"),
	Border:    lipgloss.Color("#CBD5E1"),
}

// Active colors. Apply swaps them.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Highlight color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color

	current string
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Positive   lipgloss.Style
	Negative   lipgloss.Style
)

// Components
var (
	Card           lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

func init() {
	Apply(Dark)
}

// ByName returns the palette called name, Dark when unknown.
func ByName(name string) Palette {
	if name == Light.Name {
		return Light
	}
	return Dark
}

// Current is the name of the applied palette.
func Current() string { return current }

// Apply makes p the active palette and rebuilds every style. It must be
// called from the UI goroutine.
func Apply(p Palette) {
	Primary, Secondary, Accent, Highlight = p.Primary, p.Secondary, p.Accent, p.Highlight
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	Bg, BgCard, Border = p.Bg, p.BgCard, p.Border
	current = p.Name

	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body = lipgloss.NewStyle().Foreground(Text)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Positive = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Negative = lipgloss.NewStyle().Foreground(Error).Bold(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Bg).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
