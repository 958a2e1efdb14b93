package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/ui/theme"
)

const bannerArt = `
 ███████╗ ██████╗ ██╗   ██╗██╗         ███████╗███████╗███╗   ██╗███████╗███████╗
 ██╔════╝██╔═══██╗██║   ██║██║         ██╔════╝██╔════╝████╗  ██║██╔════╝██╔════╝
 ███████╗██║   ██║██║   ██║██║         ███████╗█████╗  ██╔██╗ ██║███████╗█████╗
 ╚════██║██║   ██║██║   ██║██║         ╚════██║██╔══╝  ██║╚██╗██║╚════██║██╔══╝
 ███████║╚██████╔╝╚██████╔╝███████╗    ███████║███████╗██║ ╚████║███████║███████╗
 ╚══════╝ ╚═════╝  ╚═════╝ ╚══════╝    ╚══════╝╚══════╝╚═╝  ╚═══╝╚══════╝╚══════╝`

const bannerCompact = "S O U L   S E N S E"

// bannerMinWidth is the narrowest terminal the block banner fits in.
const bannerMinWidth = 84

// RenderBanner returns the banner styled in the primary color, falling
// back to spaced letters on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
