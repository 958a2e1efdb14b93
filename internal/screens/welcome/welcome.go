// Package welcome is the splash shown at startup: a beating heart, then the
// banner and tagline, then the home screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

// The splash advances one frame per beat.
const (
	beat = 120 * time.Millisecond

	bannerFrame = 8  // banner and tagline appear
	finalFrame  = 25 // home replaces the splash
)

var heartFrames = []string{
	`  ▄▄▄   ▄▄▄
 █████▄█████
  ▀███████▀
    ▀███▀
      ▀`,
	`   ▄▄▄     ▄▄▄
 ▟█████▙ ▟█████▙
 ███████████████
  ▜███████████▛
    ▜███████▛
      ▜███▛
        ▀`,
}

type beatMsg time.Time

// WelcomeScreen plays the splash, then replaces itself with the screen
// built by next. Any key skips ahead.
type WelcomeScreen struct {
	next    func() screen.Screen
	tagline string
	frame   int
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(tagline string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next, tagline: tagline}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextBeat() }

func nextBeat() tea.Cmd {
	return tea.Tick(beat, func(t time.Time) tea.Msg { return beatMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case beatMsg:
		if w.done {
			return w, nil
		}
		w.frame++
		if w.frame >= finalFrame {
			return w, w.leave()
		}
		return w, nextBeat()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

func (w *WelcomeScreen) leave() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	return router.Replace(w.next())
}

func (w *WelcomeScreen) View(width, height int) string {
	heart := lipgloss.NewStyle().Foreground(theme.Accent).Render(heartFrames[w.frame%len(heartFrames)])
	// Keep the heart's box steady while it beats.
	heart = lipgloss.NewStyle().Width(17).Height(7).AlignHorizontal(lipgloss.Center).AlignVertical(lipgloss.Bottom).Render(heart)

	parts := []string{heart}
	if w.frame >= bannerFrame {
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}
	block := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.TrimRight(block, "\n"))
}
