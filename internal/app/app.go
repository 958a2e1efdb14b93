// Package app is the root Bubble Tea model: a screen router inside a
// header and footer frame.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/screens/home"
	"github.com/abhisek/soulsense/internal/screens/welcome"
	"github.com/abhisek/soulsense/internal/ui/layout"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc    *screen.Services
	router *router.Router
	width  int
	height int
}

// Option configures the model.
type Option func(*AppModel)

// SkipWelcome starts on the home screen.
func SkipWelcome() Option {
	return func(m *AppModel) { m.router = router.New(home.New(m.svc)) }
}

// NewModel creates the model, starting on the welcome splash.
func NewModel(svc *screen.Services, opts ...Option) AppModel {
	theme.Apply(theme.ByName(svc.Prefs.Theme))
	m := AppModel{svc: svc}
	m.router = router.New(welcome.New(svc.T.T("app.tagline"), func() screen.Screen {
		return home.New(svc)
	}))
	for _, o := range opts {
		o(&m)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscapeHandler); ok && eh.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// Active is the screen on top of the stack.
func (m AppModel) Active() screen.Screen { return m.router.Active() }

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the framed active screen at the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.svc.Username(), m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the program and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, svc *screen.Services, opts ...Option) error {
	p := tea.NewProgram(NewModel(svc, opts...), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
