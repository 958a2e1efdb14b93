// Package profileform asks for the user's name and optional age.
package profileform

import (
	"errors"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/profile"
	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/ui/components"
	"github.com/abhisek/soulsense/internal/ui/layout"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

// ProfileScreen collects a profile, then replaces itself with next.
type ProfileScreen struct {
	svc   *screen.Services
	next  func(profile.Profile) screen.Screen
	name  components.TextInput
	age   components.TextInput
	focus int // 0 name, 1 age
}

var (
	_ screen.Screen          = (*ProfileScreen)(nil)
	_ screen.KeyHintProvider = (*ProfileScreen)(nil)
)

// New creates the form, prefilled from the current profile when present.
func New(svc *screen.Services, next func(profile.Profile) screen.Screen) *ProfileScreen {
	t := svc.T
	s := &ProfileScreen{
		svc:  svc,
		next: next,
		name: components.NewTextInput(t.T("profile.name"), "Your name", components.AnyText, 40),
		age:  components.NewTextInput(t.T("profile.age"), "e.g. 28", components.Integer, 3),
	}
	if svc.User != nil {
		s.name.SetValue(svc.User.Name)
		if svc.User.Age != nil {
			s.age.SetValue(strconv.Itoa(*svc.User.Age))
		}
	}
	return s
}

func (s *ProfileScreen) Init() tea.Cmd {
	return s.name.Focus()
}

func (s *ProfileScreen) Title() string {
	return s.svc.T.T("profile.title")
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab", "up", "down":
			return s, s.toggleFocus()
		case "enter":
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	if s.focus == 0 {
		s.name, cmd = s.name.Update(msg)
	} else {
		s.age, cmd = s.age.Update(msg)
	}
	return s, cmd
}

func (s *ProfileScreen) toggleFocus() tea.Cmd {
	if s.focus == 0 {
		s.focus = 1
		s.name.Blur()
		return s.age.Focus()
	}
	s.focus = 0
	s.age.Blur()
	return s.name.Focus()
}

func (s *ProfileScreen) submit() tea.Cmd {
	s.name.Err, s.age.Err = "", ""
	p, err := profile.New(s.name.Value(), s.age.Value())
	switch {
	case errors.Is(err, profile.ErrAgeInvalid):
		s.age.Err = err.Error()
		if s.focus == 0 {
			return s.toggleFocus()
		}
		return nil
	case err != nil:
		s.name.Err = err.Error()
		if s.focus == 1 {
			return s.toggleFocus()
		}
		return nil
	}

	s.svc.User = &p
	s.svc.Log().Info("profile entered", "user", p.Name, "age_group", p.AgeGroup())
	return router.Replace(s.next(p))
}

func (s *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(s.svc.T.T("profile.title")))
	b.WriteString("\n\n")
	b.WriteString(s.name.View())
	b.WriteString("\n\n")
	b.WriteString(s.age.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(s.svc.T.T("profile.hint")))

	card := components.Card("", b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
