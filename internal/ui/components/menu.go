package components

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

var (
	menuUp     = key.NewBinding(key.WithKeys("up", "k"))
	menuDown   = key.NewBinding(key.WithKeys("down", "j"))
	menuSelect = key.NewBinding(key.WithKeys("enter"))
)

// Menu tracks the highlighted entry of a vertical menu. Selection wraps at
// both ends; digits 1-9 jump to an entry and activate it. Rendering is left
// to the owning screen.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}
	n := len(m.Items)
	switch {
	case key.Matches(kmsg, menuUp):
		m.Selected = (m.Selected + n - 1) % n
	case key.Matches(kmsg, menuDown):
		m.Selected = (m.Selected + 1) % n
	case key.Matches(kmsg, menuSelect):
		return m, m.activate()
	default:
		if d, err := strconv.Atoi(kmsg.String()); err == nil && d >= 1 && d <= n {
			m.Selected = d - 1
			return m, m.activate()
		}
	}
	return m, nil
}

func (m Menu) activate() tea.Cmd {
	if action := m.Items[m.Selected].Action; action != nil {
		return action()
	}
	return nil
}
