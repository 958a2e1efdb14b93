package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/ui/theme"
)

// TextArea is a labelled multi-line input. Enter is left to the caller;
// alt+enter inserts a newline.
type TextArea struct {
	Model textarea.Model
	Label string
}

// NewTextArea creates a focused-ready text area of the given size.
func NewTextArea(label, placeholder string, width, height, charLimit int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetWidth(width)
	ta.SetHeight(height)
	if charLimit > 0 {
		ta.CharLimit = charLimit
	}
	return TextArea{Model: ta, Label: label}
}

func (t *TextArea) Focus() tea.Cmd { return t.Model.Focus() }

func (t *TextArea) Blur() { t.Model.Blur() }

func (t TextArea) Focused() bool { return t.Model.Focused() }

// Update forwards msg, except plain enter which the owner handles.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			return t, nil
		case "alt+enter":
			t.Model.InsertString("\n")
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextArea) Value() string { return t.Model.Value() }

func (t *TextArea) SetValue(s string) { t.Model.SetValue(s) }

// Blank reports whether only whitespace has been typed.
func (t TextArea) Blank() bool { return strings.TrimSpace(t.Model.Value()) == "" }

func (t TextArea) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Focused() {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return labelStyle.Render(t.Label) + "\n" + t.Model.View()
}
