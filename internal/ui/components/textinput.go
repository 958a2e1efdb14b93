package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/ui/theme"
)

// InputKind restricts which characters a TextInput accepts.
type InputKind int

const (
	AnyText InputKind = iota
	Integer
	Decimal
)

// TextInput wraps bubbles/textinput with a label and an error line.
type TextInput struct {
	Model textinput.Model
	Label string
	Kind  InputKind
	Err   string
}

// NewTextInput creates a new labelled text input. It starts blurred.
func NewTextInput(label, placeholder string, kind InputKind, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label, Kind: kind}
}

// Focus gives the input the cursor.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes the cursor.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has the cursor.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages, dropping characters the kind does not allow.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" && !t.accepts(kmsg.Text) {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) accepts(text string) bool {
	for _, r := range text {
		switch {
		case t.Kind == AnyText:
		case r >= '0' && r <= '9':
		case t.Kind == Decimal && r == '.' && !strings.Contains(t.Model.Value(), "."):
		default:
			return false
		}
	}
	return true
}

// View renders the label, the input and any error.
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Focused() {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	view := labelStyle.Render(t.Label) + "\n" + t.Model.View()
	if t.Err != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(t.Err)
	}
	return view
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// IntValue parses the value, nil when empty.
func (t TextInput) IntValue() (*int, error) {
	if t.Value() == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(t.Value())
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// FloatValue parses the value, nil when empty.
func (t TextInput) FloatValue() (*float64, error) {
	if t.Value() == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(t.Value(), 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
