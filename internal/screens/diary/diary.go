// Package diary is the journal entry screen.
package diary

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/journal"
	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/store"
	"github.com/abhisek/soulsense/internal/ui/components"
	"github.com/abhisek/soulsense/internal/ui/layout"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

const (
	recentEntries = 3
	saveTimeout   = 30 * time.Second
)

// Field order for focus cycling.
const (
	fieldContent = iota
	fieldSleep
	fieldQuality
	fieldEnergy
	fieldWork
	numFields
)

type entriesLoadedMsg struct {
	Entries []store.JournalEntry
	Err     error
}

type savedMsg struct {
	Entry store.JournalEntry
	Err   error
}

// DiaryScreen writes one journal entry at a time and lists the latest.
type DiaryScreen struct {
	svc      *screen.Services
	username string

	content components.TextArea
	metrics [numFields]components.TextInput // index 0 unused
	focus   int

	recent []store.JournalEntry
	saving bool
	notice string
	errMsg string
}

var (
	_ screen.Screen          = (*DiaryScreen)(nil)
	_ screen.KeyHintProvider = (*DiaryScreen)(nil)
)

func New(svc *screen.Services, username string) *DiaryScreen {
	t := svc.T
	s := &DiaryScreen{
		svc:      svc,
		username: username,
		content:  components.NewTextArea(t.T("journal.content"), "Write freely...", 56, 4, 4000),
	}
	s.metrics[fieldSleep] = components.NewTextInput(t.T("journal.sleep"), "e.g. 7.5", components.Decimal, 5)
	s.metrics[fieldQuality] = components.NewTextInput(t.T("journal.quality"), "", components.Integer, 2)
	s.metrics[fieldEnergy] = components.NewTextInput(t.T("journal.energy"), "", components.Integer, 2)
	s.metrics[fieldWork] = components.NewTextInput(t.T("journal.work"), "e.g. 8", components.Decimal, 5)
	return s
}

func (s *DiaryScreen) Init() tea.Cmd {
	return tea.Batch(s.content.Focus(), s.loadRecent())
}

func (s *DiaryScreen) loadRecent() tea.Cmd {
	js, user := s.svc.Journal, s.username
	return func() tea.Msg {
		es, err := js.Entries(context.Background(), user, recentEntries)
		return entriesLoadedMsg{Entries: es, Err: err}
	}
}

func (s *DiaryScreen) Title() string { return s.svc.T.T("journal.title") }

func (s *DiaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DiaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		if msg.Err != nil {
			s.svc.Log().Warn("load journal entries", "error", msg.Err)
			return s, nil
		}
		s.recent = msg.Entries
		return s, nil

	case savedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.notice = s.svc.T.Td("journal.saved", map[string]any{"Score": fmt.Sprintf("%+.0f", msg.Entry.Sentiment)})
		s.reset()
		return s, tea.Batch(s.loadRecent(), s.setFocus(fieldContent), s.svc.Ring())

	case tea.KeyPressMsg:
		if s.saving {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % numFields)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + numFields - 1) % numFields)
		case "ctrl+s":
			return s, s.save()
		case "enter":
			if s.focus != fieldContent {
				return s, s.setFocus((s.focus + 1) % numFields)
			}
		}
	}

	var cmd tea.Cmd
	if s.focus == fieldContent {
		s.content, cmd = s.content.Update(msg)
	} else {
		s.metrics[s.focus], cmd = s.metrics[s.focus].Update(msg)
	}
	return s, cmd
}

func (s *DiaryScreen) setFocus(f int) tea.Cmd {
	s.content.Blur()
	for i := fieldSleep; i < numFields; i++ {
		s.metrics[i].Blur()
	}
	s.focus = f
	if f == fieldContent {
		return s.content.Focus()
	}
	return s.metrics[f].Focus()
}

func (s *DiaryScreen) reset() {
	s.content.SetValue("")
	for i := fieldSleep; i < numFields; i++ {
		s.metrics[i].SetValue("")
		s.metrics[i].Err = ""
	}
}

// draft collects the form into a journal.Draft, marking unparsable
// metric fields.
func (s *DiaryScreen) draft() (journal.Draft, bool) {
	d := journal.Draft{Username: s.username, Content: s.content.Value()}
	ok := true
	var err error
	if d.SleepHours, err = s.metrics[fieldSleep].FloatValue(); err != nil {
		s.metrics[fieldSleep].Err, ok = "not a number", false
	}
	if d.SleepQuality, err = s.metrics[fieldQuality].IntValue(); err != nil {
		s.metrics[fieldQuality].Err, ok = "not a whole number", false
	}
	if d.EnergyLevel, err = s.metrics[fieldEnergy].IntValue(); err != nil {
		s.metrics[fieldEnergy].Err, ok = "not a whole number", false
	}
	if d.WorkHours, err = s.metrics[fieldWork].FloatValue(); err != nil {
		s.metrics[fieldWork].Err, ok = "not a number", false
	}
	return d, ok
}

func (s *DiaryScreen) save() tea.Cmd {
	s.notice, s.errMsg = "", ""
	for i := fieldSleep; i < numFields; i++ {
		s.metrics[i].Err = ""
	}
	d, ok := s.draft()
	if !ok {
		return nil
	}
	if err := d.Validate(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	d.Date = s.svc.Clock()

	s.saving = true
	js := s.svc.Journal
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		e, err := js.Write(ctx, d)
		return savedMsg{Entry: e, Err: err}
	}
}

func (s *DiaryScreen) View(width, height int) string {
	t := s.svc.T
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(t.T("journal.title")))
	b.WriteString("\n\n")
	b.WriteString(s.content.View())
	b.WriteString("\n\n")

	left := s.metrics[fieldSleep].View() + "\n\n" + s.metrics[fieldQuality].View()
	right := s.metrics[fieldEnergy].View() + "\n\n" + s.metrics[fieldWork].View()
	col := lipgloss.NewStyle().Width(cw / 2)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, col.Render(left), col.Render(right)))
	b.WriteString("\n\n")

	switch {
	case s.saving:
		b.WriteString(theme.Hint.Render("Saving..."))
	case s.errMsg != "":
		b.WriteString(theme.Negative.Render(s.errMsg))
	case s.notice != "":
		b.WriteString(theme.Positive.Render(s.notice))
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(t.T("journal.hint")))

	if len(s.recent) > 0 {
		b.WriteString("\n\n")
		b.WriteString(components.Card("Recent", renderRecent(s.recent), cw))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func renderRecent(entries []store.JournalEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		text := strings.ReplaceAll(e.Content, "\n", " ")
		if r := []rune(text); len(r) > 40 {
			text = string(r[:39]) + "…"
		}
		lines[i] = fmt.Sprintf("%s  %+4.0f  %s", e.EntryDate.Local().Format("Jan 02"), e.Sentiment, text)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(lines, "\n"))
}
