// Package preferences edits the persisted settings.
package preferences

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsense/internal/i18n"
	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/settings"
	"github.com/abhisek/soulsense/internal/ui/components"
	"github.com/abhisek/soulsense/internal/ui/layout"
	"github.com/abhisek/soulsense/internal/ui/theme"
)

type savedMsg struct {
	Settings settings.Settings
	Err      error
}

// row is one editable setting.
type row struct {
	key   string
	label string // message id
}

var rows = []row{
	{settings.KeyQuestionCount, "settings.question_count"},
	{settings.KeyTheme, "settings.theme"},
	{settings.KeySoundEffects, "settings.sound"},
	{settings.KeyLanguage, "settings.language"},
}

// PreferencesScreen edits a copy of the settings until saved.
type PreferencesScreen struct {
	svc      *screen.Services
	draft    settings.Settings
	selected int
	notice   string
	errMsg   string
}

var (
	_ screen.Screen          = (*PreferencesScreen)(nil)
	_ screen.KeyHintProvider = (*PreferencesScreen)(nil)
)

func New(svc *screen.Services) *PreferencesScreen {
	return &PreferencesScreen{svc: svc, draft: svc.Prefs}
}

func (s *PreferencesScreen) Init() tea.Cmd { return nil }

func (s *PreferencesScreen) Title() string { return s.svc.T.T("settings.title") }

func (s *PreferencesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

// Draft is the unsaved settings.
func (s *PreferencesScreen) Draft() settings.Settings { return s.draft }

func (s *PreferencesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.apply(msg.Settings)
		s.notice = s.svc.T.T("settings.saved")
		return s, nil

	case tea.KeyPressMsg:
		s.notice, s.errMsg = "", ""
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "up", "k":
			s.selected = (s.selected + len(rows) - 1) % len(rows)
		case "down", "j", "tab":
			s.selected = (s.selected + 1) % len(rows)
		case "left", "h":
			s.change(-1)
		case "right", "l", " ", "space":
			s.change(1)
		case "enter":
			return s, s.save()
		}
	}
	return s, nil
}

// change steps the selected setting by dir.
func (s *PreferencesScreen) change(dir int) {
	switch rows[s.selected].key {
	case settings.KeyQuestionCount:
		s.draft.QuestionCount = min(max(s.draft.QuestionCount+dir, settings.MinQuestionCount), settings.MaxQuestionCount)
	case settings.KeyTheme:
		s.draft.Theme = cycle(settings.Themes, s.draft.Theme, dir)
	case settings.KeySoundEffects:
		s.draft.SoundEffects = !s.draft.SoundEffects
	case settings.KeyLanguage:
		s.draft.Language = cycle(settings.Languages, s.draft.Language, dir)
	}
}

func cycle(values []string, cur string, dir int) string {
	i := max(slices.Index(values, cur), 0)
	return values[(i+dir+len(values))%len(values)]
}

func (s *PreferencesScreen) save() tea.Cmd {
	store, draft := s.svc.Settings, s.draft
	if store == nil {
		return func() tea.Msg { return savedMsg{Settings: draft.Normalize()} }
	}
	return func() tea.Msg {
		st, err := store.Save(draft)
		return savedMsg{Settings: st, Err: err}
	}
}

// apply makes st the live settings: theme, language and prefs.
func (s *PreferencesScreen) apply(st settings.Settings) {
	s.draft = st
	s.svc.Prefs = st
	theme.Apply(theme.ByName(st.Theme))
	if s.svc.T == nil || s.svc.T.Lang() != st.Language {
		tr, err := i18n.New(st.Language)
		if err != nil {
			s.svc.Log().Warn("switch language", "lang", st.Language, "error", err)
			return
		}
		s.svc.T = tr
	}
	s.svc.Log().Info("settings saved", "question_count", st.QuestionCount, "theme", st.Theme,
		"sound", st.SoundEffects, "language", st.Language)
}

func (s *PreferencesScreen) value(key string) string {
	t := s.svc.T
	switch key {
	case settings.KeyQuestionCount:
		return fmt.Sprint(s.draft.QuestionCount)
	case settings.KeyTheme:
		return s.draft.Theme
	case settings.KeySoundEffects:
		if s.draft.SoundEffects {
			return t.T("common.on")
		}
		return t.T("common.off")
	case settings.KeyLanguage:
		return s.draft.Language
	}
	return ""
}

func (s *PreferencesScreen) View(width, height int) string {
	t := s.svc.T
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(t.T("settings.title")))
	b.WriteString("\n\n")

	labelW := cw / 2
	for i, r := range rows {
		label := lipgloss.NewStyle().Width(labelW).Render(t.T(r.label))
		val := "‹ " + s.value(r.key) + " ›"
		style := theme.Unselected
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "▸ "
		}
		b.WriteString(style.Render(prefix + label + val))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	switch {
	case s.errMsg != "":
		b.WriteString(theme.Negative.Render(s.errMsg))
	case s.notice != "":
		b.WriteString(theme.Positive.Render(s.notice))
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(t.T("settings.hint")))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card("", b.String(), cw))
}
