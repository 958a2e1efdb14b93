package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soulsense/internal/profile"
	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/screens/assessment"
	"github.com/abhisek/soulsense/internal/screens/dashboard"
	"github.com/abhisek/soulsense/internal/screens/diary"
	"github.com/abhisek/soulsense/internal/screens/history"
	"github.com/abhisek/soulsense/internal/screens/preferences"
	"github.com/abhisek/soulsense/internal/screens/profileform"
	"github.com/abhisek/soulsense/internal/store"
	"github.com/abhisek/soulsense/internal/ui/components"
	"github.com/abhisek/soulsense/internal/ui/layout"
)

type stats struct {
	user        string
	assessments int
	latest      int
	latestMax   int
}

type statsLoadedMsg struct {
	stats stats
	err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	svc   *screen.Services
	menu  components.Menu
	stats stats
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(svc *screen.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	t := h.svc.T
	return []components.MenuItem{
		{Label: t.T("menu.start"), Action: func() tea.Cmd {
			return router.Push(profileform.New(h.svc, func(p profile.Profile) screen.Screen {
				return assessment.New(h.svc, p)
			}))
		}},
		{Label: t.T("menu.journal"), Action: func() tea.Cmd {
			return h.withProfile(func(name string) screen.Screen { return diary.New(h.svc, name) })
		}},
		{Label: t.T("menu.dashboard"), Action: func() tea.Cmd {
			return h.withProfile(func(name string) screen.Screen { return dashboard.New(h.svc, name) })
		}},
		{Label: t.T("menu.history"), Action: func() tea.Cmd {
			return router.Push(history.New(h.svc))
		}},
		{Label: t.T("menu.settings"), Action: func() tea.Cmd {
			return router.Push(preferences.New(h.svc))
		}},
		{Label: t.T("menu.quit"), Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

// withProfile opens next directly when a profile exists, otherwise asks
// for one first.
func (h *HomeScreen) withProfile(next func(name string) screen.Screen) tea.Cmd {
	if h.svc.User != nil {
		return router.Push(next(h.svc.User.Name))
	}
	return router.Push(profileform.New(h.svc, func(p profile.Profile) screen.Screen { return next(p.Name) }))
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the stats and relabels the menu, since the profile,
// scores or language may have changed while covered.
func (h *HomeScreen) Resume() tea.Cmd {
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	h.menu.Selected = selected
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	user := h.svc.Username()
	scores := h.svc.Scores
	return func() tea.Msg {
		st := stats{user: user}
		if user == "" || scores == nil {
			return statsLoadedMsg{stats: st}
		}
		recs, err := scores.QueryScores(context.Background(), store.QueryOpts{Username: user})
		if err != nil {
			return statsLoadedMsg{stats: st, err: err}
		}
		st.assessments = len(recs)
		if len(recs) > 0 {
			st.latest, st.latestMax = recs[0].TotalScore, recs[0].MaxScore
		}
		return statsLoadedMsg{stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			h.svc.Log().Warn("load home stats", "error", msg.err)
		}
		h.stats = msg.stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(h.svc.T.T("app.tagline"), cw, compact),
		renderStats(h.stats, cw),
		renderMenu(h.menu, cw, compact),
	}
	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
