// Package assessment is the question-by-question exam screen.
package assessment

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soulsense/internal/exam"
	"github.com/abhisek/soulsense/internal/profile"
	"github.com/abhisek/soulsense/internal/questions"
	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen"
	"github.com/abhisek/soulsense/internal/screens/reflection"
	"github.com/abhisek/soulsense/internal/ui/components"
	"github.com/abhisek/soulsense/internal/ui/layout"
)

// questionsLoadedMsg carries the question list for a new session.
type questionsLoadedMsg struct {
	Questions []questions.Question
	Err       error
}

// AssessmentScreen walks a session through its questions.
type AssessmentScreen struct {
	svc     *screen.Services
	user    profile.Profile
	session *exam.Session
	choice  components.Choice

	confirmQuit bool
	errMsg      string
}

var (
	_ screen.Screen          = (*AssessmentScreen)(nil)
	_ screen.KeyHintProvider = (*AssessmentScreen)(nil)
	_ screen.EscapeHandler   = (*AssessmentScreen)(nil)
)

// New creates the screen; questions are loaded in Init.
func New(svc *screen.Services, user profile.Profile) *AssessmentScreen {
	labels := make([]string, len(exam.Options))
	for i, o := range exam.Options {
		labels[i] = svc.T.T(o.MessageID)
	}
	return &AssessmentScreen{
		svc:    svc,
		user:   user,
		choice: components.NewChoice(labels),
	}
}

func (s *AssessmentScreen) Init() tea.Cmd {
	bank, age, count := s.svc.Bank, s.user.Age, s.svc.Prefs.QuestionCount
	return func() tea.Msg {
		qs, err := bank.Load(context.Background(), age, count)
		return questionsLoadedMsg{Questions: qs, Err: err}
	}
}

func (s *AssessmentScreen) Title() string {
	return "Assessment"
}

func (s *AssessmentScreen) HandlesEscape() bool { return true }

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.session == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓", Description: "Select"},
		{Key: "B", Description: "Back"},
		{Key: "Esc", Description: "Quit"},
	}
}

// Session exposes the running session, nil until questions load.
func (s *AssessmentScreen) Session() *exam.Session { return s.session }

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleLoaded(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *AssessmentScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	sess := exam.NewSession(s.user, msg.Questions,
		exam.WithLogger(s.svc.Log()),
		exam.WithClock(s.svc.Clock),
	)
	if err := sess.Start(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.session = sess
	s.svc.Log().Info("assessment started", "session", sess.ID(), "questions", sess.Len())
	return s, nil
}

func (s *AssessmentScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.svc.Log().Info("assessment abandoned", "user", s.user.Name)
			return s, router.PopToRoot
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		if s.session == nil {
			return s, router.Pop
		}
		s.confirmQuit = true
		return s, nil
	}
	if s.session == nil {
		return s, nil
	}

	if key == "b" || key == "B" {
		answers := s.session.Answers()
		ok, err := s.session.GoBack()
		if err != nil {
			s.svc.Log().Warn("go back", "error", err)
		}
		if ok {
			s.choice = s.choice.Reset(answers[len(answers)-1].Value - 1)
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	v := s.choice.Chosen()
	if v == 0 {
		return s, nil
	}
	if err := s.session.SubmitAnswer(v); err != nil {
		s.svc.Log().Warn("submit answer", "value", v, "error", err)
		return s, nil
	}
	s.choice = s.choice.Reset(0)

	if s.session.State() == exam.AwaitingReflection {
		return s, router.Replace(reflection.New(s.svc, s.session))
	}
	return s, nil
}
