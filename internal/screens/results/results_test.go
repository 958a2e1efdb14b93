package results

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/soulsense/internal/exam"
	"github.com/abhisek/soulsense/internal/profile"
	"github.com/abhisek/soulsense/internal/risk"
	"github.com/abhisek/soulsense/internal/router"
	"github.com/abhisek/soulsense/internal/screen/screentest"
)

func finished(t *testing.T, env *screentest.Env, value, n int) *exam.Session {
	t.Helper()
	qs, err := env.Svc.Bank.Load(context.Background(), nil, n)
	require.NoError(t, err)
	require.Len(t, qs, n)
	sess := exam.NewSession(profile.Profile{Name: "Asha"}, qs)
	require.NoError(t, sess.Start())
	for range qs {
		require.NoError(t, sess.SubmitAnswer(value))
	}
	require.NoError(t, sess.SkipReflection())
	_, err = sess.Finish(context.Background(), env.Svc.Scores)
	require.NoError(t, err)
	return sess
}

func TestViewShowsScoreAndCategories(t *testing.T) {
	env := screentest.New(t)
	sess := finished(t, env, 4, exam.CategoryQuestionCount)
	s := New(env.Svc, sess.Result(), nil)

	view := s.View(100, 60)
	assert.Contains(t, view, "Score: 40 / 40 (100%)")
	assert.Contains(t, view, "Excellent emotional intelligence")
	assert.Contains(t, view, "Self-awareness 12/12")
	assert.Contains(t, view, "Result saved.")
	assert.Nil(t, s.Init(), "no risk model configured")
}

func TestCategoriesHiddenForShortSessions(t *testing.T) {
	env := screentest.New(t)
	sess := finished(t, env, 2, 5)
	s := New(env.Svc, sess.Result(), nil)

	view := s.View(100, 60)
	assert.NotContains(t, view, "Categories")
	assert.Contains(t, view, "Score: 10 / 20 (50%)")
}

func TestSaveFailureNotice(t *testing.T) {
	env := screentest.New(t)
	r := exam.Result{Username: "Asha", Score: 3, MaxScore: 4, Percentage: 75}
	s := New(env.Svc, r, errors.New("disk full"))
	assert.Contains(t, s.View(100, 40), "Result could not be saved.")
}

func TestRiskPrediction(t *testing.T) {
	env := screentest.New(t).WithRisk(risk.Train(risk.TrainSeed))
	sess := finished(t, env, 1, exam.CategoryQuestionCount)
	s := New(env.Svc, sess.Result(), nil)

	assert.Contains(t, s.View(100, 60), "Computing...")
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())

	require.NotNil(t, s.Prediction())
	assert.Equal(t, risk.High, s.Prediction().Level)
	view := s.View(100, 60)
	assert.Contains(t, view, "High Risk")
	// The card wraps the disclaimer, so only its first clause is on one line.
	assert.Contains(t, view, "This is an AI-assisted assessment")
}

func TestRiskFailureIsShownNotFatal(t *testing.T) {
	env := screentest.New(t)
	env.Svc.Risk = func() (*risk.Model, error) { return nil, errors.New("no model") }
	sess := finished(t, env, 3, 5)
	s := New(env.Svc, sess.Result(), nil)

	s.Update(s.Init()())
	assert.Nil(t, s.Prediction())
	assert.Contains(t, s.View(100, 60), "Risk model unavailable.")
}

func TestKeys(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Svc, exam.Result{Username: "Asha"}, nil)

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopToRootMsg{}, cmd())

	_, cmd = s.Update(screentest.Key('d'))
	assert.NotNil(t, cmd)
	_, cmd = s.Update(screentest.Key('h'))
	assert.NotNil(t, cmd)
}
