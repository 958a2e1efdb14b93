package exam

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answersOf(values ...int) []Answer {
	out := make([]Answer, len(values))
	for i, v := range values {
		out[i] = Answer{QuestionIndex: i, Value: v}
	}
	return out
}

func TestCategoryScores(t *testing.T) {
	cats, err := CategoryScores(answersOf(1, 2, 3, 4, 4, 4, 1, 1, 2, 2))
	require.NoError(t, err)
	require.Len(t, cats, 3)

	assert.Equal(t, 6, cats[0].Score)
	assert.Equal(t, 12, cats[0].Max)
	assert.Equal(t, 12, cats[1].Score)
	assert.Equal(t, 6, cats[2].Score)
	assert.Equal(t, 16, cats[2].Max)
	assert.Equal(t, "Social awareness", cats[2].Name)
}

func TestCategoryScoresRequiresTenAnswers(t *testing.T) {
	for _, n := range []int{0, 9, 11} {
		_, err := CategoryScores(make([]Answer, n))
		if !errors.Is(err, ErrCategoryShape) {
			t.Errorf("CategoryScores(%d answers) err = %v", n, err)
		}
	}
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		pct  float64
		want Band
	}{
		{100, BandExcellent},
		{65, BandExcellent},
		{64.9, BandGood},
		{50, BandGood},
		{35, BandAverage},
		{34.9, BandRoomToGrow},
		{0, BandRoomToGrow},
	}
	for _, tt := range tests {
		if got := Interpret(tt.pct); got != tt.want {
			t.Errorf("Interpret(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestResult(t *testing.T) {
	s := started(t, 10)
	answerAll(t, s, 4, 4, 4, 3, 3, 3, 2, 2, 2, 2)
	_ = s.SkipReflection()

	r := s.Result()
	assert.Equal(t, 29, r.Score)
	assert.Equal(t, 40, r.MaxScore)
	assert.InDelta(t, 72.5, r.Percentage, 1e-9)
	assert.Equal(t, BandExcellent, r.Band)
	require.Len(t, r.Categories, 3)
	assert.Equal(t, 12, r.Categories[0].Score)
	assert.Len(t, r.Answers, 10)
	assert.False(t, r.Saved)
}

func TestResultWithoutCategories(t *testing.T) {
	s := started(t, 3)
	answerAll(t, s, 1, 1, 1)
	r := s.Result()
	assert.Nil(t, r.Categories)
	assert.Equal(t, BandRoomToGrow, r.Band)
}
