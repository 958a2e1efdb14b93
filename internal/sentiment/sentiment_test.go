package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/soulsense/internal/llm"
)

func TestLexiconSign(t *testing.T) {
	lex := NewLexicon()
	tests := []struct {
		text string
		sign int
	}{
		{"I felt happy and calm today", 1},
		{"Grateful for a wonderful day with friends", 1},
		{"I am sad and exhausted", -1},
		{"Everything was terrible and I felt hopeless", -1},
		{"I am not happy", -1},
		{"I didn't feel bad at all", 1},
		{"The meeting is at noon", 0},
		{"", 0},
	}
	for _, tt := range tests {
		got := lex.Score(tt.text)
		switch {
		case tt.sign > 0 && got <= 0, tt.sign < 0 && got >= 0, tt.sign == 0 && got != 0:
			t.Errorf("Score(%q) = %.1f, want sign %d", tt.text, got, tt.sign)
		}
	}
}

func TestLexiconIntensifiersAndBounds(t *testing.T) {
	lex := NewLexicon()
	plain := lex.Score("I am happy")
	boosted := lex.Score("I am extremely happy")
	if boosted <= plain {
		t.Errorf("extremely happy = %.1f, want more than happy = %.1f", boosted, plain)
	}

	damped := lex.Score("I am slightly sad")
	sad := lex.Score("I am sad")
	if damped <= sad {
		t.Errorf("slightly sad = %.1f, want less negative than sad = %.1f", damped, sad)
	}

	long := ""
	for range 50 {
		long += "amazing wonderful great "
	}
	if s := lex.Score(long); s > MaxScore || s < 90 {
		t.Errorf("saturated score = %.1f, want in [90, 100]", s)
	}
}

func TestLexiconNormalization(t *testing.T) {
	// "great" has valence 3.1: 100 * 3.1 / sqrt(3.1² + 15)
	got := NewLexicon().Score("great")
	assert.InDelta(t, 62.47, got, 0.05)
}

func TestDetectPatterns(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Deadlines everywhere, so much pressure", []string{PatternStress}},
		{"Thankful for my family, we laughed together", []string{PatternGratitude, PatternJoy, PatternSocial}},
		{"Worried and tired after the funeral", []string{PatternAnxiety, PatternFatigue}},
		{"I realized I need to learn to slow down", []string{PatternReflection}},
		{"Nothing much", nil},
		{"I am not happy", nil},
		{"I don't feel sad, just tired", []string{PatternFatigue}},
		{"Not happy today but grateful for the help", []string{PatternGratitude}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectPatterns(tt.text), tt.text)
	}
}

type failing struct{ calls int }

func (f *failing) Analyze(context.Context, string) (float64, error) {
	f.calls++
	return 0, errors.New("offline")
}

type constant float64

func (c constant) Analyze(context.Context, string) (float64, error) { return float64(c), nil }

func TestFallbackFirstSuccess(t *testing.T) {
	bad := &failing{}
	f := NewFallback(nil, bad, constant(12), constant(99))

	r, err := f.AnalyzeDetailed(context.Background(), "grateful for my friend")
	require.NoError(t, err)
	assert.Equal(t, 12.0, r.Score)
	assert.Equal(t, []string{PatternGratitude, PatternSocial}, r.Patterns)
	assert.Equal(t, 1, bad.calls)
}

func TestFallbackAllFail(t *testing.T) {
	_, err := NewFallback(&failing{}, &failing{}).Analyze(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")

	_, err = NewFallback().Analyze(context.Background(), "x")
	assert.Error(t, err)
}

func TestLLMAnalyzer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"score":150,"patterns":["Joy","Gratitude"]}`),
	})
	a := NewLLM(mock, WithPurpose(llm.PurposeJournal))

	r, err := a.AnalyzeDetailed(context.Background(), "  best day ever, thank you  ")
	require.NoError(t, err)
	assert.Equal(t, MaxScore, r.Score)
	assert.Equal(t, []string{"Joy", "Gratitude"}, r.Patterns)

	require.Len(t, mock.Calls, 1)
	call := mock.Calls[0]
	assert.Equal(t, "best day ever, thank you", call.Input)
	assert.Contains(t, call.System, "Social connection")
	require.NotNil(t, call.Schema)
}

func TestLLMAnalyzerRejectsUnknownPattern(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"score":-30,"patterns":["Boredom"]}`),
	})
	_, err := NewLLM(mock).Analyze(context.Background(), "meh")
	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestLLMFallsBackToLexicon(t *testing.T) {
	mock := llm.NewMockProvider() // always unavailable
	f := NewFallback(NewLLM(mock), NewLexicon())

	score, err := f.Analyze(context.Background(), "I feel awful")
	require.NoError(t, err)
	assert.Less(t, score, 0.0)
	assert.Equal(t, 1, mock.CallCount())
}

func TestDescribeAddsPatterns(t *testing.T) {
	r, err := Describe(context.Background(), constant(-5), "so stressed about the deadline")
	require.NoError(t, err)
	assert.Equal(t, -5.0, r.Score)
	assert.Equal(t, []string{PatternStress}, r.Patterns)
}
