package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/soulsense/internal/store"
)

func openEvents(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLoggingProviderRecordsEvents(t *testing.T) {
	events := openEvents(t)
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"score":10,"patterns":[]}`), Usage: Usage{InputTokens: 7, OutputTokens: 3}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("offline")}},
	)
	p := WithLogging(mock, ProviderMock, events)
	ctx := WithPurpose(context.Background(), PurposeReflection)

	req := Request{
		System:   "rate it",
		Input: "calm day",
		Schema:   sentimentSchema(),
	}
	_, err := p.Generate(ctx, req)
	require.NoError(t, err)
	_, err = p.Generate(ctx, req)
	require.Error(t, err)

	got, err := events.QueryLLMRequests(context.Background(), store.QueryOpts{Oldest: true})
	require.NoError(t, err)
	require.Len(t, got, 2)

	ok := got[0]
	assert.True(t, ok.Success)
	assert.Equal(t, ProviderMock, ok.Provider)
	assert.Equal(t, PurposeReflection, ok.Purpose)
	assert.Equal(t, 7, ok.InputTokens)
	assert.Contains(t, ok.RequestBody, "[system]\nrate it")
	assert.Contains(t, ok.RequestBody, "[schema: test-sentiment]")
	assert.JSONEq(t, `{"score":10,"patterns":[]}`, ok.ResponseBody)

	failed := got[1]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "offline")
	assert.Greater(t, failed.Sequence, ok.Sequence)
}

func TestPurposeDefaultsToUnknown(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("PurposeFrom = %q, want unknown", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), PurposeJournal)); got != PurposeJournal {
		t.Errorf("PurposeFrom = %q, want %q", got, PurposeJournal)
	}
}

func TestMockProviderQueueAndHandler(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"a":1}`)})
	mock.Handler = func(req Request) MockResponse {
		return MockResponse{Content: json.RawMessage(`{"echo":"` + req.Input + `"}`)}
	}

	first, err := mock.Generate(context.Background(), Request{Input: "one"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(first.Content))

	second, err := mock.Generate(context.Background(), Request{Input: "two"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"echo":"two"}`, string(second.Content))
	assert.Equal(t, 2, mock.CallCount())
}

func TestMockProviderEmptyQueue(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %T, want *ErrProviderUnavailable", err)
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"valid", `{"score":12.5,"patterns":["Joy"]}`, true},
		{"empty patterns", `{"score":0,"patterns":[]}`, true},
		{"missing patterns", `{"score":1}`, false},
		{"out of range", `{"score":140,"patterns":[]}`, false},
		{"wrong type", `{"score":"good","patterns":[]}`, false},
		{"extra field", `{"score":1,"patterns":[],"mood":"ok"}`, false},
		{"malformed", `{score:1}`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(sentimentSchema(), json.RawMessage(tt.raw))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			assert.ErrorAs(t, err, &inv)
		})
	}

	assert.NoError(t, validateResponse(nil, json.RawMessage(`anything`)))
}

func TestConfigEndpointDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "k"

	e := cfg.Endpoint()
	assert.Equal(t, defaultOpenRouterBaseURL, e.BaseURL)
	assert.Equal(t, "google/gemini-2.0-flash-001", e.Model)
	assert.NoError(t, cfg.Validate())

	cfg.Provider = ProviderGemini
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "SOULSENSE_GEMINI_API_KEY"), err.Error())

	cfg.Provider = "llama"
	assert.Error(t, cfg.Validate())
}

func TestConfigDiscover(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg := DefaultConfig()
	cfg.Provider = ProviderAuto
	got := cfg.Discover()
	assert.Equal(t, ProviderGemini, got.Provider)
	assert.Equal(t, "g-key", got.Gemini.APIKey)

	t.Setenv("GEMINI_API_KEY", "")
	assert.Equal(t, ProviderNone, cfg.Discover().Provider)

	cfg.Provider = ProviderAnthropic
	assert.Equal(t, ProviderAnthropic, cfg.Discover().Provider)
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrDisabled)

	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, openEvents(t))
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	cfg.Provider = ProviderAnthropic
	_, err = NewProvider(context.Background(), cfg, nil)
	assert.Error(t, err)
}
