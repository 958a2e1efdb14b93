package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/soulsense/internal/store"
)

// ErrDisabled is returned by NewProvider when no provider is configured.
var ErrDisabled = errors.New("llm provider disabled")

// NewProvider builds the configured provider wrapped as
// caller → retry → audit logging → SDK. "auto" is resolved first.
// It returns ErrDisabled for the "none" provider.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	cfg = cfg.Discover()
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	endpoint := cfg.Endpoint()

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(endpoint)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(endpoint)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(endpoint)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, endpoint)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initialize %s provider: %w", cfg.Provider, err)
	}

	var p Provider = base
	if events != nil {
		p = WithLogging(p, cfg.Provider, events)
	}
	return WithRetry(p, cfg.Retry), nil
}
