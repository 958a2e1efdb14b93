// Package llm is a thin provider layer over the hosted model SDKs. Every
// call analyzes one piece of user text: callers build a Request with a JSON
// schema and get back validated JSON. Retry and audit logging are added as
// decorators by NewProvider.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider generates a response for a Request.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the returned
	// Content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model this provider sends requests to.
	ModelID() string
}

// Request is a single analysis call: instructions plus the text to analyze.
type Request struct {
	System string
	Input  string

	// Schema constrains the output to JSON. Nil means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema definition.
type Schema struct {
	// Name is used as the schema name for providers that require one.
	// Kebab-case, e.g. "reflection-sentiment".
	Name        string
	Description string
	Definition  map[string]any
}

// StopEnd is the StopReason of every successful Response. Truncated output
// fails with ErrMaxTokensExceeded instead.
const StopEnd = "end"

// Response is the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// GenerateJSON runs req against p and decodes the content into out.
// req.Schema must be set.
func GenerateJSON(ctx context.Context, p Provider, req Request, out any) (*Response, error) {
	if req.Schema == nil {
		return nil, fmt.Errorf("generate %s: schema is required", p.ModelID())
	}
	resp, err := p.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return nil, &ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("decode: %w", err)}
	}
	return resp, nil
}
