package llm

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// reply is what every SDK adapter extracts from its native response.
type reply struct {
	text      string
	model     string
	usage     Usage
	truncated bool
}

// response checks r against schema and converts it. A truncated reply is
// never valid JSON worth decoding, so it fails before validation.
func (r reply) response(schema *Schema) (*Response, error) {
	content := json.RawMessage(r.text)
	if r.truncated {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	if r.usage.TotalTokens == 0 {
		r.usage.TotalTokens = r.usage.InputTokens + r.usage.OutputTokens
	}
	return &Response{Content: content, Usage: r.usage, Model: r.model, StopReason: StopEnd}, nil
}

// classify maps an SDK failure with its HTTP status onto the package
// errors. Status 0 means the request never got an answer.
func classify(err error, status int, retryAfter string) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{RetryAfter: parseRetryAfter(retryAfter), Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// resolveModel maps a short alias to a provider model ID. Unknown names
// pass through unchanged.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

// parseRetryAfter reads a Retry-After header given in whole seconds.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
