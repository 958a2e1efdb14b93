package llm

import "context"

type purposeKey struct{}

// Purposes recorded on LLM request events.
const (
	PurposeReflection = "reflection-sentiment"
	PurposeJournal    = "journal-sentiment"
)

// WithPurpose labels calls made with ctx for the audit log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
