package llm

import "context"

// Purposes recorded with each request in the llm_request_events table.
const (
	PurposeLessonDraft = "lesson-draft"
	PurposeUnspecified = "unspecified"
)

type purposeKey struct{}

// WithPurpose labels requests made with ctx so `lessonhub llm stats` can
// group them.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnspecified.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnspecified
}
