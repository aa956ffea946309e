package llm

import "context"

// Purpose labels a call for event logging, metrics and tracing.
type Purpose string

// Purposes of the content oracle calls.
const (
	PurposeDailyTask  Purpose = "daily-task"
	PurposeReview     Purpose = "submission-review"
	PurposeAssessment Purpose = "assessment"
	PurposeChat       Purpose = "mentor-chat"
	PurposeUnknown    Purpose = "unknown"
)

// Purposes lists the known labels, in the order a learner meets them.
func Purposes() []Purpose {
	return []Purpose{PurposeAssessment, PurposeDailyTask, PurposeReview, PurposeChat}
}

// Known reports whether p is one of Purposes.
func (p Purpose) Known() bool {
	for _, k := range Purposes() {
		if p == k {
			return true
		}
	}
	return false
}

type contextKey struct{}

// WithPurpose attaches a purpose label to the context.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(contextKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
