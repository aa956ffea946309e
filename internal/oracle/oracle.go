// Package oracle is the boundary to the generative model: daily tasks,
// submission reviews, placement questions and mentor chat.
package oracle

import (
	"context"
	"errors"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
)

// Slogan is quoted in every prompt and in the mentor UI.
const Slogan = "Experience work before you work"

// Failure variants. Each returned error wraps one of these and its cause.
var (
	// ErrUnavailable covers missing providers, transport failures, rate
	// limits and exhausted retries.
	ErrUnavailable = errors.New("content oracle unavailable")

	// ErrMalformed means the reply did not parse or failed schema validation.
	ErrMalformed = errors.New("content oracle reply malformed")

	// ErrIncomplete means an assessment did not contain exactly
	// assessment.QuestionCount questions.
	ErrIncomplete = errors.New("content oracle reply incomplete")
)

// ContentOracle generates all AI content. Implementations must be safe for
// concurrent use.
type ContentOracle interface {
	GenerateDailyTask(ctx context.Context, req TaskRequest) (*Task, error)
	AnalyzeSubmission(ctx context.Context, req SubmissionRequest) (*Feedback, error)
	GenerateAssessment(ctx context.Context, req AssessmentRequest) ([]assessment.Question, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

type TaskRequest struct {
	Spec  catalog.Specialization
	Level int
	Lang  catalog.Language
}

type SubmissionRequest struct {
	Spec       catalog.Specialization
	TaskTitle  string
	Submission string
	Lang       catalog.Language
}

type AssessmentRequest struct {
	Spec catalog.Specialization
	Lang catalog.Language
}

type ChatRequest struct {
	Spec    catalog.Specialization
	Message string
	Lang    catalog.Language
}

// Task is a generated daily work task.
type Task struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Skill       string `json:"skill"`
}

// Feedback is the review of a submission. Score is 0..100.
type Feedback struct {
	Feedback    string   `json:"feedback"`
	Score       float64  `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// Fallback values returned by WithFallback alongside an error.
const FallbackFeedbackText = "Error processing feedback"

// FallbackFeedback returns the feedback used when a review fails.
func FallbackFeedback() *Feedback {
	return &Feedback{Feedback: FallbackFeedbackText, Score: 0, Suggestions: []string{}}
}

// FallbackChatReply returns the chat reply used when the mentor fails.
func FallbackChatReply(lang catalog.Language) string {
	if lang == catalog.English {
		return "Sorry, I'm having trouble responding right now."
	}
	return "عذراً، أواجه مشكلة في الرد حالياً."
}
