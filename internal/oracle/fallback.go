package oracle

import (
	"context"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/logger"
)

// FallbackOracle logs every failure of the wrapped oracle and substitutes
// a safe value. The error is still returned, so callers may render the
// value or inspect the failure.
type FallbackOracle struct {
	inner ContentOracle
	log   *logger.Logger
}

// WithFallback wraps o. A nil log discards failures.
func WithFallback(o ContentOracle, log *logger.Logger) *FallbackOracle {
	if log == nil {
		log = logger.Nop()
	}
	return &FallbackOracle{inner: o, log: log}
}

var _ ContentOracle = (*FallbackOracle)(nil)

func (f *FallbackOracle) GenerateDailyTask(ctx context.Context, req TaskRequest) (*Task, error) {
	t, err := f.inner.GenerateDailyTask(ctx, req)
	if err != nil {
		f.log.Error("generate daily task", "spec", req.Spec, "level", req.Level, "error", err)
		return nil, err
	}
	return t, nil
}

func (f *FallbackOracle) AnalyzeSubmission(ctx context.Context, req SubmissionRequest) (*Feedback, error) {
	fb, err := f.inner.AnalyzeSubmission(ctx, req)
	if err != nil {
		f.log.Error("analyze submission", "spec", req.Spec, "task", req.TaskTitle, "error", err)
		return FallbackFeedback(), err
	}
	return fb, nil
}

func (f *FallbackOracle) GenerateAssessment(ctx context.Context, req AssessmentRequest) ([]assessment.Question, error) {
	qs, err := f.inner.GenerateAssessment(ctx, req)
	if err != nil {
		f.log.Error("generate assessment", "spec", req.Spec, "error", err)
		return []assessment.Question{}, err
	}
	return qs, nil
}

func (f *FallbackOracle) Chat(ctx context.Context, req ChatRequest) (string, error) {
	reply, err := f.inner.Chat(ctx, req)
	if err != nil {
		f.log.Warn("mentor chat", "spec", req.Spec, "error", err)
		return FallbackChatReply(req.Lang), err
	}
	return reply, nil
}
