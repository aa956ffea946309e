package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/llm"
)

// Purpose labels attached to each call for event logging and metrics.
const (
	PurposeDailyTask  = llm.PurposeDailyTask
	PurposeReview     = llm.PurposeReview
	PurposeAssessment = llm.PurposeAssessment
	PurposeChat       = llm.PurposeChat
)

// Config tunes the requests LLMOracle sends.
type Config struct {
	// Timeout bounds one call including provider retries. Zero disables it.
	Timeout time.Duration

	TaskMaxTokens       int
	FeedbackMaxTokens   int
	AssessmentMaxTokens int
	ChatMaxTokens       int

	Temperature float64
}

// DefaultConfig returns the request limits used by the CLI and server.
func DefaultConfig() Config {
	return Config{
		Timeout:             45 * time.Second,
		TaskMaxTokens:       1024,
		FeedbackMaxTokens:   1024,
		AssessmentMaxTokens: 4096,
		ChatMaxTokens:       768,
		Temperature:         0.7,
	}
}

// LLMOracle implements ContentOracle on an llm.Provider.
type LLMOracle struct {
	provider llm.Provider
	catalog  *catalog.Catalog
	config   Config
}

// New creates an LLMOracle. A nil catalog uses catalog.Default.
func New(provider llm.Provider, cat *catalog.Catalog, cfg Config) *LLMOracle {
	if cat == nil {
		cat = catalog.Default()
	}
	return &LLMOracle{provider: provider, catalog: cat, config: cfg}
}

var _ ContentOracle = (*LLMOracle)(nil)

func (o *LLMOracle) GenerateDailyTask(ctx context.Context, req TaskRequest) (*Task, error) {
	prompt, err := taskPrompt(o.catalog, req)
	if err != nil {
		return nil, err
	}

	var t Task
	if err := o.call(ctx, PurposeDailyTask, prompt, TaskSchema, o.config.TaskMaxTokens, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (o *LLMOracle) AnalyzeSubmission(ctx context.Context, req SubmissionRequest) (*Feedback, error) {
	prompt, err := submissionPrompt(o.catalog, req)
	if err != nil {
		return nil, err
	}

	var fb Feedback
	if err := o.call(ctx, PurposeReview, prompt, FeedbackSchema, o.config.FeedbackMaxTokens, &fb); err != nil {
		return nil, err
	}
	fb.Score = max(0, min(100, fb.Score))
	if fb.Suggestions == nil {
		fb.Suggestions = []string{}
	}
	return &fb, nil
}

type assessmentOutput struct {
	Questions []assessment.Question `json:"questions"`
}

func (o *LLMOracle) GenerateAssessment(ctx context.Context, req AssessmentRequest) ([]assessment.Question, error) {
	prompt, err := assessmentPrompt(o.catalog, req)
	if err != nil {
		return nil, err
	}

	var out assessmentOutput
	if err := o.call(ctx, PurposeAssessment, prompt, AssessmentSchema, o.config.AssessmentMaxTokens, &out); err != nil {
		return nil, err
	}
	if len(out.Questions) != assessment.QuestionCount {
		return nil, fmt.Errorf("%w: got %d questions, want %d",
			ErrIncomplete, len(out.Questions), assessment.QuestionCount)
	}
	return out.Questions, nil
}

type chatOutput struct {
	Reply string `json:"reply"`
}

func (o *LLMOracle) Chat(ctx context.Context, req ChatRequest) (string, error) {
	prompt, err := chatPrompt(o.catalog, req)
	if err != nil {
		return "", err
	}

	var out chatOutput
	if err := o.call(ctx, PurposeChat, prompt, ChatSchema, o.config.ChatMaxTokens, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// call sends one single-turn request and decodes the structured reply
// into dst.
func (o *LLMOracle) call(ctx context.Context, purpose llm.Purpose, prompt string, schema *llm.Schema, maxTokens int, dst any) error {
	if o.provider == nil {
		return fmt.Errorf("%w: no provider configured", ErrUnavailable)
	}
	ctx = llm.WithPurpose(ctx, purpose)
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	resp, err := o.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      schema,
		MaxTokens:   maxTokens,
		Temperature: o.config.Temperature,
	})
	if err != nil {
		return classify(purpose, err)
	}

	if err := json.Unmarshal(resp.Content, dst); err != nil {
		return fmt.Errorf("%w: parse %s reply: %w", ErrMalformed, purpose, err)
	}
	return nil
}

// classify maps provider errors onto the oracle failure variants. A reply
// that arrived but cannot be used is malformed; everything else, including
// a rejected request, leaves the oracle unavailable.
func classify(purpose llm.Purpose, err error) error {
	var inv *llm.ErrInvalidResponse
	var maxTok *llm.ErrMaxTokensExceeded
	var filtered *llm.ErrContentFiltered
	if errors.As(err, &inv) || errors.As(err, &maxTok) || errors.As(err, &filtered) {
		return fmt.Errorf("%w: %s: %w", ErrMalformed, purpose, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, purpose, err)
}
