package oracle

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
)

// Fake is a deterministic ContentOracle for tests and offline demos.
// Set the Err fields to make the matching call fail.
type Fake struct {
	mu sync.Mutex

	TaskErr       error
	FeedbackErr   error
	AssessmentErr error
	ChatErr       error

	// Score is returned by AnalyzeSubmission. Defaults to 85.
	Score float64

	// QuestionCount overrides the number of generated questions, to
	// exercise short sets.
	QuestionCount int

	calls map[string]int
}

// NewFake returns a Fake with every call succeeding.
func NewFake() *Fake {
	return &Fake{Score: 85, calls: make(map[string]int)}
}

var _ ContentOracle = (*Fake)(nil)

// Calls returns how many times the named method ran.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *Fake) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
}

func (f *Fake) GenerateDailyTask(ctx context.Context, req TaskRequest) (*Task, error) {
	f.record("GenerateDailyTask")
	if f.TaskErr != nil {
		return nil, f.TaskErr
	}
	if req.Lang == catalog.English {
		return &Task{
			Title:       fmt.Sprintf("Level %d task: monthly report", req.Level),
			Description: "Prepare a one-page monthly performance report for your manager, with three key figures and one recommendation.",
			Skill:       "Reporting",
		}, nil
	}
	return &Task{
		Title:       fmt.Sprintf("مهمة المستوى %d: التقرير الشهري", req.Level),
		Description: "أعد تقريراً شهرياً من صفحة واحدة لمديرك يتضمن ثلاثة أرقام رئيسية وتوصية واحدة.",
		Skill:       "إعداد التقارير",
	}, nil
}

func (f *Fake) AnalyzeSubmission(ctx context.Context, req SubmissionRequest) (*Feedback, error) {
	f.record("AnalyzeSubmission")
	if f.FeedbackErr != nil {
		return nil, f.FeedbackErr
	}
	return &Feedback{
		Feedback:    fmt.Sprintf("Clear work on %q. Strengths: structure. Improve: supporting numbers.", req.TaskTitle),
		Score:       f.Score,
		Suggestions: []string{"Add a summary line", "Cite your data source"},
	}, nil
}

// GenerateAssessment returns questions whose correct index cycles 0..3,
// in the 3/4/3 difficulty mix.
func (f *Fake) GenerateAssessment(ctx context.Context, req AssessmentRequest) ([]assessment.Question, error) {
	f.record("GenerateAssessment")
	if f.AssessmentErr != nil {
		return nil, f.AssessmentErr
	}
	n := assessment.QuestionCount
	if f.QuestionCount > 0 {
		n = f.QuestionCount
	}
	qs := make([]assessment.Question, n)
	for i := range qs {
		qs[i] = assessment.Question{
			Question:           fmt.Sprintf("Question %d about %s", i+1, req.Spec),
			Options:            []string{"A", "B", "C", "D"},
			CorrectAnswerIndex: i % 4,
			Difficulty:         fakeDifficulty(i),
		}
	}
	return qs, nil
}

func fakeDifficulty(i int) assessment.Difficulty {
	switch {
	case i < assessment.BeginnerQuestions:
		return assessment.Beginner
	case i < assessment.BeginnerQuestions+assessment.IntermediateQuestions:
		return assessment.Intermediate
	}
	return assessment.Advanced
}

func (f *Fake) Chat(ctx context.Context, req ChatRequest) (string, error) {
	f.record("Chat")
	if f.ChatErr != nil {
		return "", f.ChatErr
	}
	return fmt.Sprintf("[%s] %s", req.Spec, req.Message), nil
}

// CorrectAnswers returns the correct option index of each question Fake
// generates.
func CorrectAnswers() []int {
	out := make([]int, assessment.QuestionCount)
	for i := range out {
		out[i] = i % 4
	}
	return out
}
