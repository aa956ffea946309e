package assessment

import (
	"errors"

	"github.com/abhisek/educareer/internal/catalog"
)

// QuestionCount is the fixed size of a placement test.
const QuestionCount = 10

// Difficulty mix requested from the content oracle.
const (
	BeginnerQuestions     = 3
	IntermediateQuestions = 4
	AdvancedQuestions     = 3
)

var (
	// ErrContentUnavailable means the question set cannot be used for
	// placement, typically because the oracle returned too few questions.
	ErrContentUnavailable = errors.New("assessment content unavailable")

	// ErrOutOfRange is returned for question or option indexes outside the set.
	ErrOutOfRange = errors.New("index out of range")

	// ErrUnanswered is returned by Advance when the current question has
	// no recorded answer.
	ErrUnanswered = errors.New("current question is unanswered")

	// ErrNotFinished is returned when a result is requested mid-test.
	ErrNotFinished = errors.New("assessment not finished")
)

// Difficulty tags a question.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Question is one multiple-choice placement question.
type Question struct {
	Question           string     `json:"question"`
	Options            []string   `json:"options"`
	CorrectAnswerIndex int        `json:"correctAnswerIndex"`
	Difficulty         Difficulty `json:"difficulty"`
}

// Result is the outcome of a completed assessment.
type Result struct {
	Score int    `json:"score"`
	Level int    `json:"level"`
	Label string `json:"label"`
}

// LabelIn returns the localized label for the result's level.
func (r Result) LabelIn(lang catalog.Language) string {
	return LevelLabel(r.Level, lang)
}

var levelLabels = map[int]catalog.Text{
	1: {AR: "مبتدئ", EN: "Beginner"},
	2: {AR: "متوسط", EN: "Intermediate"},
	3: {AR: "متقدم", EN: "Advanced"},
}

// LevelLabel returns the display label of a level in the given language.
func LevelLabel(level int, lang catalog.Language) string {
	t, ok := levelLabels[level]
	if !ok {
		return ""
	}
	return t.In(lang)
}
