package assessment

import "fmt"

const unanswered = -1

// Engine walks a user through a fixed question set and scores it.
// It is not safe for concurrent use.
type Engine struct {
	questions []Question
	answers   []int
	current   int
	finished  bool
}

// New validates the question set and returns an engine positioned on
// the first question.
func New(questions []Question) (*Engine, error) {
	if len(questions) != QuestionCount {
		return nil, fmt.Errorf("%w: got %d questions, want %d", ErrContentUnavailable, len(questions), QuestionCount)
	}
	for i, q := range questions {
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: question %d has %d options", ErrContentUnavailable, i+1, len(q.Options))
		}
		if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d has correct index %d", ErrContentUnavailable, i+1, q.CorrectAnswerIndex)
		}
	}

	qs := make([]Question, len(questions))
	copy(qs, questions)
	answers := make([]int, len(qs))
	for i := range answers {
		answers[i] = unanswered
	}
	return &Engine{questions: qs, answers: answers}, nil
}

// Restore rebuilds an engine from saved progress. Answers use -1 for
// unanswered slots.
func Restore(questions []Question, answers []int, current int, finished bool) (*Engine, error) {
	e, err := New(questions)
	if err != nil {
		return nil, err
	}
	if len(answers) != len(e.answers) || current < 0 || current >= len(e.questions) {
		return nil, fmt.Errorf("%w: invalid saved progress", ErrOutOfRange)
	}
	for i, a := range answers {
		if a != unanswered && (a < 0 || a >= len(e.questions[i].Options)) {
			return nil, fmt.Errorf("%w: saved answer %d for question %d", ErrOutOfRange, a, i+1)
		}
	}
	copy(e.answers, answers)
	e.current = current
	e.finished = finished
	return e, nil
}

// Questions returns a copy of the question set.
func (e *Engine) Questions() []Question {
	out := make([]Question, len(e.questions))
	copy(out, e.questions)
	return out
}

// Answers returns a copy of the recorded answers, -1 for unanswered.
func (e *Engine) Answers() []int {
	out := make([]int, len(e.answers))
	copy(out, e.answers)
	return out
}

// Current returns the 0-based index of the current question.
func (e *Engine) Current() int { return e.current }

// CurrentQuestion returns the question under the cursor.
func (e *Engine) CurrentQuestion() Question { return e.questions[e.current] }

// Finished reports whether the last question has been advanced past.
func (e *Engine) Finished() bool { return e.finished }

// Answer returns the recorded option for question i.
func (e *Engine) Answer(i int) (int, bool) {
	if i < 0 || i >= len(e.answers) || e.answers[i] == unanswered {
		return 0, false
	}
	return e.answers[i], true
}

// RecordAnswer stores or overwrites the selected option for a question.
func (e *Engine) RecordAnswer(questionIndex, optionIndex int) error {
	if questionIndex < 0 || questionIndex >= len(e.questions) {
		return fmt.Errorf("%w: question %d", ErrOutOfRange, questionIndex)
	}
	if optionIndex < 0 || optionIndex >= len(e.questions[questionIndex].Options) {
		return fmt.Errorf("%w: option %d for question %d", ErrOutOfRange, optionIndex, questionIndex)
	}
	e.answers[questionIndex] = optionIndex
	return nil
}

// Advance moves to the next question. On the last question it finishes
// the assessment and reports done. It is blocked until the current
// question is answered.
func (e *Engine) Advance() (done bool, err error) {
	if e.finished {
		return true, nil
	}
	if e.answers[e.current] == unanswered {
		return false, ErrUnanswered
	}
	if e.current == len(e.questions)-1 {
		e.finished = true
		return true, nil
	}
	e.current++
	return false, nil
}

// Score computes the result from the current answers. Unanswered
// questions count as wrong.
func (e *Engine) Score() Result {
	score := ScoreAnswers(e.questions, e.answers)
	level, label := LevelFor(score)
	return Result{Score: score, Level: level, Label: label}
}

// Result returns the final result of a finished assessment.
func (e *Engine) Result() (Result, error) {
	if !e.finished {
		return Result{}, ErrNotFinished
	}
	return e.Score(), nil
}

// ScoreAnswers counts the answers that match each question's correct
// index. Missing answers count as wrong.
func ScoreAnswers(questions []Question, answers []int) int {
	score := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswerIndex {
			score++
		}
	}
	return score
}

// LevelFor maps a score to a roadmap level and its English label.
//
//	0-3  -> 1 Beginner
//	4-7  -> 2 Intermediate
//	8-10 -> 3 Advanced
func LevelFor(score int) (int, string) {
	switch {
	case score >= 8:
		return 3, "Advanced"
	case score >= 4:
		return 2, "Intermediate"
	default:
		return 1, "Beginner"
	}
}
