// Package mentor runs the placement and dashboard flows of a session
// against the content oracle.
package mentor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/logger"
	"github.com/abhisek/educareer/internal/oracle"
	"github.com/abhisek/educareer/internal/session"
)

var (
	ErrNoTask          = errors.New("no daily task available")
	ErrNoFeedback      = errors.New("no reviewed submission to confirm")
	ErrEmptySubmission = errors.New("submission is empty")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrChatUnavailable = errors.New("mentor chat needs a selected specialization")
)

// Role of a transcript line.
type Role string

const (
	RoleUser   Role = "user"
	RoleMentor Role = "mentor"
)

// ChatMessage is one line of the mentor transcript.
type ChatMessage struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// work is the dashboard state the session itself does not hold.
type work struct {
	task       *oracle.Task
	feedback   *oracle.Feedback
	transcript []ChatMessage
}

// Service is safe for concurrent use across sessions.
type Service struct {
	oracle oracle.ContentOracle
	log    *logger.Logger
	now    func() time.Time

	mu   sync.Mutex
	work map[string]*work
}

// New creates a Service. A nil log discards output.
func New(o oracle.ContentOracle, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{oracle: o, log: log, now: time.Now, work: make(map[string]*work)}
}

func (m *Service) workFor(id string) *work {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.work[id]
	if !ok {
		w = &work{}
		m.work[id] = w
	}
	return w
}

// Forget drops the cached task, feedback and transcript of a session.
func (m *Service) Forget(sessionID string) {
	m.mu.Lock()
	delete(m.work, sessionID)
	m.mu.Unlock()
}

// SessionOpened and SessionClosed let the Service observe a session
// registry, so expired sessions do not keep their work cached.
func (m *Service) SessionOpened(string) {}

func (m *Service) SessionClosed(sessionID string) { m.Forget(sessionID) }

// StartPlacement loads the placement questions for the running assessment
// and attaches them to the session. A short or failed set yields
// assessment.ErrContentUnavailable.
func (m *Service) StartPlacement(ctx context.Context, s *session.Session) (*assessment.Engine, error) {
	ia, ok := s.State().(session.InAssessment)
	if !ok {
		return nil, &session.TransitionError{From: s.Kind(), Event: "start_placement"}
	}

	release, err := s.Begin(session.ActionAssessment)
	if err != nil {
		return nil, err
	}
	defer release()

	qs, err := m.oracle.GenerateAssessment(ctx, oracle.AssessmentRequest{Spec: ia.Spec, Lang: s.Language()})
	if err != nil {
		m.log.Warn("placement questions unavailable", "session_id", s.ID(), "spec", ia.Spec, "error", err)
		return nil, fmt.Errorf("%w: %w", assessment.ErrContentUnavailable, err)
	}

	e, err := assessment.New(qs)
	if err != nil {
		m.log.Warn("placement questions unusable", "session_id", s.ID(), "spec", ia.Spec, "count", len(qs), "error", err)
		return nil, err
	}
	if err := s.AttachAssessment(ia.Spec, e); err != nil {
		return nil, err
	}
	m.log.Info("placement started", "session_id", s.ID(), "spec", ia.Spec)
	return e, nil
}

// FinishPlacement scores the finished assessment and opens the dashboard.
func (m *Service) FinishPlacement(ctx context.Context, s *session.Session) (assessment.Result, error) {
	e, err := s.Engine()
	if err != nil {
		return assessment.Result{}, err
	}
	res, err := e.Result()
	if err != nil {
		return assessment.Result{}, err
	}
	if err := s.CompleteAssessment(res); err != nil {
		return assessment.Result{}, err
	}

	// A new level or track invalidates the cached task.
	w := m.workFor(s.ID())
	m.mu.Lock()
	w.task, w.feedback = nil, nil
	m.mu.Unlock()

	m.log.Info("placement finished", "session_id", s.ID(), "score", res.Score, "level", res.Level)
	return res, nil
}

func dashboardUser(s *session.Session, event string) (*session.User, catalog.Specialization, error) {
	if _, ok := s.State().(session.Dashboard); !ok {
		return nil, "", &session.TransitionError{From: s.Kind(), Event: event}
	}
	u := s.User()
	spec, ok := u.Track()
	if !ok {
		return nil, "", ErrNoTask
	}
	return u, spec, nil
}

// DailyTask returns the current task, generating one when none is cached.
func (m *Service) DailyTask(ctx context.Context, s *session.Session) (*oracle.Task, error) {
	u, spec, err := dashboardUser(s, "daily_task")
	if err != nil {
		return nil, err
	}

	w := m.workFor(s.ID())
	m.mu.Lock()
	cached := w.task
	m.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	release, err := s.Begin(session.ActionDailyTask)
	if err != nil {
		return nil, err
	}
	defer release()

	task, err := m.oracle.GenerateDailyTask(ctx, oracle.TaskRequest{Spec: spec, Level: u.Level, Lang: s.Language()})
	if task == nil {
		if err == nil {
			err = errors.New("empty task")
		}
		m.log.Warn("daily task unavailable", "session_id", s.ID(), "spec", spec, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNoTask, err)
	}

	m.mu.Lock()
	w.task, w.feedback = task, nil
	m.mu.Unlock()
	return task, nil
}

// CurrentTask returns the cached task and any pending feedback.
func (m *Service) CurrentTask(sessionID string) (*oracle.Task, *oracle.Feedback) {
	w := m.workFor(sessionID)
	m.mu.Lock()
	defer m.mu.Unlock()
	return w.task, w.feedback
}

// Submit reviews text against the current task. Blank text never reaches
// the oracle. On an oracle failure the fallback feedback is returned with
// the error and nothing is held for Confirm.
func (m *Service) Submit(ctx context.Context, s *session.Session, text string) (*oracle.Feedback, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptySubmission
	}
	_, spec, err := dashboardUser(s, "submit")
	if err != nil {
		return nil, err
	}

	w := m.workFor(s.ID())
	m.mu.Lock()
	task := w.task
	m.mu.Unlock()
	if task == nil {
		return nil, ErrNoTask
	}

	release, err := s.Begin(session.ActionSubmit)
	if err != nil {
		return nil, err
	}
	defer release()

	fb, err := m.oracle.AnalyzeSubmission(ctx, oracle.SubmissionRequest{
		Spec:       spec,
		TaskTitle:  task.Title,
		Submission: text,
		Lang:       s.Language(),
	})
	if err != nil {
		m.log.Warn("submission review failed", "session_id", s.ID(), "task", task.Title, "error", err)
		if fb == nil {
			fb = oracle.FallbackFeedback()
		}
		return fb, err
	}

	m.mu.Lock()
	w.feedback = fb
	m.mu.Unlock()
	return fb, nil
}

// Confirm records the reviewed task in the user's history and clears it so
// the next DailyTask fetches a fresh one.
func (m *Service) Confirm(ctx context.Context, s *session.Session) error {
	w := m.workFor(s.ID())
	m.mu.Lock()
	task, fb := w.task, w.feedback
	m.mu.Unlock()
	if task == nil || fb == nil {
		return ErrNoFeedback
	}

	if err := s.CompleteTask(task.Title, fb.Feedback, fb.Score); err != nil {
		return err
	}

	m.mu.Lock()
	w.task, w.feedback = nil, nil
	m.mu.Unlock()
	m.log.Info("task completed", "session_id", s.ID(), "task", task.Title, "score", fb.Score)
	return nil
}

// Chat sends msg to the mentor and appends both sides to the transcript.
// The reply is returned even when it is the fallback.
func (m *Service) Chat(ctx context.Context, s *session.Session, msg string) (string, error) {
	u := s.User()
	spec, ok := u.Track()
	if !ok {
		return "", ErrChatUnavailable
	}
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return "", ErrEmptyMessage
	}

	release, err := s.Begin(session.ActionChat)
	if err != nil {
		return "", err
	}
	defer release()

	w := m.workFor(s.ID())
	m.mu.Lock()
	w.transcript = append(w.transcript, ChatMessage{Role: RoleUser, Text: msg, At: m.now()})
	m.mu.Unlock()

	lang := s.Language()
	reply, err := m.oracle.Chat(ctx, oracle.ChatRequest{Spec: spec, Message: msg, Lang: lang})
	if err != nil {
		m.log.Warn("mentor chat failed", "session_id", s.ID(), "error", err)
		if reply == "" {
			reply = oracle.FallbackChatReply(lang)
		}
	}

	m.mu.Lock()
	w.transcript = append(w.transcript, ChatMessage{Role: RoleMentor, Text: reply, At: m.now()})
	m.mu.Unlock()
	return reply, err
}

// Transcript returns a copy of the session's chat history.
func (m *Service) Transcript(sessionID string) []ChatMessage {
	w := m.workFor(sessionID)
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ChatMessage(nil), w.transcript...)
}

// PreviewItem is the sample task generated for one track.
type PreviewItem struct {
	Spec catalog.Specialization
	Task *oracle.Task
	Err  error
}

// previewConcurrency bounds parallel oracle calls in Preview.
const previewConcurrency = 4

// Preview generates one daily task per track concurrently. Failures are
// reported per item; the call itself fails only if ctx is cancelled.
func (m *Service) Preview(ctx context.Context, specs []catalog.Specialization, level int, lang catalog.Language) ([]PreviewItem, error) {
	items := make([]PreviewItem, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(previewConcurrency)

	for i, spec := range specs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			task, err := m.oracle.GenerateDailyTask(gctx, oracle.TaskRequest{Spec: spec, Level: level, Lang: lang})
			if task == nil && err == nil {
				err = ErrNoTask
			}
			items[i] = PreviewItem{Spec: spec, Task: task, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}
