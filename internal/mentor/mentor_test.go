package mentor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/oracle"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/sessions"
)

// placed walks a fresh session through login and a full correct
// placement on spec.
func placed(t *testing.T, m *Service, spec catalog.Specialization) *session.Session {
	t.Helper()
	ctx := context.Background()
	s := session.New(session.WithLanguage(catalog.English))
	if err := s.SelectSpecialization(spec); err != nil {
		t.Fatalf("SelectSpecialization: %v", err)
	}
	if err := s.Authenticate(session.Credentials{}); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if _, err := m.StartPlacement(ctx, s); err != nil {
		t.Fatalf("StartPlacement: %v", err)
	}
	for i, a := range oracle.CorrectAnswers() {
		if err := s.RecordAnswer(i, a); err != nil {
			t.Fatalf("RecordAnswer(%d): %v", i, err)
		}
		if _, err := s.Advance(); err != nil {
			t.Fatalf("Advance(%d): %v", i, err)
		}
	}
	if _, err := m.FinishPlacement(ctx, s); err != nil {
		t.Fatalf("FinishPlacement: %v", err)
	}
	return s
}

func TestPlacement_AllCorrectReachesAdvanced(t *testing.T) {
	m := New(oracle.NewFake(), nil)
	s := placed(t, m, catalog.Finance)

	u := s.User()
	if s.Kind() != session.KindDashboard {
		t.Fatalf("state = %s, want dashboard", s.Kind())
	}
	if u.Level != 3 || u.AssessmentScore == nil || *u.AssessmentScore != 10 {
		t.Fatalf("level = %d, score = %v", u.Level, u.AssessmentScore)
	}
	if spec, _ := u.Track(); spec != catalog.Finance {
		t.Fatalf("track = %q, want finance", spec)
	}
}

func TestStartPlacement_ShortSetIsUnavailable(t *testing.T) {
	f := oracle.NewFake()
	f.QuestionCount = 4
	m := New(f, nil)

	s := session.New()
	_ = s.SelectSpecialization(catalog.Accounting)
	_ = s.Authenticate(session.Credentials{})

	_, err := m.StartPlacement(context.Background(), s)
	if !errors.Is(err, assessment.ErrContentUnavailable) {
		t.Fatalf("expected ErrContentUnavailable, got %v", err)
	}
	if _, err := s.Engine(); !errors.Is(err, session.ErrAssessmentNotLoaded) {
		t.Fatalf("engine attached after a short set: %v", err)
	}
	if s.Busy(session.ActionAssessment) {
		t.Fatal("assessment action still in flight")
	}
}

func TestStartPlacement_OracleFailure(t *testing.T) {
	f := oracle.NewFake()
	f.AssessmentErr = oracle.ErrUnavailable
	m := New(f, nil)

	s := session.New()
	_ = s.SelectSpecialization(catalog.Accounting)
	_ = s.Authenticate(session.Credentials{})

	_, err := m.StartPlacement(context.Background(), s)
	if !errors.Is(err, assessment.ErrContentUnavailable) || !errors.Is(err, oracle.ErrUnavailable) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStartPlacement_WrongState(t *testing.T) {
	m := New(oracle.NewFake(), nil)
	_, err := m.StartPlacement(context.Background(), session.New())

	var te *session.TransitionError
	if !errors.As(err, &te) || te.From != session.KindAnonymous {
		t.Fatalf("expected transition error from anonymous, got %v", err)
	}
}

func TestDailyTask_CachedUntilConfirmed(t *testing.T) {
	f := oracle.NewFake()
	m := New(f, nil)
	s := placed(t, m, catalog.Finance)
	ctx := context.Background()

	t1, err := m.DailyTask(ctx, s)
	if err != nil {
		t.Fatalf("DailyTask: %v", err)
	}
	t2, _ := m.DailyTask(ctx, s)
	if t1 != t2 || f.Calls("GenerateDailyTask") != 1 {
		t.Fatalf("task not cached: calls = %d", f.Calls("GenerateDailyTask"))
	}

	if _, err := m.Submit(ctx, s, "My report"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := m.Confirm(ctx, s); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	u := s.User()
	if len(u.CompletedTasks) != 1 {
		t.Fatalf("completed = %d, want 1", len(u.CompletedTasks))
	}
	if got := u.CompletedTasks[0]; got.Title != t1.Title || got.Score != 85 {
		t.Fatalf("unexpected completed task: %+v", got)
	}
	if err := m.Confirm(ctx, s); !errors.Is(err, ErrNoFeedback) {
		t.Fatalf("second confirm: %v", err)
	}

	if _, err := m.DailyTask(ctx, s); err != nil {
		t.Fatalf("DailyTask after confirm: %v", err)
	}
	if f.Calls("GenerateDailyTask") != 2 {
		t.Fatalf("calls = %d, want a fresh task", f.Calls("GenerateDailyTask"))
	}
}

func TestDailyTask_Unavailable(t *testing.T) {
	f := oracle.NewFake()
	m := New(f, nil)
	s := placed(t, m, catalog.Finance)
	f.TaskErr = oracle.ErrMalformed

	_, err := m.DailyTask(context.Background(), s)
	if !errors.Is(err, ErrNoTask) || !errors.Is(err, oracle.ErrMalformed) {
		t.Fatalf("unexpected error: %v", err)
	}
	if task, _ := m.CurrentTask(s.ID()); task != nil {
		t.Fatal("failed call cached a task")
	}
}

func TestSubmit_EmptyNeverReachesOracle(t *testing.T) {
	f := oracle.NewFake()
	m := New(f, nil)
	s := placed(t, m, catalog.Finance)
	_, _ = m.DailyTask(context.Background(), s)

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := m.Submit(context.Background(), s, text); !errors.Is(err, ErrEmptySubmission) {
			t.Fatalf("Submit(%q) = %v", text, err)
		}
	}
	if f.Calls("AnalyzeSubmission") != 0 {
		t.Fatalf("oracle called %d times", f.Calls("AnalyzeSubmission"))
	}
}

func TestSubmit_NeedsTask(t *testing.T) {
	m := New(oracle.NewFake(), nil)
	s := placed(t, m, catalog.Finance)
	if _, err := m.Submit(context.Background(), s, "work"); !errors.Is(err, ErrNoTask) {
		t.Fatalf("expected ErrNoTask, got %v", err)
	}
}

func TestSubmit_FailureIsNotConfirmable(t *testing.T) {
	f := oracle.NewFake()
	m := New(f, nil)
	s := placed(t, m, catalog.Finance)
	ctx := context.Background()
	_, _ = m.DailyTask(ctx, s)

	f.FeedbackErr = oracle.ErrUnavailable
	fb, err := m.Submit(ctx, s, "work")
	if !errors.Is(err, oracle.ErrUnavailable) {
		t.Fatalf("expected error, got %v", err)
	}
	if fb == nil || fb.Feedback != oracle.FallbackFeedbackText || fb.Score != 0 {
		t.Fatalf("unexpected fallback: %+v", fb)
	}
	if err := m.Confirm(ctx, s); !errors.Is(err, ErrNoFeedback) {
		t.Fatalf("confirm after failure: %v", err)
	}
	if len(s.User().CompletedTasks) != 0 {
		t.Fatal("failed review was recorded")
	}
}

func TestChat(t *testing.T) {
	f := oracle.NewFake()
	m := New(f, nil)
	ctx := context.Background()

	guest := session.New()
	if _, err := m.Chat(ctx, guest, "hello"); !errors.Is(err, ErrChatUnavailable) {
		t.Fatalf("guest chat: %v", err)
	}

	s := placed(t, m, catalog.Accounting)
	if _, err := m.Chat(ctx, s, "  "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("empty chat: %v", err)
	}

	reply, err := m.Chat(ctx, s, " How do I start? ")
	if err != nil || reply != "[accounting] How do I start?" {
		t.Fatalf("reply = %q, %v", reply, err)
	}

	f.ChatErr = oracle.ErrUnavailable
	reply, err = m.Chat(ctx, s, "again")
	if err == nil || reply != oracle.FallbackChatReply(catalog.English) {
		t.Fatalf("fallback reply = %q, %v", reply, err)
	}

	tr := m.Transcript(s.ID())
	if len(tr) != 4 {
		t.Fatalf("transcript length = %d, want 4", len(tr))
	}
	if tr[0].Role != RoleUser || tr[1].Role != RoleMentor || tr[3].Text != reply {
		t.Fatalf("unexpected transcript: %+v", tr)
	}

	m.Forget(s.ID())
	if len(m.Transcript(s.ID())) != 0 {
		t.Fatal("transcript kept after Forget")
	}
}

func TestPreview(t *testing.T) {
	f := oracle.NewFake()
	m := New(f, nil)
	specs := []catalog.Specialization{catalog.Accounting, catalog.Finance, catalog.DigitalMarketing, catalog.ProjectManagement, catalog.Entrepreneurship}

	items, err := m.Preview(context.Background(), specs, 2, catalog.English)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(items) != len(specs) {
		t.Fatalf("items = %d", len(items))
	}
	for i, it := range items {
		if it.Spec != specs[i] || it.Task == nil || it.Err != nil {
			t.Errorf("item %d: %+v", i, it)
		}
	}
	if f.Calls("GenerateDailyTask") != len(specs) {
		t.Fatalf("calls = %d", f.Calls("GenerateDailyTask"))
	}
}

func TestPreview_ReportsFailuresPerItem(t *testing.T) {
	f := oracle.NewFake()
	f.TaskErr = oracle.ErrUnavailable
	m := New(f, nil)

	items, err := m.Preview(context.Background(), []catalog.Specialization{catalog.Finance}, 1, catalog.Arabic)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !errors.Is(items[0].Err, oracle.ErrUnavailable) {
		t.Fatalf("item error = %v", items[0].Err)
	}
}

// blockingOracle holds GenerateAssessment until release is closed.
type blockingOracle struct {
	*oracle.Fake
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (b *blockingOracle) GenerateAssessment(ctx context.Context, req oracle.AssessmentRequest) ([]assessment.Question, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.Fake.GenerateAssessment(ctx, req)
}

func TestStartPlacement_TrackChangedWhileLoading(t *testing.T) {
	o := &blockingOracle{Fake: oracle.NewFake(), started: make(chan struct{}), release: make(chan struct{})}
	m := New(o, nil)

	s := session.New()
	_ = s.SelectSpecialization(catalog.Finance)
	_ = s.Authenticate(session.Credentials{})

	errc := make(chan error, 1)
	go func() {
		_, err := m.StartPlacement(context.Background(), s)
		errc <- err
	}()
	<-o.started
	if err := s.Browse(); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectSpecialization(catalog.Accounting); err != nil {
		t.Fatal(err)
	}
	close(o.release)

	var te *session.TransitionError
	if err := <-errc; !errors.As(err, &te) {
		t.Fatalf("StartPlacement: got %v", err)
	}
	if _, err := s.Engine(); !errors.Is(err, session.ErrAssessmentNotLoaded) {
		t.Fatalf("finance questions attached to the accounting placement: %v", err)
	}

	e, err := m.StartPlacement(context.Background(), s)
	if err != nil {
		t.Fatalf("StartPlacement on the new track: %v", err)
	}
	if q := e.CurrentQuestion().Question; q != "Question 1 about accounting" {
		t.Errorf("question = %q", q)
	}
}

func TestExpiredSessionIsForgotten(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m := New(oracle.NewFake(), nil)
	reg := sessions.NewMemory(
		sessions.WithTTL(time.Hour),
		sessions.WithObserver(m),
		sessions.WithClock(func() time.Time { return now }),
	)

	s, err := reg.Create(ctx)
	if err != nil {
		t.Fatal(err)
	}
	other := placed(t, m, catalog.Finance)
	_ = s.SelectSpecialization(catalog.Finance)
	_ = s.Authenticate(session.Credentials{})
	if _, err := m.StartPlacement(ctx, s); err != nil {
		t.Fatal(err)
	}
	for i, a := range oracle.CorrectAnswers() {
		_ = s.RecordAnswer(i, a)
		_, _ = s.Advance()
	}
	if _, err := m.FinishPlacement(ctx, s); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Chat(ctx, s, "hello"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Chat(ctx, other, "hello"); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := reg.Get(ctx, s.ID()); !errors.Is(err, sessions.ErrNotFound) {
		t.Fatalf("Get after expiry: %v", err)
	}
	if n := len(m.Transcript(s.ID())); n != 0 {
		t.Errorf("expired transcript kept %d lines", n)
	}
	if n := len(m.Transcript(other.ID())); n != 2 {
		t.Errorf("unrelated transcript = %d lines, want 2", n)
	}
}
