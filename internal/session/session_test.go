package session

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
)

var fixedNow = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

func newTestSession(opts ...Option) *Session {
	return New(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func testQuestions() []assessment.Question {
	qs := make([]assessment.Question, assessment.QuestionCount)
	for i := range qs {
		qs[i] = assessment.Question{
			Question:           "q",
			Options:            []string{"a", "b", "c"},
			CorrectAnswerIndex: 1,
			Difficulty:         assessment.Intermediate,
		}
	}
	return qs
}

// dashboardSession walks a fresh session to the dashboard on spec.
func dashboardSession(t *testing.T, spec catalog.Specialization, level int) *Session {
	t.Helper()
	s := newTestSession()
	if err := s.SelectSpecialization(spec); err != nil {
		t.Fatalf("SelectSpecialization: %v", err)
	}
	if err := s.Authenticate(Credentials{}); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if err := s.CompleteAssessment(assessment.Result{Score: 5, Level: level, Label: "Intermediate"}); err != nil {
		t.Fatalf("CompleteAssessment: %v", err)
	}
	return s
}

func TestSelectWhileAnonymous_PendingThroughAssessment(t *testing.T) {
	s := newTestSession()

	if err := s.SelectSpecialization(catalog.Finance); err != nil {
		t.Fatalf("SelectSpecialization: %v", err)
	}
	if s.Kind() != KindAuthenticating {
		t.Fatalf("state = %s, want authenticating", s.Kind())
	}
	if p, ok := s.Pending(); !ok || p != catalog.Finance {
		t.Fatalf("pending = (%q, %v), want finance", p, ok)
	}

	if err := s.Authenticate(Credentials{Name: "Mona", Email: "mona@example.com"}); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	ia, ok := s.State().(InAssessment)
	if !ok {
		t.Fatalf("state = %s, want in_assessment", s.Kind())
	}
	if ia.Spec != catalog.Finance {
		t.Errorf("assessment spec = %q, want finance", ia.Spec)
	}
	if p, ok := s.Pending(); !ok || p != catalog.Finance {
		t.Errorf("pending cleared before completion: (%q, %v)", p, ok)
	}

	if err := s.CompleteAssessment(assessment.Result{Score: 8, Level: 3, Label: "Advanced"}); err != nil {
		t.Fatalf("CompleteAssessment: %v", err)
	}
	if s.Kind() != KindDashboard {
		t.Fatalf("state = %s, want dashboard", s.Kind())
	}
	if _, ok := s.Pending(); ok {
		t.Error("pending still set after completion")
	}
	u := s.User()
	if spec, _ := u.Track(); spec != catalog.Finance {
		t.Errorf("selected = %q", spec)
	}
	if u.Level != 3 || u.AssessmentScore == nil || *u.AssessmentScore != 8 {
		t.Errorf("user level/score = %d/%v", u.Level, u.AssessmentScore)
	}
}

func TestAuthenticate_DefaultsAndNoTrack(t *testing.T) {
	s := newTestSession(WithLanguage(catalog.English))
	if err := s.BeginLogin(); err != nil {
		t.Fatalf("BeginLogin: %v", err)
	}
	if err := s.Authenticate(Credentials{Name: "  ", Email: ""}); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if s.Kind() != KindNoTrack {
		t.Fatalf("state = %s, want no_track", s.Kind())
	}
	u := s.User()
	if u.Name != DefaultName || u.Email != DefaultEmail {
		t.Errorf("defaults not applied: %q %q", u.Name, u.Email)
	}
	if u.Level != 1 || len(u.CompletedTasks) != 0 || u.ID == "" {
		t.Errorf("unexpected new user: %+v", u)
	}
	if u.Language != catalog.English {
		t.Errorf("language = %q", u.Language)
	}
}

func TestAuthenticate_RejectsInvalidEmail(t *testing.T) {
	s := newTestSession()
	_ = s.BeginLogin()
	err := s.Authenticate(Credentials{Email: "not-an-email"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if ve.Fields["Email"] != "email" {
		t.Errorf("fields = %v", ve.Fields)
	}
	if s.Kind() != KindAuthenticating {
		t.Errorf("state changed to %s", s.Kind())
	}
}

func TestAuthenticate_OnlyFromAuthenticating(t *testing.T) {
	s := newTestSession()
	err := s.Authenticate(Credentials{})
	var te *TransitionError
	if !errors.As(err, &te) || te.From != KindAnonymous {
		t.Fatalf("got %v, want TransitionError from anonymous", err)
	}
}

func TestSelectSpecialization_AuthenticatedGoesToAssessment(t *testing.T) {
	s := newTestSession()
	_ = s.BeginLogin()
	_ = s.Authenticate(Credentials{})
	if err := s.Browse(); err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if err := s.SelectSpecialization(catalog.Accounting); err != nil {
		t.Fatalf("SelectSpecialization: %v", err)
	}
	ia, ok := s.State().(InAssessment)
	if !ok || ia.Spec != catalog.Accounting || ia.User == nil {
		t.Fatalf("state = %#v", s.State())
	}
}

func TestSelectSpecialization_Unknown(t *testing.T) {
	s := newTestSession()
	if err := s.SelectSpecialization(catalog.Investment); !errors.Is(err, ErrUnknownSpecialization) {
		t.Fatalf("got %v, want ErrUnknownSpecialization", err)
	}
	if s.Kind() != KindAnonymous {
		t.Errorf("state = %s", s.Kind())
	}
}

func TestCompleteTask_AppendsOnly(t *testing.T) {
	s := dashboardSession(t, catalog.DigitalMarketing, 2)
	before := s.User()

	if err := s.CompleteTask("X", "good job", 90); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	u := s.User()
	if len(u.CompletedTasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(u.CompletedTasks))
	}
	got := u.CompletedTasks[0]
	if got.Title != "X" || got.Feedback != "good job" || got.Score != 90 {
		t.Errorf("task = %+v", got)
	}
	if !got.CompletedAt.Equal(fixedNow) {
		t.Errorf("completedAt = %v", got.CompletedAt)
	}
	if u.Level != before.Level || *u.SelectedSpecialization != *before.SelectedSpecialization {
		t.Error("level or specialization changed")
	}
	if s.Kind() != KindDashboard {
		t.Errorf("state = %s", s.Kind())
	}
}

func TestCompleteTask_RequiresDashboard(t *testing.T) {
	s := newTestSession()
	_ = s.BeginLogin()
	_ = s.Authenticate(Credentials{})
	var te *TransitionError
	if err := s.CompleteTask("X", "f", 1); !errors.As(err, &te) {
		t.Fatalf("got %v, want TransitionError", err)
	}
	s2 := dashboardSession(t, catalog.Finance, 1)
	if err := s2.CompleteTask(" ", "f", 1); !errors.Is(err, ErrInvalidTask) {
		t.Errorf("blank title: got %v", err)
	}
}

func TestCompleteAssessment_OnlyInAssessment(t *testing.T) {
	s := newTestSession()
	err := s.CompleteAssessment(assessment.Result{Score: 1, Level: 1})
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("got %v, want TransitionError", err)
	}
}

func TestCompleteAssessment_InvalidResult(t *testing.T) {
	s := newTestSession()
	_ = s.SelectSpecialization(catalog.Finance)
	_ = s.Authenticate(Credentials{})
	for _, r := range []assessment.Result{{Score: 3, Level: 0}, {Score: 11, Level: 3}, {Score: -1, Level: 1}} {
		if err := s.CompleteAssessment(r); !errors.Is(err, ErrInvalidResult) {
			t.Errorf("%+v: got %v", r, err)
		}
	}
}

func TestRetake_KeepsHistoryOverwritesLevel(t *testing.T) {
	s := dashboardSession(t, catalog.Finance, 1)
	_ = s.CompleteTask("first", "ok", 70)

	if err := s.Retake(); err != nil {
		t.Fatalf("Retake: %v", err)
	}
	ia, ok := s.State().(InAssessment)
	if !ok || ia.Spec != catalog.Finance || ia.FromPending {
		t.Fatalf("state = %#v", s.State())
	}
	if _, ok := s.Pending(); ok {
		t.Error("retake should not report a pending selection")
	}
	if err := s.CompleteAssessment(assessment.Result{Score: 9, Level: 3, Label: "Advanced"}); err != nil {
		t.Fatal(err)
	}
	u := s.User()
	if u.Level != 3 || *u.AssessmentScore != 9 {
		t.Errorf("level/score = %d/%d", u.Level, *u.AssessmentScore)
	}
	if len(u.CompletedTasks) != 1 || u.CompletedTasks[0].Title != "first" {
		t.Errorf("history lost: %+v", u.CompletedTasks)
	}
}

func TestRetake_Guards(t *testing.T) {
	s := newTestSession()
	err := s.Retake()
	var ge *GuardError
	if !errors.As(err, &ge) || ge.Redirect != RouteAuth {
		t.Fatalf("anonymous: got %v", err)
	}
	if s.Kind() != KindAuthenticating {
		t.Errorf("anonymous redirect state = %s", s.Kind())
	}

	_ = s.Authenticate(Credentials{})
	err = s.Retake()
	if !errors.As(err, &ge) || ge.Redirect != RouteDiscover {
		t.Fatalf("no track: got %v", err)
	}
	if b, ok := s.State().(Browsing); !ok || b.User == nil {
		t.Errorf("no-track redirect state = %#v", s.State())
	}
}

func TestRetake_KeepsPendingSelection(t *testing.T) {
	s := newTestSession()
	_ = s.SelectSpecialization(catalog.Finance)

	err := s.Retake()
	var ge *GuardError
	if !errors.As(err, &ge) || ge.Redirect != RouteAuth {
		t.Fatalf("retake while authenticating: got %v", err)
	}
	if spec, ok := s.Pending(); !ok || spec != catalog.Finance {
		t.Fatalf("pending = %q, %v", spec, ok)
	}
	_ = s.Authenticate(Credentials{})
	if ia, ok := s.State().(InAssessment); !ok || ia.Spec != catalog.Finance {
		t.Errorf("state after login = %#v", s.State())
	}
}

func TestRetake_WhileRunningKeepsAnswers(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) *Session
	}{
		{"first placement", func(t *testing.T) *Session {
			s := newTestSession()
			_ = s.SelectSpecialization(catalog.Finance)
			_ = s.Authenticate(Credentials{})
			return s
		}},
		{"retake in progress", func(t *testing.T) *Session {
			s := dashboardSession(t, catalog.Finance, 2)
			if err := s.Retake(); err != nil {
				t.Fatalf("Retake: %v", err)
			}
			return s
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.setup(t)
			e, _ := assessment.New(testQuestions())
			if err := s.AttachAssessment(catalog.Finance, e); err != nil {
				t.Fatal(err)
			}
			_ = s.RecordAnswer(0, 1)

			var te *TransitionError
			if err := s.Retake(); !errors.As(err, &te) {
				t.Fatalf("Retake: got %v", err)
			}
			got, err := s.Engine()
			if err != nil || got != e {
				t.Fatalf("engine lost: %v", err)
			}
			if a, ok := e.Answer(0); !ok || a != 1 {
				t.Errorf("answer = %d, %v", a, ok)
			}
		})
	}
}

func TestSelectSpecialization_FromAuthenticatedStates(t *testing.T) {
	noTrack := newTestSession()
	_ = noTrack.BeginLogin()
	_ = noTrack.Authenticate(Credentials{})

	tests := []struct {
		name string
		s    *Session
	}{
		{"no track", noTrack},
		{"dashboard", dashboardSession(t, catalog.Finance, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.SelectSpecialization(catalog.Accounting); err != nil {
				t.Fatalf("SelectSpecialization: %v", err)
			}
			ia, ok := tt.s.State().(InAssessment)
			if !ok || ia.Spec != catalog.Accounting || ia.User == nil || !ia.FromPending {
				t.Fatalf("state = %#v", tt.s.State())
			}
		})
	}
}

func TestAttachAssessment_RejectsOtherTrack(t *testing.T) {
	s := newTestSession()
	_ = s.SelectSpecialization(catalog.Finance)
	_ = s.Authenticate(Credentials{})
	_ = s.Browse()
	_ = s.SelectSpecialization(catalog.Accounting)

	e, _ := assessment.New(testQuestions())
	var te *TransitionError
	if err := s.AttachAssessment(catalog.Finance, e); !errors.As(err, &te) {
		t.Fatalf("stale attach: got %v", err)
	}
	if _, err := s.Engine(); !errors.Is(err, ErrAssessmentNotLoaded) {
		t.Errorf("engine after stale attach: %v", err)
	}
}

func TestLogout(t *testing.T) {
	s := dashboardSession(t, catalog.Finance, 2)
	release, _ := s.Begin(ActionChat)
	_ = release

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.Kind() != KindAnonymous || s.User() != nil {
		t.Fatalf("state = %s user = %v", s.Kind(), s.User())
	}
	if s.Busy(ActionChat) {
		t.Error("in-flight flags survived logout")
	}
	var te *TransitionError
	if err := s.Logout(); !errors.As(err, &te) {
		t.Errorf("second logout: got %v", err)
	}
}

func TestAssessmentWrappers(t *testing.T) {
	s := newTestSession()
	_ = s.SelectSpecialization(catalog.Finance)
	_ = s.Authenticate(Credentials{})

	if err := s.RecordAnswer(0, 0); !errors.Is(err, ErrAssessmentNotLoaded) {
		t.Fatalf("before attach: got %v", err)
	}
	e, err := assessment.New(testQuestions())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AttachAssessment(catalog.Finance, e); err != nil {
		t.Fatalf("AttachAssessment: %v", err)
	}
	if _, err := s.Advance(); !errors.Is(err, assessment.ErrUnanswered) {
		t.Errorf("advance unanswered: got %v", err)
	}
	for i := range assessment.QuestionCount {
		if err := s.RecordAnswer(i, 1); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	eng, _ := s.Engine()
	r, err := eng.Result()
	if err != nil || r.Score != 10 {
		t.Fatalf("result = %+v, %v", r, err)
	}
}

// Random event sequences must never yield InAssessment or Dashboard
// without a user, nor InAssessment without a specialization.
func TestGuardInvariant_RandomSequences(t *testing.T) {
	specs := []catalog.Specialization{catalog.Finance, catalog.Accounting, catalog.Investment}
	rng := rand.New(rand.NewPCG(1, 2))

	for run := range 200 {
		s := newTestSession()
		for step := range 40 {
			switch rng.IntN(9) {
			case 0:
				_ = s.SelectSpecialization(specs[rng.IntN(len(specs))])
			case 1:
				_ = s.Authenticate(Credentials{})
			case 2:
				lvl, label := assessment.LevelFor(rng.IntN(11))
				_ = s.CompleteAssessment(assessment.Result{Score: rng.IntN(11), Level: lvl, Label: label})
			case 3:
				_ = s.CompleteTask("t", "f", 50)
			case 4:
				_ = s.Logout()
			case 5:
				_ = s.Browse()
			case 6:
				_ = s.BeginLogin()
			case 7:
				_ = s.Retake()
			case 8:
				s.ToggleLanguage()
			}

			switch st := s.State().(type) {
			case InAssessment:
				if st.User == nil || st.Spec == "" {
					t.Fatalf("run %d step %d: invalid assessment state %#v", run, step, st)
				}
			case Dashboard:
				if st.User == nil {
					t.Fatalf("run %d step %d: dashboard without user", run, step)
				}
				if _, ok := st.User.Track(); !ok {
					t.Fatalf("run %d step %d: dashboard without track", run, step)
				}
			case NoTrack:
				if st.User == nil {
					t.Fatalf("run %d step %d: no_track without user", run, step)
				}
			}
		}
	}
}

func TestListener_ReceivesTransitions(t *testing.T) {
	var got []Transition
	s := newTestSession(WithListener(func(tr Transition) { got = append(got, tr) }))
	_ = s.SelectSpecialization(catalog.Finance)
	_ = s.Authenticate(Credentials{})
	_ = s.Authenticate(Credentials{}) // illegal, not reported

	if len(got) != 2 {
		t.Fatalf("got %d transitions, want 2", len(got))
	}
	if got[0].From != KindAnonymous || got[0].To != KindAuthenticating || got[0].Event != "select_specialization" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].To != KindInAssessment || got[1].UserID == "" || got[1].SessionID != s.ID() {
		t.Errorf("second = %+v", got[1])
	}
}

func TestLanguage(t *testing.T) {
	s := dashboardSession(t, catalog.Finance, 1)
	if s.Language() != catalog.Arabic {
		t.Fatalf("default language = %q", s.Language())
	}
	if l := s.ToggleLanguage(); l != catalog.English {
		t.Errorf("toggle = %q", l)
	}
	if s.User().Language != catalog.English {
		t.Error("user language not updated")
	}
}

func TestBegin(t *testing.T) {
	s := newTestSession()
	release, err := s.Begin(ActionSubmit)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Begin(ActionSubmit); !errors.Is(err, ErrActionInFlight) {
		t.Errorf("duplicate Begin: got %v", err)
	}
	other, err := s.Begin(ActionChat)
	if err != nil {
		t.Errorf("independent action blocked: %v", err)
	}
	other()

	release()
	release()
	if s.Busy(ActionSubmit) {
		t.Error("still busy after release")
	}
	if _, err := s.Begin(ActionSubmit); err != nil {
		t.Errorf("Begin after release: %v", err)
	}
}

func TestBegin_StaleReleaseAfterLogout(t *testing.T) {
	s := dashboardSession(t, catalog.Finance, 1)
	stale, err := s.Begin(ActionChat)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Logout()

	fresh, err := s.Begin(ActionChat)
	if err != nil {
		t.Fatalf("Begin after logout: %v", err)
	}
	stale()
	if !s.Busy(ActionChat) {
		t.Fatal("stale release cleared the newer request")
	}
	fresh()
	if s.Busy(ActionChat) {
		t.Error("still busy after release")
	}
}

func TestToggleLanguage_Concurrent(t *testing.T) {
	s := newTestSession()
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ToggleLanguage()
		}()
	}
	wg.Wait()
	if s.Language() != catalog.Arabic {
		t.Errorf("after an even number of toggles language = %q", s.Language())
	}
}

func TestResolve(t *testing.T) {
	anon := newTestSession()

	noTrack := newTestSession()
	_ = noTrack.BeginLogin()
	_ = noTrack.Authenticate(Credentials{})

	inAssess := newTestSession()
	_ = inAssess.SelectSpecialization(catalog.Finance)
	_ = inAssess.Authenticate(Credentials{})

	dash := dashboardSession(t, catalog.Finance, 2)

	tests := []struct {
		name string
		s    *Session
		path string
		want Route
	}{
		{"anon home", anon, "/", RouteHome},
		{"anon discover", anon, "/discover", RouteDiscover},
		{"anon track", anon, "/discover/finance", TrackRoute(catalog.Finance)},
		{"anon unknown track", anon, "/discover/investment", RouteDiscover},
		{"anon dashboard", anon, "/dashboard", RouteAuth},
		{"anon tasks", anon, "/tasks", RouteAuth},
		{"anon projects", anon, "/projects", RouteAuth},
		{"anon portfolio", anon, "/portfolio", RouteAuth},
		{"anon assessment", anon, "/assessment", RouteAuth},
		{"anon unknown", anon, "/nowhere", RouteHome},
		{"anon deep unknown", anon, "/a/b/c", RouteHome},
		{"no track assessment", noTrack, "/assessment", RouteDiscover},
		{"no track dashboard", noTrack, "/dashboard", RouteDashboard},
		{"no track auth", noTrack, "/auth", RouteDashboard},
		{"in assessment dashboard", inAssess, "/dashboard", RouteAssessment},
		{"in assessment assessment", inAssess, "/assessment", RouteAssessment},
		{"dashboard assessment", dash, "/assessment", RouteAssessment},
		{"dashboard portfolio", dash, "/portfolio", Route{Page: PagePortfolio}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Resolve(ParseRoute(tt.path)); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRouteString(t *testing.T) {
	if RouteHome.String() != "/" || TrackRoute(catalog.Finance).String() != "/discover/finance" || RouteAuth.String() != "/auth" {
		t.Error("unexpected route paths")
	}
	if ParseRoute("#/discover/").Page != PageDiscover {
		t.Error("hash path not parsed")
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := newTestSession()
	_ = s.SelectSpecialization(catalog.Finance)
	_ = s.Authenticate(Credentials{Name: "Ali"})
	e, _ := assessment.New(testQuestions())
	_ = s.AttachAssessment(catalog.Finance, e)
	_ = s.RecordAnswer(0, 2)
	_, _ = s.Advance()

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	r, err := Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if r.ID() != s.ID() || r.Kind() != KindInAssessment {
		t.Fatalf("restored id/kind = %s/%s", r.ID(), r.Kind())
	}
	if p, ok := r.Pending(); !ok || p != catalog.Finance {
		t.Errorf("pending = %q %v", p, ok)
	}
	if r.User().Name != "Ali" {
		t.Errorf("user = %+v", r.User())
	}
	eng, err := r.Engine()
	if err != nil {
		t.Fatal(err)
	}
	if eng.Current() != 1 {
		t.Errorf("cursor = %d", eng.Current())
	}
	if a, ok := eng.Answer(0); !ok || a != 2 {
		t.Errorf("answer = %d %v", a, ok)
	}
}

func TestRestore_RejectsUnreachable(t *testing.T) {
	cases := []Snapshot{
		{ID: "1", Kind: KindDashboard},
		{ID: "1", Kind: KindInAssessment, User: &User{ID: "u"}},
		{ID: "1", Kind: KindDashboard, User: &User{ID: "u"}},
		{ID: "1", Kind: "weird"},
	}
	for _, c := range cases {
		if _, err := Restore(c); err == nil {
			t.Errorf("Restore(%+v) succeeded", c)
		}
	}
}

func TestBuildPortfolio(t *testing.T) {
	s := dashboardSession(t, catalog.Finance, 2)
	p := BuildPortfolio(s.User(), catalog.Default(), catalog.English)
	if p.CompletionPercent != 0 || p.Best != nil || p.AverageScore != 0 {
		t.Errorf("empty portfolio = %+v", p)
	}
	if p.TrackTitle != "Finance" || p.LevelLabel != "Intermediate" {
		t.Errorf("title/label = %q/%q", p.TrackTitle, p.LevelLabel)
	}

	for i := range 15 {
		_ = s.CompleteTask("t", "f", float64(60+i))
	}
	p = BuildPortfolio(s.User(), catalog.Default(), catalog.Arabic)
	if p.CompletionPercent != 50 {
		t.Errorf("percent = %d, want 50", p.CompletionPercent)
	}
	if p.Best == nil || p.Best.Score != 74 {
		t.Errorf("best = %+v", p.Best)
	}
	if p.TrackTitle != "المالية" {
		t.Errorf("arabic title = %q", p.TrackTitle)
	}

	for range 30 {
		_ = s.CompleteTask("t", "f", 90)
	}
	if p := BuildPortfolio(s.User(), catalog.Default(), catalog.English); p.CompletionPercent != 100 {
		t.Errorf("capped percent = %d", p.CompletionPercent)
	}
}

func TestProjects_Unlocks(t *testing.T) {
	u := &User{Level: 1}
	ps := Projects(u)
	if len(ps) != 3 {
		t.Fatalf("got %d projects", len(ps))
	}
	if !ps[0].Unlocked || ps[1].Unlocked || ps[2].Unlocked {
		t.Errorf("level 1 unlocks = %v %v %v", ps[0].Unlocked, ps[1].Unlocked, ps[2].Unlocked)
	}

	u.Level = 2
	for range 10 {
		u.CompletedTasks = append(u.CompletedTasks, CompletedTask{Title: "t", Score: 79})
	}
	ps = Projects(u)
	if !ps[1].Unlocked {
		t.Error("advanced project locked at level 2")
	}
	if ps[2].Unlocked {
		t.Error("group project unlocked below 80 average")
	}

	u.CompletedTasks = append(u.CompletedTasks, CompletedTask{Title: "t", Score: 100})
	if !Projects(u)[2].Unlocked {
		t.Error("group project locked with 11 tasks averaging above 80")
	}
}
