package session

import (
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
)

// Defaults applied by Authenticate to blank credentials.
const (
	DefaultName  = "طالب EduCareer"
	DefaultEmail = "user@educareer.com"
)

// Transition describes one state change, delivered to listeners after
// the session lock is released.
type Transition struct {
	SessionID string
	Event     string
	From      Kind
	To        Kind
	UserID    string
	At        time.Time
}

// Listener is notified of every successful transition.
type Listener func(Transition)

// Credentials are the stub login fields. Blank fields get defaults.
type Credentials struct {
	Name  string `json:"name" validate:"omitempty,max=120"`
	Email string `json:"email" validate:"omitempty,email,max=254"`
}

// Option configures a Session.
type Option func(*Session)

// WithID sets the session id instead of generating one.
func WithID(id string) Option { return func(s *Session) { s.id = id } }

// WithCatalog sets the catalog used to resolve specializations.
func WithCatalog(c *catalog.Catalog) Option { return func(s *Session) { s.catalog = c } }

// WithLanguage sets the initial session language.
func WithLanguage(l catalog.Language) Option { return func(s *Session) { s.lang = l } }

// WithListener registers a transition listener.
func WithListener(l Listener) Option {
	return func(s *Session) { s.listeners = append(s.listeners, l) }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option { return func(s *Session) { s.now = now } }

// Session is the state machine of one learner's visit. Methods are safe
// to call from multiple goroutines but events are applied one at a time.
type Session struct {
	mu         sync.Mutex
	id         string
	lang       catalog.Language
	state      State
	catalog    *catalog.Catalog
	inflight   map[Action]uint64
	generation uint64
	listeners  []Listener
	now        func() time.Time
	validate   *validator.Validate
}

// New creates an Anonymous session.
func New(opts ...Option) *Session {
	s := &Session{
		id:       uuid.New().String(),
		lang:     catalog.DefaultLanguage,
		state:    Anonymous{},
		inflight: make(map[Action]uint64),
		now:      time.Now,
		validate: validator.New(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Catalog returns the catalog the session resolves tracks against.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// State returns the current state. The User pointer inside is live; use
// Snapshot for a detached copy.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Kind returns the kind of the current state.
func (s *Session) Kind() Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Kind()
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.user().Clone()
}

// Pending returns the specialization chosen before login that has not
// yet been consumed by a completed assessment.
func (s *Session) Pending() (catalog.Specialization, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pendingOf(s.state)
}

func pendingOf(st State) (catalog.Specialization, bool) {
	switch st := st.(type) {
	case Authenticating:
		if st.Pending != nil {
			return *st.Pending, true
		}
	case InAssessment:
		if st.FromPending {
			return st.Spec, true
		}
	}
	return "", false
}

// Language returns the session language.
func (s *Session) Language() catalog.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetLanguage changes the session and user language.
func (s *Session) SetLanguage(l catalog.Language) {
	s.mu.Lock()
	s.lang = l
	if u := s.state.user(); u != nil {
		u.Language = l
	}
	s.mu.Unlock()
}

// ToggleLanguage flips between Arabic and English and returns the new
// language.
func (s *Session) ToggleLanguage() catalog.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = s.lang.Toggle()
	if u := s.state.user(); u != nil {
		u.Language = s.lang
	}
	return s.lang
}

// Browse opens the catalog, keeping the user if any. A pending selection
// or an unfinished assessment is abandoned.
func (s *Session) Browse() error {
	return s.apply("browse", func(st State) (State, error) {
		return Browsing{User: st.user()}, nil
	})
}

// BeginLogin moves a guest to the login form.
func (s *Session) BeginLogin() error {
	return s.apply("begin_login", func(st State) (State, error) {
		switch st := st.(type) {
		case Anonymous:
			return Authenticating{}, nil
		case Browsing:
			if st.User == nil {
				return Authenticating{}, nil
			}
		case Authenticating:
			return st, nil
		}
		return nil, illegal(st, "begin_login")
	})
}

// SelectSpecialization commits to a track from the landing page or the
// catalog. Guests are sent to login with the choice held as pending;
// authenticated users go straight to placement.
func (s *Session) SelectSpecialization(spec catalog.Specialization) error {
	if !s.catalog.Has(spec) {
		return ErrUnknownSpecialization
	}
	return s.apply("select_specialization", func(st State) (State, error) {
		switch st := st.(type) {
		case Anonymous:
			return Authenticating{Pending: &spec}, nil
		case Browsing:
			if st.User == nil {
				return Authenticating{Pending: &spec}, nil
			}
			return InAssessment{User: st.User, Spec: spec, FromPending: true}, nil
		case NoTrack:
			return InAssessment{User: st.User, Spec: spec, FromPending: true}, nil
		case Dashboard:
			return InAssessment{User: st.User, Spec: spec, FromPending: true}, nil
		}
		return nil, illegal(st, "select_specialization")
	})
}

// Authenticate is the stub login. It always succeeds for valid input and
// creates a level 1 user with no history.
func (s *Session) Authenticate(c Credentials) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if err := s.validate.Struct(c); err != nil {
		return newValidationError(err)
	}
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Email == "" {
		c.Email = DefaultEmail
	}

	return s.apply("authenticate", func(st State) (State, error) {
		auth, ok := st.(Authenticating)
		if !ok {
			return nil, illegal(st, "authenticate")
		}
		u := &User{
			ID:             uuid.New().String(),
			Name:           c.Name,
			Email:          c.Email,
			Level:          1,
			CompletedTasks: []CompletedTask{},
			Language:       s.lang,
		}
		if auth.Pending != nil {
			return InAssessment{User: u, Spec: *auth.Pending, FromPending: true}, nil
		}
		return NoTrack{User: u}, nil
	})
}

// AttachAssessment stores the loaded question engine on the running
// assessment. spec is the track the questions were generated for; if the
// running assessment is for another track the engine is rejected.
func (s *Session) AttachAssessment(spec catalog.Specialization, e *assessment.Engine) error {
	return s.apply("attach_assessment", func(st State) (State, error) {
		ia, ok := st.(InAssessment)
		if !ok || ia.Spec != spec {
			return nil, illegal(st, "attach_assessment")
		}
		ia.Engine = e
		return ia, nil
	})
}

// RecordAnswer records an answer on the attached engine.
func (s *Session) RecordAnswer(questionIndex, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.engineLocked("record_answer")
	if err != nil {
		return err
	}
	return e.RecordAnswer(questionIndex, optionIndex)
}

// Advance moves the attached engine to the next question.
func (s *Session) Advance() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.engineLocked("advance")
	if err != nil {
		return false, err
	}
	return e.Advance()
}

// Engine returns the attached engine of the running assessment.
func (s *Session) Engine() (*assessment.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engineLocked("engine")
}

func (s *Session) engineLocked(event string) (*assessment.Engine, error) {
	ia, ok := s.state.(InAssessment)
	if !ok {
		return nil, illegal(s.state, event)
	}
	if ia.Engine == nil {
		return nil, ErrAssessmentNotLoaded
	}
	return ia.Engine, nil
}

// CompleteAssessment places the user on the assessed track and level and
// opens the dashboard. The pending selection is consumed.
func (s *Session) CompleteAssessment(r assessment.Result) error {
	if r.Level < 1 || r.Level > catalog.RoadmapLevels || r.Score < 0 || r.Score > assessment.QuestionCount {
		return ErrInvalidResult
	}
	return s.apply("complete_assessment", func(st State) (State, error) {
		ia, ok := st.(InAssessment)
		if !ok {
			return nil, illegal(st, "complete_assessment")
		}
		spec := ia.Spec
		score := r.Score
		ia.User.SelectedSpecialization = &spec
		ia.User.Level = r.Level
		ia.User.AssessmentScore = &score
		return Dashboard{User: ia.User}, nil
	})
}

// CompleteTask appends a completed task to the user's history. The state,
// level and track are unchanged.
func (s *Session) CompleteTask(title, feedback string, score float64) error {
	if strings.TrimSpace(title) == "" {
		return ErrInvalidTask
	}
	return s.apply("complete_task", func(st State) (State, error) {
		d, ok := st.(Dashboard)
		if !ok {
			return nil, illegal(st, "complete_task")
		}
		d.User.CompletedTasks = append(d.User.CompletedTasks, CompletedTask{
			Title:       title,
			Feedback:    feedback,
			Score:       score,
			CompletedAt: s.now(),
		})
		return d, nil
	})
}

// Retake starts a new placement test on the user's current track. The
// task history is kept; level and score are overwritten on completion.
func (s *Session) Retake() error {
	return s.apply("retake", func(st State) (State, error) {
		switch st.(type) {
		case InAssessment:
			return nil, illegal(st, "retake")
		case Authenticating:
			return nil, &GuardError{Redirect: RouteAuth, Reason: "login required"}
		}
		u := st.user()
		if u == nil {
			return Authenticating{}, &GuardError{Redirect: RouteAuth, Reason: "login required"}
		}
		spec, ok := u.Track()
		if !ok {
			return Browsing{User: u}, &GuardError{Redirect: RouteDiscover, Reason: "no specialization selected"}
		}
		return InAssessment{User: u, Spec: spec}, nil
	})
}

// Logout discards the user and returns to the landing state.
func (s *Session) Logout() error {
	err := s.apply("logout", func(st State) (State, error) {
		if st.user() == nil {
			return nil, illegal(st, "logout")
		}
		return Anonymous{}, nil
	})
	if err == nil {
		s.mu.Lock()
		clear(s.inflight)
		s.mu.Unlock()
	}
	return err
}

// apply runs fn against the current state under the lock. fn returns the
// next state; a non-nil state with a GuardError is still applied as the
// redirect target.
func (s *Session) apply(event string, fn func(State) (State, error)) error {
	s.mu.Lock()
	from := s.state
	next, err := fn(from)
	if next == nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	t := Transition{
		SessionID: s.id,
		Event:     event,
		From:      from.Kind(),
		To:        next.Kind(),
		At:        s.now(),
	}
	if u := next.user(); u != nil {
		t.UserID = u.ID
	} else if u := from.user(); u != nil {
		t.UserID = u.ID
	}
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(t)
	}
	return err
}

func illegal(st State, event string) error {
	return &TransitionError{From: st.Kind(), Event: event}
}
