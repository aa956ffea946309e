package session

import (
	"time"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
)

// Kind names a session state.
type Kind string

const (
	KindAnonymous      Kind = "anonymous"
	KindBrowsing       Kind = "browsing"
	KindAuthenticating Kind = "authenticating"
	KindNoTrack        Kind = "no_track"
	KindInAssessment   Kind = "in_assessment"
	KindDashboard      Kind = "dashboard"
)

// State is one of Anonymous, Browsing, Authenticating, NoTrack,
// InAssessment or Dashboard. The set is closed.
type State interface {
	Kind() Kind
	// user returns the live user, or nil for states without one.
	user() *User
}

// Anonymous is the landing state with no user.
type Anonymous struct{}

// Browsing shows the catalog. User is nil for guests.
type Browsing struct {
	User *User
}

// Authenticating shows the login form. Pending holds a specialization
// picked before login.
type Authenticating struct {
	Pending *catalog.Specialization
}

// NoTrack is an authenticated user who has not completed placement.
type NoTrack struct {
	User *User
}

// InAssessment is a placement test in progress for Spec. FromPending is
// set when Spec came from a selection, as opposed to a retake of the
// user's current track. Engine is nil until questions are attached.
type InAssessment struct {
	User        *User
	Spec        catalog.Specialization
	FromPending bool
	Engine      *assessment.Engine
}

// Dashboard is an authenticated user with a placed track. The track and
// level are read from the user.
type Dashboard struct {
	User *User
}

func (Anonymous) Kind() Kind      { return KindAnonymous }
func (Browsing) Kind() Kind       { return KindBrowsing }
func (Authenticating) Kind() Kind { return KindAuthenticating }
func (NoTrack) Kind() Kind        { return KindNoTrack }
func (InAssessment) Kind() Kind   { return KindInAssessment }
func (Dashboard) Kind() Kind      { return KindDashboard }

func (Anonymous) user() *User      { return nil }
func (s Browsing) user() *User     { return s.User }
func (Authenticating) user() *User { return nil }
func (s NoTrack) user() *User      { return s.User }
func (s InAssessment) user() *User { return s.User }
func (s Dashboard) user() *User    { return s.User }

// User is the learner of a session.
type User struct {
	ID                     string                  `json:"id"`
	Name                   string                  `json:"name"`
	Email                  string                  `json:"email"`
	SelectedSpecialization *catalog.Specialization `json:"selectedSpecialization,omitempty"`
	Level                  int                     `json:"level"`
	CompletedTasks         []CompletedTask         `json:"completedTasks"`
	AssessmentScore        *int                    `json:"assessmentScore,omitempty"`
	Language               catalog.Language        `json:"language"`
}

// CompletedTask is an immutable record of a finished daily task.
type CompletedTask struct {
	Title       string    `json:"title"`
	Feedback    string    `json:"feedback"`
	Score       float64   `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.SelectedSpecialization != nil {
		sp := *u.SelectedSpecialization
		c.SelectedSpecialization = &sp
	}
	if u.AssessmentScore != nil {
		sc := *u.AssessmentScore
		c.AssessmentScore = &sc
	}
	c.CompletedTasks = make([]CompletedTask, len(u.CompletedTasks))
	copy(c.CompletedTasks, u.CompletedTasks)
	return &c
}

// Track returns the selected specialization, if any.
func (u *User) Track() (catalog.Specialization, bool) {
	if u == nil || u.SelectedSpecialization == nil {
		return "", false
	}
	return *u.SelectedSpecialization, true
}
