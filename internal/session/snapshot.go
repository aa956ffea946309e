package session

import (
	"fmt"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
)

// Snapshot is a detached, JSON-serializable copy of a session.
type Snapshot struct {
	ID         string                  `json:"id"`
	Language   catalog.Language        `json:"language"`
	Kind       Kind                    `json:"kind"`
	User       *User                   `json:"user,omitempty"`
	Pending    *catalog.Specialization `json:"pending,omitempty"`
	Assessment *AssessmentSnapshot     `json:"assessment,omitempty"`
}

// AssessmentSnapshot holds the progress of a running placement test.
type AssessmentSnapshot struct {
	Spec        catalog.Specialization `json:"spec"`
	FromPending bool                   `json:"fromPending"`
	Questions   []assessment.Question  `json:"questions,omitempty"`
	Answers     []int                  `json:"answers,omitempty"`
	Current     int                    `json:"current"`
	Finished    bool                   `json:"finished"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:       s.id,
		Language: s.lang,
		Kind:     s.state.Kind(),
		User:     s.state.user().Clone(),
	}
	if p, ok := pendingOf(s.state); ok {
		snap.Pending = &p
	}
	if ia, ok := s.state.(InAssessment); ok {
		as := &AssessmentSnapshot{Spec: ia.Spec, FromPending: ia.FromPending}
		if ia.Engine != nil {
			as.Questions = ia.Engine.Questions()
			as.Answers = ia.Engine.Answers()
			as.Current = ia.Engine.Current()
			as.Finished = ia.Engine.Finished()
		}
		snap.Assessment = as
	}
	return snap
}

// Restore rebuilds a session from a snapshot. The snapshot must describe
// a reachable state.
func Restore(snap Snapshot, opts ...Option) (*Session, error) {
	s := New(append([]Option{WithID(snap.ID)}, opts...)...)
	if snap.Language != "" {
		s.lang = snap.Language
	}
	u := snap.User.Clone()

	needUser := func() error {
		if u == nil {
			return fmt.Errorf("restore %s: missing user", snap.Kind)
		}
		return nil
	}

	switch snap.Kind {
	case KindAnonymous:
		s.state = Anonymous{}
	case KindBrowsing:
		s.state = Browsing{User: u}
	case KindAuthenticating:
		st := Authenticating{}
		if snap.Pending != nil {
			p := *snap.Pending
			st.Pending = &p
		}
		s.state = st
	case KindNoTrack:
		if err := needUser(); err != nil {
			return nil, err
		}
		s.state = NoTrack{User: u}
	case KindDashboard:
		if err := needUser(); err != nil {
			return nil, err
		}
		if _, ok := u.Track(); !ok {
			return nil, fmt.Errorf("restore dashboard: user has no specialization")
		}
		s.state = Dashboard{User: u}
	case KindInAssessment:
		if err := needUser(); err != nil {
			return nil, err
		}
		if snap.Assessment == nil || snap.Assessment.Spec == "" {
			return nil, fmt.Errorf("restore assessment: missing specialization")
		}
		as := snap.Assessment
		ia := InAssessment{User: u, Spec: as.Spec, FromPending: as.FromPending}
		if len(as.Questions) > 0 {
			e, err := assessment.Restore(as.Questions, as.Answers, as.Current, as.Finished)
			if err != nil {
				return nil, fmt.Errorf("restore assessment: %w", err)
			}
			ia.Engine = e
		}
		s.state = ia
	default:
		return nil, fmt.Errorf("restore: unknown state %q", snap.Kind)
	}
	return s, nil
}
