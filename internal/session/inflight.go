package session

// Action names an asynchronous request a session may have outstanding.
type Action string

const (
	ActionAssessment Action = "assessment"
	ActionDailyTask  Action = "daily_task"
	ActionSubmit     Action = "submit"
	ActionChat       Action = "chat"
)

// Begin marks action as in flight. The returned release func must be
// called when the request completes. A second Begin for the same action
// before release fails with ErrActionInFlight; other actions are not
// affected.
func (s *Session) Begin(action Action) (release func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[action]; busy {
		return nil, ErrActionInFlight
	}
	s.generation++
	gen := s.generation
	s.inflight[action] = gen

	// A release left over from before Logout must not clear a newer Begin.
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.inflight[action] == gen {
			delete(s.inflight, action)
		}
	}, nil
}

// Busy reports whether action is in flight.
func (s *Session) Busy(action Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inflight[action]
	return busy
}
