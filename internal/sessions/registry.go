// Package sessions keeps the live learner sessions of a server, in memory
// or backed by Redis.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/educareer/internal/session"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

// Registry creates, finds and persists sessions. Save must be called after
// mutating a session for the change to survive a restart of a persistent
// backend.
type Registry interface {
	Create(ctx context.Context) (*session.Session, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error
	Delete(ctx context.Context, id string) error
}

// Observer is told when sessions are opened and closed. Closed covers
// explicit deletes as well as idle expiry.
type Observer interface {
	SessionOpened(id string)
	SessionClosed(id string)
}

type observers []Observer

func (obs observers) SessionOpened(id string) {
	for _, o := range obs {
		o.SessionOpened(id)
	}
}

func (obs observers) SessionClosed(id string) {
	for _, o := range obs {
		o.SessionClosed(id)
	}
}

type options struct {
	ttl      time.Duration
	observer observers
	session  []session.Option
	now      func() time.Time
}

// Option configures a registry.
type Option func(*options)

// WithTTL sets the idle expiry. Non-positive values keep the default.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithObserver reports session open and close events to obs. It may be
// given more than once.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = append(o.observer, obs)
		}
	}
}

// WithSessionOptions is applied to every created or restored session.
func WithSessionOptions(opts ...session.Option) Option {
	return func(o *options) { o.session = append(o.session, opts...) }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{ttl: DefaultTTL, now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
