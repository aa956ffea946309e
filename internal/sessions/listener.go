package sessions

import (
	"context"
	"time"

	"github.com/abhisek/educareer/internal/logger"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/store"
)

// TransitionObserver counts state changes.
type TransitionObserver interface {
	ObserveTransition(event, to string)
}

const recordTimeout = 2 * time.Second

// RecordTransitions returns a listener that appends every transition to
// repo and reports it to obs. Either may be nil. Store failures are
// logged and never fail the transition.
func RecordTransitions(repo store.TransitionRepo, obs TransitionObserver, log *logger.Logger) session.Listener {
	if log == nil {
		log = logger.Nop()
	}
	return func(t session.Transition) {
		if obs != nil {
			obs.ObserveTransition(t.Event, string(t.To))
		}
		log.Debug("session transition", "session_id", t.SessionID, "event", t.Event, "from", t.From, "to", t.To)
		if repo == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		err := repo.AppendTransition(ctx, store.TransitionEventData{
			SessionID: t.SessionID,
			Event:     t.Event,
			From:      string(t.From),
			To:        string(t.To),
			UserID:    t.UserID,
		})
		if err != nil {
			log.Warn("failed to record transition", "session_id", t.SessionID, "event", t.Event, "error", err)
		}
	}
}
