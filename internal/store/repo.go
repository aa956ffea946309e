package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// TransitionEventData records one session state change.
type TransitionEventData struct {
	SessionID string
	Event     string
	From      string
	To        string
	UserID    string
}

// TransitionEvent is a stored TransitionEventData.
type TransitionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	TransitionEventData
}

// PurposeUsage aggregates LLM requests by purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ModelUsage aggregates LLM token usage by model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// TransitionRepo provides append access to session transition events.
type TransitionRepo interface {
	AppendTransition(ctx context.Context, data TransitionEventData) error
}
