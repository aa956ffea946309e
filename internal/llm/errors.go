package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRejected indicates the provider refused the request itself: a bad
// API key, an unknown model or a malformed request. Status is the HTTP
// status code.
type ErrRejected struct {
	Status int
	Err    error
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("LLM request rejected (%d): %v", e.Status, e.Err)
}

func (e *ErrRejected) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrContentFiltered indicates the provider withheld the reply on safety
// grounds. Reason is the provider's own label.
type ErrContentFiltered struct {
	Reason string
}

func (e *ErrContentFiltered) Error() string {
	return fmt.Sprintf("LLM response blocked by content filter (%s)", e.Reason)
}

// mapStatus classifies a provider API error by its HTTP status.
func mapStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status >= 500:
		return &ErrProviderUnavailable{Err: err}
	case status >= 400:
		return &ErrRejected{Status: status, Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// retryable reports whether another attempt could succeed. Invalid
// responses are retryable here; the retry decorator caps them separately.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var maxTok *ErrMaxTokensExceeded
	var filtered *ErrContentFiltered
	var rejected *ErrRejected
	switch {
	case errors.As(err, &maxTok), errors.As(err, &filtered), errors.As(err, &rejected):
		return false
	}
	// Rate limits, outages and network errors are transient.
	return true
}
