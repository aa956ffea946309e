package llm

import (
	"context"
	"errors"
	"time"
)

// Recorder receives one observation per provider call.
type Recorder interface {
	ObserveLLMRequest(provider, purpose, outcome string, latency time.Duration, inputTokens, outputTokens int)
}

// Outcome labels reported to a Recorder.
const (
	OutcomeOK          = "ok"
	OutcomeRateLimited = "rate_limited"
	OutcomeInvalid     = "invalid_response"
	OutcomeUnavailable = "unavailable"
	OutcomeRejected    = "rejected"
	OutcomeFiltered    = "filtered"
	OutcomeCanceled    = "canceled"
	OutcomeError       = "error"
)

// MetricsProvider is a decorator that reports latency, outcome and token
// usage for every attempt.
type MetricsProvider struct {
	inner    Provider
	provider string
	rec      Recorder
}

// WithMetrics wraps a Provider with a Recorder.
func WithMetrics(p Provider, provider string, rec Recorder) Provider {
	return &MetricsProvider{inner: p, provider: provider, rec: rec}
}

func (m *MetricsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := m.inner.Generate(ctx, req)

	var in, out int
	if resp != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.rec.ObserveLLMRequest(m.provider, string(PurposeFrom(ctx)), Outcome(err), time.Since(start), in, out)
	return resp, err
}

func (m *MetricsProvider) ModelID() string {
	return m.inner.ModelID()
}

// Outcome classifies a Generate error into a low-cardinality label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var rl *ErrRateLimit
	var inv *ErrInvalidResponse
	var maxTok *ErrMaxTokensExceeded
	var unavail *ErrProviderUnavailable
	var rejected *ErrRejected
	var filtered *ErrContentFiltered
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	case errors.As(err, &rl):
		return OutcomeRateLimited
	case errors.As(err, &inv), errors.As(err, &maxTok):
		return OutcomeInvalid
	case errors.As(err, &unavail):
		return OutcomeUnavailable
	case errors.As(err, &rejected):
		return OutcomeRejected
	case errors.As(err, &filtered):
		return OutcomeFiltered
	}
	return OutcomeError
}
