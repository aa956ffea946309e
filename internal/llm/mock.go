package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockCall is one recorded Generate call.
type MockCall struct {
	Purpose Purpose
	Request Request
}

// MockProvider is a deterministic Provider for tests and the "mock"
// provider setting. Responses scripted for a purpose with On are served
// first; everything else comes from the shared FIFO queue.
type MockProvider struct {
	mu        sync.Mutex
	queue     []MockResponse
	byPurpose map[Purpose][]MockResponse
	calls     []MockCall
}

// NewMockProvider creates a MockProvider with the given queued responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses, byPurpose: make(map[Purpose][]MockResponse)}
}

// On scripts responses for calls labelled with p.
func (m *MockProvider) On(p Purpose, responses ...MockResponse) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPurpose[p] = append(m.byPurpose[p], responses...)
	return m
}

// AddResponse appends a response to the shared queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// Generate returns the next canned response for the call's purpose, or
// ErrProviderUnavailable when none is left.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Purpose: purpose, Request: req})

	var resp MockResponse
	switch {
	case len(m.byPurpose[purpose]) > 0:
		resp = m.byPurpose[purpose][0]
		m.byPurpose[purpose] = m.byPurpose[purpose][1:]
	case len(m.queue) > 0:
		resp = m.queue[0]
		m.queue = m.queue[1:]
	default:
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("no canned response for %s", purpose)}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// Calls returns a copy of the recorded calls.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
