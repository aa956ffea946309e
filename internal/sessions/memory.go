package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/educareer/internal/session"
)

type memoryEntry struct {
	s    *session.Session
	seen time.Time
}

// Memory is a process-local Registry. Idle sessions expire after the TTL.
type Memory struct {
	opts options

	mu      sync.Mutex
	entries map[string]*memoryEntry
}

// NewMemory creates an empty in-memory registry.
func NewMemory(opts ...Option) *Memory {
	return &Memory{opts: buildOptions(opts), entries: make(map[string]*memoryEntry)}
}

var _ Registry = (*Memory)(nil)

func (m *Memory) Create(ctx context.Context) (*session.Session, error) {
	s := session.New(m.opts.session...)

	m.mu.Lock()
	m.sweepLocked()
	m.entries[s.ID()] = &memoryEntry{s: s, seen: m.opts.now()}
	m.mu.Unlock()

	m.opts.observer.SessionOpened(s.ID())
	return s, nil
}

func (m *Memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.seen = m.opts.now()
	return e.s, nil
}

// Save refreshes the idle timer. The session itself is already live.
func (m *Memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[s.ID()]
	if !ok {
		return ErrNotFound
	}
	e.seen = m.opts.now()
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	m.opts.observer.SessionClosed(id)
	return nil
}

// Len returns the number of live sessions.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	return len(m.entries)
}

func (m *Memory) sweepLocked() {
	cutoff := m.opts.now().Add(-m.opts.ttl)
	for id, e := range m.entries {
		if e.seen.Before(cutoff) {
			delete(m.entries, id)
			m.opts.observer.SessionClosed(id)
		}
	}
}
