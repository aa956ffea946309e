package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/educareer/internal/session"
)

// keyPrefix namespaces session snapshots in Redis.
const keyPrefix = "educareer:session:"

// Client is the subset of *redis.Client the registry uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Dial connects to Redis and checks the connection.
func Dial(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// Redis stores session snapshots in Redis with the TTL as key expiry.
// Live sessions are cached in process so in-flight guards and listeners
// survive between requests; Redis is authoritative for existence. A cached
// session not saved within the TTL has expired in Redis too and is dropped.
type Redis struct {
	client Client
	opts   options

	mu   sync.Mutex
	live map[string]*redisEntry
}

type redisEntry struct {
	s     *session.Session
	saved time.Time
}

// NewRedis creates a registry over client.
func NewRedis(client Client, opts ...Option) *Redis {
	return &Redis{client: client, opts: buildOptions(opts), live: make(map[string]*redisEntry)}
}

var _ Registry = (*Redis)(nil)

func key(id string) string { return keyPrefix + id }

func (r *Redis) Create(ctx context.Context) (*session.Session, error) {
	s := session.New(r.opts.session...)
	if err := r.put(ctx, s); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.sweepLocked()
	r.live[s.ID()] = &redisEntry{s: s, saved: r.opts.now()}
	r.mu.Unlock()

	r.opts.observer.SessionOpened(s.ID())
	return s, nil
}

func (r *Redis) Get(ctx context.Context, id string) (*session.Session, error) {
	raw, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.drop(id)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	if e, ok := r.live[id]; ok {
		return e.s, nil
	}

	var snap session.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	s, err := session.Restore(snap, r.opts.session...)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	r.live[id] = &redisEntry{s: s, saved: r.opts.now()}
	r.opts.observer.SessionOpened(id)
	return s, nil
}

// Save writes the session snapshot and resets its expiry.
func (r *Redis) Save(ctx context.Context, s *session.Session) error {
	if err := r.put(ctx, s); err != nil {
		return err
	}
	r.mu.Lock()
	if e, ok := r.live[s.ID()]; ok {
		e.saved = r.opts.now()
	}
	r.mu.Unlock()
	return nil
}

func (r *Redis) put(ctx context.Context, s *session.Session) error {
	raw, err := json.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID(), err)
	}
	if err := r.client.Set(ctx, key(s.ID()), raw, r.opts.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID(), err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	r.drop(id)
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// drop removes id from the live cache and reports it closed if it was
// cached.
func (r *Redis) drop(id string) {
	r.mu.Lock()
	_, cached := r.live[id]
	delete(r.live, id)
	r.mu.Unlock()
	if cached {
		r.opts.observer.SessionClosed(id)
	}
}

func (r *Redis) sweepLocked() {
	cutoff := r.opts.now().Add(-r.opts.ttl)
	for id, e := range r.live {
		if e.saved.Before(cutoff) {
			delete(r.live, id)
			r.opts.observer.SessionClosed(id)
		}
	}
}
