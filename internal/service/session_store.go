package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"edu-guidance/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps assessment sessions keyed by opaque id. Update must
// apply the mutation atomically per id: two concurrent updates for the same
// session may interleave in any order but never observe a half-applied
// state.
type SessionStore interface {
	Create(ctx context.Context, session domain.AssessmentSession) error
	Get(ctx context.Context, id string) (domain.AssessmentSession, error)
	Update(ctx context.Context, id string, mutate func(*domain.AssessmentSession) error) (domain.AssessmentSession, error)
	Count(ctx context.Context) (int, error)
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.AssessmentSession
}

// NewMemorySessionStore returns a process-local store, used when redis is
// not configured and in tests.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]domain.AssessmentSession)}
}

func (s *memorySessionStore) Create(_ context.Context, session domain.AssessmentSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (domain.AssessmentSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return domain.AssessmentSession{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *memorySessionStore) Update(_ context.Context, id string, mutate func(*domain.AssessmentSession) error) (domain.AssessmentSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return domain.AssessmentSession{}, ErrSessionNotFound
	}
	if err := mutate(&session); err != nil {
		return domain.AssessmentSession{}, err
	}
	s.sessions[id] = session
	return session, nil
}

func (s *memorySessionStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions), nil
}

// redisKV is the subset of the redis client the store needs; narrowed for
// testability.
type redisKV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
}

type redisSessionStore struct {
	client redisKV
	prefix string
	ttl    time.Duration

	// Per-id locks serialize read-modify-write cycles within this process.
	// Entries are refcounted and evicted once the last holder releases, so
	// the map does not accumulate locks for expired sessions.
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewRedisSessionStore stores sessions as JSON values with a sliding TTL.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisSessionStore{
		client: client,
		prefix: "career:session:",
		ttl:    ttl,
		locks:  make(map[string]*sessionLock),
	}
}

func (s *redisSessionStore) acquire(id string) *sessionLock {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()
	l.mu.Lock()
	return l
}

func (s *redisSessionStore) release(id string, l *sessionLock) {
	l.mu.Unlock()
	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, id)
	}
	s.mu.Unlock()
}

func (s *redisSessionStore) Create(ctx context.Context, session domain.AssessmentSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.prefix+session.ID, payload, s.ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (domain.AssessmentSession, error) {
	raw, err := s.client.Get(ctx, s.prefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return domain.AssessmentSession{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.AssessmentSession{}, err
	}
	var session domain.AssessmentSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return domain.AssessmentSession{}, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return session, nil
}

func (s *redisSessionStore) Update(ctx context.Context, id string, mutate func(*domain.AssessmentSession) error) (domain.AssessmentSession, error) {
	lock := s.acquire(id)
	defer s.release(id, lock)

	session, err := s.Get(ctx, id)
	if err != nil {
		return domain.AssessmentSession{}, err
	}
	if err := mutate(&session); err != nil {
		return domain.AssessmentSession{}, err
	}
	if err := s.Create(ctx, session); err != nil {
		return domain.AssessmentSession{}, err
	}
	return session, nil
}

func (s *redisSessionStore) Count(ctx context.Context) (int, error) {
	keys, err := s.client.Keys(ctx, s.prefix+"*").Result()
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
