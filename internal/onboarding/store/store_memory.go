package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"launchpad/internal/onboarding/wizard"
	id "launchpad/pkg/domain"
	"launchpad/pkg/platform/sentinel"
	"launchpad/pkg/requestcontext"
)

// Error Contract:
// - Return sentinel.ErrNotFound when the session does not exist
// - Return sentinel.ErrConflict when creating a session whose ID is taken
// - Return ctx.Err() when the caller gives up waiting for a session lock

// entry pairs a session with its lock. The lock is a one-slot channel so that
// waiting for it can be abandoned when the request context ends.
type entry struct {
	lock    chan struct{}
	session *wizard.Session
}

func newEntry(sess *wizard.Session) *entry {
	return &entry{lock: make(chan struct{}, 1), session: sess}
}

func (e *entry) acquire(ctx context.Context) error {
	select {
	case e.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *entry) tryAcquire() bool {
	select {
	case e.lock <- struct{}{}:
		return true
	default:
		return false
	}
}

func (e *entry) release() { <-e.lock }

// InMemorySessionStore keeps onboarding sessions in process memory. Each
// session has exactly one writer at a time: Execute serialises callers per
// session while different sessions proceed independently.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*entry
}

func New() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[id.SessionID]*entry)}
}

func (s *InMemorySessionStore) Create(_ context.Context, sess *wizard.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[sess.ID]; exists {
		return fmt.Errorf("session %s: %w", sess.ID, sentinel.ErrConflict)
	}
	s.sessions[sess.ID] = newEntry(sess)
	return nil
}

// Execute runs fn with exclusive access to the session. The session's
// UpdatedAt is refreshed after fn returns, whatever its result.
func (s *InMemorySessionStore) Execute(ctx context.Context, sid id.SessionID, fn func(*wizard.Session) error) error {
	e, err := s.lookup(sid)
	if err != nil {
		return err
	}
	if err := e.acquire(ctx); err != nil {
		return err
	}
	defer e.release()

	err = fn(e.session)
	e.session.Touch(requestcontext.Now(ctx))
	return err
}

// Delete discards the session. A writer holding its lock finishes against the
// detached value.
func (s *InMemorySessionStore) Delete(_ context.Context, sid id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sid]; !ok {
		return fmt.Errorf("session %s: %w", sid, sentinel.ErrNotFound)
	}
	delete(s.sessions, sid)
	return nil
}

// DeleteIdle removes sessions with no writes since cutoff. Sessions whose lock
// is held are in use and skipped. The time is injected for testability.
func (s *InMemorySessionStore) DeleteIdle(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for sid, e := range s.sessions {
		if !e.tryAcquire() {
			continue
		}
		if e.session.IdleSince(cutoff) {
			delete(s.sessions, sid)
			deleted++
		}
		e.release()
	}
	return deleted, nil
}

func (s *InMemorySessionStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

func (s *InMemorySessionStore) lookup(sid id.SessionID) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sid]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sid, sentinel.ErrNotFound)
	}
	return e, nil
}
