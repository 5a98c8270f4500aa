// Package authlockout stores failed authentication counters. Stores are pure
// I/O: lock decisions belong to the service.
package authlockout

import (
	"context"
	"sync"
	"time"

	"launchpad/internal/ratelimit/models"
	"launchpad/pkg/requestcontext"
)

// InMemoryAuthLockoutStore keeps lockout records in process memory. It suits
// single-instance deployments; use RedisStore when instances share traffic.
type InMemoryAuthLockoutStore struct {
	mu      sync.Mutex
	records map[string]*models.AuthLockout
}

func New() *InMemoryAuthLockoutStore {
	return &InMemoryAuthLockoutStore{
		records: make(map[string]*models.AuthLockout),
	}
}

// Get returns a copy of the record, or nil when none exists.
func (s *InMemoryAuthLockoutStore) Get(_ context.Context, key string) (*models.AuthLockout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return copyRecord(record), nil
}

// RecordFailure increments the failure count, starting a new window when the
// previous one has elapsed.
func (s *InMemoryAuthLockoutStore) RecordFailure(ctx context.Context, key string, window time.Duration) (*models.AuthLockout, error) {
	now := requestcontext.Now(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[key]
	if !ok {
		record = &models.AuthLockout{Identifier: key}
		s.records[key] = record
	}
	if record.FailureCount == 0 || !now.Before(record.WindowStart.Add(window)) {
		record.FailureCount = 0
		record.WindowStart = now
	}
	record.FailureCount++
	record.LastFailureAt = now
	return copyRecord(record), nil
}

// Lock sets the lock expiry, creating the record if needed.
func (s *InMemoryAuthLockoutStore) Lock(_ context.Context, key string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[key]
	if !ok {
		record = &models.AuthLockout{Identifier: key}
		s.records[key] = record
	}
	record.LockedUntil = &until
	return nil
}

func (s *InMemoryAuthLockoutStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// Prune drops records whose window and lock have both lapsed before cutoff.
func (s *InMemoryAuthLockoutStore) Prune(_ context.Context, cutoff time.Time, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, record := range s.records {
		if record.IsLockedAt(cutoff) || cutoff.Before(record.WindowStart.Add(window)) {
			continue
		}
		delete(s.records, key)
		removed++
	}
	return removed, nil
}

func copyRecord(r *models.AuthLockout) *models.AuthLockout {
	out := *r
	if r.LockedUntil != nil {
		until := *r.LockedUntil
		out.LockedUntil = &until
	}
	return &out
}
