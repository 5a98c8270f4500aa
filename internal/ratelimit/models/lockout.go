// Package models holds auth lockout state.
package models

import "time"

// AuthLockout tracks failed authentication attempts for one identifier.
type AuthLockout struct {
	Identifier    string     `json:"identifier"`
	FailureCount  int        `json:"failure_count"` // failures in the current window
	WindowStart   time.Time  `json:"window_start"`
	LastFailureAt time.Time  `json:"last_failure_at"`
	LockedUntil   *time.Time `json:"locked_until,omitempty"`
}

// IsLockedAt reports whether a lock is in force at now.
func (l *AuthLockout) IsLockedAt(now time.Time) bool {
	return l.LockedUntil != nil && now.Before(*l.LockedUntil)
}

// ShouldHardLock reports whether the failure count has reached threshold.
func (l *AuthLockout) ShouldHardLock(threshold int) bool {
	return threshold > 0 && l.FailureCount >= threshold
}

// ApplyHardLock locks the identifier for d from now.
func (l *AuthLockout) ApplyHardLock(d time.Duration, now time.Time) {
	until := now.Add(d)
	l.LockedUntil = &until
}

// RemainingAttempts is how many more failures are tolerated before a lock.
func (l *AuthLockout) RemainingAttempts(threshold int) int {
	return max(threshold-l.FailureCount, 0)
}

// CheckResult is the outcome of a pre-authentication lockout check.
type CheckResult struct {
	Allowed      bool
	FailureCount int
	Remaining    int
	LockedUntil  *time.Time
	RetryAfter   time.Duration
}
