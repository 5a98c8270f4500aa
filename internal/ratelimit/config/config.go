// Package config holds the auth lockout policy.
package config

import "time"

// AuthLockoutConfig bounds failed Account-step attempts per email.
type AuthLockoutConfig struct {
	// Threshold is the number of failures inside Window that triggers a lock.
	Threshold int
	// Window is the sliding period failures are counted in, measured from the first failure.
	Window time.Duration
	// LockDuration is how long a triggered lock lasts.
	LockDuration time.Duration
}

// DefaultAuthLockout matches the service defaults: 5 failures in 15 minutes locks for 15 minutes.
func DefaultAuthLockout() AuthLockoutConfig {
	return AuthLockoutConfig{
		Threshold:    5,
		Window:       15 * time.Minute,
		LockDuration: 15 * time.Minute,
	}
}

// Normalize replaces non-positive values with defaults.
func (c AuthLockoutConfig) Normalize() AuthLockoutConfig {
	def := DefaultAuthLockout()
	if c.Threshold <= 0 {
		c.Threshold = def.Threshold
	}
	if c.Window <= 0 {
		c.Window = def.Window
	}
	if c.LockDuration <= 0 {
		c.LockDuration = c.Window
	}
	return c
}
