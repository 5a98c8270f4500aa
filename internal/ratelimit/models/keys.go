package models

import "strings"

const lockoutKeyPrefix = "authlockout"

// SanitizeKeySegment escapes delimiter characters in key segments so a
// user-controlled identifier containing ':' cannot address another bucket.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// AuthLockoutKey identifies the lockout bucket for one login identifier.
type AuthLockoutKey string

// NewAuthLockoutKey normalises an email so case and surrounding whitespace do
// not produce separate buckets.
func NewAuthLockoutKey(identifier string) AuthLockoutKey {
	normalised := strings.ToLower(strings.TrimSpace(identifier))
	return AuthLockoutKey(lockoutKeyPrefix + ":" + SanitizeKeySegment(normalised))
}

func (k AuthLockoutKey) String() string {
	return string(k)
}
