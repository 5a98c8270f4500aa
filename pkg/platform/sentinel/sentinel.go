// Package sentinel holds the infrastructure errors stores and adapters
// return, optionally wrapped. Services translate them into domain errors;
// input validation uses pkg/domain-errors directly.
package sentinel

import "errors"

var (
	// ErrNotFound: the addressed session or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: an identifier is already taken.
	ErrConflict = errors.New("already exists")
	// ErrUnavailable: a backend could not be reached or answered with 5xx.
	ErrUnavailable = errors.New("unavailable")
)
