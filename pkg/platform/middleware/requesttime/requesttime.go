// Package requesttime stamps each request with a single "now", so session
// timestamps, lockout windows and audit events written while serving it agree.
package requesttime

import (
	"net/http"
	"time"

	"launchpad/pkg/requestcontext"
)

// Clock returns the current time.
type Clock func() time.Time

// Middleware stamps requests with the wall clock, in UTC.
func Middleware(next http.Handler) http.Handler {
	return WithClock(time.Now)(next)
}

// WithClock stamps requests using clock. Tests pass a fixed clock to pin
// session and audit timestamps.
func WithClock(clock Clock) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
