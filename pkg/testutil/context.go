package testutil

import (
	"context"
	"net/http"
	"time"

	"launchpad/pkg/requestcontext"
)

// WithActor adds a verified caller to the request context.
// This simulates what the auth middleware does for a valid bearer token.
func WithActor(req *http.Request, actor requestcontext.Actor) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), actor))
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
