package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"launchpad/pkg/requestcontext"
)

func TestWithClock(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("WAT", 3600))

	var seen []time.Time
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = append(seen, requestcontext.Now(r.Context()), requestcontext.Now(r.Context()))
	})

	WithClock(func() time.Time { return fixed })(next).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if assert.Len(t, seen, 2) {
		assert.True(t, seen[0].Equal(fixed))
		assert.Equal(t, time.UTC, seen[0].Location())
		assert.Equal(t, seen[0], seen[1], "one timestamp per request")
	}
}

func TestMiddlewareUsesWallClock(t *testing.T) {
	before := time.Now()
	var got time.Time
	Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = requestcontext.Now(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, got.Before(before.Truncate(time.Second)))
	assert.WithinDuration(t, time.Now(), got, time.Second)
}
