package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad/pkg/platform/circuit"
	"launchpad/pkg/platform/sentinel"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveUpstream(_ string, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func TestPostJSON(t *testing.T) {
	t.Run("decodes a successful envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/login", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
		}))
		defer srv.Close()

		obs := &recordingObserver{}
		c := New("auth_api", srv.URL+"/api/", WithObserver(obs))
		var out envelope
		status, err := c.PostJSON(context.Background(), "/auth/login", map[string]string{"email": "a@b.co"}, &out)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, out.Success)
		assert.Equal(t, []string{"success"}, obs.outcomes)
	})

	t.Run("4xx envelope is decoded without error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
		}))
		defer srv.Close()

		var out envelope
		status, err := New("auth_api", srv.URL).PostJSON(context.Background(), "auth/login", struct{}{}, &out)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials", out.Message)
	})

	t.Run("5xx is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		var out envelope
		_, err := New("business_api", srv.URL).PostJSON(context.Background(), "businesses", struct{}{}, &out)
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})

	t.Run("garbage body is a decode error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer srv.Close()

		var out envelope
		_, err := New("business_api", srv.URL).PostJSON(context.Background(), "businesses", struct{}{}, &out)
		require.Error(t, err)
		assert.False(t, errors.Is(err, sentinel.ErrUnavailable))
	})

	t.Run("timeout is unavailable", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		var out envelope
		_, err := New("business_api", srv.URL, WithTimeout(20*time.Millisecond)).
			PostJSON(context.Background(), "businesses", struct{}{}, &out)
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})
}

func TestPostJSONOpenCircuitShortCircuits(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	breaker := circuit.New("business_api", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
	c := New("business_api", srv.URL, WithBreaker(breaker), WithObserver(obs))

	var out envelope
	for range 3 {
		_, err := c.PostJSON(context.Background(), "businesses", struct{}{}, &out)
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	}
	assert.Equal(t, 2, calls)
	assert.True(t, breaker.IsOpen())
	assert.Equal(t, []string{"server_error", "server_error", "circuit_open"}, obs.outcomes)
}
