package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest(http.MethodPost, "/v1/onboarding/sessions/{sessionID}/next", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/v1/onboarding/sessions/{sessionID}/next", http.StatusUnprocessableEntity, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "/v1/onboarding/sessions/{sessionID}/next", "422")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}

func TestObserveUpstream(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveUpstream("business_api", "success", 100*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(m.UpstreamLatency))
}
