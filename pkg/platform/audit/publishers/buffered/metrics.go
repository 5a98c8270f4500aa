package buffered

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the buffered audit publisher.
type Metrics struct {
	Published             prometheus.Counter
	Sampled               prometheus.Counter
	BufferDropped         prometheus.Counter
	CircuitBreakerDropped prometheus.Counter
	WriteFailures         prometheus.Counter
	CircuitBreakerState   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Published: factory.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_audit_published_total",
			Help: "Total number of audit events written to the sink",
		}),
		Sampled: factory.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_audit_sampled_total",
			Help: "Total number of operations audit events dropped by sampling",
		}),
		BufferDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_audit_buffer_dropped_total",
			Help: "Total number of audit events evicted from a full buffer",
		}),
		CircuitBreakerDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_audit_circuit_breaker_dropped_total",
			Help: "Total number of audit events dropped while the sink circuit was open",
		}),
		WriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_audit_write_failures_total",
			Help: "Total number of failed audit sink writes",
		}),
		CircuitBreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "launchpad_audit_circuit_breaker_state",
			Help: "Current sink circuit breaker state (0=closed/healthy, 1=open/unhealthy)",
		}),
	}
}

func (m *Metrics) AddPublished(n int) {
	m.Published.Add(float64(n))
}

func (m *Metrics) IncSampled() {
	m.Sampled.Inc()
}

func (m *Metrics) IncBufferDropped() {
	m.BufferDropped.Inc()
}

func (m *Metrics) AddCircuitBreakerDropped(n int) {
	m.CircuitBreakerDropped.Add(float64(n))
}

func (m *Metrics) IncWriteFailures() {
	m.WriteFailures.Inc()
}

func (m *Metrics) SetCircuitBreakerState(open bool) {
	if open {
		m.CircuitBreakerState.Set(1)
	} else {
		m.CircuitBreakerState.Set(0)
	}
}
