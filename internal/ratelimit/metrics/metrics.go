package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AuthFailures    prometheus.Counter
	AuthLockouts    prometheus.Counter
	LockedRejection prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_ratelimit_auth_failures_recorded_total",
			Help: "Total number of Account-step auth failures recorded for lockout",
		}),
		AuthLockouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_ratelimit_auth_lockouts_total",
			Help: "Total number of identifiers hard locked after repeated auth failures",
		}),
		LockedRejection: factory.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_ratelimit_auth_locked_rejections_total",
			Help: "Total number of auth attempts rejected because the identifier was locked",
		}),
	}
}

func (m *Metrics) IncrementAuthFailures() {
	m.AuthFailures.Inc()
}

func (m *Metrics) IncrementAuthLockouts() {
	m.AuthLockouts.Inc()
}

func (m *Metrics) IncrementLockedRejections() {
	m.LockedRejection.Inc()
}
