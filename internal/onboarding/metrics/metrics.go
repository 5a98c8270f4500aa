package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the onboarding wizard's Prometheus collectors.
type Metrics struct {
	SessionsStarted    *prometheus.CounterVec
	SessionsExpired    prometheus.Counter
	ActiveSessions     prometheus.Gauge
	StepTransitions    *prometheus.CounterVec
	GateRejections     *prometheus.CounterVec
	AuthAttempts       *prometheus.CounterVec
	Submissions        *prometheus.CounterVec
	BusinessesCreated  prometheus.Counter
	SubmissionDuration prometheus.Histogram
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpad_onboarding_sessions_started_total",
			Help: "Total number of onboarding sessions started",
		}, []string{"authenticated"}),
		SessionsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_onboarding_sessions_expired_total",
			Help: "Total number of idle onboarding sessions discarded by the sweeper",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "launchpad_onboarding_sessions_active",
			Help: "Current number of onboarding sessions held in memory",
		}),
		StepTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpad_onboarding_step_transitions_total",
			Help: "Total number of wizard step transitions by direction and step left",
		}, []string{"direction", "from"}),
		GateRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpad_onboarding_gate_rejections_total",
			Help: "Total number of forward navigations refused by the validation gate",
		}, []string{"step"}),
		AuthAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpad_onboarding_auth_attempts_total",
			Help: "Total number of account step authentication attempts",
		}, []string{"intent", "outcome"}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpad_onboarding_submissions_total",
			Help: "Total number of submission pipeline runs by outcome",
		}, []string{"outcome"}),
		BusinessesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_onboarding_businesses_created_total",
			Help: "Total number of businesses confirmed by the business backend",
		}),
		SubmissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "launchpad_onboarding_submission_duration_seconds",
			Help:    "Duration of submission pipeline runs",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncSessionsStarted(authenticated bool) {
	m.SessionsStarted.WithLabelValues(boolLabel(authenticated)).Inc()
}

func (m *Metrics) AddSessionsExpired(n int) {
	m.SessionsExpired.Add(float64(n))
}

func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}

func (m *Metrics) IncStepTransition(direction, from string) {
	m.StepTransitions.WithLabelValues(direction, from).Inc()
}

func (m *Metrics) IncGateRejection(step string) {
	m.GateRejections.WithLabelValues(step).Inc()
}

func (m *Metrics) IncAuthAttempt(intent, outcome string) {
	m.AuthAttempts.WithLabelValues(intent, outcome).Inc()
}

// ObserveSubmission records one pipeline run and the businesses it confirmed.
func (m *Metrics) ObserveSubmission(outcome string, created int, elapsed time.Duration) {
	m.Submissions.WithLabelValues(outcome).Inc()
	m.BusinessesCreated.Add(float64(created))
	m.SubmissionDuration.Observe(elapsed.Seconds())
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
