// Package service is the onboarding step controller. It owns the session
// lifecycle, gates forward navigation, bridges the Account step to the
// authentication backend and runs the submission pipeline on leaving Review.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"

	"launchpad/internal/onboarding/metrics"
	"launchpad/internal/onboarding/models"
	"launchpad/internal/onboarding/wizard"
	id "launchpad/pkg/domain"
	dErrors "launchpad/pkg/domain-errors"
	"launchpad/pkg/platform/audit"
	"launchpad/pkg/platform/sentinel"
	"launchpad/pkg/requestcontext"
)

var tracer = otel.Tracer("launchpad/onboarding/service")

// DefaultRegisterRole is the role requested when the Account step registers
// a new user.
const DefaultRegisterRole = "business_owner"

type Service struct {
	store          SessionStore
	auth           Authenticator
	creator        BusinessCreator
	lockout        LockoutChecker
	auditPublisher audit.Publisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	registerRole   string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithLockout enables per-email throttling of failed sign-ins.
func WithLockout(l LockoutChecker) Option {
	return func(s *Service) {
		s.lockout = l
	}
}

func WithRegisterRole(role string) Option {
	return func(s *Service) {
		if role != "" {
			s.registerRole = role
		}
	}
}

func New(store SessionStore, auth Authenticator, creator BusinessCreator, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if auth == nil {
		return nil, errors.New("authenticator is required")
	}
	if creator == nil {
		return nil, errors.New("business creator is required")
	}
	svc := &Service{
		store:        store,
		auth:         auth,
		creator:      creator,
		logger:       slog.Default(),
		registerRole: DefaultRegisterRole,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Start opens a session for the caller. The caller's authentication state
// fixes the step topology for the session's lifetime.
func (s *Service) Start(ctx context.Context) (*wizard.View, error) {
	actor := requestcontext.ActorFrom(ctx)
	auth := wizard.AuthSession{
		Authenticated: actor.Authenticated(),
		UserID:        actor.UserID,
		Token:         actor.Token,
	}
	user := models.UserInformation{
		FullName: actor.FullName,
		Email:    actor.Email,
		Phone:    actor.Phone,
		City:     actor.City,
	}

	sess := wizard.NewSession(id.NewSessionID(), auth, user, requestcontext.Now(ctx))
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to start onboarding session")
	}
	view := wizard.NewView(sess)

	if s.metrics != nil {
		s.metrics.IncSessionsStarted(auth.Authenticated)
	}
	s.refreshActiveSessions(ctx)
	audit.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventSessionStarted,
		"session_id", sess.ID.String(),
		"user_id", auth.UserID,
		"total_steps", strconv.Itoa(sess.TotalSteps()),
	)
	return view, nil
}

// View returns the current read model of a session.
func (s *Service) View(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(*wizard.Session) error { return nil })
}

// Delete discards a session and everything it collected.
func (s *Service) Delete(ctx context.Context, sid id.SessionID) error {
	if err := s.store.Delete(ctx, sid); err != nil {
		return translateStoreError(err)
	}
	s.refreshActiveSessions(ctx)
	audit.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventSessionDeleted,
		"session_id", sid.String(),
	)
	return nil
}

// ExpireIdle drops sessions with no writes for ttl.
func (s *Service) ExpireIdle(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := requestcontext.Now(ctx).Add(-ttl)
	removed, err := s.store.DeleteIdle(ctx, cutoff)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to expire idle sessions")
	}
	if removed == 0 {
		return 0, nil
	}
	if s.metrics != nil {
		s.metrics.AddSessionsExpired(removed)
	}
	s.refreshActiveSessions(ctx)
	audit.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventSessionExpired,
		"count", strconv.Itoa(removed),
		"idle_cutoff", cutoff.Format(time.RFC3339),
	)
	return removed, nil
}

// mutate runs fn under the session lock and snapshots the result. The view
// is returned alongside fn's error so callers can render the session's
// general error.
func (s *Service) mutate(ctx context.Context, sid id.SessionID, fn func(*wizard.Session) error) (*wizard.View, error) {
	var view *wizard.View
	err := s.store.Execute(ctx, sid, func(sess *wizard.Session) error {
		fnErr := fn(sess)
		view = wizard.NewView(sess)
		return fnErr
	})
	if err != nil {
		return view, translateStoreError(err)
	}
	return view, nil
}

func (s *Service) refreshActiveSessions(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	if n, err := s.store.Count(ctx); err == nil {
		s.metrics.SetActiveSessions(n)
	}
}

func translateStoreError(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "onboarding session not found")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "onboarding session is busy")
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "onboarding session operation failed")
}
