// Package authlockout limits repeated failed sign-in attempts per email on
// the onboarding Account step.
package authlockout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"launchpad/internal/ratelimit/config"
	"launchpad/internal/ratelimit/metrics"
	"launchpad/internal/ratelimit/models"
	dErrors "launchpad/pkg/domain-errors"
	"launchpad/pkg/platform/audit"
	"launchpad/pkg/requestcontext"
)

// Store persists failure counters and locks by key.
type Store interface {
	Get(ctx context.Context, key string) (*models.AuthLockout, error)
	RecordFailure(ctx context.Context, key string, window time.Duration) (*models.AuthLockout, error)
	Lock(ctx context.Context, key string, until time.Time) error
	Clear(ctx context.Context, key string) error
}

type Service struct {
	store          Store
	auditPublisher audit.Publisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	config         config.AuthLockoutConfig
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithConfig(cfg config.AuthLockoutConfig) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth lockout store is required")
	}
	svc := &Service{
		store:  store,
		config: config.DefaultAuthLockout(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.config = svc.config.Normalize()
	return svc, nil
}

// Check reports whether identifier may attempt authentication now.
func (s *Service) Check(ctx context.Context, identifier string) (*models.CheckResult, error) {
	key := models.NewAuthLockoutKey(identifier).String()
	record, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get auth lockout record")
	}
	if record == nil {
		record = &models.AuthLockout{}
	}

	now := requestcontext.Now(ctx)
	if record.IsLockedAt(now) {
		if s.metrics != nil {
			s.metrics.IncrementLockedRejections()
		}
		return &models.CheckResult{
			Allowed:      false,
			FailureCount: record.FailureCount,
			LockedUntil:  record.LockedUntil,
			RetryAfter:   record.LockedUntil.Sub(now),
		}, nil
	}

	return &models.CheckResult{
		Allowed:      true,
		FailureCount: record.FailureCount,
		Remaining:    record.RemainingAttempts(s.config.Threshold),
	}, nil
}

// RecordFailure counts a failed attempt and locks identifier once the
// threshold is reached inside the window.
func (s *Service) RecordFailure(ctx context.Context, identifier string) (*models.AuthLockout, error) {
	key := models.NewAuthLockoutKey(identifier).String()
	current, err := s.store.RecordFailure(ctx, key, s.config.Window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record auth failure")
	}
	if s.metrics != nil {
		s.metrics.IncrementAuthFailures()
	}

	now := requestcontext.Now(ctx)
	if !current.ShouldHardLock(s.config.Threshold) || current.IsLockedAt(now) {
		return current, nil
	}

	current.ApplyHardLock(s.config.LockDuration, now)
	if err := s.store.Lock(ctx, key, *current.LockedUntil); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock identifier")
	}
	if s.metrics != nil {
		s.metrics.IncrementAuthLockouts()
	}
	audit.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventAuthLockoutTriggered,
		"identifier", identifier,
		"reason", "too_many_failures",
		"locked_until", current.LockedUntil.Format(time.RFC3339),
	)
	return current, nil
}

// Clear forgets all failures for identifier after a successful sign-in.
func (s *Service) Clear(ctx context.Context, identifier string) error {
	key := models.NewAuthLockoutKey(identifier).String()
	existing, err := s.store.Get(ctx, key)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to get auth lockout record")
	}
	if existing == nil {
		return nil
	}
	if err := s.store.Clear(ctx, key); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear auth failures")
	}
	audit.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventAuthLockoutCleared,
		"identifier", identifier,
	)
	return nil
}
