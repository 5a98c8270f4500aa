package service

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Authenticator,BusinessCreator,LockoutChecker

import (
	"context"
	"time"

	"launchpad/internal/onboarding/models"
	"launchpad/internal/onboarding/wizard"
	rlmodels "launchpad/internal/ratelimit/models"
	id "launchpad/pkg/domain"
)

// Authenticator is the external authentication backend. A rejected
// credential is an AuthResult with Success false; an error means no answer.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error)
}

// BusinessCreator is the external business-creation endpoint.
type BusinessCreator interface {
	Create(ctx context.Context, payload models.BusinessPayload) (models.CreateBusinessResult, error)
}

// SessionStore holds in-progress sessions and serialises writers per session.
type SessionStore interface {
	Create(ctx context.Context, sess *wizard.Session) error
	Execute(ctx context.Context, sid id.SessionID, fn func(*wizard.Session) error) error
	Delete(ctx context.Context, sid id.SessionID) error
	DeleteIdle(ctx context.Context, cutoff time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

// LockoutChecker throttles repeated failed sign-ins per email.
type LockoutChecker interface {
	Check(ctx context.Context, identifier string) (*rlmodels.CheckResult, error)
	RecordFailure(ctx context.Context, identifier string) (*rlmodels.AuthLockout, error)
	Clear(ctx context.Context, identifier string) error
}
