package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"launchpad/internal/onboarding/models"
	"launchpad/internal/onboarding/wizard"
	id "launchpad/pkg/domain"
	dErrors "launchpad/pkg/domain-errors"
	"launchpad/pkg/platform/audit"
)

const (
	directionForward  = "forward"
	directionBackward = "backward"

	intentLogin    = "login"
	intentRegister = "register"

	msgAuthUnavailable = "authentication service is unavailable, please try again"
)

var gateMessages = map[wizard.Kind]string{
	wizard.KindAccount:       "complete your account details to continue",
	wizard.KindTypeSelection: "choose a business type to continue",
	wizard.KindBasicInfo:     "fill in the required business and branch details to continue",
	wizard.KindAppearance:    "add a hero title to continue",
	wizard.KindOperations:    "agree to the terms to continue",
}

// Next leaves the current step. On Account it signs the actor in, on Review
// it submits every business, on Launch it does nothing; elsewhere it advances
// when the step's gate passes. Authentication and submission failures are
// also recorded as the session's general error.
func (s *Service) Next(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		switch sess.CurrentKind() {
		case wizard.KindLaunch:
			return nil
		case wizard.KindReview:
			return s.submit(ctx, sess)
		case wizard.KindAccount:
			// The password is dropped on sign-in, so a revisited Account
			// step is not gated again.
			if sess.Auth.Authenticated {
				s.advance(sess)
				return nil
			}
			if !sess.CanProceed() {
				return s.rejectGate(sess)
			}
			return s.authenticate(ctx, sess)
		}
		if !sess.CanProceed() {
			return s.rejectGate(sess)
		}
		s.advance(sess)
		return nil
	})
}

// Previous moves back one step. It is never gated and stops at step 1.
func (s *Service) Previous(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		from := sess.CurrentKind()
		if sess.Previous() {
			sess.ClearGeneralError()
			if s.metrics != nil {
				s.metrics.IncStepTransition(directionBackward, from.String())
			}
		}
		return nil
	})
}

func (s *Service) advance(sess *wizard.Session) {
	from := sess.CurrentKind()
	if sess.Advance() {
		sess.ClearGeneralError()
		if s.metrics != nil {
			s.metrics.IncStepTransition(directionForward, from.String())
		}
	}
}

func (s *Service) rejectGate(sess *wizard.Session) error {
	kind := sess.CurrentKind()
	if s.metrics != nil {
		s.metrics.IncGateRejection(kind.String())
	}
	msg, ok := gateMessages[kind]
	if !ok {
		msg = "complete this step to continue"
	}
	return dErrors.New(dErrors.CodeValidation, msg)
}

// authenticate runs the Account step against the authentication backend.
func (s *Service) authenticate(ctx context.Context, sess *wizard.Session) error {
	email := strings.TrimSpace(sess.User.Email)
	intent := intentRegister
	if sess.User.IsExistingUser {
		intent = intentLogin
	}

	ctx, span := tracer.Start(ctx, "onboarding.authenticate")
	defer span.End()
	span.SetAttributes(
		attribute.String("onboarding.session_id", sess.ID.String()),
		attribute.String("auth.intent", intent),
	)

	if locked, err := s.checkLockout(ctx, sess, email, intent); locked {
		span.SetStatus(codes.Error, "locked out")
		return err
	}

	var (
		result models.AuthResult
		err    error
	)
	if intent == intentLogin {
		result, err = s.auth.Login(ctx, email, sess.User.Password)
	} else {
		result, err = s.auth.Register(ctx, models.RegisterRequest{
			FullName:        strings.TrimSpace(sess.User.FullName),
			Email:           email,
			Phone:           strings.TrimSpace(sess.User.Phone),
			Password:        sess.User.Password,
			ConfirmPassword: sess.User.Password,
			Role:            s.registerRole,
			City:            strings.TrimSpace(sess.User.City),
		})
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "auth backend unavailable")
		s.recordAuthAttempt(intent, "error")
		s.logger.WarnContext(ctx, "authentication backend call failed",
			"session_id", sess.ID.String(),
			"intent", intent,
			"error", err,
		)
		sess.SetGeneralError(msgAuthUnavailable)
		return dErrors.Wrap(err, dErrors.CodeAuthenticationFailed, msgAuthUnavailable)
	}

	if !result.Success {
		span.SetStatus(codes.Error, "rejected")
		s.recordAuthAttempt(intent, "rejected")
		if intent == intentLogin {
			s.recordLockoutFailure(ctx, email)
		}
		audit.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventAuthFailed,
			"session_id", sess.ID.String(),
			"identifier", email,
			"reason", result.Message,
			"intent", intent,
		)
		sess.SetGeneralError(result.Message)
		return dErrors.New(dErrors.CodeAuthenticationFailed, result.Message)
	}

	sess.Authenticate(result)
	s.recordAuthAttempt(intent, "success")
	if intent == intentLogin && s.lockout != nil {
		if err := s.lockout.Clear(ctx, email); err != nil {
			s.logger.WarnContext(ctx, "failed to clear auth lockout", "error", err)
		}
	}
	audit.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventAuthSucceeded,
		"session_id", sess.ID.String(),
		"user_id", sess.Auth.UserID,
		"intent", intent,
	)
	s.advance(sess)
	return nil
}

// checkLockout reports whether email is currently locked. Lockout store
// failures are logged and the attempt proceeds.
func (s *Service) checkLockout(ctx context.Context, sess *wizard.Session, email, intent string) (bool, error) {
	if s.lockout == nil || intent != intentLogin {
		return false, nil
	}
	result, err := s.lockout.Check(ctx, email)
	if err != nil {
		s.logger.WarnContext(ctx, "auth lockout check failed", "error", err)
		return false, nil
	}
	if result.Allowed {
		return false, nil
	}
	s.recordAuthAttempt(intent, "locked")
	minutes := int(math.Ceil(result.RetryAfter.Minutes()))
	msg := fmt.Sprintf("too many failed sign-in attempts, try again in %d minute(s)", max(minutes, 1))
	sess.SetGeneralError(msg)
	return true, dErrors.New(dErrors.CodeTooManyRequests, msg)
}

func (s *Service) recordLockoutFailure(ctx context.Context, email string) {
	if s.lockout == nil {
		return
	}
	if _, err := s.lockout.RecordFailure(ctx, email); err != nil {
		s.logger.WarnContext(ctx, "failed to record auth failure", "error", err)
	}
}

func (s *Service) recordAuthAttempt(intent, outcome string) {
	if s.metrics != nil {
		s.metrics.IncAuthAttempt(intent, outcome)
	}
}
