package service

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"launchpad/internal/onboarding/models"
	"launchpad/internal/onboarding/wizard"
	dErrors "launchpad/pkg/domain-errors"
	"launchpad/pkg/platform/audit"
)

const msgSubmissionFailed = "failed to create business"

// submit creates every business that has no server identifier yet, in order,
// one call at a time. The first failure stops the run: businesses created so
// far keep their server identifiers, so a retry only sends the rest.
func (s *Service) submit(ctx context.Context, sess *wizard.Session) error {
	ctx, span := tracer.Start(ctx, "onboarding.submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("onboarding.session_id", sess.ID.String()),
		attribute.Int("onboarding.businesses", sess.Draft.Len()),
	)

	start := time.Now()
	created := 0
	for i, b := range sess.Draft.Businesses() {
		if b.ID.IsConfirmed() {
			continue
		}

		result, err := s.creator.Create(ctx, models.BuildPayload(b, sess.User))
		if err != nil || !result.Success {
			msg := result.Message
			if msg == "" {
				msg = msgSubmissionFailed
			}
			if err != nil {
				span.RecordError(err)
			}
			span.SetStatus(codes.Error, msg)
			return s.failSubmission(ctx, sess, i, created, start, msg, err)
		}

		if err := sess.ConfirmBusiness(i, result.ID); err != nil {
			span.RecordError(err)
			return s.failSubmission(ctx, sess, i, created, start, msgSubmissionFailed, err)
		}
		created++
		audit.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventBusinessCreated,
			"session_id", sess.ID.String(),
			"user_id", sess.Auth.UserID,
			"business_id", result.ID,
			"business_name", b.Name,
		)
	}

	if s.metrics != nil {
		s.metrics.ObserveSubmission("success", created, time.Since(start))
	}
	span.SetAttributes(attribute.Int("onboarding.created", created))
	audit.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventSubmissionCompleted,
		"session_id", sess.ID.String(),
		"user_id", sess.Auth.UserID,
		"created", strconv.Itoa(created),
	)

	from := sess.CurrentKind()
	sess.ClearGeneralError()
	sess.Launch()
	if s.metrics != nil {
		s.metrics.IncStepTransition(directionForward, from.String())
	}
	return nil
}

func (s *Service) failSubmission(ctx context.Context, sess *wizard.Session, index, created int, start time.Time, msg string, cause error) error {
	if s.metrics != nil {
		s.metrics.ObserveSubmission("failed", created, time.Since(start))
	}
	audit.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventSubmissionFailed,
		"session_id", sess.ID.String(),
		"business_index", strconv.Itoa(index),
		"reason", msg,
	)
	sess.SetGeneralError(msg)
	if cause != nil {
		return dErrors.Wrap(cause, dErrors.CodeSubmissionFailed, msg)
	}
	return dErrors.New(dErrors.CodeSubmissionFailed, msg)
}
