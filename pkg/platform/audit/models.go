package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// route and retain them differently.
type EventCategory string

const (
	// CategoryCompliance covers records a business owner may later need to
	// evidence, such as accepted terms and created businesses.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers authentication failures and lockouts.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine session activity; it can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Category  EventCategory     `json:"category"`
	Timestamp time.Time         `json:"timestamp"`
	Action    string            `json:"action"`
	UserID    string            `json:"user_id,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	Subject   string            `json:"subject,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	ClientIP  string            `json:"client_ip,omitempty"`
	Device    string            `json:"device,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// Key is the partitioning key sinks use to keep one session's events ordered.
func (e Event) Key() string {
	if e.SessionID != "" {
		return e.SessionID
	}
	if e.UserID != "" {
		return e.UserID
	}
	return e.Subject
}

// Publisher accepts audit events. Implementations must not block the caller
// on slow sinks.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

type AuditEvent string

const (
	// Session lifecycle
	EventSessionStarted AuditEvent = "onboarding_session_started"
	EventSessionDeleted AuditEvent = "onboarding_session_deleted"
	EventSessionExpired AuditEvent = "onboarding_session_expired"

	// Account step
	EventAuthSucceeded        AuditEvent = "onboarding_auth_succeeded"
	EventAuthFailed           AuditEvent = "onboarding_auth_failed"
	EventAuthLockoutTriggered AuditEvent = "auth_lockout_triggered"
	EventAuthLockoutCleared   AuditEvent = "auth_lockout_cleared"

	// Submission
	EventBusinessCreated     AuditEvent = "business_created"
	EventSubmissionFailed    AuditEvent = "onboarding_submission_failed"
	EventSubmissionCompleted AuditEvent = "onboarding_submission_completed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventBusinessCreated:     CategoryCompliance,
	EventSubmissionCompleted: CategoryCompliance,

	EventAuthFailed:           CategorySecurity,
	EventAuthLockoutTriggered: CategorySecurity,
	EventAuthLockoutCleared:   CategorySecurity,

	EventSessionStarted:   CategoryOperations,
	EventSessionDeleted:   CategoryOperations,
	EventSessionExpired:   CategoryOperations,
	EventAuthSucceeded:    CategoryOperations,
	EventSubmissionFailed: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
