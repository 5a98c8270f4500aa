package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "launchpad/pkg/domain-errors"
)

// BusinessID is either Pending (a client-generated token) or Confirmed (the
// identifier assigned by the business backend after creation succeeds).
//
// The zero value is invalid; construct with NewPendingBusinessID and move to
// the confirmed state only through Confirm.
type BusinessID struct {
	local  uuid.UUID
	server string
}

// NewPendingBusinessID allocates a fresh client-generated identifier.
func NewPendingBusinessID() BusinessID {
	return BusinessID{local: uuid.New()}
}

// PendingBusinessID wraps an existing client token.
func PendingBusinessID(local uuid.UUID) BusinessID {
	return BusinessID{local: local}
}

// Confirm returns the confirmed form of the identifier. The local token is
// kept so callers can still correlate the business with its draft.
func (b BusinessID) Confirm(serverID string) (BusinessID, error) {
	serverID = strings.TrimSpace(serverID)
	if serverID == "" {
		return b, dErrors.New(dErrors.CodeInvalidInput, "server business id cannot be empty")
	}
	return BusinessID{local: b.local, server: serverID}, nil
}

func (b BusinessID) IsPending() bool   { return b.server == "" }
func (b BusinessID) IsConfirmed() bool { return b.server != "" }
func (b BusinessID) IsNil() bool       { return b.local == uuid.Nil && b.server == "" }

// LocalToken is the client-generated token, present in both states.
func (b BusinessID) LocalToken() uuid.UUID { return b.local }

// ServerID returns the backend identifier once confirmed.
func (b BusinessID) ServerID() (string, bool) {
	return b.server, b.server != ""
}

// String renders the server identifier when confirmed, the local token otherwise.
func (b BusinessID) String() string {
	if b.server != "" {
		return b.server
	}
	return b.local.String()
}

func (b BusinessID) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText reads a rendered view back. A UUID is taken as a pending
// local token and anything else as a confirmed server identifier.
func (b *BusinessID) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "business id cannot be empty")
	}
	if u, err := uuid.Parse(s); err == nil {
		*b = BusinessID{local: u}
		return nil
	}
	*b = BusinessID{server: s}
	return nil
}
