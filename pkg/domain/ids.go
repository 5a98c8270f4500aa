// Package domain holds the identifier primitives shared across onboarding
// packages. Typed IDs keep sessions, branches and products from being mixed up
// at compile time.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "launchpad/pkg/domain-errors"
)

type (
	SessionID uuid.UUID
	BranchID  uuid.UUID
	ProductID uuid.UUID
)

// UserID is the identifier the authentication backend assigns to an actor.
// Its format is owned by that backend, so it is kept opaque.
type UserID string

func NewSessionID() SessionID { return SessionID(uuid.New()) }
func NewBranchID() BranchID   { return BranchID(uuid.New()) }
func NewProductID() ProductID { return ProductID(uuid.New()) }

func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id BranchID) String() string  { return uuid.UUID(id).String() }
func (id ProductID) String() string { return uuid.UUID(id).String() }

func (id SessionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id BranchID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ProductID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id SessionID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id BranchID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id ProductID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *SessionID) UnmarshalText(text []byte) error {
	u, err := parseUUID(string(text), "session")
	*id = SessionID(u)
	return err
}

func (id *BranchID) UnmarshalText(text []byte) error {
	u, err := parseUUID(string(text), "branch")
	*id = BranchID(u)
	return err
}

func (id *ProductID) UnmarshalText(text []byte) error {
	u, err := parseUUID(string(text), "product")
	*id = ProductID(u)
	return err
}

func (id UserID) String() string { return string(id) }
func (id UserID) IsNil() bool    { return id == "" }

// ParseSessionID parses a session identifier received at a trust boundary.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session")
	return SessionID(u), err
}

// ParseProductID parses a product identifier received at a trust boundary.
func ParseProductID(s string) (ProductID, error) {
	u, err := parseUUID(s, "product")
	return ProductID(u), err
}

// ParseBranchID parses a branch identifier received at a trust boundary.
func ParseBranchID(s string) (BranchID, error) {
	u, err := parseUUID(s, "branch")
	return BranchID(u), err
}

func parseUUID(s, kind string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be nil")
	}
	return u, nil
}
