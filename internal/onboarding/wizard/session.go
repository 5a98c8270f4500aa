package wizard

import (
	"time"

	"launchpad/internal/onboarding/models"
	id "launchpad/pkg/domain"
)

// AuthSession is the authentication state injected when a session starts.
// Authenticated may flip to true after a successful Account step; the
// session's Topology does not change when it does.
type AuthSession struct {
	Authenticated bool
	UserID        string
	Token         string
}

// Selection tracks which business and branch the current step edits.
type Selection struct {
	CurrentBusinessIndex int  `json:"current_business_index"`
	CurrentBranchIndex   int  `json:"current_branch_index"`
	IsAddingNewBusiness  bool `json:"is_adding_new_business"`
	IsAddingNewBranch    bool `json:"is_adding_new_branch"`
}

// Session is one actor's in-progress onboarding. It has a single writer: the
// store hands it out under a per-session lock and callers must not retain it
// after the callback returns.
type Session struct {
	ID           id.SessionID
	Auth         AuthSession
	Topology     Topology
	Draft        models.Draft
	Selection    Selection
	User         models.UserInformation
	Step         int
	GeneralError string
	Launched     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSession starts at step 1 with one empty business. Profile fields of an
// authenticated actor prefill the user information.
func NewSession(sid id.SessionID, auth AuthSession, user models.UserInformation, now time.Time) *Session {
	user.Password = ""
	user.IsExistingUser = auth.Authenticated
	return &Session{
		ID:        sid,
		Auth:      auth,
		Topology:  NewTopology(auth.Authenticated),
		Draft:     models.NewDraft(),
		User:      user,
		Step:      1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) TotalSteps() int { return s.Topology.TotalSteps() }

// CurrentKind is the kind of the step the session is on.
func (s *Session) CurrentKind() Kind {
	k, _ := s.Topology.KindAt(s.Step)
	return k
}

// AuthenticatedAtStart reports the state the topology was built from.
func (s *Session) AuthenticatedAtStart() bool {
	return !s.Topology.HasAccountStep()
}

func (s *Session) CurrentBusiness() models.Business {
	b, _ := s.Draft.Business(s.Selection.CurrentBusinessIndex)
	return b
}

func (s *Session) CurrentBranch() models.Branch {
	br, _ := s.Draft.Branch(s.Selection.CurrentBusinessIndex, s.Selection.CurrentBranchIndex)
	return br
}

func (s *Session) GateState() GateState {
	return GateState{
		User:             s.User,
		Business:         s.CurrentBusiness(),
		Branch:           s.CurrentBranch(),
		AddingBranchOnly: s.Selection.IsAddingNewBranch && !s.Selection.IsAddingNewBusiness,
	}
}

// CanProceed evaluates the gate for the step the session is on.
func (s *Session) CanProceed() bool {
	return CanProceed(s.CurrentKind(), s.GateState())
}

// Authenticate records a successful login or registration: the profile is
// merged into the user information, the password dropped, and the actor
// marked authenticated for the rest of the session.
func (s *Session) Authenticate(result models.AuthResult) {
	s.User = models.MergeAuthUser(s.User, result.User)
	s.User.IsExistingUser = true
	s.Auth.Authenticated = true
	s.Auth.Token = result.Token
	if result.User != nil {
		s.Auth.UserID = result.User.ID
	}
}

func (s *Session) SetGeneralError(msg string) { s.GeneralError = msg }

func (s *Session) ClearGeneralError() { s.GeneralError = "" }

func (s *Session) Touch(now time.Time) { s.UpdatedAt = now }

// IdleSince reports whether the session has seen no writes since cutoff.
func (s *Session) IdleSince(cutoff time.Time) bool {
	return s.UpdatedAt.Before(cutoff)
}
