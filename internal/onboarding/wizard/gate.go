package wizard

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"launchpad/internal/onboarding/models"
)

// MinPasswordLength applies to registration only; login passes whatever the
// actor typed to the authentication backend.
const MinPasswordLength = 8

// GateState is the slice of session state the gate reads.
type GateState struct {
	User     models.UserInformation
	Business models.Business
	Branch   models.Branch
	// AddingBranchOnly is set when a branch is being added to a business whose
	// own details were already collected.
	AddingBranchOnly bool
}

// CanProceed reports whether the step of the given kind may be left going
// forward. It has no side effects.
func CanProceed(kind Kind, state GateState) bool {
	switch kind {
	case KindAccount:
		return accountComplete(state.User)
	case KindTypeSelection:
		return filled(state.Business.Type)
	case KindBasicInfo:
		br := state.Branch
		branchOK := filled(br.Name, br.Phone, br.City, br.Address)
		if state.AddingBranchOnly {
			return branchOK
		}
		return branchOK && filled(state.Business.Name, state.Business.Description)
	case KindProducts:
		return true
	case KindAppearance:
		return filled(state.Business.HeroTitle)
	case KindOperations:
		return state.Business.TermsAgreed
	case KindReview, KindLaunch:
		return true
	default:
		return false
	}
}

// CanProceedAt evaluates the gate by step number, resolving the number
// against the topology fixed by the authentication state at session start.
func CanProceedAt(step int, authenticatedAtStart bool, state GateState) bool {
	kind, ok := NewTopology(authenticatedAtStart).KindAt(step)
	if !ok {
		return false
	}
	return CanProceed(kind, state)
}

func accountComplete(u models.UserInformation) bool {
	if u.IsExistingUser {
		return filled(u.Email, u.Password)
	}
	return filled(u.FullName, u.Email, u.Phone) && len(u.Password) >= MinPasswordLength
}

// AccountFieldErrors returns per-field messages for the Account step, keyed by
// the JSON field name. It is stricter than the gate (email syntax is checked)
// and is only used to annotate the form.
func AccountFieldErrors(u models.UserInformation) map[string]string {
	errs := make(map[string]string)

	email := strings.TrimSpace(u.Email)
	switch {
	case email == "":
		errs["email"] = "email is required"
	case !govalidator.IsEmail(email):
		errs["email"] = "email is not valid"
	}

	if u.IsExistingUser {
		if u.Password == "" {
			errs["password"] = "password is required"
		}
		return errs
	}

	if !filled(u.FullName) {
		errs["full_name"] = "full name is required"
	}
	if !filled(u.Phone) {
		errs["phone"] = "phone is required"
	}
	switch {
	case u.Password == "":
		errs["password"] = "password is required"
	case len(u.Password) < MinPasswordLength:
		errs["password"] = "password must be at least 8 characters"
	}
	return errs
}

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
