package wizard

import (
	"launchpad/internal/onboarding/models"
	id "launchpad/pkg/domain"
	dErrors "launchpad/pkg/domain-errors"
)

// Advance moves one step forward without consulting the gate. It returns
// false on the last step.
func (s *Session) Advance() bool {
	if s.Step >= s.TotalSteps() {
		return false
	}
	s.Step++
	return true
}

// Previous moves one step back, floored at the first step. It is never gated.
func (s *Session) Previous() bool {
	if s.Step <= 1 {
		return false
	}
	s.Step--
	return true
}

func (s *Session) jumpTo(k Kind) {
	if n := s.Topology.NumberOf(k); n != 0 {
		s.Step = n
	}
}

// AddBusiness appends a default business, selects it and restarts the flow at
// type selection. A launched session reopens for the new business.
func (s *Session) AddBusiness() {
	s.Launched = false
	s.Draft = s.Draft.AppendBusiness(models.NewBusiness())
	s.Selection = Selection{
		CurrentBusinessIndex: s.Draft.Len() - 1,
		CurrentBranchIndex:   0,
		IsAddingNewBusiness:  true,
	}
	s.jumpTo(KindTypeSelection)
}

// AddBranch appends a non-main branch named after the current business,
// selects it and jumps to basic info. A business still being added keeps its
// own name and description required.
func (s *Session) AddBranch() error {
	bi := s.Selection.CurrentBusinessIndex
	owner := s.CurrentBusiness()
	next, err := s.Draft.AppendBranch(bi, models.NewBranch(owner.Name, false))
	if err != nil {
		return err
	}
	s.Draft = next
	added, _ := next.Business(bi)
	s.Selection.CurrentBranchIndex = len(added.Branches) - 1
	s.Selection.IsAddingNewBranch = true
	s.jumpTo(KindBasicInfo)
	return nil
}

// DeleteBusiness removes business i unless it is the only one. The boolean
// reports whether anything changed.
func (s *Session) DeleteBusiness(i int) bool {
	next, changed := s.Draft.RemoveBusiness(i)
	if !changed {
		return false
	}
	s.Draft = next
	s.Selection = Selection{CurrentBusinessIndex: max(0, i-1)}
	return true
}

// DeleteBranch removes branch i of the current business unless it is the
// main branch or the only branch.
func (s *Session) DeleteBranch(i int) bool {
	next, changed := s.Draft.RemoveBranch(s.Selection.CurrentBusinessIndex, i)
	if !changed {
		return false
	}
	s.Draft = next
	s.Selection.CurrentBranchIndex = max(0, i-1)
	return true
}

// SelectBusiness switches the edited business without touching the step.
func (s *Session) SelectBusiness(i int) error {
	if _, ok := s.Draft.Business(i); !ok {
		return dErrors.New(dErrors.CodeNotFound, "business not found")
	}
	s.Selection = Selection{CurrentBusinessIndex: i}
	return nil
}

// SelectBranch switches the edited branch of the current business without
// touching the step.
func (s *Session) SelectBranch(i int) error {
	if _, ok := s.Draft.Branch(s.Selection.CurrentBusinessIndex, i); !ok {
		return dErrors.New(dErrors.CodeNotFound, "branch not found")
	}
	s.Selection.CurrentBranchIndex = i
	s.Selection.IsAddingNewBusiness = false
	s.Selection.IsAddingNewBranch = false
	return nil
}

func (s *Session) UpdateBusiness(patch models.BusinessPatch) error {
	next, err := s.Draft.UpdateBusiness(s.Selection.CurrentBusinessIndex, patch)
	if err != nil {
		return err
	}
	s.Draft = next
	return nil
}

func (s *Session) UpdateBranch(patch models.BranchPatch) error {
	next, err := s.Draft.UpdateBranch(s.Selection.CurrentBusinessIndex, s.Selection.CurrentBranchIndex, patch)
	if err != nil {
		return err
	}
	s.Draft = next
	return nil
}

// AddProduct appends an empty product to the current branch and returns it so
// callers learn its identifier.
func (s *Session) AddProduct() (models.Product, error) {
	p := models.NewProduct()
	next, err := s.Draft.AddProduct(s.Selection.CurrentBusinessIndex, s.Selection.CurrentBranchIndex, p)
	if err != nil {
		return models.Product{}, err
	}
	s.Draft = next
	return p, nil
}

func (s *Session) UpdateProduct(pid id.ProductID, field models.ProductField, value string) error {
	next, err := s.Draft.UpdateProduct(s.Selection.CurrentBusinessIndex, s.Selection.CurrentBranchIndex, pid, field, value)
	if err != nil {
		return err
	}
	s.Draft = next
	return nil
}

func (s *Session) RemoveProduct(pid id.ProductID) error {
	next, err := s.Draft.RemoveProduct(s.Selection.CurrentBusinessIndex, s.Selection.CurrentBranchIndex, pid)
	if err != nil {
		return err
	}
	s.Draft = next
	return nil
}

func (s *Session) UpdateWorkingHours(day models.Weekday, field models.HoursField, value string) error {
	next, err := s.Draft.UpdateWorkingHours(s.Selection.CurrentBusinessIndex, s.Selection.CurrentBranchIndex, day, field, value)
	if err != nil {
		return err
	}
	s.Draft = next
	return nil
}

func (s *Session) UpdateUser(patch models.UserPatch) {
	s.User = patch.Apply(s.User)
}

// ConfirmBusiness swaps business i's pending identifier for the server's.
func (s *Session) ConfirmBusiness(i int, serverID string) error {
	next, err := s.Draft.ConfirmBusiness(i, serverID)
	if err != nil {
		return err
	}
	s.Draft = next
	return nil
}

// Launch marks a completed submission and moves to the launch step.
func (s *Session) Launch() {
	s.Launched = true
	s.Selection.IsAddingNewBusiness = false
	s.Selection.IsAddingNewBranch = false
	s.jumpTo(KindLaunch)
}
