package service

import (
	"context"

	"launchpad/internal/onboarding/models"
	"launchpad/internal/onboarding/wizard"
	id "launchpad/pkg/domain"
)

func (s *Service) UpdateUser(ctx context.Context, sid id.SessionID, patch models.UserPatch) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		sess.UpdateUser(patch)
		return nil
	})
}

func (s *Service) AddBusiness(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		sess.AddBusiness()
		return nil
	})
}

func (s *Service) UpdateBusiness(ctx context.Context, sid id.SessionID, patch models.BusinessPatch) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		return sess.UpdateBusiness(patch)
	})
}

// DeleteBusiness removes business index. Removing the only business is a
// no-op, not an error.
func (s *Service) DeleteBusiness(ctx context.Context, sid id.SessionID, index int) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		sess.DeleteBusiness(index)
		return nil
	})
}

func (s *Service) SelectBusiness(ctx context.Context, sid id.SessionID, index int) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		return sess.SelectBusiness(index)
	})
}

func (s *Service) AddBranch(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		return sess.AddBranch()
	})
}

func (s *Service) UpdateBranch(ctx context.Context, sid id.SessionID, patch models.BranchPatch) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		return sess.UpdateBranch(patch)
	})
}

// DeleteBranch removes branch index of the current business. The main branch
// and a business's last branch are never removed.
func (s *Service) DeleteBranch(ctx context.Context, sid id.SessionID, index int) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		sess.DeleteBranch(index)
		return nil
	})
}

func (s *Service) SelectBranch(ctx context.Context, sid id.SessionID, index int) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		return sess.SelectBranch(index)
	})
}

func (s *Service) AddProduct(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		_, err := sess.AddProduct()
		return err
	})
}

func (s *Service) UpdateProduct(ctx context.Context, sid id.SessionID, pid id.ProductID, field models.ProductField, value string) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		return sess.UpdateProduct(pid, field, value)
	})
}

func (s *Service) RemoveProduct(ctx context.Context, sid id.SessionID, pid id.ProductID) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		return sess.RemoveProduct(pid)
	})
}

func (s *Service) UpdateWorkingHours(ctx context.Context, sid id.SessionID, day models.Weekday, field models.HoursField, value string) (*wizard.View, error) {
	return s.mutate(ctx, sid, func(sess *wizard.Session) error {
		return sess.UpdateWorkingHours(day, field, value)
	})
}
