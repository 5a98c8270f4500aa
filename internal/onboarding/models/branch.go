package models

import (
	id "launchpad/pkg/domain"
)

// Branch is a physical or service location of a business.
//
// Invariants:
//   - IsMainBranch is fixed at construction
//   - WorkingHours always has an entry per weekday
type Branch struct {
	ID           id.BranchID  `json:"id"`
	Name         string       `json:"name"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	WorkingHours WorkingHours `json:"working_hours"`
	Products     []Product    `json:"products"`
	IsMainBranch bool         `json:"is_main_branch"`
}

func NewBranch(name string, main bool) Branch {
	return Branch{
		ID:           id.NewBranchID(),
		Name:         name,
		WorkingHours: DefaultWorkingHours(),
		Products:     []Product{},
		IsMainBranch: main,
	}
}

// BranchPatch carries the fields to shallow-merge into a branch; nil fields
// are left untouched.
type BranchPatch struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
}

func (p BranchPatch) apply(b Branch) Branch {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Address != nil {
		b.Address = *p.Address
	}
	if p.City != nil {
		b.City = *p.City
	}
	if p.Phone != nil {
		b.Phone = *p.Phone
	}
	if p.Email != nil {
		b.Email = *p.Email
	}
	return b
}
