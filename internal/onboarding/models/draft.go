package models

import (
	"slices"

	id "launchpad/pkg/domain"
	dErrors "launchpad/pkg/domain-errors"
)

// Draft is the immutable collection of businesses being onboarded.
//
// Every mutating method returns a new Draft and leaves the receiver intact.
// Only the path from the root to the changed entity is copied; untouched
// businesses, branches and products are shared between versions, which is
// safe because nothing mutates them in place.
type Draft struct {
	businesses []Business
}

// NewDraft starts a draft with one empty business and its main branch.
func NewDraft() Draft {
	return Draft{businesses: []Business{NewBusiness()}}
}

// DraftOf builds a draft from existing businesses after checking invariants.
func DraftOf(businesses ...Business) (Draft, error) {
	d := Draft{businesses: slices.Clone(businesses)}
	if err := d.Validate(); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func (d Draft) Len() int { return len(d.businesses) }

// Businesses returns a copy of the outer slice. Nested slices are shared and
// must be treated as read-only.
func (d Draft) Businesses() []Business {
	return slices.Clone(d.businesses)
}

func (d Draft) Business(i int) (Business, bool) {
	if i < 0 || i >= len(d.businesses) {
		return Business{}, false
	}
	return d.businesses[i], true
}

func (d Draft) Branch(bi, ri int) (Branch, bool) {
	b, ok := d.Business(bi)
	if !ok || ri < 0 || ri >= len(b.Branches) {
		return Branch{}, false
	}
	return b.Branches[ri], true
}

// AppendBusiness adds b at the end.
func (d Draft) AppendBusiness(b Business) Draft {
	next := make([]Business, len(d.businesses), len(d.businesses)+1)
	copy(next, d.businesses)
	return Draft{businesses: append(next, b)}
}

// RemoveBusiness drops business i. The last remaining business cannot be
// removed; the boolean reports whether anything changed.
func (d Draft) RemoveBusiness(i int) (Draft, bool) {
	if len(d.businesses) <= 1 || i < 0 || i >= len(d.businesses) {
		return d, false
	}
	return Draft{businesses: slices.Delete(slices.Clone(d.businesses), i, i+1)}, true
}

// UpdateBusiness shallow-merges patch into business i.
func (d Draft) UpdateBusiness(i int, patch BusinessPatch) (Draft, error) {
	return d.withBusiness(i, func(b Business) (Business, error) {
		return patch.apply(b), nil
	})
}

// ConfirmBusiness replaces business i's pending identifier with the one the
// backend assigned.
func (d Draft) ConfirmBusiness(i int, serverID string) (Draft, error) {
	return d.withBusiness(i, func(b Business) (Business, error) {
		confirmed, err := b.ID.Confirm(serverID)
		if err != nil {
			return b, err
		}
		b.ID = confirmed
		return b, nil
	})
}

// AppendBranch adds a non-main branch to business bi. Callers cannot add a
// second main branch.
func (d Draft) AppendBranch(bi int, br Branch) (Draft, error) {
	br.IsMainBranch = false
	return d.withBusiness(bi, func(b Business) (Business, error) {
		branches := make([]Branch, len(b.Branches), len(b.Branches)+1)
		copy(branches, b.Branches)
		b.Branches = append(branches, br)
		return b, nil
	})
}

// RemoveBranch drops branch ri of business bi unless it is the main branch or
// the only branch; the boolean reports whether anything changed.
func (d Draft) RemoveBranch(bi, ri int) (Draft, bool) {
	br, ok := d.Branch(bi, ri)
	if !ok || br.IsMainBranch || len(d.businesses[bi].Branches) <= 1 {
		return d, false
	}
	next, err := d.withBusiness(bi, func(b Business) (Business, error) {
		b.Branches = slices.Delete(slices.Clone(b.Branches), ri, ri+1)
		return b, nil
	})
	if err != nil {
		return d, false
	}
	return next, true
}

// UpdateBranch shallow-merges patch into branch ri of business bi.
func (d Draft) UpdateBranch(bi, ri int, patch BranchPatch) (Draft, error) {
	return d.withBranch(bi, ri, func(br Branch) (Branch, error) {
		return patch.apply(br), nil
	})
}

// AddProduct appends p to branch ri of business bi.
func (d Draft) AddProduct(bi, ri int, p Product) (Draft, error) {
	return d.withBranch(bi, ri, func(br Branch) (Branch, error) {
		products := make([]Product, len(br.Products), len(br.Products)+1)
		copy(products, br.Products)
		br.Products = append(products, p)
		return br, nil
	})
}

// UpdateProduct replaces one field of the product identified by pid.
func (d Draft) UpdateProduct(bi, ri int, pid id.ProductID, field ProductField, value string) (Draft, error) {
	return d.withBranch(bi, ri, func(br Branch) (Branch, error) {
		idx := slices.IndexFunc(br.Products, func(p Product) bool { return p.ID == pid })
		if idx < 0 {
			return br, dErrors.New(dErrors.CodeNotFound, "product not found")
		}
		updated, err := br.Products[idx].With(field, value)
		if err != nil {
			return br, err
		}
		br.Products = slices.Clone(br.Products)
		br.Products[idx] = updated
		return br, nil
	})
}

// RemoveProduct drops the product identified by pid. Removing the last
// product is allowed; removing an unknown product is a no-op.
func (d Draft) RemoveProduct(bi, ri int, pid id.ProductID) (Draft, error) {
	return d.withBranch(bi, ri, func(br Branch) (Branch, error) {
		br.Products = slices.DeleteFunc(slices.Clone(br.Products), func(p Product) bool { return p.ID == pid })
		return br, nil
	})
}

// UpdateWorkingHours replaces one field of one weekday on branch ri.
func (d Draft) UpdateWorkingHours(bi, ri int, day Weekday, field HoursField, value string) (Draft, error) {
	return d.withBranch(bi, ri, func(br Branch) (Branch, error) {
		hours, err := br.WorkingHours.With(day, field, value)
		if err != nil {
			return br, err
		}
		br.WorkingHours = hours
		return br, nil
	})
}

// Validate checks the structural invariants of every business.
func (d Draft) Validate() error {
	if len(d.businesses) == 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "draft must hold at least one business")
	}
	for _, b := range d.businesses {
		if len(b.Branches) == 0 {
			return dErrors.New(dErrors.CodeInvariantViolation, "business must have at least one branch")
		}
		mains := 0
		for _, br := range b.Branches {
			if br.IsMainBranch {
				mains++
			}
		}
		if mains != 1 {
			return dErrors.New(dErrors.CodeInvariantViolation, "business must have exactly one main branch")
		}
	}
	return nil
}

func (d Draft) withBusiness(i int, fn func(Business) (Business, error)) (Draft, error) {
	b, ok := d.Business(i)
	if !ok {
		return d, dErrors.New(dErrors.CodeNotFound, "business not found")
	}
	updated, err := fn(b)
	if err != nil {
		return d, err
	}
	next := slices.Clone(d.businesses)
	next[i] = updated
	return Draft{businesses: next}, nil
}

func (d Draft) withBranch(bi, ri int, fn func(Branch) (Branch, error)) (Draft, error) {
	return d.withBusiness(bi, func(b Business) (Business, error) {
		if ri < 0 || ri >= len(b.Branches) {
			return b, dErrors.New(dErrors.CodeNotFound, "branch not found")
		}
		updated, err := fn(b.Branches[ri])
		if err != nil {
			return b, err
		}
		b.Branches = slices.Clone(b.Branches)
		b.Branches[ri] = updated
		return b, nil
	})
}
