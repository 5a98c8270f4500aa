package models

import (
	id "launchpad/pkg/domain"
)

// Business is one company or brand being onboarded.
//
// Invariants:
//   - Branches is never empty
//   - exactly one branch has IsMainBranch set, and it is the one created with
//     the business
//   - ID stays pending until the business backend confirms creation
type Business struct {
	ID                id.BusinessID `json:"id"`
	Type              string        `json:"type"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Category          string        `json:"category"`
	Logo              string        `json:"logo"`
	CoverImage        string        `json:"cover_image"`
	HeroBanner        string        `json:"hero_banner"`
	HeroTitle         string        `json:"hero_title"`
	HeroTagline       string        `json:"hero_tagline"`
	ThemeColor        string        `json:"theme_color"`
	CTAText           string        `json:"cta_text"`
	EnableBookings    bool          `json:"enable_bookings"`
	AllowNegotiation  bool          `json:"allow_negotiation"`
	DeliveryAvailable bool          `json:"delivery_available"`
	Branches          []Branch      `json:"branches"`
	TermsAgreed       bool          `json:"terms_agreed"`
}

// DefaultThemeColor is applied to new businesses until the actor picks one.
const DefaultThemeColor = "#2563eb"

// DefaultCTAText is the call-to-action label used until the actor edits it.
const DefaultCTAText = "Book now"

// NewBusiness returns an empty business owning a single main branch.
func NewBusiness() Business {
	return Business{
		ID:         id.NewPendingBusinessID(),
		ThemeColor: DefaultThemeColor,
		CTAText:    DefaultCTAText,
		Branches:   []Branch{NewBranch("", true)},
	}
}

// MainBranch resolves the branch that represents the business at creation
// time: the flagged main branch, or the first branch if none is flagged.
func (b Business) MainBranch() (Branch, bool) {
	for _, br := range b.Branches {
		if br.IsMainBranch {
			return br, true
		}
	}
	if len(b.Branches) > 0 {
		return b.Branches[0], true
	}
	return Branch{}, false
}

// BusinessPatch carries the fields to shallow-merge into a business; nil
// fields are left untouched. Identity and branches are not patchable.
type BusinessPatch struct {
	Type              *string `json:"type,omitempty"`
	Name              *string `json:"name,omitempty"`
	Description       *string `json:"description,omitempty"`
	Category          *string `json:"category,omitempty"`
	Logo              *string `json:"logo,omitempty"`
	CoverImage        *string `json:"cover_image,omitempty"`
	HeroBanner        *string `json:"hero_banner,omitempty"`
	HeroTitle         *string `json:"hero_title,omitempty"`
	HeroTagline       *string `json:"hero_tagline,omitempty"`
	ThemeColor        *string `json:"theme_color,omitempty"`
	CTAText           *string `json:"cta_text,omitempty"`
	EnableBookings    *bool   `json:"enable_bookings,omitempty"`
	AllowNegotiation  *bool   `json:"allow_negotiation,omitempty"`
	DeliveryAvailable *bool   `json:"delivery_available,omitempty"`
	TermsAgreed       *bool   `json:"terms_agreed,omitempty"`
}

func (p BusinessPatch) apply(b Business) Business {
	setString(&b.Type, p.Type)
	setString(&b.Name, p.Name)
	setString(&b.Description, p.Description)
	setString(&b.Category, p.Category)
	setString(&b.Logo, p.Logo)
	setString(&b.CoverImage, p.CoverImage)
	setString(&b.HeroBanner, p.HeroBanner)
	setString(&b.HeroTitle, p.HeroTitle)
	setString(&b.HeroTagline, p.HeroTagline)
	setString(&b.ThemeColor, p.ThemeColor)
	setString(&b.CTAText, p.CTAText)
	setBool(&b.EnableBookings, p.EnableBookings)
	setBool(&b.AllowNegotiation, p.AllowNegotiation)
	setBool(&b.DeliveryAvailable, p.DeliveryAvailable)
	setBool(&b.TermsAgreed, p.TermsAgreed)
	return b
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
