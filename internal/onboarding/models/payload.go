package models

import (
	pstrings "launchpad/pkg/platform/strings"
)

// BusinessPayload is the creation request sent to the business backend. Only
// the main branch's contact details represent the business at creation time.
type BusinessPayload struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	City              string   `json:"city"`
	Address           string   `json:"address"`
	Photos            []string `json:"photos"`
	Logo              string   `json:"logo"`
	HeroTitle         string   `json:"heroTitle"`
	HeroTagline       string   `json:"heroTagline"`
	HeroBanner        string   `json:"heroBanner"`
	ThemeColor        string   `json:"themeColor"`
	CTAText           string   `json:"ctaText"`
	EnableBookings    bool     `json:"enableBookings"`
	AllowNegotiation  bool     `json:"allowNegotiation"`
	DeliveryAvailable bool     `json:"deliveryAvailable"`
}

// CreateBusinessResult mirrors the creation endpoint's response envelope,
// flattened to the fields the pipeline reads.
type CreateBusinessResult struct {
	Success bool
	ID      string
	Message string
}

// BuildPayload normalises b into a creation payload. Contact fields come from
// the main branch and fall back to the session user's email and phone.
func BuildPayload(b Business, user UserInformation) BusinessPayload {
	main, _ := b.MainBranch()
	return BusinessPayload{
		Name:              b.Name,
		Description:       b.Description,
		Category:          b.Category,
		Email:             pstrings.FirstNonEmpty(main.Email, user.Email),
		Phone:             pstrings.FirstNonEmpty(main.Phone, user.Phone),
		City:              main.City,
		Address:           main.Address,
		Photos:            pstrings.Compact(b.CoverImage),
		Logo:              b.Logo,
		HeroTitle:         b.HeroTitle,
		HeroTagline:       b.HeroTagline,
		HeroBanner:        b.HeroBanner,
		ThemeColor:        b.ThemeColor,
		CTAText:           b.CTAText,
		EnableBookings:    b.EnableBookings,
		AllowNegotiation:  b.AllowNegotiation,
		DeliveryAvailable: b.DeliveryAvailable,
	}
}
