package model

import (
	"bytes"
	"encoding/json"
)

// Preferences is the partially-filled slot set describing what the user
// wants. All fields are optional; nil means "not yet stated". Values are
// only ever overwritten by newer non-nil values, never cleared by merging.
type Preferences struct {
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
	Location *string `json:"location,omitempty"`
	NearMe   *bool   `json:"near_me,omitempty"`

	PropertyType *string `json:"property_type,omitempty"`
	Lifestyle    *string `json:"lifestyle,omitempty"`
	RoomsForRent *bool   `json:"rooms_for_rent,omitempty"`

	MinRent  *int     `json:"min_rent,omitempty"`
	MaxRent  *int     `json:"max_rent,omitempty"`
	MinBeds  *int     `json:"min_beds,omitempty"`
	MaxBeds  *int     `json:"max_beds,omitempty"`
	MinBaths *float64 `json:"min_baths,omitempty"`
	MaxBaths *float64 `json:"max_baths,omitempty"`

	PetFriendly       *bool   `json:"pet_friendly,omitempty"`
	PetType           *string `json:"pet_type,omitempty"`
	CheapOnly         *bool   `json:"cheap_only,omitempty"`
	UtilitiesIncluded *bool   `json:"utilities_included,omitempty"`

	AmenitySlugs []string `json:"amenity_slugs,omitempty"`
	Keyword      *string  `json:"keyword,omitempty"`
	FRBOOnly     *bool    `json:"frbo_only,omitempty"`
	Page         *int     `json:"page,omitempty"`
	FilterOption *string  `json:"filter_option,omitempty"`
	MaxPages     *int     `json:"max_pages,omitempty"`

	TenantName          *string `json:"tenant_name,omitempty"`
	TenantFirstName     *string `json:"tenant_first_name,omitempty"`
	TenantLastName      *string `json:"tenant_last_name,omitempty"`
	LeaseStartDate      *string `json:"lease_start_date,omitempty"`
	LeaseDurationMonths *int    `json:"lease_duration_months,omitempty"`
}

// Merge returns a copy of p with every non-nil field of override applied.
// Nil override fields never erase existing data. Pure: neither receiver nor
// argument is mutated.
func (p Preferences) Merge(override Preferences) Preferences {
	merged := p
	if override.City != nil {
		merged.City = override.City
	}
	if override.State != nil {
		merged.State = override.State
	}
	if override.Location != nil {
		merged.Location = override.Location
	}
	if override.NearMe != nil {
		merged.NearMe = override.NearMe
	}
	if override.PropertyType != nil {
		merged.PropertyType = override.PropertyType
	}
	if override.Lifestyle != nil {
		merged.Lifestyle = override.Lifestyle
	}
	if override.RoomsForRent != nil {
		merged.RoomsForRent = override.RoomsForRent
	}
	if override.MinRent != nil {
		merged.MinRent = override.MinRent
	}
	if override.MaxRent != nil {
		merged.MaxRent = override.MaxRent
	}
	if override.MinBeds != nil {
		merged.MinBeds = override.MinBeds
	}
	if override.MaxBeds != nil {
		merged.MaxBeds = override.MaxBeds
	}
	if override.MinBaths != nil {
		merged.MinBaths = override.MinBaths
	}
	if override.MaxBaths != nil {
		merged.MaxBaths = override.MaxBaths
	}
	if override.PetFriendly != nil {
		merged.PetFriendly = override.PetFriendly
	}
	if override.PetType != nil {
		merged.PetType = override.PetType
	}
	if override.CheapOnly != nil {
		merged.CheapOnly = override.CheapOnly
	}
	if override.UtilitiesIncluded != nil {
		merged.UtilitiesIncluded = override.UtilitiesIncluded
	}
	if override.AmenitySlugs != nil {
		merged.AmenitySlugs = override.AmenitySlugs
	}
	if override.Keyword != nil {
		merged.Keyword = override.Keyword
	}
	if override.FRBOOnly != nil {
		merged.FRBOOnly = override.FRBOOnly
	}
	if override.Page != nil {
		merged.Page = override.Page
	}
	if override.FilterOption != nil {
		merged.FilterOption = override.FilterOption
	}
	if override.MaxPages != nil {
		merged.MaxPages = override.MaxPages
	}
	if override.TenantName != nil {
		merged.TenantName = override.TenantName
	}
	if override.TenantFirstName != nil {
		merged.TenantFirstName = override.TenantFirstName
	}
	if override.TenantLastName != nil {
		merged.TenantLastName = override.TenantLastName
	}
	if override.LeaseStartDate != nil {
		merged.LeaseStartDate = override.LeaseStartDate
	}
	if override.LeaseDurationMonths != nil {
		merged.LeaseDurationMonths = override.LeaseDurationMonths
	}
	return merged
}

// Equal reports whether two preference sets carry the same values.
func (p Preferences) Equal(other Preferences) bool {
	a, err := json.Marshal(p)
	if err != nil {
		return false
	}
	b, err := json.Marshal(other)
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// HasBudgetOrSize reports whether at least one of the rent/bed/bath slots
// is filled.
func (p Preferences) HasBudgetOrSize() bool {
	return p.MinRent != nil || p.MaxRent != nil ||
		p.MinBeds != nil || p.MaxBeds != nil ||
		p.MinBaths != nil || p.MaxBaths != nil
}

// String pointer helper for building preference literals.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool { return &v }
