package search

import (
	"github.com/aptiva-ai/rental-platform/internal/model"
)

// FromPreferences maps accumulated user preferences onto a search query.
// Unset preference fields leave the corresponding query fields zero.
func FromPreferences(p model.Preferences) Query {
	q := Query{}

	if p.City != nil {
		q.City = *p.City
	}
	if p.State != nil {
		q.State = *p.State
	}
	if p.NearMe != nil {
		q.NearMe = *p.NearMe
	}
	if p.PropertyType != nil {
		q.PropertyType = PropertyType(*p.PropertyType)
	}
	if p.Lifestyle != nil {
		q.Lifestyle = Lifestyle(*p.Lifestyle)
	}
	if p.MinBeds != nil {
		q.MinBeds = *p.MinBeds
	}
	if p.MaxBeds != nil {
		q.MaxBeds = *p.MaxBeds
	}
	if p.MinBaths != nil {
		q.MinBaths = *p.MinBaths
	}
	if p.MaxBaths != nil {
		q.MaxBaths = *p.MaxBaths
	}
	if p.MinRent != nil {
		q.MinRent = *p.MinRent
	}
	if p.MaxRent != nil {
		q.MaxRent = *p.MaxRent
	}
	if p.PetFriendly != nil {
		q.PetFriendly = *p.PetFriendly
	}
	if p.PetType != nil {
		q.PetType = PetType(*p.PetType)
	}
	if p.CheapOnly != nil {
		q.CheapOnly = *p.CheapOnly
	}
	if p.UtilitiesIncluded != nil {
		q.UtilitiesIncluded = *p.UtilitiesIncluded
	}
	if p.AmenitySlugs != nil {
		q.AmenitySlugs = p.AmenitySlugs
	}
	if p.RoomsForRent != nil {
		q.RoomsForRent = *p.RoomsForRent
	}
	if p.Keyword != nil {
		q.Keyword = *p.Keyword
	}
	if p.FRBOOnly != nil {
		q.FRBOOnly = *p.FRBOOnly
	}
	if p.Page != nil {
		q.Page = *p.Page
	}

	return q
}
