package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Listing is a normalized rental listing as returned by the listings
// provider. The shape is validated once at the provider boundary; code
// downstream may trust it.
type Listing struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	URL             string      `json:"url"`
	Location        string      `json:"location"`
	Rent            string      `json:"rent"`
	Beds            string      `json:"beds"`
	Baths           string      `json:"baths"`
	SquareFeet      string      `json:"square_feet,omitempty"`
	About           *About      `json:"about,omitempty"`
	FloorPlans      []FloorPlan `json:"floor_plans,omitempty"`
	Amenities       []string    `json:"amenities,omitempty"`
	Contact         *Contact    `json:"contact,omitempty"`
	PropertyWebsite string      `json:"property_website,omitempty"`
	LogoURL         string      `json:"logo_url,omitempty"`
	Thumbnails      []string    `json:"thumbnails,omitempty"`
}

// About carries the free-text description block of a listing.
type About struct {
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// Contact is the leasing office contact block.
type Contact struct {
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
}

// FloorPlan is one plan grouping on a listing page. PricePerPerson marks
// communities (student housing, co-living) that quote rent per resident
// rather than per unit.
type FloorPlan struct {
	Name           string `json:"name"`
	Units          []Unit `json:"units,omitempty"`
	Rent           string `json:"rent,omitempty"`
	Beds           string `json:"beds,omitempty"`
	Baths          string `json:"baths,omitempty"`
	Availability   string `json:"availability,omitempty"`
	Deposit        string `json:"deposit,omitempty"`
	PricePerPerson bool   `json:"price_per_person,omitempty"`
}

// Unit is one rentable unit within a floor plan.
type Unit struct {
	Number       string `json:"number,omitempty"`
	Rent         string `json:"rent,omitempty"`
	SquareFeet   string `json:"square_feet,omitempty"`
	Availability string `json:"availability,omitempty"`
}

// ValidateListing checks the minimum shape a listing must have before it
// enters the pipeline.
func ValidateListing(l *Listing) error {
	if l == nil {
		return fmt.Errorf("listing is nil")
	}
	if strings.TrimSpace(l.Title) == "" && strings.TrimSpace(l.URL) == "" {
		return fmt.Errorf("listing has neither title nor url")
	}
	return nil
}

// SearchText serializes the listing to a lowercase blob for keyword
// scoring.
func (l *Listing) SearchText() string {
	b, err := json.Marshal(l)
	if err != nil {
		return strings.ToLower(l.Title + " " + l.Location)
	}
	return strings.ToLower(string(b))
}
