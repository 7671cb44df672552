// Package search builds Apartments.com search URLs from structured
// queries. Only path patterns that appear on real site pages are used.
package search

import (
	"fmt"
	"math"
	"strings"
)

// BaseURL is the search site root.
const BaseURL = "https://www.apartments.com"

// PropertyType scopes the search. Apartments use the default city page;
// houses, condos and townhomes use a path prefix; lofts use a trailing
// slug.
type PropertyType string

const (
	PropertyApartments PropertyType = "apartments"
	PropertyHouses     PropertyType = "houses"
	PropertyCondos     PropertyType = "condos"
	PropertyTownhomes  PropertyType = "townhomes"
	PropertyLofts      PropertyType = "lofts"
)

// Lifestyle selects a dedicated city page such as /city-state/student-housing/.
type Lifestyle string

const (
	LifestyleStudent   Lifestyle = "student-housing"
	LifestyleSenior    Lifestyle = "senior-housing"
	LifestyleCorporate Lifestyle = "corporate"
	LifestyleMilitary  Lifestyle = "military"
	LifestyleShortTerm Lifestyle = "short-term"
)

// PetType narrows a pet-friendly search to dogs or cats.
type PetType string

const (
	PetDog PetType = "dog"
	PetCat PetType = "cat"
)

// Query describes one search. Zero values mean "not set". Fields kept as
// metadata only (keyword, FRBO, ratings) are handled internally by the
// site and never encoded in the path.
type Query struct {
	City   string
	State  string
	NearMe bool

	PropertyType PropertyType

	MinBeds  int
	MaxBeds  int
	MinBaths float64
	MaxBaths float64

	MinRent int
	MaxRent int

	Lifestyle Lifestyle

	PetFriendly bool
	PetType     PetType

	CheapOnly         bool
	UtilitiesIncluded bool

	// Amenity pages like /city-state/washer-dryer/. Only the first slug is
	// used and only when there are no numeric filters.
	AmenitySlugs []string

	RoomsForRent bool

	// Metadata not encoded in the URL.
	Keyword  string
	FRBOOnly bool

	// Page 1 is the base URL.
	Page int
}

// SlugifyLocation builds a location slug from a city and state, e.g.
// ("Los Angeles", "CA") -> "los-angeles-ca".
func SlugifyLocation(city, state string) (string, error) {
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	if city == "" || state == "" {
		return "", fmt.Errorf("both city and state are required to build a location slug")
	}

	text := strings.ToLower(city + ", " + state)
	var b strings.Builder
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	slug := strings.Join(strings.Fields(b.String()), "-")
	if slug == "" {
		return "", fmt.Errorf("could not build slug from location %q", text)
	}
	return slug, nil
}

func bedSegment(minBeds, maxBeds int) string {
	switch {
	case minBeds == 0 && maxBeds == 0:
		return ""
	case minBeds != 0 && maxBeds != 0 && minBeds == maxBeds:
		return fmt.Sprintf("%d-bedrooms", minBeds)
	case minBeds != 0 && maxBeds != 0:
		return fmt.Sprintf("%d-to-%d-bedrooms", minBeds, maxBeds)
	case minBeds != 0:
		return fmt.Sprintf("min-%d-bedrooms", minBeds)
	default:
		return fmt.Sprintf("max-%d-bedrooms", maxBeds)
	}
}

// bathSegment encodes a minimum baths filter (1+, 2+, etc).
func bathSegment(minBaths, maxBaths float64) string {
	value := minBaths
	if value == 0 {
		value = maxBaths
	}
	n := int(math.Floor(value))
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d-bathrooms", n)
}

func priceSegment(minRent, maxRent int) string {
	switch {
	case minRent > 0 && maxRent > 0:
		return fmt.Sprintf("%d-to-%d", minRent, maxRent)
	case maxRent > 0:
		return fmt.Sprintf("under-%d", maxRent)
	default:
		// No reliable slug for a minimum alone.
		return ""
	}
}

func petSegment(petFriendly bool, petType PetType) string {
	if !petFriendly {
		return ""
	}
	if petType == "" {
		return "pet-friendly"
	}
	return "pet-friendly-" + string(petType)
}

// numericFilterSlug assembles the combined slug in the exact order the
// site uses: beds, baths, price, pet.
func (q *Query) numericFilterSlug() string {
	var parts []string
	for _, seg := range []string{
		bedSegment(q.MinBeds, q.MaxBeds),
		bathSegment(q.MinBaths, q.MaxBaths),
		priceSegment(q.MinRent, q.MaxRent),
		petSegment(q.PetFriendly, q.PetType),
	} {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "-")
}

func (q *Query) hasNumericFilters() bool {
	return q.MinBeds != 0 || q.MaxBeds != 0 ||
		q.MinBaths != 0 || q.MaxBaths != 0 ||
		q.MinRent != 0 || q.MaxRent != 0 ||
		q.PetFriendly
}

// BuildURL builds the full search URL for the query. It is pure: calling
// it repeatedly with the same query yields the same URL.
func (q *Query) BuildURL() (string, error) {
	if q.NearMe {
		return BaseURL + q.nearMePath(), nil
	}
	path, err := q.locationPath()
	if err != nil {
		return "", err
	}
	return BaseURL + path, nil
}

func (q *Query) locationPath() (string, error) {
	if q.City == "" {
		return "", fmt.Errorf("city is required when near_me is false")
	}
	if q.State == "" {
		return "", fmt.Errorf("state is required when near_me is false")
	}

	var segments []string

	switch q.PropertyType {
	case PropertyHouses, PropertyCondos, PropertyTownhomes:
		segments = append(segments, string(q.PropertyType))
	}

	loc, err := SlugifyLocation(q.City, q.State)
	if err != nil {
		return "", err
	}
	segments = append(segments, loc)

	trailing := ""
	if q.PropertyType == PropertyLofts {
		trailing = "lofts"
	}

	// Dedicated pages win over numeric filters, in this precedence.
	switch {
	case q.RoomsForRent:
		trailing = "rooms-for-rent"
	case q.Lifestyle != "":
		trailing = string(q.Lifestyle)
	case q.UtilitiesIncluded && !q.hasNumericFilters() && !q.CheapOnly:
		trailing = "utilities-included"
	case q.CheapOnly && !q.hasNumericFilters():
		trailing = "cheap"
	case len(q.AmenitySlugs) > 0 && !q.hasNumericFilters() && !q.CheapOnly:
		trailing = q.AmenitySlugs[0]
	}

	if trailing == "" {
		trailing = q.numericFilterSlug()
	}

	if trailing != "" {
		segments = append(segments, trailing)
	}

	if q.Page > 1 {
		segments = append(segments, fmt.Sprintf("%d", q.Page))
	}

	return "/" + strings.Join(segments, "/") + "/", nil
}

// nearMePath covers the known near-me pages. Beds, baths, and price are
// handled by site-internal state for near-me searches and are not encoded.
func (q *Query) nearMePath() string {
	segments := []string{"near-me"}

	switch {
	case q.CheapOnly:
		segments = append(segments, "cheap-apartments-for-rent")
	case q.UtilitiesIncluded:
		segments = append(segments, "utilities-included-apartments")
	default:
		segments = append(segments, "apartments-for-rent")
	}

	if q.Page > 1 {
		segments = append(segments, fmt.Sprintf("%d", q.Page))
	}

	return "/" + strings.Join(segments, "/") + "/"
}
