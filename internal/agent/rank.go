package agent

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

const maxRankedListings = 5

var priceRE = regexp.MustCompile(`\$?(\d[\d,]*)`)

// ScoredListing pairs a listing with its preference-fit score.
type ScoredListing struct {
	Listing model.Listing
	Score   float64
}

// ExtractPriceRange pulls the lowest and highest dollar figures from a
// listing's rent string. Returns zeros when no figure is present.
func ExtractPriceRange(rent string) (min, max int) {
	matches := priceRE.FindAllStringSubmatch(rent, -1)
	for _, m := range matches {
		raw := strings.ReplaceAll(m[1], ",", "")
		n, err := strconv.Atoi(raw)
		if err != nil || n == 0 {
			continue
		}
		if min == 0 || n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	return min, max
}

// ExtractBedsBaths returns the highest bed and bath counts advertised
// across the listing's floor plans, falling back to the top-level fields.
func ExtractBedsBaths(listing model.Listing) (beds int, baths float64) {
	beds = parseLeadingInt(listing.Beds)
	baths = parseLeadingFloat(listing.Baths)
	for _, plan := range listing.FloorPlans {
		if b := parseLeadingInt(plan.Beds); b > beds {
			beds = b
		}
		if b := parseLeadingFloat(plan.Baths); b > baths {
			baths = b
		}
	}
	return beds, baths
}

var leadingNumberRE = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

func parseLeadingInt(s string) int {
	if strings.Contains(strings.ToLower(s), "studio") {
		return 0
	}
	m := leadingNumberRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, _ := strconv.ParseFloat(m[1], 64)
	return int(n)
}

func parseLeadingFloat(s string) float64 {
	m := leadingNumberRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, _ := strconv.ParseFloat(m[1], 64)
	return n
}

// Score rates a listing against the user's preferences. Budget fit
// dominates, then bedroom fit, then pet friendliness.
func Score(listing model.Listing, prefs model.Preferences) float64 {
	var score float64
	priceMin, priceMax := ExtractPriceRange(listing.Rent)
	beds, _ := ExtractBedsBaths(listing)

	if prefs.MaxRent != nil && priceMin > 0 && priceMin <= *prefs.MaxRent {
		score += 3
	}
	if prefs.MinRent != nil && priceMax >= *prefs.MinRent {
		score += 2
	}
	if prefs.MinBeds != nil && beds >= *prefs.MinBeds {
		score += 2
	}
	if prefs.MaxBeds != nil && beds <= *prefs.MaxBeds {
		score += 1
	}
	if prefs.PetFriendly != nil && *prefs.PetFriendly &&
		strings.Contains(listing.SearchText(), "pet") {
		score += 0.5
	}
	return score
}

// Rank scores every listing and returns the top five, highest score
// first. Equal scores keep their original order.
func Rank(listings []model.Listing, prefs model.Preferences) []ScoredListing {
	scored := make([]ScoredListing, 0, len(listings))
	for _, l := range listings {
		scored = append(scored, ScoredListing{Listing: l, Score: Score(l, prefs)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > maxRankedListings {
		scored = scored[:maxRankedListings]
	}
	return scored
}

// ReasonTags explains why a listing scored well, in user-facing terms.
func ReasonTags(listing model.Listing, prefs model.Preferences) []string {
	var reasons []string
	priceMin, priceMax := ExtractPriceRange(listing.Rent)
	beds, _ := ExtractBedsBaths(listing)

	if prefs.MaxRent != nil && priceMin > 0 && priceMin <= *prefs.MaxRent {
		reasons = append(reasons, "fits your budget ceiling")
	}
	if prefs.MinRent != nil && priceMax >= *prefs.MinRent {
		reasons = append(reasons, "in your budget range")
	}
	if prefs.MinBeds != nil && beds >= *prefs.MinBeds {
		reasons = append(reasons, "meets your bedroom need")
	}
	if prefs.MaxBeds != nil && beds <= *prefs.MaxBeds {
		reasons = append(reasons, "not oversized on bedrooms")
	}
	if prefs.PetFriendly != nil && *prefs.PetFriendly &&
		strings.Contains(listing.SearchText(), "pet") {
		reasons = append(reasons, "pet-friendly potential")
	}
	if len(listing.Amenities) > 0 {
		reasons = append(reasons, fmt.Sprintf("has amenities like %s", listing.Amenities[0]))
	}
	return reasons
}
