package lease

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

func TestInferLandlordNameFromLogo(t *testing.T) {
	listing := &model.Listing{
		Title:   "Riverbend Commons",
		LogoURL: "https://cdn.example.com/brands/greystar-logo.png",
	}
	assert.Equal(t, "Greystar", InferLandlordName(listing, model.Preferences{}))
}

func TestInferLandlordNameFromPropertyWebsite(t *testing.T) {
	listing := &model.Listing{
		Title:           "Riverbend Commons",
		PropertyWebsite: "https://www.riverbendcommons.com/",
	}
	assert.Equal(t, "Riverbendcommons", InferLandlordName(listing, model.Preferences{}))
}

func TestInferLandlordNameFromListingSlug(t *testing.T) {
	prefs := model.Preferences{
		City:  model.StringPtr("Austin"),
		State: model.StringPtr("TX"),
	}
	listing := &model.Listing{
		URL: "https://www.apartments.com/riverbend-commons-austin-tx/xyz789/",
	}
	// city and state tokens are stripped from the slug
	assert.Equal(t, "Riverbend Commons", InferLandlordName(listing, prefs))
}

func TestInferLandlordNameStripsLocationFromListingAddress(t *testing.T) {
	listing := &model.Listing{
		Location: "500 Congress Ave, Austin, TX",
		URL:      "https://www.apartments.com/skyline-lofts-austin-tx/abc123/",
	}
	assert.Equal(t, "Skyline Lofts", InferLandlordName(listing, model.Preferences{}))
}

func TestInferLandlordNameFallsBackToTitle(t *testing.T) {
	listing := &model.Listing{Title: "Riverbend Commons"}
	assert.Equal(t, "Riverbend Commons", InferLandlordName(listing, model.Preferences{}))
}

func TestInferLandlordNameNilListing(t *testing.T) {
	assert.Equal(t, "Property Owner", InferLandlordName(nil, model.Preferences{}))
}

func TestSlugToTitle(t *testing.T) {
	assert.Equal(t, "Oak Court Management", slugToTitle("oak-court-management"))
	assert.Equal(t, "", slugToTitle("  / "))
}
