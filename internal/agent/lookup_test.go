package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

func testListings() []model.Listing {
	return []model.Listing{
		{Title: "Oak Court", Location: "501 Oak St, Austin, TX", URL: "https://www.apartments.com/oak-court-austin-tx/abc123/"},
		{Title: "Mueller Flats", Location: "900 Berkman Dr, Austin, TX", URL: "https://www.apartments.com/mueller-flats-austin-tx/def456/"},
		{Title: "The Grove", Location: "77 Grove Ln, Austin, TX", URL: "https://www.apartments.com/the-grove-austin-tx/ghi789/"},
	}
}

func TestBuildListingLookup(t *testing.T) {
	lookup := BuildListingLookup(testListings())

	for _, key := range []string{"1", "listing 1", "option 1", "choice 1", "#1"} {
		ident, ok := lookup[key]
		require.True(t, ok, "missing key %q", key)
		assert.Equal(t, "Oak Court", ident.Title)
	}

	ident, ok := lookup["mueller flats"]
	require.True(t, ok)
	assert.Equal(t, "Mueller Flats", ident.Title)

	// URL keys are stored without the trailing slash
	_, ok = lookup["https://www.apartments.com/the-grove-austin-tx/ghi789"]
	assert.True(t, ok)
}

func TestIdentifyListingFromMessage(t *testing.T) {
	listings := testListings()
	lookup := BuildListingLookup(listings)

	tests := []struct {
		name    string
		message string
		want    string
		found   bool
	}{
		{"bare number", "2", "Mueller Flats", true},
		{"listing phrase", "tell me about listing 3", "The Grove", true},
		{"option phrase", "what about option 1?", "Oak Court", true},
		{"hash reference", "is #2 pet friendly?", "Mueller Flats", true},
		{"title mention", "how far is Mueller Flats from downtown?", "Mueller Flats", true},
		{"url mention", "more on https://www.apartments.com/oak-court-austin-tx/abc123/ please", "Oak Court", true},
		{"url with punctuation", "check this (https://www.apartments.com/the-grove-austin-tx/ghi789/).", "The Grove", true},
		{"out of range number", "9", "", false},
		{"no reference", "what else should I consider?", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident, ok := IdentifyListingFromMessage(tt.message, lookup, listings)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, ident.Title)
			}
		})
	}
}

func TestFindListing(t *testing.T) {
	listings := testListings()

	byURL := FindListing(listings, ListingIdentity{URL: "https://www.apartments.com/mueller-flats-austin-tx/def456"})
	require.NotNil(t, byURL)
	assert.Equal(t, "Mueller Flats", byURL.Title)

	byTitle := FindListing(listings, ListingIdentity{Title: "the grove"})
	require.NotNil(t, byTitle)
	assert.Equal(t, "The Grove", byTitle.Title)

	assert.Nil(t, FindListing(listings, ListingIdentity{Title: "Nowhere Manor"}))
}
