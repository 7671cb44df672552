package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

func TestFromPreferences(t *testing.T) {
	prefs := model.Preferences{
		City:         model.StringPtr("Austin"),
		State:        model.StringPtr("TX"),
		MaxRent:      model.IntPtr(1500),
		MinBeds:      model.IntPtr(2),
		PetFriendly:  model.BoolPtr(true),
		PetType:      model.StringPtr("dog"),
		PropertyType: model.StringPtr("houses"),
	}

	q := FromPreferences(prefs)
	assert.Equal(t, "Austin", q.City)
	assert.Equal(t, "TX", q.State)
	assert.Equal(t, 1500, q.MaxRent)
	assert.Equal(t, 2, q.MinBeds)
	assert.True(t, q.PetFriendly)
	assert.Equal(t, PetType("dog"), q.PetType)
	assert.Equal(t, PropertyType("houses"), q.PropertyType)

	url, err := q.BuildURL()
	require.NoError(t, err)
	assert.Equal(t, "https://www.apartments.com/houses/austin-tx/min-2-bedrooms-under-1500-pet-friendly-dog/", url)
}

func TestFromPreferencesZeroValue(t *testing.T) {
	q := FromPreferences(model.Preferences{})
	assert.Equal(t, Query{}, q)
}
