package lease

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

func TestParseMoveInDate(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		input string
		want  string
	}{
		{"2026-09-01", "2026-09-01"},
		// words ahead of the date must not shadow it
		{"I could do 9/1/2026", "2026-09-01"},
		{"we were hoping for 2026-12-01", "2026-12-01"},
		{"09/01/2026 works", "2026-09-01"},
		{"September 1", "2026-09-01"},
		{"Sep 1, 2027", "2027-09-01"},
		{"moving on October 15 2026", "2026-10-15"},
	}
	for _, tc := range cases {
		got, err := ParseMoveInDate(tc.input, now)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got.Format("2006-01-02"), "input %q", tc.input)
	}
}

func TestParseMoveInDateErrors(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"", "whenever works", "soonish"} {
		_, err := ParseMoveInDate(input, now)
		assert.Error(t, err, "input %q", input)
	}
}

func TestDeriveDurationBounds(t *testing.T) {
	rangeListing := &model.Listing{
		About: &model.About{Description: "Flexible 6 to 18 month lease terms available."},
	}
	bounds := DeriveDurationBounds(rangeListing)
	assert.Equal(t, model.DurationBounds{Min: 6, Max: 18}, bounds)

	singleListing := &model.Listing{
		About: &model.About{Description: "9 month lease or 15 month lease options."},
	}
	bounds = DeriveDurationBounds(singleListing)
	assert.Equal(t, model.DurationBounds{Min: 9, Max: 15}, bounds)

	assert.Equal(t, model.DurationBounds{Min: 12, Max: 12}, DeriveDurationBounds(nil))
	assert.Equal(t, model.DurationBounds{Min: 12, Max: 12}, DeriveDurationBounds(&model.Listing{Title: "No term info"}))
}

func TestParseDuration(t *testing.T) {
	bounds := model.DurationBounds{Min: 6, Max: 18}

	months, err := ParseDuration("12 months", bounds)
	require.NoError(t, err)
	assert.Equal(t, 12, months)

	for _, input := range []string{"all", "the max", "full term"} {
		months, err = ParseDuration(input, bounds)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, 18, months, "input %q", input)
	}

	_, err = ParseDuration("24", bounds)
	assert.Error(t, err)
	_, err = ParseDuration("3", bounds)
	assert.Error(t, err)
	_, err = ParseDuration("", bounds)
	assert.Error(t, err)
	_, err = ParseDuration("dunno", bounds)
	assert.Error(t, err)
}
