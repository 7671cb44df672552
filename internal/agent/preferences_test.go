package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

func TestNormalizeCityState(t *testing.T) {
	tests := []struct {
		name      string
		prefs     model.Preferences
		wantCity  string
		wantState string
	}{
		{
			name:      "location with comma",
			prefs:     model.Preferences{Location: model.StringPtr("Austin, TX")},
			wantCity:  "Austin",
			wantState: "TX",
		},
		{
			name:      "location with state name",
			prefs:     model.Preferences{Location: model.StringPtr("Austin Texas")},
			wantCity:  "Austin",
			wantState: "TX",
		},
		{
			name:      "multi word city",
			prefs:     model.Preferences{Location: model.StringPtr("West Lafayette, Indiana")},
			wantCity:  "West Lafayette",
			wantState: "IN",
		},
		{
			name:      "state name normalized",
			prefs:     model.Preferences{City: model.StringPtr("Miami"), State: model.StringPtr("florida")},
			wantCity:  "Miami",
			wantState: "FL",
		},
		{
			name:      "abbreviation uppercased",
			prefs:     model.Preferences{City: model.StringPtr("Miami"), State: model.StringPtr("fl")},
			wantCity:  "Miami",
			wantState: "FL",
		},
		{
			name:     "city alone stays",
			prefs:    model.Preferences{Location: model.StringPtr("Chicago")},
			wantCity: "Chicago",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCityState(tt.prefs)
			if tt.wantCity == "" {
				assert.Nil(t, got.City)
			} else {
				assert.Equal(t, tt.wantCity, *got.City)
			}
			if tt.wantState == "" {
				assert.Nil(t, got.State)
			} else {
				assert.Equal(t, tt.wantState, *got.State)
			}
		})
	}
}

func TestNormalizeCityStateDropsUnknownState(t *testing.T) {
	got := NormalizeCityState(model.Preferences{
		City:  model.StringPtr("Austin"),
		State: model.StringPtr("somewhere"),
	})
	assert.Nil(t, got.State)
}

func TestNormalizeCityStateKeepsExplicitCity(t *testing.T) {
	got := NormalizeCityState(model.Preferences{
		City:     model.StringPtr("Dallas"),
		Location: model.StringPtr("Austin, TX"),
	})
	assert.Equal(t, "Dallas", *got.City)
}

func TestComputeMissing(t *testing.T) {
	tests := []struct {
		name  string
		prefs model.Preferences
		want  []string
	}{
		{
			name: "nothing set",
			want: []string{
				"city and state (e.g., Austin, TX)",
				"budget or bedroom/bathroom preferences",
			},
		},
		{
			name:  "state without city",
			prefs: model.Preferences{State: model.StringPtr("TX"), MaxRent: model.IntPtr(1500)},
			want:  []string{"city (e.g., Austin)"},
		},
		{
			name:  "city without state",
			prefs: model.Preferences{City: model.StringPtr("Austin"), MaxRent: model.IntPtr(1500)},
			want:  []string{"state for Austin (e.g., TX)"},
		},
		{
			name:  "near me skips location",
			prefs: model.Preferences{NearMe: model.BoolPtr(true)},
			want:  []string{"budget or bedroom/bathroom preferences"},
		},
		{
			name: "complete",
			prefs: model.Preferences{
				City:    model.StringPtr("Austin"),
				State:   model.StringPtr("TX"),
				MinBeds: model.IntPtr(1),
			},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeMissing(tt.prefs))
		})
	}
}

func TestClarifyingQuestions(t *testing.T) {
	questions := ClarifyingQuestions([]string{"city (e.g., Austin)"})
	assert.Equal(t, []string{"Could you share your city (e.g., Austin)?"}, questions)
	assert.Empty(t, ClarifyingQuestions(nil))
}
