package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

func TestNormalizePersonaMode(t *testing.T) {
	tests := []struct {
		in   string
		want model.PersonaMode
	}{
		{"naturalist", model.PersonaNaturalist},
		{"Neighborhood", model.PersonaNaturalist},
		{"local", model.PersonaNaturalist},
		{"data", model.PersonaData},
		{"metrics", model.PersonaData},
		{"deal", model.PersonaDeal},
		{"navigator", model.PersonaDeal},
		{"auto", model.PersonaAuto},
		{"1", model.PersonaNaturalist},
		{"2", model.PersonaData},
		{"3", model.PersonaDeal},
		{"4", model.PersonaAuto},
		{" DATA ", model.PersonaData},
		{"", model.PersonaAuto},
		{"wizard", model.PersonaAuto},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePersonaMode(tt.in), "input %q", tt.in)
	}
}

func TestPersonaLabel(t *testing.T) {
	assert.Equal(t, "The Neighborhood Naturalist", PersonaLabel(model.PersonaNaturalist))
	assert.Equal(t, "The Data Whisperer", PersonaLabel(model.PersonaData))
	assert.Equal(t, "The Deal Navigator", PersonaLabel(model.PersonaDeal))
	assert.Equal(t, "Auto", PersonaLabel(model.PersonaAuto))
}

func TestResolvePersonaExplicitModeWins(t *testing.T) {
	p := ResolvePersona(model.PersonaData, "tell me about the neighborhood vibe", model.Preferences{})
	assert.Equal(t, model.PersonaData, p.Key)
}

func TestResolvePersonaAuto(t *testing.T) {
	tests := []struct {
		name    string
		message string
		prefs   model.Preferences
		want    model.PersonaMode
	}{
		{
			name:    "negotiation beats pricing",
			message: "can I negotiate the price down?",
			want:    model.PersonaDeal,
		},
		{
			name:    "pricing language",
			message: "is that rent above market?",
			want:    model.PersonaData,
		},
		{
			name:    "lifestyle language",
			message: "what's the neighborhood like for walks?",
			want:    model.PersonaNaturalist,
		},
		{
			name:    "budget keyword falls back to data",
			message: "I'm on a tight budget",
			want:    model.PersonaData,
		},
		{
			name:    "budget set falls back to data",
			message: "show me more",
			prefs:   model.Preferences{MaxRent: model.IntPtr(1800)},
			want:    model.PersonaData,
		},
		{
			name:    "default naturalist",
			message: "show me more",
			want:    model.PersonaNaturalist,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ResolvePersona(model.PersonaAuto, tt.message, tt.prefs)
			assert.Equal(t, tt.want, p.Key)
		})
	}
}

func TestPersonaTemperatures(t *testing.T) {
	assert.InDelta(t, 0.9, DefaultPersonas[model.PersonaNaturalist].Temperature, 1e-9)
	assert.InDelta(t, 0.3, DefaultPersonas[model.PersonaData].Temperature, 1e-9)
	assert.InDelta(t, 0.5, DefaultPersonas[model.PersonaDeal].Temperature, 1e-9)
}

func TestPersonaTableResolveCustomTable(t *testing.T) {
	table := PersonaTable{
		model.PersonaNaturalist: {Key: model.PersonaNaturalist, Label: "Block Captain"},
		model.PersonaData:       {Key: model.PersonaData, Label: "Quant Desk"},
	}
	p := table.Resolve(model.PersonaAuto, "what's the neighborhood like?", model.Preferences{})
	assert.Equal(t, "Block Captain", p.Label)
	assert.Equal(t, "Quant Desk", table.Label(model.PersonaData))
	assert.Equal(t, "Auto", table.Label(model.PersonaDeal))
}
