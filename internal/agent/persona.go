package agent

import (
	"strings"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

// Persona describes one assistant voice and its sampling parameters.
type Persona struct {
	Key         model.PersonaMode
	Label       string
	Temperature float64
	TopP        float64
	System      string
}

// PersonaTable maps each concrete persona mode to its definition.
// Tables are handed to the orchestrator through Config so deployments
// can tune voices without touching selection logic.
type PersonaTable map[model.PersonaMode]Persona

// DefaultPersonas is the stock persona table.
var DefaultPersonas = PersonaTable{
	model.PersonaNaturalist: {
		Key:         model.PersonaNaturalist,
		Label:       "The Neighborhood Naturalist",
		Temperature: 0.9,
		TopP:        1.0,
		System: "You are The Neighborhood Naturalist, a friendly local who knows every tree, coffee shop, and dog park in town. " +
			"Blend sensory detail with honest market realities. Highlight vibe, walkability, green spaces, and everyday life details. " +
			"Be warm, pragmatic, supportive, and realistic—never salesy.",
	},
	model.PersonaData: {
		Key:         model.PersonaData,
		Label:       "The Data Whisperer",
		Temperature: 0.3,
		TopP:        1.0,
		System: "You are The Data Whisperer, a concise, analytical, and reassuring rental guide. " +
			"Lean into metrics (price per sq ft, comps, average rents, trends) and explain them plainly. " +
			"Structure explanations, compare clearly, and demystify numbers without sounding robotic.",
	},
	model.PersonaDeal: {
		Key:         model.PersonaDeal,
		Label:       "The Deal Navigator",
		Temperature: 0.5,
		TopP:        1.0,
		System: "You are The Deal Navigator, a confident but calm guide through trade-offs and negotiations. " +
			"Highlight opportunities and risks without pressure. Frame options so the user feels in control. " +
			"Discuss strategy: when to move fast, when to wait, and what to compromise on.",
	},
}

// personaAliases maps user-typed names and menu numbers to modes.
var personaAliases = map[string]model.PersonaMode{
	"1":            model.PersonaNaturalist,
	"2":            model.PersonaData,
	"3":            model.PersonaDeal,
	"4":            model.PersonaAuto,
	"naturalist":   model.PersonaNaturalist,
	"neighbor":     model.PersonaNaturalist,
	"neighborhood": model.PersonaNaturalist,
	"local":        model.PersonaNaturalist,
	"data":         model.PersonaData,
	"numbers":      model.PersonaData,
	"metrics":      model.PersonaData,
	"deal":         model.PersonaDeal,
	"navigator":    model.PersonaDeal,
	"auto":         model.PersonaAuto,
}

// NormalizePersonaMode resolves a user-supplied persona name or alias.
// Unknown names fall back to auto.
func NormalizePersonaMode(raw string) model.PersonaMode {
	key := strings.ToLower(strings.TrimSpace(raw))
	if mode, ok := personaAliases[key]; ok {
		return mode
	}
	return model.PersonaAuto
}

// Label returns the display name for a mode.
func (t PersonaTable) Label(mode model.PersonaMode) string {
	if persona, ok := t[mode]; ok {
		return persona.Label
	}
	return "Auto"
}

// PersonaLabel returns the display name for a mode in the stock table.
func PersonaLabel(mode model.PersonaMode) string {
	return DefaultPersonas.Label(mode)
}

var (
	dealKeywords = []string{"negot", "offer", "trade", "compromise", "concession", "counter", "leverage"}
	dataKeywords = []string{
		"price", "rent", "trend", "value", "deal", "good deal",
		"compare", "worth", "market", "comps", "per sq", "per sqft",
	}
	vibeKeywords = []string{
		"neighborhood", "vibe", "walk", "park", "coffee",
		"feel", "safe", "quiet", "lively", "schools", "beach",
	}
)

// chooseAutoPersona picks a concrete persona from message content.
// Negotiation language wins over pricing language, which wins over
// lifestyle language. Budget talk, or an established rent range, falls
// back to the data persona.
func chooseAutoPersona(message string, prefs model.Preferences) model.PersonaMode {
	text := strings.ToLower(message)

	for _, kw := range dealKeywords {
		if strings.Contains(text, kw) {
			return model.PersonaDeal
		}
	}
	for _, kw := range dataKeywords {
		if strings.Contains(text, kw) {
			return model.PersonaData
		}
	}
	for _, kw := range vibeKeywords {
		if strings.Contains(text, kw) {
			return model.PersonaNaturalist
		}
	}
	if strings.Contains(text, "budget") {
		return model.PersonaData
	}
	if prefs.MinRent != nil || prefs.MaxRent != nil {
		return model.PersonaData
	}
	return model.PersonaNaturalist
}

// Resolve returns the persona to use for this turn. Auto mode is
// resolved per message; explicit modes are honored as-is.
func (t PersonaTable) Resolve(mode model.PersonaMode, message string, prefs model.Preferences) Persona {
	if mode == model.PersonaAuto || mode == "" {
		mode = chooseAutoPersona(message, prefs)
	}
	persona, ok := t[mode]
	if !ok {
		persona = t[model.PersonaNaturalist]
	}
	return persona
}

// ResolvePersona resolves against the stock table.
func ResolvePersona(mode model.PersonaMode, message string, prefs model.Preferences) Persona {
	return DefaultPersonas.Resolve(mode, message, prefs)
}
