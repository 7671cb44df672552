package agent

import (
	"fmt"
	"strings"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

// NormalizeCityState canonicalizes the location fields on a preference
// set. A free-text location is split into city and state when city is
// still unset; state names are reduced to two-letter abbreviations. A
// state that is neither a known name nor a two-letter code is dropped so
// the missing-field check asks the user again.
func NormalizeCityState(prefs model.Preferences) model.Preferences {
	if prefs.Location != nil && prefs.City == nil {
		city, state := splitLocation(*prefs.Location)
		if city != "" {
			prefs.City = model.StringPtr(city)
		}
		if state != "" && prefs.State == nil {
			prefs.State = model.StringPtr(state)
		}
	}
	if prefs.State != nil {
		normalized := model.NormalizeState(*prefs.State)
		if len(normalized) == 2 {
			prefs.State = model.StringPtr(strings.ToUpper(normalized))
		} else {
			prefs.State = nil
		}
	}
	return prefs
}

// splitLocation parses "Austin, TX" or "Austin Texas" style strings.
// The last token is treated as the state when it resolves to one.
func splitLocation(location string) (city, state string) {
	text := strings.TrimSpace(location)
	if text == "" {
		return "", ""
	}
	if i := strings.LastIndex(text, ","); i >= 0 {
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
	}
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return text, ""
	}
	last := fields[len(fields)-1]
	if len(last) == 2 || model.NormalizeState(last) != last {
		return strings.Join(fields[:len(fields)-1], " "), last
	}
	return text, ""
}

// ComputeMissing lists the preference gaps that block a search: a
// location (unless searching near the user) and at least one budget or
// size constraint.
func ComputeMissing(prefs model.Preferences) []string {
	var missing []string
	nearMe := prefs.NearMe != nil && *prefs.NearMe
	if !nearMe {
		hasCity := prefs.City != nil && *prefs.City != ""
		hasState := prefs.State != nil && *prefs.State != ""
		switch {
		case !hasCity && !hasState:
			missing = append(missing, "city and state (e.g., Austin, TX)")
		case !hasCity:
			missing = append(missing, "city (e.g., Austin)")
		case !hasState:
			missing = append(missing, fmt.Sprintf("state for %s (e.g., TX)", *prefs.City))
		}
	}
	if !prefs.HasBudgetOrSize() {
		missing = append(missing, "budget or bedroom/bathroom preferences")
	}
	return missing
}

// ClarifyingQuestions turns missing-field labels into questions.
func ClarifyingQuestions(missing []string) []string {
	questions := make([]string, 0, len(missing))
	for _, item := range missing {
		questions = append(questions, fmt.Sprintf("Could you share your %s?", item))
	}
	return questions
}
