package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aptiva-ai/rental-platform/internal/llm"
	"github.com/aptiva-ai/rental-platform/internal/model"
)

const extractionSystemPrompt = "You are a friendly U.S. rental real estate agent. " +
	"Extract the user's preferences for Apartments.com searches. " +
	"Only include fields that are clearly implied. " +
	"Use JSON with a top-level 'preferences' object and optional 'clarifying_questions' list. " +
	"Preferences keys allowed: city, state, location, near_me, property_type, lifestyle, rooms_for_rent, " +
	"min_rent, max_rent, min_beds, max_beds, min_baths, max_baths, pet_friendly, pet_type, " +
	"cheap_only, utilities_included, amenity_slugs, keyword, frbo_only, page, filter_option, max_pages."

// ExtractionResult is the outcome of one preference-extraction turn.
type ExtractionResult struct {
	Preferences       model.Preferences
	Updated           bool
	Missing           []string
	ClarifyingQueries []string
}

type extractionPayload struct {
	ExistingPreferences model.Preferences `json:"existing_preferences"`
	Message             string            `json:"message"`
}

type extractionResponse struct {
	Preferences       *model.Preferences `json:"preferences"`
	ClarifyingQueries []string           `json:"clarifying_questions"`
}

// ExtractPreferences asks the LLM for structured preference updates and
// merges them into the existing set. New nil fields never erase values
// the user already gave.
func ExtractPreferences(ctx context.Context, client llm.Client, modelName string, existing model.Preferences, message string) (*ExtractionResult, error) {
	payload, err := json.Marshal(extractionPayload{
		ExistingPreferences: existing,
		Message:             message,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling extraction payload: %w", err)
	}

	resp, err := client.Complete(ctx, &llm.CompletionRequest{
		Model:       modelName,
		System:      extractionSystemPrompt,
		Messages:    []llm.ChatMessage{{Role: "user", Content: string(payload)}},
		Temperature: 0,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("extracting preferences: %w", err)
	}

	var parsed extractionResponse
	_ = json.Unmarshal([]byte(resp.Content), &parsed)
	if parsed.Preferences == nil {
		// Some models return the preference object without the wrapper.
		var bare model.Preferences
		if err := json.Unmarshal([]byte(resp.Content), &bare); err == nil {
			parsed.Preferences = &bare
		} else {
			parsed.Preferences = &model.Preferences{}
		}
	}

	merged := NormalizeCityState(existing.Merge(*parsed.Preferences))
	missing := ComputeMissing(merged)
	clarifying := parsed.ClarifyingQueries
	if len(missing) > 0 && len(clarifying) == 0 {
		clarifying = ClarifyingQuestions(missing)
	}

	return &ExtractionResult{
		Preferences:       merged,
		Updated:           !merged.Equal(existing),
		Missing:           missing,
		ClarifyingQueries: clarifying,
	}, nil
}
