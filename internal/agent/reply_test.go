package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptiva-ai/rental-platform/internal/model"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
)

func TestNewListingView(t *testing.T) {
	listing := model.Listing{
		Title:    "Oak Court",
		Location: "501 Oak St, Austin, TX",
		Rent:     "$1,200 - $1,850",
		Beds:     "2 beds",
		Baths:    "1.5 baths",
		Amenities: []string{
			"Pool", "Gym", "Sauna", "Garage", "Balcony", "Rooftop", "Clubhouse",
		},
		About:      &model.About{Highlights: []string{"Renovated", "Quiet street"}},
		Thumbnails: []string{"https://img.example.com/a.jpg", "https://img.example.com/b.jpg"},
		URL:        "https://www.apartments.com/oak-court-austin-tx/abc123/",
	}

	view := NewListingView(listing, []string{"Zilker Park"})

	assert.Equal(t, "Oak Court", view.Title)
	assert.Equal(t, "$1,200 - $1,850", view.PriceText)
	assert.Equal(t, "2", view.BedsText)
	assert.Equal(t, "1.5", view.BathsText)
	assert.Len(t, view.Amenities, 6)
	assert.Equal(t, []string{"Renovated", "Quiet street"}, view.Features)
	assert.Equal(t, []string{"Zilker Park"}, view.Nearby)
	assert.Equal(t, "https://img.example.com/a.jpg", view.Image)
}

func TestNewListingViewDefaults(t *testing.T) {
	view := NewListingView(model.Listing{}, nil)
	assert.Equal(t, "Listing", view.Title)
	assert.Equal(t, "Price not listed", view.PriceText)
	assert.Equal(t, "N/A", view.BedsText)
	assert.Equal(t, "N/A", view.BathsText)
	assert.Empty(t, view.Image)
}

func TestFormatPriceLabel(t *testing.T) {
	assert.Equal(t, "$1,200 - $1,850", formatPriceLabel(1200, 1850))
	assert.Equal(t, "$950+", formatPriceLabel(950, 950))
	assert.Equal(t, "Up to $2,000", formatPriceLabel(0, 2000))
	assert.Equal(t, "Price not listed", formatPriceLabel(0, 0))
}

func TestRenderListingsMarkdown(t *testing.T) {
	views := []ListingView{
		{
			Rank:      1,
			Title:     "Oak Court",
			Location:  "Austin, TX",
			PriceText: "$1,200+",
			BedsText:  "2",
			BathsText: "1",
			Amenities: []string{"Pool"},
			WhyMatch:  []string{"fits your budget ceiling"},
			URL:       "https://www.apartments.com/oak-court-austin-tx/abc123/",
			Image:     "https://img.example.com/a.jpg",
		},
		{Title: "No Link Lodge", BedsText: "1", BathsText: "1"},
	}

	md := RenderListingsMarkdown(views)

	assert.Contains(t, md, "1. **[Oak Court](https://www.apartments.com/oak-court-austin-tx/abc123/)**")
	assert.Contains(t, md, `<img src="https://img.example.com/a.jpg" alt="Oak Court - primary photo" width="280" />`)
	assert.Contains(t, md, "- **Why it matches**: fits your budget ceiling")
	// second entry falls back to its position and a plain title
	assert.Contains(t, md, "2. **No Link Lodge**")
	assert.NotContains(t, md, "img src=\"\"")
}

func TestGeneratePersonaReplyStreams(t *testing.T) {
	client := &fakeLLM{streamTokens: []string{"Hello", " there"}}
	log := logger.Global()

	var streamed []string
	reply, err := GeneratePersonaReply(context.Background(), client, log, ReplyInput{
		Intent:        "clarify",
		Persona:       DefaultPersonas[model.PersonaData],
		LatestMessage: "hi",
	}, func(token string, index int) error {
		streamed = append(streamed, token)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello there", reply)
	assert.Equal(t, []string{"Hello", " there"}, streamed)

	req := client.lastRequest
	require.NotNil(t, req)
	assert.True(t, req.Stream)
	assert.InDelta(t, DefaultPersonas[model.PersonaData].Temperature, req.Temperature, 1e-9)
	assert.True(t, strings.HasPrefix(req.System, DefaultPersonas[model.PersonaData].System))
}

func TestGeneratePersonaReplyCallbackFailureKeepsFullText(t *testing.T) {
	client := &fakeLLM{streamTokens: []string{"Hello", " wide", " world"}}

	calls := 0
	reply, err := GeneratePersonaReply(context.Background(), client, logger.Global(), ReplyInput{
		Intent:  "results",
		Persona: DefaultPersonas[model.PersonaNaturalist],
	}, func(token string, index int) error {
		calls++
		return errors.New("client went away")
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello wide world", reply)
	// forwarding stops after the first failure, the stream keeps going
	assert.Equal(t, 1, calls)
}

func TestGeneratePersonaReplyPartialStream(t *testing.T) {
	client := &fakeLLM{
		streamTokens: []string{"Partial answer"},
		streamErr:    errors.New("connection reset"),
	}

	reply, err := GeneratePersonaReply(context.Background(), client, logger.Global(), ReplyInput{
		Intent:  "results",
		Persona: DefaultPersonas[model.PersonaNaturalist],
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Partial answer", reply)
}

func TestGeneratePersonaReplyFallbacks(t *testing.T) {
	failed := &fakeLLM{streamErr: errors.New("boom")}
	reply, err := GeneratePersonaReply(context.Background(), failed, logger.Global(), ReplyInput{
		Persona: DefaultPersonas[model.PersonaData],
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Sorry, the response was interrupted. Could you ask again?", reply)

	empty := &fakeLLM{}
	reply, err = GeneratePersonaReply(context.Background(), empty, logger.Global(), ReplyInput{
		Persona: DefaultPersonas[model.PersonaData],
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Let me know how you'd like to adjust the search.", reply)
}
