package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aptiva-ai/rental-platform/internal/listings"
	"github.com/aptiva-ai/rental-platform/internal/llm"
	"github.com/aptiva-ai/rental-platform/internal/maps"
	"github.com/aptiva-ai/rental-platform/internal/model"
	"github.com/aptiva-ai/rental-platform/internal/search"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
)

const (
	defaultMaxPages     = 1
	maxMaxPages         = 5
	defaultFilterOption = "all"
)

var validFilterOptions = map[string]bool{
	"all":  true,
	"bed0": true,
	"bed1": true,
	"bed2": true,
	"bed3": true,
	"bed4": true,
	"bed5": true,
}

// Models names the LLM models used per pipeline stage. Empty values
// fall back to the provider default.
type Models struct {
	Extraction string
	Reply      string
}

// Config carries the persona table and topic lists the orchestrator
// classifies with. Zero fields fall back to the stock tables.
type Config struct {
	Personas PersonaTable
	Topics   TopicLists
}

// DefaultConfig returns the stock persona and topic configuration.
func DefaultConfig() Config {
	return Config{Personas: DefaultPersonas, Topics: DefaultTopics()}
}

func (c Config) withDefaults() Config {
	if c.Personas == nil {
		c.Personas = DefaultPersonas
	}
	if c.Topics.Allow == nil && c.Topics.Deny == nil {
		c.Topics = DefaultTopics()
	}
	return c
}

// Orchestrator runs the search pipeline for a single turn: preference
// extraction, query building, listing fetch, enrichment, ranking, and
// the persona reply.
type Orchestrator struct {
	llm      llm.Client
	fetcher  listings.Fetcher
	enricher *maps.Enricher
	models   Models
	cfg      Config
	log      *logger.Logger
}

// NewOrchestrator wires the pipeline. enricher may be nil when no maps
// key is configured; enrichment is then skipped.
func NewOrchestrator(client llm.Client, fetcher listings.Fetcher, enricher *maps.Enricher, models Models, cfg Config, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		llm:      client,
		fetcher:  fetcher,
		enricher: enricher,
		models:   models,
		cfg:      cfg.withDefaults(),
		log:      log,
	}
}

// Run executes one turn against the conversation state. The state is
// mutated in place; the returned result carries the reply and outcome.
func (o *Orchestrator) Run(ctx context.Context, state *model.ConversationState, history []model.Message, message string, onChunk llm.StreamCallback) (*model.TurnResult, error) {
	persona := o.cfg.Personas.Resolve(state.PersonaMode, message, state.Preferences)

	extraction, err := o.extract(ctx, state, message)
	if err != nil {
		return nil, err
	}

	if len(extraction.Missing) > 0 {
		return o.clarify(ctx, state, history, message, persona, extraction.ClarifyingQueries, onChunk)
	}

	if len(state.Listings) > 0 && !state.PrefsChanged {
		return o.answerWithExisting(ctx, state, history, message, persona, onChunk)
	}

	searchURL, buildErr := o.buildQuery(state)
	if buildErr != nil {
		questions := []string{fmt.Sprintf("To build the search URL, I need a valid city/state. Details: %v", buildErr)}
		return o.clarify(ctx, state, history, message, persona, questions, onChunk)
	}
	state.SearchURL = searchURL

	fetched, fetchErr := o.fetch(ctx, state)
	if fetchErr != nil {
		o.log.Warn("listing fetch failed",
			zap.String("search_url", searchURL),
			zap.Error(fetchErr))
		state.Listings = nil
		state.Ranked = nil
		notes := fmt.Sprintf("Scraper failed: %v. Apologize briefly and ask to confirm preferences or try again.", fetchErr)
		return o.personaTurn(ctx, state, history, message, persona, "error", nil, nil, notes, model.OutcomeReply, onChunk)
	}
	if len(fetched) == 0 {
		state.Listings = nil
		state.Ranked = nil
		notes := "No listings were found; ask to adjust location or price range."
		return o.personaTurn(ctx, state, history, message, persona, "no_results", nil, nil, notes, model.OutcomeReply, onChunk)
	}
	state.Listings = fetched
	state.LastListing = nil

	nearby := o.enrich(ctx, fetched)

	ranked := Rank(fetched, state.Preferences)
	views := make([]ListingView, 0, len(ranked))
	rankedListings := make([]model.Listing, 0, len(ranked))
	for i, scored := range ranked {
		view := NewListingView(scored.Listing, nearby[listingKey(scored.Listing)])
		view.Rank = i + 1
		view.WhyMatch = ReasonTags(scored.Listing, state.Preferences)
		views = append(views, view)
		rankedListings = append(rankedListings, scored.Listing)
	}
	state.Ranked = rankedListings
	state.PrefsChanged = false

	notes := "Present the top matches in a natural, persona-aligned tone. Offer to refine price, beds/baths, or area."
	return o.personaTurn(ctx, state, history, message, persona, "results", views, nil, notes, model.OutcomeSearch, onChunk)
}

// extract merges LLM-extracted preferences into the state. An extraction
// failure keeps the prior preferences and reports the standing gaps.
func (o *Orchestrator) extract(ctx context.Context, state *model.ConversationState, message string) (*ExtractionResult, error) {
	result, err := ExtractPreferences(ctx, o.llm, o.models.Extraction, state.Preferences, message)
	if err != nil {
		o.log.Warn("preference extraction failed", zap.Error(err))
		missing := ComputeMissing(state.Preferences)
		return &ExtractionResult{
			Preferences:       state.Preferences,
			Missing:           missing,
			ClarifyingQueries: ClarifyingQuestions(missing),
		}, nil
	}
	if result.Updated {
		state.PrefsChanged = true
	}
	state.Preferences = result.Preferences
	return result, nil
}

func (o *Orchestrator) buildQuery(state *model.ConversationState) (string, error) {
	if state.SearchURL != "" && !state.PrefsChanged {
		return state.SearchURL, nil
	}
	query := search.FromPreferences(state.Preferences)
	return query.BuildURL()
}

func (o *Orchestrator) fetch(ctx context.Context, state *model.ConversationState) ([]model.Listing, error) {
	prefs := state.Preferences
	maxPages := defaultMaxPages
	if prefs.MaxPages != nil {
		maxPages = *prefs.MaxPages
	}
	if maxPages < 1 {
		maxPages = 1
	}
	if maxPages > maxMaxPages {
		maxPages = maxMaxPages
	}
	filter := defaultFilterOption
	if prefs.FilterOption != nil && validFilterOptions[*prefs.FilterOption] {
		filter = *prefs.FilterOption
	}
	return o.fetcher.Fetch(ctx, &listings.FetchRequest{
		SearchURL:    state.SearchURL,
		MaxPages:     maxPages,
		FilterOption: filter,
	})
}

// enrich returns nearby-POI summaries keyed by listing URL. Enrichment
// is best effort; a nil enricher yields an empty map.
func (o *Orchestrator) enrich(ctx context.Context, fetched []model.Listing) map[string][]string {
	nearby := make(map[string][]string)
	if o.enricher == nil {
		return nearby
	}
	for _, enriched := range o.enricher.Enrich(ctx, fetched) {
		if len(enriched.NearbyPOIs) > 0 {
			nearby[listingKey(enriched.Listing)] = enriched.NearbyPOIs
		}
	}
	return nearby
}

func listingKey(l model.Listing) string {
	if l.URL != "" {
		return l.URL
	}
	return l.Title
}

func (o *Orchestrator) clarify(ctx context.Context, state *model.ConversationState, history []model.Message, message string, persona Persona, questions []string, onChunk llm.StreamCallback) (*model.TurnResult, error) {
	notes := ""
	if len(questions) == 0 {
		notes = "Encourage the user to share city, state, budget, beds, and baths before searching."
	}
	return o.personaTurn(ctx, state, history, message, persona, "clarify", nil, questions, notes, model.OutcomeClarify, onChunk)
}

// answerWithExisting handles follow-ups against cached listings without
// re-fetching. A message that references one listing focuses the reply
// on it and remembers it for lease drafting.
func (o *Orchestrator) answerWithExisting(ctx context.Context, state *model.ConversationState, history []model.Message, message string, persona Persona, onChunk llm.StreamCallback) (*model.TurnResult, error) {
	lookup := BuildListingLookup(state.Listings)
	if identity, ok := IdentifyListingFromMessage(message, lookup, state.Listings); ok {
		if focus := FindListing(state.Listings, identity); focus != nil {
			state.LastListing = focus
			view := NewListingView(*focus, nil)
			view.WhyMatch = ReasonTags(*focus, state.Preferences)
			notes := "Use only the focused listing data; be concise and avoid inventing missing details."
			return o.personaTurn(ctx, state, history, message, persona, "listing_follow_up", nil, nil, notes, model.OutcomeReply, onChunk, withFocus(&view))
		}
	}

	preview := state.Ranked
	if len(preview) == 0 {
		preview = state.Listings
	}
	if len(preview) > maxRankedListings {
		preview = preview[:maxRankedListings]
	}
	views := make([]ListingView, 0, len(preview))
	for i, listing := range preview {
		view := NewListingView(listing, nil)
		view.Rank = i + 1
		view.WhyMatch = ReasonTags(listing, state.Preferences)
		views = append(views, view)
	}
	notes := "Answer the user's follow-up using cached listings; compare briefly and be transparent about trade-offs."
	return o.personaTurn(ctx, state, history, message, persona, "follow_up", views, nil, notes, model.OutcomeReply, onChunk)
}

type turnOption func(*ReplyInput)

func withFocus(view *ListingView) turnOption {
	return func(in *ReplyInput) { in.FocusedListing = view }
}

func (o *Orchestrator) personaTurn(ctx context.Context, state *model.ConversationState, history []model.Message, message string, persona Persona, intent string, views []ListingView, questions []string, notes string, outcome model.TurnOutcome, onChunk llm.StreamCallback, opts ...turnOption) (*model.TurnResult, error) {
	in := ReplyInput{
		Model:             o.models.Reply,
		Intent:            intent,
		Persona:           persona,
		Preferences:       state.Preferences,
		ClarifyingQueries: questions,
		Listings:          views,
		RecentMessages:    history,
		LatestMessage:     message,
		Notes:             notes,
	}
	for _, opt := range opts {
		opt(&in)
	}
	reply, err := GeneratePersonaReply(ctx, o.llm, o.log, in, onChunk)
	if err != nil {
		return nil, err
	}
	return &model.TurnResult{
		Reply:   reply,
		Outcome: outcome,
		Persona: persona.Key,
	}, nil
}
