package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aptiva-ai/rental-platform/internal/llm"
	"github.com/aptiva-ai/rental-platform/internal/model"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
	"github.com/aptiva-ai/rental-platform/pkg/metrics"
)

const thumbnailWidthPx = 280

const safetyInstructions = "You are acting as a U.S. rental real estate agent for Apartments.com listings. " +
	"Stay within the provided data (listings, preferences, maps outputs). " +
	"Do NOT invent listing details; if something is unknown, say so briefly. " +
	"Keep responses concise, friendly, and aligned with your persona style. " +
	"Use tools only when necessary; otherwise rely on the provided context. " +
	"When you recommend listings (top matches, follow-ups, or persona summaries), format each with a clickable title linked to the Apartments.com URL, " +
	"an inline thumbnail directly under the title when an image URL is available (skip only if missing), and bullet points for price, beds, baths, amenities, and why it matches. " +
	"If rendered_listings_md is provided in the payload, include that block verbatim - it already follows this format with a compact inline image."

const interruptedReplyFallback = "Sorry, the response was interrupted. Could you ask again?"
const emptyReplyFallback = "Let me know how you'd like to adjust the search."

// ListingView is the compact listing summary sent to the LLM and used
// for markdown rendering.
type ListingView struct {
	Rank      int      `json:"rank,omitempty"`
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	PriceText string   `json:"price_text"`
	BedsText  string   `json:"beds_text"`
	BathsText string   `json:"baths_text"`
	Amenities []string `json:"amenities"`
	Features  []string `json:"features,omitempty"`
	Nearby    []string `json:"nearby_pois,omitempty"`
	WhyMatch  []string `json:"why_match,omitempty"`
	URL       string   `json:"url"`
	Image     string   `json:"image,omitempty"`
}

// NewListingView condenses a listing for prompt context.
func NewListingView(listing model.Listing, nearby []string) ListingView {
	priceMin, priceMax := ExtractPriceRange(listing.Rent)
	beds, baths := ExtractBedsBaths(listing)

	amenities := listing.Amenities
	if len(amenities) > 6 {
		amenities = amenities[:6]
	}
	var features []string
	if listing.About != nil {
		features = listing.About.Highlights
		if len(features) > 5 {
			features = features[:5]
		}
	}
	image := ""
	if len(listing.Thumbnails) > 0 {
		image = listing.Thumbnails[0]
	}
	return ListingView{
		Title:     titleOrDefault(listing.Title),
		Location:  listing.Location,
		PriceText: formatPriceLabel(priceMin, priceMax),
		BedsText:  formatCount(float64(beds)),
		BathsText: formatCount(baths),
		Amenities: amenities,
		Features:  features,
		Nearby:    nearby,
		URL:       listing.URL,
		Image:     image,
	}
}

func titleOrDefault(title string) string {
	if title == "" {
		return "Listing"
	}
	return title
}

func formatCount(n float64) string {
	if n <= 0 {
		return "N/A"
	}
	if n == float64(int(n)) {
		return fmt.Sprintf("%d", int(n))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", n), "0"), ".")
}

func formatPriceLabel(min, max int) string {
	switch {
	case min > 0 && max > 0 && max != min:
		return fmt.Sprintf("$%s - $%s", commaGroup(min), commaGroup(max))
	case min > 0:
		return fmt.Sprintf("$%s+", commaGroup(min))
	case max > 0:
		return fmt.Sprintf("Up to $%s", commaGroup(max))
	}
	return "Price not listed"
}

func commaGroup(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// RenderListingsMarkdown builds the listing block with clickable titles
// and inline thumbnails.
func RenderListingsMarkdown(views []ListingView) string {
	var blocks []string
	for i, view := range views {
		rank := view.Rank
		if rank == 0 {
			rank = i + 1
		}
		title := titleOrDefault(view.Title)
		var lines []string
		if view.URL != "" {
			lines = append(lines, fmt.Sprintf("%d. **[%s](%s)**", rank, title, view.URL))
		} else {
			lines = append(lines, fmt.Sprintf("%d. **%s**", rank, title))
		}
		if view.Image != "" {
			lines = append(lines, fmt.Sprintf(`   <img src=%q alt=%q width="%d" />`, view.Image, title+" - primary photo", thumbnailWidthPx))
		}
		if view.Location != "" {
			lines = append(lines, "   - **Location**: "+view.Location)
		}
		if view.PriceText != "" {
			lines = append(lines, "   - **Price**: "+view.PriceText)
		}
		lines = append(lines, "   - **Beds**: "+view.BedsText)
		lines = append(lines, "   - **Baths**: "+view.BathsText)
		if len(view.Amenities) > 0 {
			lines = append(lines, "   - **Amenities**: "+strings.Join(view.Amenities, ", "))
		}
		if len(view.WhyMatch) > 0 {
			lines = append(lines, "   - **Why it matches**: "+strings.Join(view.WhyMatch, "; "))
		}
		if len(view.Features) > 0 {
			lines = append(lines, "   - **Notable features**: "+strings.Join(view.Features, ", "))
		}
		if len(view.Nearby) > 0 {
			nearby := view.Nearby
			if len(nearby) > 3 {
				nearby = nearby[:3]
			}
			lines = append(lines, "   - **Nearby**: "+strings.Join(nearby, ", "))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

type replyPayload struct {
	Intent             string            `json:"intent"`
	Preferences        model.Preferences `json:"preferences"`
	ClarifyingQueries  []string          `json:"clarifying_questions"`
	Listings           []ListingView     `json:"listings"`
	FocusedListing     *ListingView      `json:"focused_listing"`
	RecentMessages     []model.Message   `json:"recent_messages"`
	LatestUserMessage  string            `json:"latest_user_message"`
	Notes              string            `json:"notes,omitempty"`
	RenderedListingsMD string            `json:"rendered_listings_md,omitempty"`
}

// ReplyInput collects everything the persona reply needs for one turn.
type ReplyInput struct {
	Model             string
	Intent            string
	Persona           Persona
	Preferences       model.Preferences
	ClarifyingQueries []string
	Listings          []ListingView
	FocusedListing    *ListingView
	RecentMessages    []model.Message
	LatestMessage     string
	Notes             string
}

// GeneratePersonaReply produces the styled reply, streaming chunks
// through onChunk when set. A failing onChunk stops further forwarding
// but never aborts the stream; the full accumulated text is still
// returned. A failed stream falls back to whatever partial text
// arrived, or a fixed apology when nothing did.
func GeneratePersonaReply(ctx context.Context, client llm.Client, log *logger.Logger, in ReplyInput, onChunk llm.StreamCallback) (string, error) {
	views := in.Listings
	if len(views) == 0 && in.FocusedListing != nil {
		focus := *in.FocusedListing
		views = []ListingView{focus}
	}
	rendered := ""
	if len(views) > 0 {
		rendered = RenderListingsMarkdown(views)
	}
	notes := in.Notes
	if rendered != "" {
		if notes != "" {
			notes += " "
		}
		notes += "Include the rendered_listings_md block verbatim."
	}
	if len(in.RecentMessages) > 6 {
		in.RecentMessages = in.RecentMessages[len(in.RecentMessages)-6:]
	}

	payload, err := json.Marshal(replyPayload{
		Intent:             in.Intent,
		Preferences:        in.Preferences,
		ClarifyingQueries:  in.ClarifyingQueries,
		Listings:           in.Listings,
		FocusedListing:     in.FocusedListing,
		RecentMessages:     in.RecentMessages,
		LatestUserMessage:  in.LatestMessage,
		Notes:              notes,
		RenderedListingsMD: rendered,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling reply payload: %w", err)
	}

	req := &llm.CompletionRequest{
		Model:       in.Model,
		System:      in.Persona.System + " " + safetyInstructions,
		Messages:    []llm.ChatMessage{{Role: "user", Content: string(payload)}},
		Temperature: in.Persona.Temperature,
		TopP:        in.Persona.TopP,
		Stream:      true,
	}

	start := time.Now()
	var b strings.Builder
	forward := onChunk != nil
	resp, err := client.CompleteStream(ctx, req, func(token string, index int) error {
		b.WriteString(token)
		if forward {
			if cbErr := onChunk(token, index); cbErr != nil {
				forward = false
				log.Warn("reply chunk callback failed",
					zap.String("persona", string(in.Persona.Key)),
					zap.Int("chunk_index", index),
					zap.Error(cbErr))
			}
		}
		return nil
	})
	recordStream(client, req, resp, err, time.Since(start))
	if err != nil {
		log.Warn("persona reply stream failed",
			zap.String("persona", string(in.Persona.Key)),
			zap.Error(err))
		if b.Len() > 0 {
			return b.String(), nil
		}
		return interruptedReplyFallback, nil
	}
	if b.Len() == 0 {
		return emptyReplyFallback, nil
	}
	return b.String(), nil
}

// recordStream reports per-model stream latency and token counts.
func recordStream(client llm.Client, req *llm.CompletionRequest, resp *llm.CompletionResponse, err error, elapsed time.Duration) {
	modelName := req.Model
	tokensIn, tokensOut := 0, 0
	if resp != nil {
		if resp.Model != "" {
			modelName = resp.Model
		}
		tokensIn = resp.TokensIn
		tokensOut = resp.TokensOut
	}
	if modelName == "" {
		modelName = client.Name()
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordLLMStream(modelName, status, elapsed.Seconds(), tokensIn, tokensOut)
}
