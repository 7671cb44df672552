package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aptiva-ai/rental-platform/internal/lease"
	"github.com/aptiva-ai/rental-platform/internal/llm"
	"github.com/aptiva-ai/rental-platform/internal/model"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
)

// ErrEmptyMessage is returned when a turn arrives with no content.
var ErrEmptyMessage = errors.New("message must not be empty")

var leaseRequestPhrases = []string{
	"lease draft",
	"draft lease",
	"lease agreement",
	"lease document",
	"lease contract",
	"generate lease",
	"create lease",
	"write lease",
	"lease paperwork",
}

var leaseTriggerWords = []string{"draft", "generate", "create", "write", "document", "contract"}

var leaseUpdateWords = []string{"update", "modify", "change", "revise", "amend"}

// Session applies the per-turn rule order on top of the orchestrator:
// persona commands, the lease sub-flow, topic gating, and finally the
// search pipeline. It holds no per-conversation state of its own; all
// state lives on the ConversationState passed in.
type Session struct {
	orch *Orchestrator
	log  *logger.Logger
}

// NewSession wraps an orchestrator.
func NewSession(orch *Orchestrator, log *logger.Logger) *Session {
	return &Session{orch: orch, log: log}
}

// Send processes one user message against the conversation state.
// Checks run in a fixed order: persona command, pending lease
// collection, lease update request, new lease request, topicality, then
// the search pipeline. The state is mutated in place.
func (s *Session) Send(ctx context.Context, conversationID string, state *model.ConversationState, history []model.Message, message string, onChunk llm.StreamCallback) (*model.TurnResult, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	state.TurnCount++

	if reply, ok := s.handlePersonaCommand(state, text); ok {
		return &model.TurnResult{Reply: reply, Outcome: model.OutcomeReply, Persona: state.PersonaMode}, nil
	}

	if state.Lease.Active() {
		return s.stepLease(conversationID, state, text), nil
	}

	if reply, ok := s.maybeUpdateLease(conversationID, state, text); ok {
		return reply, nil
	}

	if reply, ok := s.maybeStartLease(conversationID, state, text); ok {
		return reply, nil
	}

	if !s.orch.cfg.Topics.OnTopic(text) {
		return &model.TurnResult{
			Reply:   OffTopicRefusal,
			Outcome: model.OutcomeOffTopic,
			Persona: state.PersonaMode,
		}, nil
	}

	return s.orch.Run(ctx, state, history, text, onChunk)
}

// handlePersonaCommand processes "/persona <mode>" switches.
func (s *Session) handlePersonaCommand(state *model.ConversationState, text string) (string, bool) {
	if !strings.HasPrefix(strings.ToLower(text), "/persona") {
		return "", false
	}
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return "Please specify a persona: naturalist, data, deal, or auto.", true
	}
	mode := NormalizePersonaMode(parts[1])
	state.PersonaMode = mode
	return fmt.Sprintf("Switched persona to %s.", s.orch.cfg.Personas.Label(mode)), true
}

func looksLikeLeaseRequest(text string) bool {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "lease") {
		return false
	}
	for _, phrase := range leaseRequestPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, word := range leaseTriggerWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func looksLikeLeaseUpdate(text string) bool {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "lease") {
		return false
	}
	for _, word := range leaseUpdateWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func missingLeaseInputs(prefs model.Preferences) []string {
	var missing []string
	if prefs.City == nil || *prefs.City == "" {
		missing = append(missing, "city")
	}
	if prefs.State == nil || *prefs.State == "" {
		missing = append(missing, "state")
	}
	if prefs.MaxRent == nil && prefs.MinRent == nil {
		missing = append(missing, "budget")
	}
	return missing
}

// maybeUpdateLease restarts collection against the listing a prior draft
// was built from. Update words alone are not enough; a completed lease
// must exist on the conversation. A listing that is merely the focus of
// follow-up questions does not qualify.
func (s *Session) maybeUpdateLease(conversationID string, state *model.ConversationState, text string) (*model.TurnResult, bool) {
	if state.DraftedListing == nil || !looksLikeLeaseUpdate(text) {
		return nil, false
	}
	res := lease.Begin(&state.Lease, state.DraftedListing, state.Preferences)
	if res.Done {
		return s.completeLease(conversationID, state, res), true
	}
	reply := "Let's update that lease draft.\n\n" + res.Reply
	return &model.TurnResult{Reply: reply, Outcome: model.OutcomeLease, Persona: state.PersonaMode}, true
}

// maybeStartLease begins the lease sub-flow when the message asks for a
// draft and the conversation has enough context.
func (s *Session) maybeStartLease(conversationID string, state *model.ConversationState, text string) (*model.TurnResult, bool) {
	if !looksLikeLeaseRequest(text) {
		return nil, false
	}
	if missing := missingLeaseInputs(state.Preferences); len(missing) > 0 {
		reply := fmt.Sprintf(
			"I can definitely draft a lease once we finalize your %s. Share those details and I'll take it from there.",
			strings.Join(missing, ", "))
		return &model.TurnResult{Reply: reply, Outcome: model.OutcomeClarify, Persona: state.PersonaMode}, true
	}

	listing := s.pickLeaseListing(state, text)

	var locationParts []string
	if state.Preferences.City != nil {
		locationParts = append(locationParts, *state.Preferences.City)
	}
	if state.Preferences.State != nil {
		locationParts = append(locationParts, *state.Preferences.State)
	}
	ack := "I'll prepare a lease draft"
	if len(locationParts) > 0 {
		ack += " for " + strings.Join(locationParts, ", ")
	}
	ack += " that reflects the preferences we've captured."

	res := lease.Begin(&state.Lease, listing, state.Preferences)
	if res.Done {
		return s.completeLease(conversationID, state, res), true
	}
	return &model.TurnResult{
		Reply:   ack + "\n\n" + res.Reply,
		Outcome: model.OutcomeLease,
		Persona: state.PersonaMode,
	}, true
}

// pickLeaseListing resolves which listing the lease is for: one named in
// the message, else the focused listing, else the top-ranked result.
func (s *Session) pickLeaseListing(state *model.ConversationState, text string) *model.Listing {
	if len(state.Listings) > 0 {
		lookup := BuildListingLookup(state.Listings)
		if identity, ok := IdentifyListingFromMessage(text, lookup, state.Listings); ok {
			if found := FindListing(state.Listings, identity); found != nil {
				return found
			}
		}
	}
	if state.LastListing != nil {
		return state.LastListing
	}
	if len(state.Ranked) > 0 {
		return &state.Ranked[0]
	}
	if len(state.Listings) > 0 {
		return &state.Listings[0]
	}
	return nil
}

func (s *Session) stepLease(conversationID string, state *model.ConversationState, text string) *model.TurnResult {
	res := lease.Step(&state.Lease, text, state.Preferences, time.Now().UTC())
	if !res.Done {
		return &model.TurnResult{Reply: res.Reply, Outcome: model.OutcomeLease, Persona: state.PersonaMode}
	}
	return s.completeLease(conversationID, state, res)
}

// completeLease generates the document, runs the compliance check, and
// resets the sub-flow. Collected values are folded back into the
// preferences so a later update starts from them.
func (s *Session) completeLease(conversationID string, state *model.ConversationState, res lease.StepResult) *model.TurnResult {
	in := res.Inputs
	document := lease.GenerateText(in)
	report := lease.CheckCompliance(in, document)

	draft := &model.LeaseDraft{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		TenantName:     in.TenantName,
		LandlordName:   in.LandlordName,
		MonthlyRent:    rentLabel(in.MonthlyRent),
		StartDate:      in.LeaseStart.Format("2006-01-02"),
		EndDate:        in.LeaseEnd().Format("2006-01-02"),
		TermMonths:     in.LeaseTermMonths,
		Document:       document,
		Compliance:     report,
		CreatedAt:      time.Now().UTC(),
	}
	if state.Lease.Listing != nil {
		draft.ListingTitle = state.Lease.Listing.Title
		draft.ListingURL = state.Lease.Listing.URL
		state.LastListing = state.Lease.Listing
		state.DraftedListing = state.Lease.Listing
	}

	var carried model.Preferences
	if state.Lease.TenantName != "" {
		carried.TenantName = model.StringPtr(state.Lease.TenantName)
	}
	if state.Lease.MoveInDate != "" {
		carried.LeaseStartDate = model.StringPtr(state.Lease.MoveInDate)
	}
	if state.Lease.TermMonths > 0 {
		carried.LeaseDurationMonths = model.IntPtr(state.Lease.TermMonths)
	}
	state.Preferences = state.Preferences.Merge(carried)
	state.Lease.Reset()

	return &model.TurnResult{
		Reply:      leaseReply(draft),
		Outcome:    model.OutcomeLease,
		Persona:    state.PersonaMode,
		LeaseDraft: draft,
	}
}

func rentLabel(rent int) string {
	if rent <= 0 {
		return "TBD"
	}
	return "$" + commaGroup(rent)
}

func leaseReply(draft *model.LeaseDraft) string {
	var b strings.Builder
	b.WriteString("Thanks! I have all the details I need. Here's the lease draft")
	if draft.ListingTitle != "" {
		fmt.Fprintf(&b, " for %s", draft.ListingTitle)
	}
	b.WriteString(":\n\n")
	b.WriteString(draft.Document)

	if len(draft.Compliance.Issues) > 0 || len(draft.Compliance.Warnings) > 0 {
		b.WriteString("\n\nCompliance notes:")
		for _, issue := range draft.Compliance.Issues {
			b.WriteString("\n- [issue] " + issue.Message)
		}
		for _, warning := range draft.Compliance.Warnings {
			b.WriteString("\n- [warning] " + warning.Message)
		}
	}
	return b.String()
}
