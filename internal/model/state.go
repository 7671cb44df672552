package model

// PersonaMode selects the assistant voice. "auto" lets the selector pick
// per turn from the conversation content.
type PersonaMode string

const (
	PersonaAuto       PersonaMode = "auto"
	PersonaNaturalist PersonaMode = "naturalist"
	PersonaData       PersonaMode = "data"
	PersonaDeal       PersonaMode = "deal"
)

// TurnOutcome labels what a single turn produced.
type TurnOutcome string

const (
	OutcomeReply    TurnOutcome = "reply"
	OutcomeOffTopic TurnOutcome = "off_topic"
	OutcomeClarify  TurnOutcome = "clarify"
	OutcomeSearch   TurnOutcome = "search"
	OutcomeLease    TurnOutcome = "lease"
)

// ConversationState is the full mutable state the orchestrator threads
// through a conversation: accumulated preferences, the active persona,
// search results, and the lease sub-flow.
type ConversationState struct {
	Preferences Preferences `json:"preferences"`
	PersonaMode PersonaMode `json:"persona_mode"`
	SearchURL   string      `json:"search_url,omitempty"`
	Listings    []Listing   `json:"listings,omitempty"`
	Ranked      []Listing   `json:"ranked,omitempty"`
	LastListing *Listing    `json:"last_listing,omitempty"`
	// DraftedListing is the listing the most recent completed lease
	// draft was built from. LastListing tracks follow-up focus and may
	// point at a listing no draft exists for.
	DraftedListing *Listing     `json:"drafted_listing,omitempty"`
	Lease          LeaseSession `json:"lease"`
	TurnCount      int          `json:"turn_count"`
	PrefsChanged   bool         `json:"prefs_changed,omitempty"`
}

// NewConversationState returns a state with the persona mode set and the
// lease sub-flow idle.
func NewConversationState(mode PersonaMode) *ConversationState {
	if mode == "" {
		mode = PersonaAuto
	}
	return &ConversationState{
		PersonaMode: mode,
		Lease:       LeaseSession{Stage: LeaseStageIdle},
	}
}

// TurnResult is what a single orchestrated turn returns to the caller.
type TurnResult struct {
	Reply      string      `json:"reply"`
	Outcome    TurnOutcome `json:"outcome"`
	Persona    PersonaMode `json:"persona"`
	LeaseDraft *LeaseDraft `json:"lease_draft,omitempty"`
}
