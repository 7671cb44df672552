package model

import (
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message represents one turn of a conversation transcript.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`

	// JetStream metadata (populated on read from the journal)
	Sequence uint64 `json:"sequence,omitempty"`
}

// ChatRequest is the request to send a user message to the assistant.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
	PersonaMode    string `json:"persona_mode,omitempty"`
	Stream         bool   `json:"stream"`
}

// ChatResponse is the per-turn result returned to the HTTP layer.
type ChatResponse struct {
	ConversationID       string             `json:"conversation_id"`
	Reply                string             `json:"reply"`
	Preferences          *Preferences       `json:"preferences,omitempty"`
	State                *ConversationState `json:"state,omitempty"`
	LeaseDraft           *LeaseDraft        `json:"lease_draft,omitempty"`
	ConversationComplete bool               `json:"conversation_complete"`
}

// ListMessagesResponse is the response for listing transcript messages.
type ListMessagesResponse struct {
	Messages     []Message `json:"messages"`
	HasMore      bool      `json:"has_more"`
	LastSequence uint64    `json:"last_sequence"`
}
