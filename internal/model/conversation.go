// Package model defines the data structures shared across the rental
// assistant: conversations, preferences, listings, and lease drafting.
package model

import (
	"time"
)

// Conversation represents one chat thread between a user and the
// assistant, carrying its accumulated state.
type Conversation struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	Title        string             `json:"title"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	State        *ConversationState `json:"state,omitempty"`
	MessageCount int                `json:"message_count,omitempty"`
	LastMessage  *Message           `json:"last_message,omitempty"`
	Deleted      bool               `json:"deleted,omitempty"`
}

// CreateConversationRequest is the request to create a new conversation.
type CreateConversationRequest struct {
	Title       string      `json:"title"`
	PersonaMode PersonaMode `json:"persona_mode,omitempty"`
}

// ListConversationsResponse is the response for listing conversations.
type ListConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
	Total         int            `json:"total"`
	HasMore       bool           `json:"has_more"`
	NextCursor    string         `json:"next_cursor,omitempty"`
}
