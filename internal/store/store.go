// Package store persists conversations, messages, and lease drafts.
package store

import (
	"context"
	"errors"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence interface for the rental assistant.
type Store interface {
	// CreateConversation creates a new conversation record.
	CreateConversation(ctx context.Context, conv *model.Conversation) error

	// GetConversation returns a conversation by ID.
	GetConversation(ctx context.Context, id string) (*model.Conversation, error)

	// ListConversations returns conversations for a user, newest first.
	ListConversations(ctx context.Context, userID string, limit int, cursor string) (*model.ListConversationsResponse, error)

	// UpdateConversationState replaces the stored state snapshot.
	UpdateConversationState(ctx context.Context, id string, state *model.ConversationState) error

	// DeleteConversation soft-deletes a conversation.
	DeleteConversation(ctx context.Context, id string) error

	// AppendMessage appends a message to a conversation and assigns its
	// sequence number.
	AppendMessage(ctx context.Context, conversationID string, msg *model.Message) error

	// ListMessages returns a conversation's messages in sequence order.
	ListMessages(ctx context.Context, conversationID string) ([]model.Message, error)

	// SaveLeaseDraft persists a completed lease draft.
	SaveLeaseDraft(ctx context.Context, draft *model.LeaseDraft) error

	// ListLeaseDrafts returns drafts for a conversation, newest first.
	ListLeaseDrafts(ctx context.Context, conversationID string) ([]model.LeaseDraft, error)

	// GetLeaseDraft returns a draft by ID.
	GetLeaseDraft(ctx context.Context, id string) (*model.LeaseDraft, error)

	// LatestLeaseDraft returns the most recent draft for a conversation.
	LatestLeaseDraft(ctx context.Context, conversationID string) (*model.LeaseDraft, error)
}
