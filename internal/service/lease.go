package service

import (
	"context"

	"github.com/aptiva-ai/rental-platform/internal/model"
	"github.com/aptiva-ai/rental-platform/internal/store"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
)

// LeaseService exposes persisted lease drafts.
type LeaseService struct {
	store         store.Store
	conversations *ConversationService
	logger        *logger.Logger
}

// NewLeaseService creates a new lease service.
func NewLeaseService(st store.Store, conversations *ConversationService, log *logger.Logger) *LeaseService {
	return &LeaseService{
		store:         st,
		conversations: conversations,
		logger:        log,
	}
}

// List returns a conversation's drafts, newest first.
func (s *LeaseService) List(ctx context.Context, userID, conversationID string) ([]model.LeaseDraft, error) {
	if _, err := s.conversations.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return s.store.ListLeaseDrafts(ctx, conversationID)
}

// Get returns one draft by ID, checking conversation ownership.
func (s *LeaseService) Get(ctx context.Context, userID, draftID string) (*model.LeaseDraft, error) {
	draft, err := s.store.GetLeaseDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if _, err := s.conversations.Get(ctx, userID, draft.ConversationID); err != nil {
		return nil, err
	}
	return draft, nil
}

// Latest returns the most recent draft for a conversation.
func (s *LeaseService) Latest(ctx context.Context, userID, conversationID string) (*model.LeaseDraft, error) {
	if _, err := s.conversations.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return s.store.LatestLeaseDraft(ctx, conversationID)
}
