// Package service provides business logic for the rental assistant.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aptiva-ai/rental-platform/internal/agent"
	"github.com/aptiva-ai/rental-platform/internal/model"
	"github.com/aptiva-ai/rental-platform/internal/store"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
	"github.com/aptiva-ai/rental-platform/pkg/metrics"
)

// ConversationService handles conversation lifecycle operations.
type ConversationService struct {
	store  store.Store
	logger *logger.Logger
}

// NewConversationService creates a new conversation service.
func NewConversationService(st store.Store, log *logger.Logger) *ConversationService {
	return &ConversationService{
		store:  st,
		logger: log,
	}
}

// Create creates a new conversation with a fresh assistant state.
func (s *ConversationService) Create(ctx context.Context, userID string, req *model.CreateConversationRequest) (*model.Conversation, error) {
	now := time.Now().UTC()
	mode := agent.NormalizePersonaMode(string(req.PersonaMode))

	conv := &model.Conversation{
		ID:        uuid.Must(uuid.NewV7()).String(),
		UserID:    userID,
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
		State:     model.NewConversationState(mode),
	}

	if err := s.store.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}

	s.logger.Info("conversation created",
		zap.String("conversation_id", conv.ID),
		zap.String("user_id", userID),
		zap.String("persona_mode", string(mode)))
	metrics.ConversationsTotal.WithLabelValues(string(mode)).Inc()

	return conv, nil
}

// Get retrieves a conversation owned by the user.
func (s *ConversationService) Get(ctx context.Context, userID, conversationID string) (*model.Conversation, error) {
	conv, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID || conv.Deleted {
		return nil, store.ErrNotFound
	}
	return conv, nil
}

// List retrieves the user's conversations, newest first.
func (s *ConversationService) List(ctx context.Context, userID string, limit int, cursor string) (*model.ListConversationsResponse, error) {
	return s.store.ListConversations(ctx, userID, limit, cursor)
}

// Delete soft-deletes a conversation owned by the user.
func (s *ConversationService) Delete(ctx context.Context, userID, conversationID string) error {
	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.store.DeleteConversation(ctx, conversationID)
}
