package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aptiva-ai/rental-platform/internal/agent"
	"github.com/aptiva-ai/rental-platform/internal/llm"
	"github.com/aptiva-ai/rental-platform/internal/model"
	natsclient "github.com/aptiva-ai/rental-platform/internal/nats"
	"github.com/aptiva-ai/rental-platform/internal/store"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
	"github.com/aptiva-ai/rental-platform/pkg/metrics"
)

// ChatService processes user turns: it resolves the conversation, runs
// the agent session against its state, and persists the transcript to
// both the store and the JetStream journal.
type ChatService struct {
	store         store.Store
	journal       *natsclient.Journal
	conversations *ConversationService
	session       *agent.Session
	logger        *logger.Logger
}

// NewChatService creates a new chat service. journal may be nil when
// NATS is not configured; journaling is then skipped.
func NewChatService(
	st store.Store,
	journal *natsclient.Journal,
	conversations *ConversationService,
	session *agent.Session,
	log *logger.Logger,
) *ChatService {
	return &ChatService{
		store:         st,
		journal:       journal,
		conversations: conversations,
		session:       session,
		logger:        log,
	}
}

// Send processes one user message. A missing conversation ID creates a
// new conversation. onToken, when set, receives streamed reply tokens.
func (s *ChatService) Send(ctx context.Context, userID string, req *model.ChatRequest, onToken llm.StreamCallback) (*model.ChatResponse, error) {
	conv, err := s.resolveConversation(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	state := conv.State
	if state == nil {
		state = model.NewConversationState(agent.NormalizePersonaMode(req.PersonaMode))
	}
	if req.PersonaMode != "" {
		state.PersonaMode = agent.NormalizePersonaMode(req.PersonaMode)
	}

	history, err := s.store.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	userMsg := &model.Message{
		Role:    model.RoleUser,
		Content: req.Message,
	}
	if err := s.appendMessage(ctx, conv.ID, userMsg); err != nil {
		return nil, err
	}

	result, err := s.session.Send(ctx, conv.ID, state, history, req.Message, onToken)
	if err != nil {
		s.publishEvent(ctx, conv.ID, model.EventTypeError, err.Error())
		return nil, err
	}

	s.logger.Info("turn processed",
		zap.String("conversation_id", conv.ID),
		zap.String("outcome", string(result.Outcome)),
		zap.String("persona", string(result.Persona)),
		zap.String("message", logger.ScrubText(req.Message)))

	assistantMsg := &model.Message{
		Role:    model.RoleAssistant,
		Content: result.Reply,
	}
	if err := s.appendMessage(ctx, conv.ID, assistantMsg); err != nil {
		return nil, err
	}

	if result.Outcome == model.OutcomeOffTopic {
		s.publishEvent(ctx, conv.ID, model.EventTypeOffTopic, "message outside the rental domain")
	}

	if result.LeaseDraft != nil {
		if err := s.store.SaveLeaseDraft(ctx, result.LeaseDraft); err != nil {
			s.logger.Error("saving lease draft failed",
				zap.String("conversation_id", conv.ID),
				zap.Error(err))
		} else {
			status := "clean"
			if !result.LeaseDraft.Compliance.Clean() {
				status = "issues"
			}
			metrics.LeaseDraftsTotal.WithLabelValues(result.LeaseDraft.Compliance.State, status).Inc()
		}
	}

	if err := s.store.UpdateConversationState(ctx, conv.ID, state); err != nil {
		s.logger.Error("persisting conversation state failed",
			zap.String("conversation_id", conv.ID),
			zap.Error(err))
	}

	metrics.TurnsTotal.WithLabelValues(string(result.Outcome)).Inc()

	return &model.ChatResponse{
		ConversationID: conv.ID,
		Reply:          result.Reply,
		Preferences:    &state.Preferences,
		State:          state,
		LeaseDraft:     result.LeaseDraft,
	}, nil
}

// GetMessages returns a conversation's transcript from the store.
func (s *ChatService) GetMessages(ctx context.Context, userID, conversationID string) (*model.ListMessagesResponse, error) {
	if _, err := s.conversations.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	messages, err := s.store.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	var last uint64
	if len(messages) > 0 {
		last = messages[len(messages)-1].Sequence
	}
	return &model.ListMessagesResponse{
		Messages:     messages,
		LastSequence: last,
	}, nil
}

func (s *ChatService) resolveConversation(ctx context.Context, userID string, req *model.ChatRequest) (*model.Conversation, error) {
	if req.ConversationID != "" {
		return s.conversations.Get(ctx, userID, req.ConversationID)
	}
	return s.conversations.Create(ctx, userID, &model.CreateConversationRequest{
		Title:       titleFromMessage(req.Message),
		PersonaMode: model.PersonaMode(req.PersonaMode),
	})
}

func (s *ChatService) appendMessage(ctx context.Context, conversationID string, msg *model.Message) error {
	msg.Timestamp = time.Now().UTC()
	if err := s.store.AppendMessage(ctx, conversationID, msg); err != nil {
		return fmt.Errorf("appending message: %w", err)
	}
	metrics.MessagesTotal.WithLabelValues(string(msg.Role)).Inc()

	if s.journal != nil {
		if _, err := s.journal.PublishMessage(ctx, conversationID, msg); err != nil {
			s.logger.Warn("journaling message failed",
				zap.String("conversation_id", conversationID),
				zap.Error(err))
		}
	}
	return nil
}

func (s *ChatService) publishEvent(ctx context.Context, conversationID string, eventType model.EventType, reason string) {
	if s.journal == nil {
		return
	}
	_, err := s.journal.PublishEvent(ctx, &model.ConversationEvent{
		ID:             uuid.Must(uuid.NewV7()).String(),
		ConversationID: conversationID,
		Type:           eventType,
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("journaling event failed",
			zap.String("conversation_id", conversationID),
			zap.String("event_type", string(eventType)),
			zap.Error(err))
	}
}

// titleFromMessage derives a short conversation title from the first
// user message.
func titleFromMessage(message string) string {
	const maxTitle = 60
	if len(message) <= maxTitle {
		return message
	}
	return message[:maxTitle] + "…"
}
