package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

// MemoryStore is an in-process Store implementation. It is safe for
// concurrent use and suitable for single-instance deployments and tests.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*model.Conversation
	messages      map[string][]model.Message
	leaseDrafts   map[string]*model.LeaseDraft
	draftsByConv  map[string][]string
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]*model.Conversation),
		messages:      make(map[string][]model.Message),
		leaseDrafts:   make(map[string]*model.LeaseDraft),
		draftsByConv:  make(map[string][]string),
	}
}

// CreateConversation creates a new conversation record.
func (s *MemoryStore) CreateConversation(_ context.Context, conv *model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = now
	}
	conv.UpdatedAt = now
	copied := *conv
	s.conversations[conv.ID] = &copied
	return nil
}

// GetConversation returns a conversation by ID.
func (s *MemoryStore) GetConversation(_ context.Context, id string) (*model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok || conv.Deleted {
		return nil, ErrNotFound
	}
	copied := *conv
	copied.MessageCount = len(s.messages[id])
	if msgs := s.messages[id]; len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		copied.LastMessage = &last
	}
	return &copied, nil
}

// ListConversations returns conversations for a user, newest first.
func (s *MemoryStore) ListConversations(_ context.Context, userID string, limit int, cursor string) (*model.ListConversationsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []model.Conversation
	for _, conv := range s.conversations {
		if conv.Deleted {
			continue
		}
		if userID != "" && conv.UserID != userID {
			continue
		}
		copied := *conv
		copied.MessageCount = len(s.messages[conv.ID])
		all = append(all, copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})

	start := 0
	if cursor != "" {
		for i, conv := range all {
			if conv.ID == cursor {
				start = i + 1
				break
			}
		}
	}
	if limit <= 0 {
		limit = 20
	}

	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	page := all[start:end]

	resp := &model.ListConversationsResponse{
		Conversations: page,
		Total:         len(all),
		HasMore:       end < len(all),
	}
	if resp.HasMore && len(page) > 0 {
		resp.NextCursor = page[len(page)-1].ID
	}
	return resp, nil
}

// UpdateConversationState replaces the stored state snapshot.
func (s *MemoryStore) UpdateConversationState(_ context.Context, id string, state *model.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok || conv.Deleted {
		return ErrNotFound
	}
	conv.State = state
	conv.UpdatedAt = time.Now().UTC()
	return nil
}

// DeleteConversation soft-deletes a conversation.
func (s *MemoryStore) DeleteConversation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok || conv.Deleted {
		return ErrNotFound
	}
	conv.Deleted = true
	conv.UpdatedAt = time.Now().UTC()
	return nil
}

// AppendMessage appends a message to a conversation and assigns its
// sequence number.
func (s *MemoryStore) AppendMessage(_ context.Context, conversationID string, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok || conv.Deleted {
		return ErrNotFound
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	msg.Sequence = uint64(len(s.messages[conversationID]) + 1)
	s.messages[conversationID] = append(s.messages[conversationID], *msg)
	conv.UpdatedAt = time.Now().UTC()
	return nil
}

// ListMessages returns a conversation's messages in sequence order.
func (s *MemoryStore) ListMessages(_ context.Context, conversationID string) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.conversations[conversationID]; !ok {
		return nil, ErrNotFound
	}
	msgs := s.messages[conversationID]
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// SaveLeaseDraft persists a completed lease draft.
func (s *MemoryStore) SaveLeaseDraft(_ context.Context, draft *model.LeaseDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now().UTC()
	}
	copied := *draft
	s.leaseDrafts[draft.ID] = &copied
	s.draftsByConv[draft.ConversationID] = append(s.draftsByConv[draft.ConversationID], draft.ID)
	return nil
}

// ListLeaseDrafts returns drafts for a conversation, newest first.
func (s *MemoryStore) ListLeaseDrafts(_ context.Context, conversationID string) ([]model.LeaseDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.draftsByConv[conversationID]
	out := make([]model.LeaseDraft, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if draft, ok := s.leaseDrafts[ids[i]]; ok {
			out = append(out, *draft)
		}
	}
	return out, nil
}

// GetLeaseDraft returns a draft by ID.
func (s *MemoryStore) GetLeaseDraft(_ context.Context, id string) (*model.LeaseDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, ok := s.leaseDrafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *draft
	return &copied, nil
}

// LatestLeaseDraft returns the most recent draft for a conversation.
func (s *MemoryStore) LatestLeaseDraft(_ context.Context, conversationID string) (*model.LeaseDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.draftsByConv[conversationID]
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	draft, ok := s.leaseDrafts[ids[len(ids)-1]]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *draft
	return &copied, nil
}
