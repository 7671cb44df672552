package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptiva-ai/rental-platform/internal/agent"
	"github.com/aptiva-ai/rental-platform/internal/listings"
	"github.com/aptiva-ai/rental-platform/internal/llm"
	"github.com/aptiva-ai/rental-platform/internal/model"
	"github.com/aptiva-ai/rental-platform/internal/store"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
)

type stubLLM struct{}

func (stubLLM) Complete(context.Context, *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Content: `{"preferences":{}}`}, nil
}

func (stubLLM) CompleteStream(_ context.Context, _ *llm.CompletionRequest, callback llm.StreamCallback) (*llm.CompletionResponse, error) {
	token := "Tell me more about what you're looking for."
	if err := callback(token, 0); err != nil {
		return nil, err
	}
	return &llm.CompletionResponse{Content: token}, nil
}

func (stubLLM) Name() string     { return "stub" }
func (stubLLM) Models() []string { return nil }

type stubFetcher struct{}

func (stubFetcher) Fetch(context.Context, *listings.FetchRequest) ([]model.Listing, error) {
	return nil, nil
}

func newTestChatService() *ChatService {
	log := logger.Global()
	st := store.NewMemoryStore()
	orch := agent.NewOrchestrator(stubLLM{}, stubFetcher{}, nil, agent.Models{}, agent.DefaultConfig(), log)
	session := agent.NewSession(orch, log)
	conversations := NewConversationService(st, log)
	return NewChatService(st, nil, conversations, session, log)
}

func TestSendCreatesConversationAndPersistsTranscript(t *testing.T) {
	ctx := context.Background()
	svc := newTestChatService()

	resp, err := svc.Send(ctx, "u1", &model.ChatRequest{Message: "/persona deal"}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, "Switched persona to The Deal Navigator.", resp.Reply)
	require.NotNil(t, resp.State)
	assert.Equal(t, model.PersonaDeal, resp.State.PersonaMode)

	msgs, err := svc.GetMessages(ctx, "u1", resp.ConversationID)
	require.NoError(t, err)
	require.Len(t, msgs.Messages, 2)
	assert.Equal(t, model.RoleUser, msgs.Messages[0].Role)
	assert.Equal(t, "/persona deal", msgs.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, msgs.Messages[1].Role)
	assert.Equal(t, uint64(2), msgs.LastSequence)
}

func TestSendReusesConversationState(t *testing.T) {
	ctx := context.Background()
	svc := newTestChatService()

	resp, err := svc.Send(ctx, "u1", &model.ChatRequest{Message: "/persona data"}, nil)
	require.NoError(t, err)

	// the persona switch survives into the next turn
	resp, err = svc.Send(ctx, "u1", &model.ChatRequest{
		Message:        "I need to rent a car for the weekend",
		ConversationID: resp.ConversationID,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, agent.OffTopicRefusal, resp.Reply)
	assert.Equal(t, model.PersonaData, resp.State.PersonaMode)
}

func TestSendStreamsClarifyingReply(t *testing.T) {
	ctx := context.Background()
	svc := newTestChatService()

	var streamed string
	onToken := func(token string, _ int) error {
		streamed += token
		return nil
	}

	resp, err := svc.Send(ctx, "u1", &model.ChatRequest{Message: "I'm looking for an apartment"}, onToken)
	require.NoError(t, err)
	assert.Equal(t, "Tell me more about what you're looking for.", resp.Reply)
	assert.Equal(t, resp.Reply, streamed)
}

func TestSendRejectsForeignConversation(t *testing.T) {
	ctx := context.Background()
	svc := newTestChatService()

	resp, err := svc.Send(ctx, "u1", &model.ChatRequest{Message: "/persona data"}, nil)
	require.NoError(t, err)

	_, err = svc.Send(ctx, "u2", &model.ChatRequest{
		Message:        "hello",
		ConversationID: resp.ConversationID,
	}, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTitleFromMessage(t *testing.T) {
	assert.Equal(t, "short", titleFromMessage("short"))

	long := ""
	for i := 0; i < 10; i++ {
		long += "apartments "
	}
	title := titleFromMessage(long)
	assert.Len(t, []rune(title), 61)
}
