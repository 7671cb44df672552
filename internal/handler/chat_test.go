package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptiva-ai/rental-platform/internal/agent"
	"github.com/aptiva-ai/rental-platform/internal/listings"
	"github.com/aptiva-ai/rental-platform/internal/llm"
	"github.com/aptiva-ai/rental-platform/internal/middleware"
	"github.com/aptiva-ai/rental-platform/internal/model"
	"github.com/aptiva-ai/rental-platform/internal/service"
	"github.com/aptiva-ai/rental-platform/internal/store"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
)

type stubLLM struct{}

func (stubLLM) Complete(context.Context, *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Content: `{"preferences":{}}`}, nil
}

func (stubLLM) CompleteStream(_ context.Context, _ *llm.CompletionRequest, callback llm.StreamCallback) (*llm.CompletionResponse, error) {
	token := "What city are you searching in?"
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

func newTestChatHandler() *ChatHandler {
	log := logger.Global()
	st := store.NewMemoryStore()
	orch := agent.NewOrchestrator(stubLLM{}, stubFetcher{}, nil, agent.Models{}, agent.DefaultConfig(), log)
	session := agent.NewSession(orch, log)
	conversations := service.NewConversationService(st, log)
	chatSvc := service.NewChatService(st, nil, conversations, session, log)
	return NewChatHandler(chatSvc, log)
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, "u1")
	return req.WithContext(ctx)
}

func TestChatHandlesTurn(t *testing.T) {
	h := newTestChatHandler()
	rec := httptest.NewRecorder()

	h.Chat(rec, authedRequest(http.MethodPost, "/api/v1/chat", `{"message":"/persona data"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, "Switched persona to The Data Whisperer.", resp.Reply)
}

func TestChatRejectsBadRequests(t *testing.T) {
	h := newTestChatHandler()

	rec := httptest.NewRecorder()
	h.Chat(rec, authedRequest(http.MethodPost, "/api/v1/chat", `not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Chat(rec, authedRequest(http.MethodPost, "/api/v1/chat", `{"message":""}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Chat(rec, authedRequest(http.MethodPost, "/api/v1/chat", `{"message":"hi","conversation_id":"nope"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatStreamRequestDefersToSSE(t *testing.T) {
	h := newTestChatHandler()
	rec := httptest.NewRecorder()

	h.Chat(rec, authedRequest(http.MethodPost, "/api/v1/chat", `{"message":"apartments in Austin","stream":true}`))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "/api/v1/chat/stream", rec.Header().Get("X-Stream-URL"))
}

func TestChatUnknownConversationIs404(t *testing.T) {
	h := newTestChatHandler()
	rec := httptest.NewRecorder()

	body := `{"message":"hi","conversation_id":"0190e2a5-7a3d-7c7b-b0f4-3f1c9a6de111"}`
	h.Chat(rec, authedRequest(http.MethodPost, "/api/v1/chat", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
