package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aptiva-ai/rental-platform/internal/middleware"
	"github.com/aptiva-ai/rental-platform/internal/model"
	natsclient "github.com/aptiva-ai/rental-platform/internal/nats"
	"github.com/aptiva-ai/rental-platform/internal/service"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
	"github.com/aptiva-ai/rental-platform/pkg/metrics"
)

// StreamHandler handles SSE streaming endpoints.
type StreamHandler struct {
	chatService         *service.ChatService
	conversationService *service.ConversationService
	journal             *natsclient.Journal
	logger              *logger.Logger
}

// NewStreamHandler creates a new stream handler. journal may be nil
// when NATS is not configured; transcript replay is then unavailable.
func NewStreamHandler(
	chatSvc *service.ChatService,
	convSvc *service.ConversationService,
	journal *natsclient.Journal,
	log *logger.Logger,
) *StreamHandler {
	return &StreamHandler{
		chatService:         chatSvc,
		conversationService: convSvc,
		journal:             journal,
		logger:              log,
	}
}

type tokenEvent struct {
	Token string `json:"token"`
	Index int    `json:"index"`
}

type errorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type heartbeatEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// replayCompleteEvent marks the end of transcript replay.
type replayCompleteEvent struct {
	LastSequence uint64 `json:"last_sequence"`
	MessageCount int    `json:"message_count"`
}

// Chat handles POST /api/v1/chat/stream
// It accepts a chat turn and streams the assistant reply token by token.
func (h *StreamHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateMessageContent(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ConversationID != "" {
		if err := middleware.ValidateConversationID(req.ConversationID); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	flusher, ok := h.startSSE(w)
	if !ok {
		return
	}

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	resp, err := h.chatService.Send(ctx, userID, &req, func(token string, index int) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		return sendSSEEvent(w, flusher, "token", &tokenEvent{
			Token: token,
			Index: index,
		})
	})
	if err != nil {
		sendSSEEvent(w, flusher, "error", &errorEvent{
			Code:    "chat_error",
			Message: err.Error(),
		})
		return
	}

	// Full turn result, including the reply for clients that missed tokens.
	sendSSEEvent(w, flusher, "complete", resp)
	sendSSEEvent(w, flusher, "done", map[string]bool{"success": true})
}

// Replay handles GET /api/v1/conversations/:id/stream
// Supports ?after_sequence=N for resuming from a specific point.
func (h *StreamHandler) Replay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.journal == nil {
		writeError(w, http.StatusServiceUnavailable, "transcript replay unavailable")
		return
	}

	if _, err := h.conversationService.Get(ctx, userID, conversationID); err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	var afterSequence uint64
	if seqStr := r.URL.Query().Get("after_sequence"); seqStr != "" {
		if seq, err := strconv.ParseUint(seqStr, 10, 64); err == nil {
			afterSequence = seq
		}
	}

	flusher, ok := h.startSSE(w)
	if !ok {
		return
	}

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	done := ctx.Done()

	sendSSEEvent(w, flusher, "connected", map[string]string{
		"conversation_id": conversationID,
	})

	var lastSequence uint64
	var totalReplayed int

	for {
		messages, last, hasMore, err := h.journal.GetMessages(ctx, conversationID, afterSequence, 50)
		if err != nil {
			h.logger.Error("failed to replay messages",
				zap.String("conversation_id", conversationID),
				zap.Error(err))
			sendSSEEvent(w, flusher, "error", &errorEvent{
				Code:    "replay_error",
				Message: "Failed to replay messages",
			})
			break
		}

		for _, msg := range messages {
			select {
			case <-done:
				return
			default:
			}

			sendSSEEvent(w, flusher, "message", msg)
			totalReplayed++
		}
		if last > lastSequence {
			lastSequence = last
		}

		if hasMore {
			afterSequence = last
		} else {
			break
		}
	}

	sendSSEEvent(w, flusher, "replay_complete", &replayCompleteEvent{
		LastSequence: lastSequence,
		MessageCount: totalReplayed,
	})

	h.logger.Info("message replay complete",
		zap.String("conversation_id", conversationID),
		zap.Int("messages_replayed", totalReplayed),
		zap.Uint64("last_sequence", lastSequence))

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-done:
			h.logger.Info("SSE client disconnected",
				zap.String("conversation_id", conversationID))
			return

		case <-heartbeat.C:
			sendSSEEvent(w, flusher, "heartbeat", &heartbeatEvent{
				Timestamp: time.Now(),
			})
		}
	}
}

func (h *StreamHandler) startSSE(w http.ResponseWriter) (http.Flusher, bool) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return nil, false
	}
	return flusher, true
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
	flusher.Flush()

	return nil
}
