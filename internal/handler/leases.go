package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aptiva-ai/rental-platform/internal/middleware"
	"github.com/aptiva-ai/rental-platform/internal/service"
	"github.com/aptiva-ai/rental-platform/internal/store"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
)

// LeaseHandler handles lease draft endpoints.
type LeaseHandler struct {
	service *service.LeaseService
	logger  *logger.Logger
}

// NewLeaseHandler creates a new lease handler.
func NewLeaseHandler(svc *service.LeaseService, log *logger.Logger) *LeaseHandler {
	return &LeaseHandler{
		service: svc,
		logger:  log,
	}
}

// List handles GET /api/v1/conversations/:id/lease-drafts
func (h *LeaseHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	drafts, err := h.service.List(ctx, userID, conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		h.logger.Error("failed to list lease drafts",
			zap.String("conversation_id", conversationID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list lease drafts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lease_drafts": drafts,
		"total":        len(drafts),
	})
}

// Latest handles GET /api/v1/conversations/:id/lease-drafts/latest
func (h *LeaseHandler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := h.service.Latest(ctx, userID, conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "lease draft not found")
			return
		}
		h.logger.Error("failed to get latest lease draft",
			zap.String("conversation_id", conversationID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get lease draft")
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// Get handles GET /api/v1/lease-drafts/:draftID
func (h *LeaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	draftID := chi.URLParam(r, "draftID")

	draft, err := h.service.Get(ctx, userID, draftID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "lease draft not found")
			return
		}
		h.logger.Error("failed to get lease draft",
			zap.String("draft_id", draftID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get lease draft")
		return
	}

	writeJSON(w, http.StatusOK, draft)
}
