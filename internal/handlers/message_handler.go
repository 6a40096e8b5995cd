package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/K4elthaz/readify/internal/store"
	"github.com/K4elthaz/readify/internal/utils"
)

// MessageHandler serves chat history for the REST side of the service.
type MessageHandler struct {
	Store     *store.MessageStore
	JWTSecret string
	Log       *zap.Logger
}

// GetThreadHandler returns every message between the caller and {userID},
// oldest first, and marks the caller's side of the thread read — opening a
// thread is what flips the read flag.
func (h *MessageHandler) GetThreadHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := utils.VerifyIdentity(r, h.JWTSecret)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	otherUserID := chi.URLParam(r, "userID")
	if otherUserID == "" {
		utils.JSONError(w, http.StatusBadRequest, "missing user id")
		return
	}

	thread, err := h.Store.ListThread(r.Context(), identity.UserID, otherUserID)
	if err != nil {
		h.Log.Error("failed to list thread", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "failed to fetch messages")
		return
	}

	if err := h.Store.MarkThreadRead(r.Context(), identity.UserID, otherUserID); err != nil {
		// history still renders; the unread badge just lags
		h.Log.Warn("failed to mark thread read", zap.Error(err))
	}

	utils.JSON(w, http.StatusOK, map[string]any{"messages": thread})
}
