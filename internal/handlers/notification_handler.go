package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/K4elthaz/readify/internal/store"
	"github.com/K4elthaz/readify/internal/utils"
)

// NotificationHandler serves the caller's notification feed.
type NotificationHandler struct {
	Store     *store.NotificationStore
	JWTSecret string
	Log       *zap.Logger
}

func (h *NotificationHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := utils.VerifyIdentity(r, h.JWTSecret)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	notifications, err := h.Store.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		h.Log.Error("failed to list notifications", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "failed to fetch notifications")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

func (h *NotificationHandler) CountHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := utils.VerifyIdentity(r, h.JWTSecret)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	count, err := h.Store.CountUnread(r.Context(), identity.UserID)
	if err != nil {
		h.Log.Error("failed to count notifications", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "failed to count notifications")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int64{"unread": count})
}

func (h *NotificationHandler) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := utils.VerifyIdentity(r, h.JWTSecret)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.Store.MarkRead(r.Context(), identity.UserID, uint(id)); err != nil {
		h.Log.Error("failed to mark notification read", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "failed to mark notification read")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
