package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/K4elthaz/readify/internal/models"
	"github.com/K4elthaz/readify/internal/store"
	"github.com/K4elthaz/readify/internal/testhelpers"
)

func newNotificationRouter(t *testing.T) (*store.NotificationStore, http.Handler) {
	t.Helper()
	st := &store.NotificationStore{DB: testhelpers.SetupTestDB(t)}
	h := &NotificationHandler{Store: st, JWTSecret: testSecret, Log: zap.NewNop()}
	r := chi.NewRouter()
	r.Get("/api/v1/notifications", h.ListHandler)
	r.Get("/api/v1/notifications/count", h.CountHandler)
	r.Post("/api/v1/notifications/{id}/read", h.MarkReadHandler)
	return st, r
}

func doJSON(t *testing.T, router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestNotificationLifecycle(t *testing.T) {
	st, router := newNotificationRouter(t)
	ctx := context.Background()

	first := &models.Notification{UserID: "alice", Message: "You have a new message"}
	require.NoError(t, st.Create(ctx, first))
	require.NoError(t, st.Create(ctx, &models.Notification{UserID: "alice", Message: "Another one"}))
	require.NoError(t, st.Create(ctx, &models.Notification{UserID: "bob", Message: "Not yours"}))

	token := signToken(t, "alice", "alice@example.com", "Alice Tan")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/notifications", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var listBody struct {
		Notifications []models.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listBody))
	assert.Len(t, listBody.Notifications, 2)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/notifications/count", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var countBody struct {
		Unread int64 `json:"unread"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &countBody))
	assert.Equal(t, int64(2), countBody.Unread)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/notifications/%d/read", first.ID), token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/notifications/count", token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &countBody))
	assert.Equal(t, int64(1), countBody.Unread)
}

func TestMarkReadRejectsBadID(t *testing.T) {
	_, router := newNotificationRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/notifications/abc/read",
		signToken(t, "alice", "alice@example.com", "Alice Tan"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotificationsRequireAuth(t *testing.T) {
	_, router := newNotificationRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/notifications", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
