package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/K4elthaz/readify/internal/handlers"
	"github.com/K4elthaz/readify/internal/session"
	"github.com/K4elthaz/readify/internal/store"
	"github.com/K4elthaz/readify/internal/testhelpers"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := zap.NewNop()
	db := testhelpers.SetupTestDB(t)
	reg := session.NewRegistry()

	ws := handlers.NewWSHandler(log, "route-test-secret", 8, 0,
		reg, session.NewBroadcaster(reg, log),
		nil, &store.MessageStore{DB: db}, nil, nil)
	msgs := &handlers.MessageHandler{Store: &store.MessageStore{DB: db}, JWTSecret: "route-test-secret", Log: log}
	notifs := &handlers.NotificationHandler{Store: &store.NotificationStore{DB: db}, JWTSecret: "route-test-secret", Log: log}

	srv := httptest.NewServer(New(ws, msgs, notifs))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"messages thread", http.MethodGet, "/api/v1/messages/bob"},
		{"notifications list", http.MethodGet, "/api/v1/notifications"},
		{"notifications count", http.MethodGet, "/api/v1/notifications/count"},
		{"notification mark read", http.MethodPost, "/api/v1/notifications/1/read"},
		{"collab socket", http.MethodGet, "/ws/collaborate/guide"},
		{"chat socket", http.MethodGet, "/ws/chat/bob"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, srv.URL+tc.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
