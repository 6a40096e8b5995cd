package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/K4elthaz/readify/internal/metrics"
	"github.com/K4elthaz/readify/internal/models"
	"github.com/K4elthaz/readify/internal/session"
	"github.com/K4elthaz/readify/internal/store"
	"github.com/K4elthaz/readify/internal/utils"
)

// WSHandler upgrades and drives the two realtime endpoints. Each accepted
// connection gets one reader goroutine (this handler) and one writer
// goroutine (Client.WritePump); deregistration is a deferred cleanup step so
// it runs on every exit path.
type WSHandler struct {
	Log         *zap.Logger
	JWTSecret   string
	SendBuffer  int
	IdleTimeout time.Duration

	Registry    *session.Registry
	Broadcaster *session.Broadcaster
	Docs        session.DocumentStore
	Messages    session.MessageAppender
	Notifier    session.NotificationEmitter
	Uploader    session.AttachmentUploader

	upgrader websocket.Upgrader
}

func NewWSHandler(log *zap.Logger, jwtSecret string, sendBuffer int, idleTimeout time.Duration,
	reg *session.Registry, bcast *session.Broadcaster,
	docs session.DocumentStore, messages session.MessageAppender,
	notifier session.NotificationEmitter, uploader session.AttachmentUploader) *WSHandler {
	return &WSHandler{
		Log:         log,
		JWTSecret:   jwtSecret,
		SendBuffer:  sendBuffer,
		IdleTimeout: idleTimeout,
		Registry:    reg,
		Broadcaster: bcast,
		Docs:        docs,
		Messages:    messages,
		Notifier:    notifier,
		Uploader:    uploader,
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// CollabWS handles GET /ws/collaborate/{slug}.
func (h *WSHandler) CollabWS(w http.ResponseWriter, r *http.Request) {
	identity, err := utils.VerifyIdentity(r, h.JWTSecret)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	slug := chi.URLParam(r, "slug")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	client := session.NewClient(conn, *identity, h.SendBuffer)
	go client.WritePump()
	defer client.Close()

	metrics.ActiveConnections.Inc()
	defer metrics.ActiveConnections.Dec()

	sess := session.NewCollabSession(client, slug, h.Docs, h.Registry, h.Broadcaster, h.Log)
	if err := sess.Join(r.Context()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = conn.WriteJSON(models.NewErrorFrame("document not found"))
		} else {
			h.Log.Error("collab join failed", zap.String("slug", slug), zap.Error(err))
		}
		return
	}
	defer sess.Close()

	for {
		payload, err := h.readMessage(conn)
		if err != nil {
			return
		}
		var in models.CollabInbound
		if err := json.Unmarshal(payload, &in); err != nil {
			h.Log.Warn("malformed collab payload",
				zap.String("connection", client.ID), zap.Error(err))
			continue
		}
		// Edit already logs persistence failures; the connection stays open
		// for subsequent messages either way.
		_ = sess.Edit(r.Context(), in.Content)
	}
}

// ChatWS handles GET /ws/chat/{userID} where userID is the other participant.
func (h *WSHandler) ChatWS(w http.ResponseWriter, r *http.Request) {
	identity, err := utils.VerifyIdentity(r, h.JWTSecret)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	otherUserID := chi.URLParam(r, "userID")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	client := session.NewClient(conn, *identity, h.SendBuffer)
	go client.WritePump()
	defer client.Close()

	metrics.ActiveConnections.Inc()
	defer metrics.ActiveConnections.Dec()

	sess := session.NewChatSession(client, otherUserID, h.Messages, h.Notifier, h.Uploader, h.Registry, h.Broadcaster, h.Log)
	sess.Join()
	defer sess.Close()

	for {
		payload, err := h.readMessage(conn)
		if err != nil {
			return
		}
		var in models.ChatInbound
		if err := json.Unmarshal(payload, &in); err != nil {
			h.Log.Warn("malformed chat payload",
				zap.String("connection", client.ID), zap.Error(err))
			continue
		}
		if err := sess.HandleMessage(r.Context(), in); err != nil {
			if errors.Is(err, session.ErrProtocol) {
				h.Log.Warn("rejected chat message",
					zap.String("connection", client.ID), zap.Error(err))
			}
			// session logged everything else; keep the connection open
		}
	}
}

func (h *WSHandler) readMessage(conn *websocket.Conn) ([]byte, error) {
	if h.IdleTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(h.IdleTimeout)); err != nil {
			return nil, err
		}
	}
	_, payload, err := conn.ReadMessage()
	return payload, err
}
