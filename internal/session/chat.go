package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/K4elthaz/readify/internal/models"
	"github.com/K4elthaz/readify/internal/notify"
)

// ErrProtocol rejects a single malformed inbound message. The connection
// stays open.
var ErrProtocol = errors.New("malformed chat payload")

// MessageAppender is the slice of message persistence the chat session needs.
type MessageAppender interface {
	Append(ctx context.Context, msg *models.ChatMessage) error
}

// NotificationEmitter receives "notify user X with message Y" calls.
// Fire-and-forget; no return value is consumed.
type NotificationEmitter interface {
	Notify(ctx context.Context, userID, message string)
}

// AttachmentUploader turns an inline attachment into a stable URL before the
// carrying message is persisted or broadcast.
type AttachmentUploader interface {
	Upload(ctx context.Context, senderEmail, name, base64Data string) (string, error)
}

// ChatSession is the per-connection behavior for a private two-user thread.
// Any number of concurrent connections per participant may share the room.
type ChatSession struct {
	client      *Client
	otherUserID string
	roomKey     string
	messages    MessageAppender
	notifier    NotificationEmitter
	uploader    AttachmentUploader
	reg         *Registry
	bcast       *Broadcaster
	log         *zap.Logger
}

func NewChatSession(client *Client, otherUserID string, messages MessageAppender, notifier NotificationEmitter, uploader AttachmentUploader, reg *Registry, bcast *Broadcaster, log *zap.Logger) *ChatSession {
	return &ChatSession{
		client:      client,
		otherUserID: otherUserID,
		roomKey:     ChatRoomKey(client.Identity.UserID, otherUserID),
		messages:    messages,
		notifier:    notifier,
		uploader:    uploader,
		reg:         reg,
		bcast:       bcast,
		log:         log,
	}
}

// Join registers the connection under the canonical pair key.
func (s *ChatSession) Join() {
	s.reg.Join(s.roomKey, s.client)
}

// HandleMessage runs the full inbound-message pipeline: upload the attachment
// if present, persist the message, notify the receiver, broadcast to the room
// (sender's tabs included). The persist is the gate: if it fails, neither the
// notification nor the broadcast happens.
func (s *ChatSession) HandleMessage(ctx context.Context, in models.ChatInbound) error {
	if in.Message == "" {
		return ErrProtocol
	}

	var imageURL *string
	if in.File != nil {
		url, err := s.uploader.Upload(ctx, s.client.Identity.Email, in.File.Name, in.File.Data)
		if err != nil {
			s.log.Error("attachment upload failed, message dropped",
				zap.String("sender", s.client.Identity.UserID),
				zap.Error(err))
			return fmt.Errorf("attachment upload: %w", err)
		}
		imageURL = &url
	}

	msg := &models.ChatMessage{
		SenderID:           s.client.Identity.UserID,
		ReceiverID:         s.otherUserID,
		Message:            in.Message,
		ImageAttachmentURL: imageURL,
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		s.log.Error("failed to persist chat message, notify and broadcast skipped",
			zap.String("sender", s.client.Identity.UserID),
			zap.String("receiver", s.otherUserID),
			zap.Error(err))
		return err
	}

	s.notifier.Notify(ctx, s.otherUserID,
		notify.RenderNewMessage(s.client.Identity.FullName, s.client.Identity.UserID))

	event := models.ChatEvent{
		Message:        in.Message,
		ImageURL:       imageURL,
		Sender:         s.client.Identity.Email,
		ProfilePicture: s.client.Identity.ProfilePicture,
		FullName:       s.client.Identity.FullName,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.bcast.Broadcast(s.roomKey, payload, "")
	return nil
}

// Close deregisters the connection.
func (s *ChatSession) Close() {
	s.reg.Leave(s.roomKey, s.client)
}
