package session

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/K4elthaz/readify/internal/models"
)

// DocumentStore is the slice of chapter persistence the collaboration
// session needs.
type DocumentStore interface {
	GetContent(ctx context.Context, slug string) (string, error)
	SaveContent(ctx context.Context, slug, content string) error
}

// CollabSession is the per-connection behavior for a chapter's shared editor.
type CollabSession struct {
	client  *Client
	slug    string
	roomKey string
	docs    DocumentStore
	reg     *Registry
	bcast   *Broadcaster
	log     *zap.Logger
}

func NewCollabSession(client *Client, slug string, docs DocumentStore, reg *Registry, bcast *Broadcaster, log *zap.Logger) *CollabSession {
	return &CollabSession{
		client:  client,
		slug:    slug,
		roomKey: CollabRoomKey(slug),
		docs:    docs,
		reg:     reg,
		bcast:   bcast,
		log:     log,
	}
}

// Join validates that the chapter exists, registers the connection, and
// sends the current content to the joining client only. A missing chapter
// rejects the join (store.ErrNotFound).
func (s *CollabSession) Join(ctx context.Context) error {
	content, err := s.docs.GetContent(ctx, s.slug)
	if err != nil {
		return err
	}
	s.reg.Join(s.roomKey, s.client)
	s.client.EnqueueJSON(models.InitialContent(content))
	return nil
}

// Edit persists the full replacement content and fans the update out to every
// other member. The write is last-write-wins: no version check, whole-document
// replace. A persistence failure skips the broadcast so peers never observe
// content that is not durably stored.
func (s *CollabSession) Edit(ctx context.Context, content string) error {
	if err := s.docs.SaveContent(ctx, s.slug, content); err != nil {
		s.log.Error("failed to persist edit, broadcast skipped",
			zap.String("slug", s.slug),
			zap.Error(err))
		return err
	}

	payload, err := json.Marshal(models.ContentUpdate(content))
	if err != nil {
		return err
	}
	s.bcast.Broadcast(s.roomKey, payload, s.client.ID)
	return nil
}

// Close deregisters the connection. No persistence action on close.
func (s *CollabSession) Close() {
	s.reg.Leave(s.roomKey, s.client)
}
