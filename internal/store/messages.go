package store

import (
	"context"

	"github.com/K4elthaz/readify/internal/models"

	"gorm.io/gorm"
)

// MessageStore is the append-only log of direct messages. Rows are never
// deleted by this service; only the read flag changes after creation.
type MessageStore struct {
	DB *gorm.DB
}

// Append persists a new chat message. The row's ID is populated on success.
func (s *MessageStore) Append(ctx context.Context, msg *models.ChatMessage) error {
	return s.DB.WithContext(ctx).Create(msg).Error
}

// ListThread returns every message exchanged between the two users, oldest
// first.
func (s *MessageStore) ListThread(ctx context.Context, userA, userB string) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	err := s.DB.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp ASC").
		Find(&messages).Error
	return messages, err
}

// MarkThreadRead flags every message the reader received from the other user
// as read. Safe to call on an empty or already-read thread.
func (s *MessageStore) MarkThreadRead(ctx context.Context, readerID, otherID string) error {
	return s.DB.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("receiver_id = ? AND sender_id = ? AND mark_as_read = ?", readerID, otherID, false).
		Update("mark_as_read", true).Error
}
