package store

import (
	"context"

	"github.com/K4elthaz/readify/internal/models"

	"gorm.io/gorm"
)

// NotificationStore persists per-user notifications created by the emitter.
type NotificationStore struct {
	DB *gorm.DB
}

func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	return s.DB.WithContext(ctx).Create(n).Error
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationStore) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flags a single notification read. Scoped to the owner so one user
// cannot ack another's notifications.
func (s *NotificationStore) MarkRead(ctx context.Context, userID string, id uint) error {
	return s.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("is_read", true).Error
}

func (s *NotificationStore) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
