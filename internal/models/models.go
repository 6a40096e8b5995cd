package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage is one persisted direct message. Rows are immutable after
// creation except for the read flag, which flips when the receiver opens
// the thread.
type ChatMessage struct {
	gorm.Model
	SenderID           string    `gorm:"index;not null" json:"sender_id"`
	ReceiverID         string    `gorm:"index;not null" json:"receiver_id"`
	Message            string    `gorm:"not null" json:"message"`
	ImageAttachmentURL *string   `json:"image_attachment_url"`
	Timestamp          time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
	MarkAsRead         bool      `gorm:"default:false" json:"mark_as_read"`
}

// Notification is a pre-rendered message for a single user. The body is
// opaque to this service.
type Notification struct {
	gorm.Model
	UserID  string `gorm:"index;not null" json:"user_id"`
	Message string `gorm:"not null" json:"message"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`
}
