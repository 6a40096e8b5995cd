package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/K4elthaz/readify/internal/models"
	"github.com/K4elthaz/readify/internal/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EventsChannel carries notification events to any interested service
// instance (badge counters, web push workers).
const EventsChannel = "notifications:events"

// Event is the pub/sub payload mirroring the persisted notification.
type Event struct {
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier persists a notification row and fans the event out over Redis.
// Calls are fire-and-forget: failures are logged and never propagated to the
// session that triggered them.
type Notifier struct {
	Store *store.NotificationStore
	RDB   *redis.Client
	Log   *zap.Logger
}

func NewNotifier(st *store.NotificationStore, rdb *redis.Client, log *zap.Logger) *Notifier {
	return &Notifier{Store: st, RDB: rdb, Log: log}
}

func (n *Notifier) Notify(ctx context.Context, userID, message string) {
	row := &models.Notification{UserID: userID, Message: message}
	if err := n.Store.Create(ctx, row); err != nil {
		n.Log.Error("failed to persist notification", zap.String("user", userID), zap.Error(err))
		return
	}

	payload, err := json.Marshal(Event{UserID: userID, Message: message, CreatedAt: row.CreatedAt})
	if err != nil {
		n.Log.Error("failed to marshal notification event", zap.Error(err))
		return
	}
	if err := n.RDB.Publish(ctx, EventsChannel, payload).Err(); err != nil {
		n.Log.Warn("failed to publish notification event", zap.String("user", userID), zap.Error(err))
	}
}

// RenderNewMessage builds the pre-rendered inbox notification shown when a
// user receives a direct message.
func RenderNewMessage(senderName, senderID string) string {
	return fmt.Sprintf(`<p class="text-sm font-semibold text-gray-900">New message received!</p>
               <hr>
               <p class="mt-2 text-xs text-gray-500">
                   <span class="font-semibold text-gray-900">%s</span> sent you a message.
                   View it <a href="/message/%s/" class="text-pink-500 underline">here</a>
               </p>
           `, senderName, senderID)
}
