package session

import (
	"strings"

	"go.uber.org/zap"

	"github.com/K4elthaz/readify/internal/metrics"
)

// Broadcaster delivers a payload to every current member of a room.
// Delivery to an individual peer is best-effort: a peer whose queue is full
// or already closed is dropped from the registry, and the failure is never
// surfaced to the originating session. Per-room FIFO holds because each
// originating session broadcasts sequentially from its own read loop.
type Broadcaster struct {
	reg *Registry
	log *zap.Logger
}

func NewBroadcaster(reg *Registry, log *zap.Logger) *Broadcaster {
	return &Broadcaster{reg: reg, log: log}
}

// Broadcast sends payload to all members of roomKey except excludeID (empty
// excludeID delivers to everyone, the sender's connection included).
func (b *Broadcaster) Broadcast(roomKey string, payload []byte, excludeID string) {
	metrics.BroadcastsTotal.WithLabelValues(roomKind(roomKey)).Inc()

	for _, member := range b.reg.Members(roomKey) {
		if member.ID == excludeID {
			continue
		}
		if !member.Enqueue(payload) {
			b.reg.Leave(roomKey, member)
			member.Close()
			metrics.DroppedPeersTotal.Inc()
			b.log.Warn("dropped unresponsive peer",
				zap.String("room", roomKey),
				zap.String("connection", member.ID))
		}
	}
}

func roomKind(roomKey string) string {
	if strings.HasPrefix(roomKey, "chat_") {
		return "chat"
	}
	return "collab"
}
