package session

import (
	"sync"

	"github.com/K4elthaz/readify/internal/metrics"
)

// Registry tracks which connections belong to which room. It is the only
// shared mutable state crossing connection goroutines, together with the
// Broadcaster that reads it.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]map[*Client]struct{})}
}

// Join registers the connection under roomKey. Joining twice is a no-op.
func (r *Registry) Join(roomKey string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomKey]
	if !ok {
		room = make(map[*Client]struct{})
		r.rooms[roomKey] = room
		metrics.OpenRooms.Inc()
	}
	room[c] = struct{}{}
}

// Leave removes the mapping. Safe to call for a connection already gone.
func (r *Registry) Leave(roomKey string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomKey]
	if !ok {
		return
	}
	if _, member := room[c]; !member {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(r.rooms, roomKey)
		metrics.OpenRooms.Dec()
	}
}

// Members returns a point-in-time snapshot of the room. Members may leave
// between snapshot and use; delivery against the snapshot is best-effort.
func (r *Registry) Members(roomKey string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room := r.rooms[roomKey]
	members := make([]*Client, 0, len(room))
	for c := range room {
		members = append(members, c)
	}
	return members
}

// RoomCount reports the number of rooms with at least one member.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
