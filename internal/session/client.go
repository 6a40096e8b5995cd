package session

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/K4elthaz/readify/internal/utils"
)

// Client is one live WebSocket connection. The registry owns its room
// membership; a single writer goroutine owns the wire. Everything else about
// the connection is private to its own reader goroutine.
type Client struct {
	ID       string
	Identity utils.Identity

	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	mu     sync.Mutex
	hook   func([]byte)
	closed bool
}

func NewClient(conn *websocket.Conn, identity utils.Identity, sendBuffer int) *Client {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	return &Client{
		ID:       uuid.New().String(),
		Identity: identity,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
}

// SetSendHook replaces the outbound queue with a direct callback (used in tests).
func (c *Client) SetSendHook(fn func([]byte)) {
	c.mu.Lock()
	c.hook = fn
	c.mu.Unlock()
}

// Enqueue queues a payload for delivery without blocking. It reports false
// when the client is closed or its queue is full; callers treat that as a
// dead peer.
func (c *Client) Enqueue(payload []byte) bool {
	c.mu.Lock()
	hook, closed := c.hook, c.closed
	c.mu.Unlock()

	if closed {
		return false
	}
	if hook != nil {
		hook(payload)
		return true
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// EnqueueJSON marshals v and queues it. Marshal failures count as a failed send.
func (c *Client) EnqueueJSON(v any) bool {
	payload, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return c.Enqueue(payload)
}

// Close marks the client dead and stops its writer. Idempotent; the
// underlying conn is closed by the connection handler.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}

// WritePump drains the send queue onto the wire until the client closes or a
// write fails. Runs as the connection's single writer goroutine.
func (c *Client) WritePump() {
	for {
		select {
		case payload := <-c.send:
			if c.conn == nil {
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.done:
			if c.conn != nil {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			}
			return
		}
	}
}
