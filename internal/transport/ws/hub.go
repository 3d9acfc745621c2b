package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

const MsgProgressUpdated MessageType = "progress_updated"

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per user. A user may hold several
// connections (one per open tab); each gets every message sent to the user.
type Hub struct {
	conns map[string]map[*Connection]struct{} // userID -> connections

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}

	log *zap.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	UserID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message to deliver to all of a user's connections
type BroadcastMessage struct {
	UserID  string
	Message *Message
}

// NewHub creates a new WebSocket hub and starts its loop
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.UserID] == nil {
				h.conns[conn.UserID] = make(map[*Connection]struct{})
			}
			h.conns[conn.UserID][conn] = struct{}{}
			h.mu.Unlock()
			h.log.Debug("websocket connected", zap.String("userId", conn.UserID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.UserID]; ok {
				if _, ok := set[conn]; ok {
					delete(set, conn)
					close(conn.Send)
					if len(set) == 0 {
						delete(h.conns, conn.UserID)
					}
				}
			}
			h.mu.Unlock()
			h.log.Debug("websocket disconnected", zap.String("userId", conn.UserID))

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.log.Warn("websocket message encode failed", zap.Error(err))
				continue
			}
			h.mu.RLock()
			for conn := range h.conns[msg.UserID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for userID, set := range h.conns {
				for conn := range set {
					close(conn.Send)
				}
				delete(h.conns, userID)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Close stops the hub and closes every connection's send channel
func (h *Hub) Close() {
	close(h.done)
}

// ConnectionCount returns the number of open connections for a user
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// BroadcastToUser sends a message to every connection of a user (implements service.Broadcaster)
func (h *Hub) BroadcastToUser(userID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Warn("websocket payload encode failed", zap.String("type", msgType), zap.Error(err))
		return
	}
	msg := &BroadcastMessage{
		UserID: userID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("websocket broadcast queue full, dropping message", zap.String("userId", userID))
	}
}
