package hub

import (
	"encoding/json"
	"sync"
)

// Event types carried on a room's stream.
const (
	EventMessageInsert = "message.insert"
	EventPresenceSync  = "presence.sync"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// PresenceEntry is one connected participant's transient state. Entries live
// only as long as the connection that tracked them; they are never persisted.
type PresenceEntry struct {
	Email    string `json:"email"`
	IsTyping bool   `json:"is_typing"`
	OnlineAt string `json:"online_at,omitempty"`
}

// Client represents a single client connection (a participant in a room).
// It's essentially a channel that the SSE handler will listen to.
type Client chan []byte

// Hub manages all active rooms, their connected clients and per-connection
// presence state. Presence is node-local: it describes connections to this
// instance only.
type Hub struct {
	rooms    map[uint]map[Client]bool
	presence map[uint]map[Client]PresenceEntry
	mu       sync.RWMutex
}

// GlobalHub is the singleton instance of our Hub.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		rooms:    make(map[uint]map[Client]bool),
		presence: make(map[uint]map[Client]PresenceEntry),
	}
}

// Subscribe adds a new client to a specific room.
func (h *Hub) Subscribe(roomID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[Client]bool)
	}
	h.rooms[roomID][client] = true
}

// Unsubscribe removes a client from a room and closes its channel. Any
// presence record the client tracked must be removed with Untrack first so
// the remaining participants see it disappear.
func (h *Hub) Unsubscribe(roomID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[roomID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
}

// Track records a presence entry for a connection and broadcasts the updated
// snapshot to the whole room.
func (h *Hub) Track(roomID uint, client Client, entry PresenceEntry) {
	h.mu.Lock()
	if _, ok := h.presence[roomID]; !ok {
		h.presence[roomID] = make(map[Client]PresenceEntry)
	}
	h.presence[roomID][client] = entry
	h.mu.Unlock()

	h.broadcastPresence(roomID)
}

// Untrack drops a connection's presence entry and broadcasts the updated
// snapshot. A connection that goes away without untracking would leave a
// phantom participant visible to everyone else.
func (h *Hub) Untrack(roomID uint, client Client) {
	h.mu.Lock()
	if entries, ok := h.presence[roomID]; ok {
		delete(entries, client)
		if len(entries) == 0 {
			delete(h.presence, roomID)
		}
	}
	h.mu.Unlock()

	h.broadcastPresence(roomID)
}

// SetTyping flips the typing flag on every presence entry for the given
// participant and broadcasts the updated snapshot. Typing state arrives over
// a plain request rather than the stream, so it is keyed by email, not by
// connection.
func (h *Hub) SetTyping(roomID uint, email string, isTyping bool) {
	h.mu.Lock()
	for client, entry := range h.presence[roomID] {
		if entry.Email == email {
			entry.IsTyping = isTyping
			h.presence[roomID][client] = entry
		}
	}
	h.mu.Unlock()

	h.broadcastPresence(roomID)
}

// Snapshot returns the full flattened presence state for a room. Every sync
// event carries a complete snapshot, never an incremental diff.
func (h *Hub) Snapshot(roomID uint) []PresenceEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshotLocked(roomID)
}

func (h *Hub) snapshotLocked(roomID uint) []PresenceEntry {
	entries := make([]PresenceEntry, 0, len(h.presence[roomID]))
	for _, entry := range h.presence[roomID] {
		entries = append(entries, entry)
	}
	return entries
}

func (h *Hub) broadcastPresence(roomID uint) {
	h.Broadcast(roomID, Event{Type: EventPresenceSync, Payload: h.Snapshot(roomID)})
}

// Broadcast sends an event to all clients in a specific room.
func (h *Hub) Broadcast(roomID uint, event Event) {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.BroadcastRaw(roomID, messageBytes)
}

// BroadcastRaw sends pre-marshaled event bytes to all clients in a room.
func (h *Hub) BroadcastRaw(roomID uint, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		// Use a non-blocking send to prevent a slow client from blocking the hub.
		select {
		case client <- message:
		default:
			// Client channel is full, maybe they are disconnected or slow.
			// The unsubscribe logic will handle cleaning this up eventually.
		}
	}
}
