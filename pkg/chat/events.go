// Package chat is the client-side core of Whisper Rooms: an ordered message
// feed, a presence-derived typing tracker, a room session controller wiring
// the two to a realtime event channel, and a composer with debounced typing
// signals. The HTTP/SSE transport in this package talks to the server in
// cmd/server; the state types themselves are transport-agnostic.
package chat

import "time"

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeVideo MessageType = "video"
)

// Message mirrors a persisted message row as the server serializes it.
type Message struct {
	ID          uint        `json:"id"`
	RoomID      uint        `json:"room_id"`
	SenderID    uint        `json:"sender_id"`
	SenderEmail string      `json:"sender_email"`
	Type        MessageType `json:"type"`
	Content     string      `json:"content"`
	FileURL     string      `json:"file_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Room is a room's display metadata; the password never leaves the server.
type Room struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	OwnerID     uint      `json:"owner_id"`
	MemberCount int       `json:"member_count"`
	IsFull      bool      `json:"is_full"`
	CreatedAt   time.Time `json:"created_at"`
}

// PresenceEntry is one participant's transient state in a room.
type PresenceEntry struct {
	Email    string `json:"email"`
	IsTyping bool   `json:"is_typing"`
	OnlineAt string `json:"online_at,omitempty"`
}

type EventType string

const (
	EventMessageInsert EventType = "message.insert"
	EventPresenceSync  EventType = "presence.sync"
)

// Event is one frame off a room's realtime channel. Exactly one of Message
// or Presence is populated, depending on Type.
type Event struct {
	Type     EventType
	Message  *Message
	Presence []PresenceEntry
}

// Identity is the authenticated actor consumed by every write operation.
type Identity struct {
	ID    uint
	Email string
}
