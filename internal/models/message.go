package models

import "gorm.io/gorm"

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeVideo MessageType = "video"
)

// Message is a chat message within a room. Rows are immutable once created
// and ordered by created_at ascending. For media messages Content holds the
// original file name and FileURL the public object URL.
type Message struct {
	gorm.Model
	RoomID      uint        `gorm:"not null;index"`
	SenderID    uint        `gorm:"not null"`
	SenderEmail string      `gorm:"size:255;not null"`
	Type        MessageType `gorm:"size:50;not null;default:'text'"`
	Content     string      `gorm:"not null"`
	FileURL     string      `gorm:"size:1024"`
}
