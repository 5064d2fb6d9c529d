package models

import "gorm.io/gorm"

// MaxRoomMembers caps how many participants a room admits.
const MaxRoomMembers = 10

// Room is a named, password-gated chat channel.
//
// Password is stored in plain form and compared verbatim on join; this
// mirrors the demo-scope join gate rather than acting as account security.
// MemberCount is advisory only: it is not transactionally enforced against
// concurrent joins.
type Room struct {
	gorm.Model
	Name        string `gorm:"size:255;not null"`
	Password    string `gorm:"size:255;not null"`
	OwnerID     uint   `gorm:"not null;index"`
	MemberCount int    `gorm:"not null;default:1"`

	Owner User `gorm:"foreignKey:OwnerID"`
}
