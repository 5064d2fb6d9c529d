package models

import "gorm.io/gorm"

// User represents an authenticated account. The (ID, Email) pair is the
// actor identity attached to every message a user sends.
type User struct {
	gorm.Model
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
}
