package models

import "time"

// UserID identifies a user. It is a distinct type so an ownership check
// cannot compare ids of different kinds.
type UserID string

// User represents a user in the system
type User struct {
	ID           UserID    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not serialized
	CreatedAt    time.Time `json:"created_at"`
}
