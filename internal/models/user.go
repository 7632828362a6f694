package models

import (
	"time"
)

// Role values as stored in user_roles. RoleNone is the absence of a row.
const (
	RoleWriter = "writer"
	RoleReader = "reader"
	RoleAdmin  = "admin"
	RoleNone   = "none"
)

// User represents an account. Exactly one user holds the writer role;
// a paired reader account may exist alongside it.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`

	// Internal only - never returned in JSON
	PasswordHash string `json:"-"`
}
