package models

import (
	"time"
)

// WriterSettings holds the writer's privacy controls. While
// TakingSpaceUntil is in the future the reader surface shows only a
// space-holder message and nothing else.
type WriterSettings struct {
	ID               string     `json:"id,omitempty"`
	UserID           string     `json:"user_id,omitempty"`
	AllowGentleNotes bool       `json:"allow_gentle_notes"`
	TakingSpaceUntil *time.Time `json:"taking_space_until,omitempty"`
	CreatedAt        time.Time  `json:"created_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at,omitempty"`
}

// TakingSpaceActive reports whether the taking-space window covers now.
// An expired window behaves exactly as if it were off.
func (s WriterSettings) TakingSpaceActive(now time.Time) bool {
	return s.TakingSpaceUntil != nil && s.TakingSpaceUntil.After(now)
}
