package models

import (
	"time"
)

// GentleNote is a one-directional message from the reader to the writer.
// Notes are immutable once created and rate-limited to one per rolling
// 7-day window per sender.
type GentleNote struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
