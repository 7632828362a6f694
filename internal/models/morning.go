package models

import (
	"time"
)

// MorningMessage is an admin-curated message shown during the morning
// window. At most one exists per date; absent dates fall back to a local
// greeting pool.
type MorningMessage struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Message   string    `json:"message"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Affirmation is a reusable encouragement line from the admin-curated pool.
type Affirmation struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Category  string    `json:"category,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
