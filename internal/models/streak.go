package models

import (
	"time"
)

// ActivityStreak is the per-writer showing-up aggregate. It is mutated only
// inside the authoritative entry save path.
type ActivityStreak struct {
	ID               string    `json:"id,omitempty"`
	UserID           string    `json:"user_id,omitempty"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	TotalDays        int       `json:"total_days"`
	LastActivityDate string    `json:"last_activity_date,omitempty"` // YYYY-MM-DD
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}
