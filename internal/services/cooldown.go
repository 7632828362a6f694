package services

import (
	"math"
	"time"
)

// NoteCooldown is the rolling window between gentle notes from one sender.
const NoteCooldown = 7 * 24 * time.Hour

// CanSendNote reports whether a gentle note may be sent now, and when it may
// not, how many whole days remain until it can. lastSentAt is nil when the
// sender has never sent a note (or none within the caller's query window).
// Sending exactly at lastSentAt + 7 days is allowed.
func CanSendNote(lastSentAt *time.Time, now time.Time) (allowed bool, daysRemaining int) {
	if lastSentAt == nil {
		return true, 0
	}

	nextAllowed := lastSentAt.Add(NoteCooldown)
	if !now.Before(nextAllowed) {
		return true, 0
	}

	days := int(math.Ceil(nextAllowed.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return false, days
}
