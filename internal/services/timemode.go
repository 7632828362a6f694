package services

import (
	"log"
	"sync/atomic"
	"time"
)

// Time modes for the sanctuary. During the morning window the wizard is not
// reachable; the frontend shows the static morning greeting instead.
const (
	ModeMorning = "morning"
	ModeCore    = "core"
)

// TimeModeRecheckInterval is how often the watcher re-evaluates the mode, so
// a session left open across the boundary transitions without a reload.
const TimeModeRecheckInterval = 60 * time.Second

// ModeAt returns the sanctuary mode for a moment in local clock time.
// Morning window: 07:00-11:59. Everything else is core mode.
func ModeAt(t time.Time) string {
	h := t.Hour()
	if h >= 7 && h < 12 {
		return ModeMorning
	}
	return ModeCore
}

// IsNightAt reports whether the night-reflection prompt applies (after 21:00
// or before 07:00).
func IsNightAt(t time.Time) bool {
	h := t.Hour()
	return h >= 21 || h < 7
}

// GreetingAt returns a time-of-day salutation.
func GreetingAt(t time.Time) string {
	h := t.Hour()
	switch {
	case h >= 5 && h < 12:
		return "Good morning"
	case h >= 12 && h < 17:
		return "Good afternoon"
	case h >= 17 && h < 21:
		return "Good evening"
	default:
		return "Hello"
	}
}

// EntryDate formats a moment as the journal's calendar-date key.
func EntryDate(t time.Time) string {
	return t.Format("2006-01-02")
}

var currentMode atomic.Value

// CurrentTimeMode returns the mode last observed by the watcher, falling
// back to a direct check before the watcher has started.
func CurrentTimeMode() string {
	if v := currentMode.Load(); v != nil {
		return v.(string)
	}
	return ModeAt(time.Now())
}

// StartTimeModeWatcher starts a background goroutine that re-evaluates the
// sanctuary mode on a fixed interval and logs boundary transitions.
func StartTimeModeWatcher(interval time.Duration) {
	if interval <= 0 {
		interval = TimeModeRecheckInterval
	}

	currentMode.Store(ModeAt(time.Now()))

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			mode := ModeAt(time.Now())
			if prev := currentMode.Load(); prev != mode {
				log.Printf("Sanctuary mode changed: %v -> %s", prev, mode)
			}
			currentMode.Store(mode)
		}
	}()
}
