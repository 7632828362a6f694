package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestModeAt(t *testing.T) {
	t.Run("morning window boundaries", func(t *testing.T) {
		assert.Equal(t, ModeCore, ModeAt(at(6, 59)))
		assert.Equal(t, ModeMorning, ModeAt(at(7, 0)))
		assert.Equal(t, ModeMorning, ModeAt(at(11, 59)))
		assert.Equal(t, ModeCore, ModeAt(at(12, 0)))
	})

	t.Run("rest of the day is core", func(t *testing.T) {
		assert.Equal(t, ModeCore, ModeAt(at(0, 0)))
		assert.Equal(t, ModeCore, ModeAt(at(18, 30)))
		assert.Equal(t, ModeCore, ModeAt(at(23, 59)))
	})
}

func TestIsNightAt(t *testing.T) {
	assert.True(t, IsNightAt(at(21, 0)))
	assert.True(t, IsNightAt(at(23, 30)))
	assert.True(t, IsNightAt(at(2, 0)))
	assert.True(t, IsNightAt(at(6, 59)))
	assert.False(t, IsNightAt(at(7, 0)))
	assert.False(t, IsNightAt(at(20, 59)))
}

func TestGreetingAt(t *testing.T) {
	assert.Equal(t, "Good morning", GreetingAt(at(8, 0)))
	assert.Equal(t, "Good afternoon", GreetingAt(at(14, 0)))
	assert.Equal(t, "Good evening", GreetingAt(at(19, 0)))
	assert.Equal(t, "Hello", GreetingAt(at(2, 0)))
}

func TestEntryDate(t *testing.T) {
	assert.Equal(t, "2026-03-10", EntryDate(at(9, 15)))
}
