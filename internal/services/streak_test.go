package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lunaria-app/sanctuary-backend/internal/models"
)

func TestNextStreak(t *testing.T) {
	t.Run("first ever entry", func(t *testing.T) {
		got := NextStreak(models.ActivityStreak{}, "2026-03-10")
		assert.Equal(t, 1, got.CurrentStreak)
		assert.Equal(t, 1, got.LongestStreak)
		assert.Equal(t, 1, got.TotalDays)
		assert.Equal(t, "2026-03-10", got.LastActivityDate)
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		s := models.ActivityStreak{CurrentStreak: 3, LongestStreak: 5, TotalDays: 9, LastActivityDate: "2026-03-10"}
		got := NextStreak(s, "2026-03-10")
		assert.Equal(t, s, got)
	})

	t.Run("consecutive day extends the run", func(t *testing.T) {
		s := models.ActivityStreak{CurrentStreak: 3, LongestStreak: 5, TotalDays: 9, LastActivityDate: "2026-03-10"}
		got := NextStreak(s, "2026-03-11")
		assert.Equal(t, 4, got.CurrentStreak)
		assert.Equal(t, 5, got.LongestStreak)
		assert.Equal(t, 10, got.TotalDays)
	})

	t.Run("gap resets to one", func(t *testing.T) {
		s := models.ActivityStreak{CurrentStreak: 3, LongestStreak: 5, TotalDays: 9, LastActivityDate: "2026-03-10"}
		got := NextStreak(s, "2026-03-14")
		assert.Equal(t, 1, got.CurrentStreak)
		assert.Equal(t, 5, got.LongestStreak)
		assert.Equal(t, 10, got.TotalDays)
	})

	t.Run("longest follows a new record", func(t *testing.T) {
		s := models.ActivityStreak{CurrentStreak: 5, LongestStreak: 5, TotalDays: 20, LastActivityDate: "2026-03-10"}
		got := NextStreak(s, "2026-03-11")
		assert.Equal(t, 6, got.CurrentStreak)
		assert.Equal(t, 6, got.LongestStreak)
	})

	t.Run("month boundary still counts as consecutive", func(t *testing.T) {
		s := models.ActivityStreak{CurrentStreak: 2, LongestStreak: 2, TotalDays: 2, LastActivityDate: "2026-02-28"}
		got := NextStreak(s, "2026-03-01")
		assert.Equal(t, 3, got.CurrentStreak)
	})

	t.Run("unparseable date leaves the aggregate untouched", func(t *testing.T) {
		s := models.ActivityStreak{CurrentStreak: 2, LongestStreak: 2, TotalDays: 2, LastActivityDate: "2026-03-10"}
		got := NextStreak(s, "not-a-date")
		assert.Equal(t, s, got)
	})
}
