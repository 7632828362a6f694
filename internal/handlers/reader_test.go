package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunaria-app/sanctuary-backend/internal/models"
)

func sharedEntry() models.JournalEntry {
	intensity := 6
	return models.JournalEntry{
		EntryDate:         "2026-03-10",
		Mood:              models.MoodTired,
		MoodIntensity:     &intensity,
		ThoughtsOnMind:    "long day at work",
		SweetMoments:      "we talked on the phone",
		ThingsThatHurt:    "a hard conversation",
		NightReflection:   "tomorrow will be softer",
		LetterToSelf:      "dear me, be patient",
		HelpRequest:       models.HelpMaybeLater,
		AllowReaderAccess: true,
		Bookmark:          models.BookmarkGentle,
	}
}

func TestSanitizeEntryForReader(t *testing.T) {
	t.Run("shared entry keeps text fields", func(t *testing.T) {
		got := sanitizeEntryForReader(sharedEntry())
		assert.True(t, got.Shared)
		assert.Equal(t, "long day at work", got.ThoughtsOnMind)
		assert.Equal(t, "we talked on the phone", got.SweetMoments)
		assert.Equal(t, "a hard conversation", got.ThingsThatHurt)
		assert.Equal(t, "tomorrow will be softer", got.NightReflection)
		assert.Equal(t, models.MoodTired, got.Mood)
		require.NotNil(t, got.MoodIntensity)
		assert.Equal(t, 6, *got.MoodIntensity)
	})

	t.Run("withheld consent strips text but keeps mood", func(t *testing.T) {
		e := sharedEntry()
		e.AllowReaderAccess = false
		got := sanitizeEntryForReader(e)

		assert.False(t, got.Shared)
		assert.Empty(t, got.ThoughtsOnMind)
		assert.Empty(t, got.SweetMoments)
		assert.Empty(t, got.ThingsThatHurt)
		assert.Empty(t, got.NightReflection)
		assert.Equal(t, models.MoodTired, got.Mood)
		assert.Equal(t, models.HelpMaybeLater, got.HelpRequest)
		assert.Equal(t, models.BookmarkGentle, got.Bookmark)
	})

	t.Run("rest day strips text even with consent", func(t *testing.T) {
		e := sharedEntry()
		e.NoWordsToday = true
		got := sanitizeEntryForReader(e)

		assert.False(t, got.Shared)
		assert.True(t, got.NoWordsToday)
		assert.Empty(t, got.ThoughtsOnMind)
	})

	t.Run("letter to self never appears in the payload", func(t *testing.T) {
		data, err := json.Marshal(sanitizeEntryForReader(sharedEntry()))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "letter_to_self")
		assert.NotContains(t, string(data), "dear me, be patient")
	})
}
