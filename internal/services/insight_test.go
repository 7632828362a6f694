package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lunaria-app/sanctuary-backend/internal/models"
)

func entryWithMood(mood string) models.JournalEntry {
	return models.JournalEntry{Mood: mood}
}

func TestComputeInsight_EmptyWindow(t *testing.T) {
	got := ComputeInsight(nil)
	assert.Equal(t, InsightJustBeginning, got.Category)
	assert.NotEmpty(t, got.Message)
}

func TestComputeInsight_Cascade(t *testing.T) {
	t.Run("help requests win over everything", func(t *testing.T) {
		// Three hurt days would normally mean carrying weight, but two
		// explicit help requests take precedence.
		entries := []models.JournalEntry{
			{Mood: models.MoodHurt, HelpRequest: models.HelpYesNeedHelp},
			{Mood: models.MoodHurt, HelpRequest: models.HelpYesNeedHelp},
			{Mood: models.MoodHurt},
			{Mood: models.MoodHappy},
			{Mood: models.MoodHappy},
		}
		got := ComputeInsight(entries)
		assert.Equal(t, InsightGentleness, got.Category)
	})

	t.Run("three hurt days read as carrying weight", func(t *testing.T) {
		entries := []models.JournalEntry{
			entryWithMood(models.MoodHurt),
			entryWithMood(models.MoodHurt),
			entryWithMood(models.MoodHurt),
			entryWithMood(models.MoodHappy),
		}
		got := ComputeInsight(entries)
		assert.Equal(t, InsightCarryingWeight, got.Category)
	})

	t.Run("one help request is not enough to escalate", func(t *testing.T) {
		entries := []models.JournalEntry{
			{Mood: models.MoodHurt, HelpRequest: models.HelpYesNeedHelp},
			entryWithMood(models.MoodHurt),
			entryWithMood(models.MoodHurt),
		}
		got := ComputeInsight(entries)
		assert.Equal(t, InsightCarryingWeight, got.Category)
	})

	t.Run("three rest days read as resting", func(t *testing.T) {
		entries := []models.JournalEntry{
			{NoWordsToday: true},
			{NoWordsToday: true},
			{NoWordsToday: true},
		}
		got := ComputeInsight(entries)
		assert.Equal(t, InsightResting, got.Category)
	})

	t.Run("happy and hopeful count together", func(t *testing.T) {
		entries := []models.JournalEntry{
			entryWithMood(models.MoodHappy),
			entryWithMood(models.MoodHopeful),
			entryWithMood(models.MoodHappy),
		}
		got := ComputeInsight(entries)
		assert.Equal(t, InsightLighter, got.Category)
	})

	t.Run("two quiet days read as showing up quietly", func(t *testing.T) {
		entries := []models.JournalEntry{
			entryWithMood(models.MoodQuiet),
			entryWithMood(models.MoodQuiet),
			entryWithMood(models.MoodTired),
		}
		got := ComputeInsight(entries)
		assert.Equal(t, InsightQuiet, got.Category)
	})

	t.Run("five mixed entries read as consistent", func(t *testing.T) {
		entries := []models.JournalEntry{
			entryWithMood(models.MoodHappy),
			entryWithMood(models.MoodTired),
			entryWithMood(models.MoodQuiet),
			entryWithMood(models.MoodOverthinking),
			entryWithMood(models.MoodHopeful),
		}
		got := ComputeInsight(entries)
		assert.Equal(t, InsightConsistent, got.Category)
	})

	t.Run("a short sparse window reads as finding rhythm", func(t *testing.T) {
		entries := []models.JournalEntry{
			entryWithMood(models.MoodTired),
			entryWithMood(models.MoodQuiet),
		}
		got := ComputeInsight(entries)
		assert.Equal(t, InsightFindingRhythm, got.Category)
	})
}

func TestComputeInsight_WindowCap(t *testing.T) {
	// Only the first seven entries count: hurt days beyond the window must
	// not influence the result.
	entries := []models.JournalEntry{
		entryWithMood(models.MoodHappy),
		entryWithMood(models.MoodHappy),
		entryWithMood(models.MoodHappy),
		entryWithMood(models.MoodTired),
		entryWithMood(models.MoodQuiet),
		entryWithMood(models.MoodTired),
		entryWithMood(models.MoodTired),
		entryWithMood(models.MoodHurt),
		entryWithMood(models.MoodHurt),
		entryWithMood(models.MoodHurt),
	}
	got := ComputeInsight(entries)
	assert.Equal(t, InsightLighter, got.Category)
}
