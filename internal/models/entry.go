package models

import (
	"time"
)

// Mood values. An empty string means the writer skipped mood selection.
const (
	MoodHappy        = "happy"
	MoodTired        = "tired"
	MoodOverthinking = "overthinking"
	MoodHurt         = "hurt"
	MoodHopeful      = "hopeful"
	MoodQuiet        = "quiet"
)

// Help request values. Empty string means unset.
const (
	HelpJustNeededToWrite = "just_needed_to_write"
	HelpMaybeLater        = "maybe_later"
	HelpYesNeedHelp       = "yes_need_help"
)

// Bookmark values - a self-reflection tag, never used in automated logic.
const (
	BookmarkMattered = "mattered"
	BookmarkHeavy    = "heavy"
	BookmarkGentle   = "gentle"
)

// MoodWantsIntensity reports whether intensity capture applies to a mood.
// Intensity is only solicited for the heavier moods; otherwise the field
// stays unset and is never shown.
func MoodWantsIntensity(mood string) bool {
	return mood == MoodHurt || mood == MoodTired || mood == MoodOverthinking
}

// JournalEntry is one writer's entry for one calendar date.
// Unique on (user_id, entry_date); upserted, never deleted by normal flow.
// LetterToSelf is private forever: it is encrypted at rest and stripped
// from every reader-facing payload regardless of AllowReaderAccess.
type JournalEntry struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	EntryDate         string    `json:"entry_date"` // YYYY-MM-DD
	Mood              string    `json:"mood,omitempty"`
	MoodIntensity     *int      `json:"mood_intensity,omitempty"` // 1-10, heavier moods only
	ThoughtsOnMind    string    `json:"thoughts_on_mind,omitempty"`
	SweetMoments      string    `json:"sweet_moments,omitempty"`
	ThingsThatHurt    string    `json:"things_that_hurt,omitempty"`
	NightReflection   string    `json:"night_reflection,omitempty"`
	LetterToSelf      string    `json:"letter_to_self,omitempty"`
	NoWordsToday      bool      `json:"no_words_today"`
	HelpRequest       string    `json:"help_request,omitempty"`
	AllowReaderAccess bool      `json:"allow_reader_access"`
	Bookmark          string    `json:"bookmark,omitempty"`
	TakingSpace       bool      `json:"taking_space"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
