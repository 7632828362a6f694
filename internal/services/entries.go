package services

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/database"
	"github.com/lunaria-app/sanctuary-backend/internal/models"
	"github.com/lunaria-app/sanctuary-backend/pkg/utils"
)

// UpsertEntry writes the authoritative entry row for (user, date), advancing
// the streak in the same transaction. letter_to_self is encrypted at rest
// when an encryption key is configured. A no-words save voids all text
// fields.
func UpsertEntry(userID string, entryDate string, f EntryFields, noWords bool) error {
	if noWords {
		f = EntryFields{}
	}

	letter := f.LetterToSelf
	if letter != "" && utils.EncryptionConfigured() {
		enc, err := utils.Encrypt(letter)
		if err != nil {
			return err
		}
		letter = enc
	}

	tx, err := database.PostgresDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO journal_entries (
			user_id, entry_date, mood, mood_intensity,
			thoughts_on_mind, sweet_moments, things_that_hurt,
			night_reflection, letter_to_self, no_words_today,
			help_request, allow_reader_access, bookmark,
			created_at, updated_at
		)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, NULLIF($13, ''), NOW(), NOW())
		ON CONFLICT (user_id, entry_date) DO UPDATE SET
			mood = NULLIF($3, ''),
			mood_intensity = $4,
			thoughts_on_mind = $5,
			sweet_moments = $6,
			things_that_hurt = $7,
			night_reflection = $8,
			letter_to_self = $9,
			no_words_today = $10,
			help_request = NULLIF($11, ''),
			allow_reader_access = $12,
			bookmark = NULLIF($13, ''),
			updated_at = NOW()
	`, userID, entryDate, f.Mood, f.MoodIntensity,
		f.ThoughtsOnMind, f.SweetMoments, f.ThingsThatHurt,
		f.NightReflection, letter, noWords,
		f.HelpRequest, f.AllowReaderAccess, f.Bookmark)
	if err != nil {
		return err
	}

	if err := UpdateStreakOnSave(tx, userID, entryDate); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	// Post-commit housekeeping is best-effort
	Cache.Delete(CacheKey("insight", userID))
	if err := DeleteWizardDraft(userID, entryDate); err != nil {
		log.Printf("failed to clear wizard draft for %s (%s): %v", userID, entryDate, err)
	}
	if err := PublishSanctuaryEvent(context.Background(), SanctuaryEvent{
		Type:       EventEntrySaved,
		EntryDate:  entryDate,
		NoWordsDay: noWords,
	}); err != nil {
		log.Printf("failed to publish entry_saved event: %v", err)
	}

	return nil
}

// ListEntries returns a writer's entries newest first. letter_to_self is
// decrypted for the owner; reader-facing callers strip it regardless.
func ListEntries(userID string, limit int) ([]models.JournalEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	rows, err := database.PostgresDB.Query(`
		SELECT id, user_id, entry_date, COALESCE(mood, ''), mood_intensity,
			COALESCE(thoughts_on_mind, ''), COALESCE(sweet_moments, ''),
			COALESCE(things_that_hurt, ''), COALESCE(night_reflection, ''),
			COALESCE(letter_to_self, ''), no_words_today,
			COALESCE(help_request, ''), allow_reader_access,
			COALESCE(bookmark, ''), taking_space, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetEntryByDate returns one entry, or nil when the date has none.
func GetEntryByDate(userID string, entryDate string) (*models.JournalEntry, error) {
	row := database.PostgresDB.QueryRow(`
		SELECT id, user_id, entry_date, COALESCE(mood, ''), mood_intensity,
			COALESCE(thoughts_on_mind, ''), COALESCE(sweet_moments, ''),
			COALESCE(things_that_hurt, ''), COALESCE(night_reflection, ''),
			COALESCE(letter_to_self, ''), no_words_today,
			COALESCE(help_request, ''), allow_reader_access,
			COALESCE(bookmark, ''), taking_space, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1 AND entry_date = $2
	`, userID, entryDate)

	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var e models.JournalEntry
	var entryDate time.Time
	var intensity sql.NullInt64

	err := row.Scan(&e.ID, &e.UserID, &entryDate, &e.Mood, &intensity,
		&e.ThoughtsOnMind, &e.SweetMoments, &e.ThingsThatHurt,
		&e.NightReflection, &e.LetterToSelf, &e.NoWordsToday,
		&e.HelpRequest, &e.AllowReaderAccess, &e.Bookmark,
		&e.TakingSpace, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return e, err
	}

	e.EntryDate = entryDate.Format("2006-01-02")
	if intensity.Valid {
		v := int(intensity.Int64)
		e.MoodIntensity = &v
	}
	if e.LetterToSelf != "" && utils.EncryptionConfigured() {
		if dec, err := utils.Decrypt(e.LetterToSelf); err == nil {
			e.LetterToSelf = dec
		}
	}
	return e, nil
}
