package services

import (
	"database/sql"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/database"
	"github.com/lunaria-app/sanctuary-backend/internal/models"
)

// DefaultTakingSpaceWindow is used when the writer takes space without
// naming an end time.
const DefaultTakingSpaceWindow = 7 * 24 * time.Hour

// GetWriterSettings loads the writer's settings, returning defaults when no
// row exists yet.
func GetWriterSettings(userID string) (models.WriterSettings, error) {
	var s models.WriterSettings
	var until sql.NullTime

	err := database.PostgresDB.QueryRow(`
		SELECT allow_gentle_notes, taking_space_until, created_at, updated_at
		FROM writer_settings WHERE user_id = $1
	`, userID).Scan(&s.AllowGentleNotes, &until, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.WriterSettings{UserID: userID, AllowGentleNotes: true}, nil
		}
		return s, err
	}
	if until.Valid {
		t := until.Time
		s.TakingSpaceUntil = &t
	}
	s.UserID = userID
	return s, nil
}

// SetTakingSpace opens or closes the writer's taking-space window. A nil
// until with active=true applies the default window.
func SetTakingSpace(userID string, active bool, until *time.Time) (models.WriterSettings, error) {
	var window *time.Time
	if active {
		if until == nil {
			t := time.Now().Add(DefaultTakingSpaceWindow)
			window = &t
		} else {
			window = until
		}
	}

	_, err := database.PostgresDB.Exec(`
		INSERT INTO writer_settings (user_id, taking_space_until, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			taking_space_until = $2,
			updated_at = NOW()
	`, userID, window)
	if err != nil {
		return models.WriterSettings{}, err
	}
	return GetWriterSettings(userID)
}

// SetAllowGentleNotes toggles whether the reader may send gentle notes.
func SetAllowGentleNotes(userID string, allow bool) (models.WriterSettings, error) {
	_, err := database.PostgresDB.Exec(`
		INSERT INTO writer_settings (user_id, allow_gentle_notes, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			allow_gentle_notes = $2,
			updated_at = NOW()
	`, userID, allow)
	if err != nil {
		return models.WriterSettings{}, err
	}
	return GetWriterSettings(userID)
}
