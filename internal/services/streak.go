package services

import (
	"database/sql"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/database"
	"github.com/lunaria-app/sanctuary-backend/internal/models"
)

// NextStreak applies one saved entry date (YYYY-MM-DD) to a streak
// aggregate. Saving twice on the same date is a no-op; the day after the
// last activity extends the run; any gap resets it to 1.
func NextStreak(s models.ActivityStreak, entryDate string) models.ActivityStreak {
	if s.LastActivityDate == entryDate {
		return s
	}

	day, err := time.Parse("2006-01-02", entryDate)
	if err != nil {
		return s
	}

	consecutive := false
	if s.LastActivityDate != "" {
		if last, err := time.Parse("2006-01-02", s.LastActivityDate); err == nil {
			consecutive = last.AddDate(0, 0, 1).Equal(day)
		}
	}

	if consecutive {
		s.CurrentStreak++
	} else {
		s.CurrentStreak = 1
	}
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.TotalDays++
	s.LastActivityDate = entryDate
	return s
}

// GetStreak loads a writer's streak aggregate, returning zeros when no row
// exists yet.
func GetStreak(userID string) (models.ActivityStreak, error) {
	var s models.ActivityStreak
	var lastDate sql.NullTime
	err := database.PostgresDB.QueryRow(`
		SELECT current_streak, longest_streak, total_days, last_activity_date
		FROM activity_streaks WHERE user_id = $1
	`, userID).Scan(&s.CurrentStreak, &s.LongestStreak, &s.TotalDays, &lastDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.ActivityStreak{UserID: userID}, nil
		}
		return s, err
	}
	if lastDate.Valid {
		s.LastActivityDate = lastDate.Time.Format("2006-01-02")
	}
	s.UserID = userID
	return s, nil
}

// UpdateStreakOnSave advances the streak aggregate inside the authoritative
// save transaction.
func UpdateStreakOnSave(tx *sql.Tx, userID string, entryDate string) error {
	var s models.ActivityStreak
	var lastDate sql.NullTime
	err := tx.QueryRow(`
		SELECT current_streak, longest_streak, total_days, last_activity_date
		FROM activity_streaks WHERE user_id = $1
	`, userID).Scan(&s.CurrentStreak, &s.LongestStreak, &s.TotalDays, &lastDate)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if lastDate.Valid {
		s.LastActivityDate = lastDate.Time.Format("2006-01-02")
	}

	next := NextStreak(s, entryDate)

	_, err = tx.Exec(`
		INSERT INTO activity_streaks (user_id, current_streak, longest_streak, total_days, last_activity_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = $2,
			longest_streak = $3,
			total_days = $4,
			last_activity_date = $5,
			updated_at = NOW()
	`, userID, next.CurrentStreak, next.LongestStreak, next.TotalDays, entryDate)
	return err
}
