package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/database"
	"github.com/lunaria-app/sanctuary-backend/internal/models"
)

const (
	roleKeyPrefix = "role:"
	roleCacheTTL  = 15 * time.Minute
)

// GetUserRole returns the user's role, or RoleNone when no role row exists.
// Roles change rarely, so lookups go through a short Redis cache.
func GetUserRole(userID string) (string, error) {
	ctx := context.Background()
	cacheKey := roleKeyPrefix + userID

	if cached, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
		return cached, nil
	}

	var role string
	err := database.PostgresDB.QueryRow(`
		SELECT role FROM user_roles WHERE user_id = $1
	`, userID).Scan(&role)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.RoleNone, nil
		}
		return "", err
	}

	database.RedisClient.Set(ctx, cacheKey, role, roleCacheTTL)
	return role, nil
}

// FindWriterID locates the (single) writer account. Returns "" when no
// writer exists yet; callers surface that as a not-found for just the one
// action.
func FindWriterID() (string, error) {
	var userID string
	err := database.PostgresDB.QueryRow(`
		SELECT user_id FROM user_roles WHERE role = $1 LIMIT 1
	`, models.RoleWriter).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return userID, nil
}

// FindReaderID locates the paired reader account, "" when none exists.
func FindReaderID() (string, error) {
	var userID string
	err := database.PostgresDB.QueryRow(`
		SELECT user_id FROM user_roles WHERE role = $1 LIMIT 1
	`, models.RoleReader).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return userID, nil
}
