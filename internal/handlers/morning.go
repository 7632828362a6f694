package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/database"
	"github.com/lunaria-app/sanctuary-backend/internal/models"
	"github.com/lunaria-app/sanctuary-backend/internal/services"
)

// morningMessagePayload is what GetMorningMessage caches per date.
type morningMessagePayload struct {
	Message string `json:"message"`
	Curated bool   `json:"curated"`
	Date    string `json:"date"`
}

// GetMorningMessage returns the curated message for today, falling back to
// the local greeting pool when no row exists. Curated messages are cached
// per date; fallbacks are picked fresh so they can rotate.
func GetMorningMessage(w http.ResponseWriter, r *http.Request) {
	userID := requireAuth(w, r)
	if userID == "" {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = services.EntryDate(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	cacheKey := services.CacheKey("morning", date)
	var cached morningMessagePayload
	if found, err := services.Cache.Get(cacheKey, &cached); err == nil && found {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"morning": cached,
		})
		return
	}

	var message string
	err := database.PostgresDB.QueryRow(`
		SELECT message FROM morning_messages WHERE date = $1
	`, date).Scan(&message)
	if err != nil {
		if err != sql.ErrNoRows {
			writeError(w, http.StatusInternalServerError, "Database error")
			return
		}
		// No curated message for this date
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"morning": morningMessagePayload{
				Message: services.GreetingPicker.Next(),
				Curated: false,
				Date:    date,
			},
		})
		return
	}

	payload := morningMessagePayload{Message: message, Curated: true, Date: date}
	services.Cache.Set(cacheKey, payload)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"morning": payload,
	})
}

// MorningMessageRequest upserts the curated message for a date.
type MorningMessageRequest struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Message string `json:"message"`
}

// UpsertMorningMessage sets the curated morning message for a date (admin).
func UpsertMorningMessage(w http.ResponseWriter, r *http.Request) {
	adminID := requireRole(w, r, models.RoleAdmin)
	if adminID == "" {
		return
	}

	var req MorningMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	var id string
	err := database.PostgresDB.QueryRow(`
		INSERT INTO morning_messages (date, message, created_by, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (date) DO UPDATE SET
			message = $2,
			created_by = $3
		RETURNING id
	`, req.Date, req.Message, adminID).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save morning message")
		return
	}

	services.Cache.Delete(services.CacheKey("morning", req.Date))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Morning message saved",
		"id":      id,
	})
}

// AffirmationRequest adds one affirmation to the pool.
type AffirmationRequest struct {
	Message  string `json:"message"`
	Category string `json:"category,omitempty"`
}

// CreateAffirmation adds an affirmation to the curated pool (admin).
func CreateAffirmation(w http.ResponseWriter, r *http.Request) {
	adminID := requireRole(w, r, models.RoleAdmin)
	if adminID == "" {
		return
	}

	var req AffirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	var a models.Affirmation
	err := database.PostgresDB.QueryRow(`
		INSERT INTO affirmations (message, category, is_active, created_at)
		VALUES ($1, NULLIF($2, ''), TRUE, NOW())
		RETURNING id, created_at
	`, req.Message, req.Category).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create affirmation")
		return
	}
	a.Message = req.Message
	a.Category = req.Category
	a.IsActive = true

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"affirmation": a,
	})
}

// ListAffirmations returns the active affirmation pool (admin).
func ListAffirmations(w http.ResponseWriter, r *http.Request) {
	adminID := requireRole(w, r, models.RoleAdmin)
	if adminID == "" {
		return
	}

	rows, err := database.PostgresDB.Query(`
		SELECT id, message, COALESCE(category, ''), is_active, created_at
		FROM affirmations
		WHERE is_active = TRUE
		ORDER BY created_at DESC
	`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load affirmations")
		return
	}
	defer rows.Close()

	affirmations := []models.Affirmation{}
	for rows.Next() {
		var a models.Affirmation
		if err := rows.Scan(&a.ID, &a.Message, &a.Category, &a.IsActive, &a.CreatedAt); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load affirmations")
			return
		}
		affirmations = append(affirmations, a)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"affirmations": affirmations,
	})
}
