package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/database"
	"github.com/lunaria-app/sanctuary-backend/internal/models"
	"github.com/lunaria-app/sanctuary-backend/internal/services"
)

// SendNoteRequest carries the gentle note text.
type SendNoteRequest struct {
	Message string `json:"message"`
}

const maxNoteLength = 200

// lastNoteSentAt returns when the sender last sent a note, nil when never.
func lastNoteSentAt(fromUserID string) (*time.Time, error) {
	var sentAt time.Time
	err := database.PostgresDB.QueryRow(`
		SELECT created_at FROM gentle_notes
		WHERE from_user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, fromUserID).Scan(&sentAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &sentAt, nil
}

// SendNote creates a gentle note from the reader to the writer. One note per
// rolling 7 days; a missing writer aborts just this action.
func SendNote(w http.ResponseWriter, r *http.Request) {
	readerID := requireRole(w, r, models.RoleReader)
	if readerID == "" {
		return
	}

	var req SendNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "A note needs some words")
		return
	}
	if len(req.Message) > maxNoteLength {
		writeError(w, http.StatusBadRequest, "Note is too long")
		return
	}

	writerID, err := services.FindWriterID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to locate the writer")
		return
	}
	if writerID == "" {
		writeError(w, http.StatusNotFound, "There's no one to send this to yet")
		return
	}

	settings, err := services.GetWriterSettings(writerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	if !settings.AllowGentleNotes {
		writeError(w, http.StatusForbidden, "She's not receiving notes right now")
		return
	}

	lastSent, err := lastNoteSentAt(readerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	allowed, daysRemaining := services.CanSendNote(lastSent, time.Now())
	if !allowed {
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"success":        false,
			"message":        "One gentle note per week keeps them special",
			"days_remaining": daysRemaining,
		})
		return
	}

	var note models.GentleNote
	err = database.PostgresDB.QueryRow(`
		INSERT INTO gentle_notes (from_user_id, to_user_id, message, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`, readerID, writerID, req.Message).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to send note")
		return
	}
	note.FromUserID = readerID
	note.ToUserID = writerID
	note.Message = req.Message

	if err := services.PublishSanctuaryEvent(context.Background(), services.SanctuaryEvent{
		Type: services.EventNoteSent,
	}); err != nil {
		log.Printf("failed to publish note_sent event: %v", err)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Note sent",
		"note":    note,
	})
}

// GetNotesInbox returns the writer's received notes, newest first.
func GetNotesInbox(w http.ResponseWriter, r *http.Request) {
	writerID := requireRole(w, r, models.RoleWriter)
	if writerID == "" {
		return
	}

	rows, err := database.PostgresDB.Query(`
		SELECT id, from_user_id, to_user_id, message, created_at
		FROM gentle_notes
		WHERE to_user_id = $1
		ORDER BY created_at DESC
		LIMIT 50
	`, writerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load notes")
		return
	}
	defer rows.Close()

	notes := []models.GentleNote{}
	for rows.Next() {
		var n models.GentleNote
		if err := rows.Scan(&n.ID, &n.FromUserID, &n.ToUserID, &n.Message, &n.CreatedAt); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load notes")
			return
		}
		notes = append(notes, n)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"notes":   notes,
	})
}

// GetNoteCooldown reports whether the reader may send a note now.
func GetNoteCooldown(w http.ResponseWriter, r *http.Request) {
	readerID := requireRole(w, r, models.RoleReader)
	if readerID == "" {
		return
	}

	lastSent, err := lastNoteSentAt(readerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	allowed, daysRemaining := services.CanSendNote(lastSent, time.Now())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"can_send":       allowed,
		"days_remaining": daysRemaining,
	})
}
