package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/models"
	"github.com/lunaria-app/sanctuary-backend/internal/services"
)

// GetSettings returns the writer's privacy controls.
func GetSettings(w http.ResponseWriter, r *http.Request) {
	writerID := requireRole(w, r, models.RoleWriter)
	if writerID == "" {
		return
	}

	settings, err := services.GetWriterSettings(writerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":             true,
		"settings":            settings,
		"taking_space_active": settings.TakingSpaceActive(time.Now()),
	})
}

// TakingSpaceRequest toggles the taking-space window. Until is optional;
// activating without one applies the default 7-day window.
type TakingSpaceRequest struct {
	Active bool       `json:"active"`
	Until  *time.Time `json:"until,omitempty"`
}

// SetTakingSpaceHandler opens or closes the writer's taking-space window
// and notifies connected readers.
func SetTakingSpaceHandler(w http.ResponseWriter, r *http.Request) {
	writerID := requireRole(w, r, models.RoleWriter)
	if writerID == "" {
		return
	}

	var req TakingSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Until != nil && req.Until.Before(time.Now()) {
		writeError(w, http.StatusBadRequest, "until must be in the future")
		return
	}

	settings, err := services.SetTakingSpace(writerID, req.Active, req.Until)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	if err := services.PublishSanctuaryEvent(context.Background(), services.SanctuaryEvent{
		Type:        services.EventTakingSpace,
		TakingSpace: req.Active,
	}); err != nil {
		log.Printf("failed to publish taking_space event: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": settings,
	})
}

// AllowNotesRequest toggles gentle-note delivery.
type AllowNotesRequest struct {
	Allow bool `json:"allow"`
}

// SetAllowGentleNotesHandler toggles whether the reader may send notes.
func SetAllowGentleNotesHandler(w http.ResponseWriter, r *http.Request) {
	writerID := requireRole(w, r, models.RoleWriter)
	if writerID == "" {
		return
	}

	var req AllowNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := services.SetAllowGentleNotes(writerID, req.Allow)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": settings,
	})
}
