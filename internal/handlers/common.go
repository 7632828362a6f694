package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lunaria-app/sanctuary-backend/internal/services"
)

// ErrorResponse is the standard error body
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// extractBearerToken pulls the session token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(auth)
}

// requireAuth validates the session and returns the user ID. Writes a 401
// and returns "" when the session is missing or invalid.
func requireAuth(w http.ResponseWriter, r *http.Request) string {
	token := extractBearerToken(r)
	userID, valid, err := services.ValidateSession(token)
	if err != nil || !valid {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return ""
	}
	return userID.String()
}

// requireRole validates the session and checks the user holds the given
// role. Writes 401/403 and returns "" on failure.
func requireRole(w http.ResponseWriter, r *http.Request, role string) string {
	userID := requireAuth(w, r)
	if userID == "" {
		return ""
	}
	userRole, err := services.GetUserRole(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve role")
		return ""
	}
	if userRole != role {
		writeError(w, http.StatusForbidden, "Insufficient permissions")
		return ""
	}
	return userID
}
