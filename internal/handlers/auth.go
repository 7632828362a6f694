package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lunaria-app/sanctuary-backend/internal/database"
	"github.com/lunaria-app/sanctuary-backend/internal/models"
	"github.com/lunaria-app/sanctuary-backend/internal/services"
	"github.com/lunaria-app/sanctuary-backend/pkg/utils"
)

// Signup Request
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // writer (default) or reader
}

// Signin Request
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Auth Response
type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	User    map[string]interface{} `json:"user,omitempty"`
	Token   string                 `json:"token,omitempty"`
	Role    string                 `json:"role,omitempty"`
}

// Signup handles account registration. The first role of each kind is
// exclusive: there is one writer and one paired reader.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	role := strings.TrimSpace(strings.ToLower(req.Role))
	if role == "" {
		role = models.RoleWriter
	}
	if role != models.RoleWriter && role != models.RoleReader {
		writeError(w, http.StatusBadRequest, "Role must be writer or reader")
		return
	}

	// Check if user already exists
	var existingEmail string
	err := database.PostgresDB.QueryRow("SELECT email FROM users WHERE email = $1", req.Email).Scan(&existingEmail)
	if err == nil {
		writeError(w, http.StatusConflict, "An account with this email already exists")
		return
	} else if err != sql.ErrNoRows {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	// The sanctuary is a two-person space: one writer, one reader
	var taken string
	err = database.PostgresDB.QueryRow("SELECT user_id FROM user_roles WHERE role = $1 LIMIT 1", role).Scan(&taken)
	if err == nil {
		writeError(w, http.StatusConflict, "The "+role+" seat is already taken")
		return
	} else if err != sql.ErrNoRows {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	userID := uuid.New()
	now := time.Now()

	tx, err := database.PostgresDB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO users (id, email, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, TRUE, $4)
	`, userID, req.Email, hashedPassword, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO user_roles (user_id, role, created_at)
		VALUES ($1, $2, $3)
	`, userID, role, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to assign role")
		return
	}

	// The writer gets their aggregates up front so first reads return zeros
	// instead of missing rows.
	if role == models.RoleWriter {
		if _, err = tx.Exec(`
			INSERT INTO activity_streaks (user_id, current_streak, longest_streak, total_days, updated_at)
			VALUES ($1, 0, 0, 0, $2)
			ON CONFLICT (user_id) DO NOTHING
		`, userID, now); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to initialize streak")
			return
		}
		if _, err = tx.Exec(`
			INSERT INTO writer_settings (user_id, allow_gentle_notes, created_at, updated_at)
			VALUES ($1, TRUE, $2, $2)
			ON CONFLICT (user_id) DO NOTHING
		`, userID, now); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to initialize settings")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := services.CreateSession(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		User: map[string]interface{}{
			"id":         userID.String(),
			"email":      req.Email,
			"created_at": now,
		},
		Token: token,
		Role:  role,
	})
}

// Signin handles login
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var userID uuid.UUID
	var passwordHash string
	var isActive bool
	var createdAt time.Time

	err := database.PostgresDB.QueryRow(`
		SELECT id, password_hash, is_active, created_at
		FROM users WHERE email = $1
	`, req.Email).Scan(&userID, &passwordHash, &isActive, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
		} else {
			writeError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !isActive {
		writeError(w, http.StatusUnauthorized, "This account has been deactivated")
		return
	}

	valid, err := utils.VerifyPassword(req.Password, passwordHash)
	if err != nil || !valid {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := services.CreateSession(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	role, err := services.GetUserRole(userID.String())
	if err != nil {
		role = models.RoleNone
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		User: map[string]interface{}{
			"id":         userID.String(),
			"email":      req.Email,
			"created_at": createdAt,
		},
		Token: token,
		Role:  role,
	})
}

// Signout invalidates the current session and drops any in-memory wizard
// state for the user.
func Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		writeError(w, http.StatusBadRequest, "No session token provided")
		return
	}

	if userID, valid, _ := services.ValidateSession(token); valid {
		services.Wizard.Drop(userID.String())
	}

	if err := services.InvalidateSession(token); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Signed out successfully",
	})
}

// GetMe returns the authenticated user's profile and role.
func GetMe(w http.ResponseWriter, r *http.Request) {
	userID := requireAuth(w, r)
	if userID == "" {
		return
	}

	var email string
	var isActive bool
	var createdAt time.Time
	err := database.PostgresDB.QueryRow(`
		SELECT email, is_active, created_at FROM users WHERE id = $1
	`, userID).Scan(&email, &isActive, &createdAt)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	role, err := services.GetUserRole(userID)
	if err != nil {
		role = models.RoleNone
	}

	// Sliding expiration: an active session stays alive
	services.RefreshSession(extractBearerToken(r))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": map[string]interface{}{
			"id":         userID,
			"email":      email,
			"is_active":  isActive,
			"created_at": createdAt,
		},
		"role": role,
	})
}
