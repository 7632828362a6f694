package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL database
func ConnectPostgres(postgresURI string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	// Set connection pool settings
	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize tables
	if err = InitPostgresTables(); err != nil {
		return err
	}

	return nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables() error {
	queries := []string{
		// Users table
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,

		// User roles table (writer / reader / admin; one role per user)
		`CREATE TABLE IF NOT EXISTS user_roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role VARCHAR(20) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE(user_id)
		)`,

		// Journal entries: one per writer per calendar date
		`CREATE TABLE IF NOT EXISTS journal_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			entry_date DATE NOT NULL,
			mood VARCHAR(20),
			mood_intensity INTEGER,
			thoughts_on_mind TEXT,
			sweet_moments TEXT,
			things_that_hurt TEXT,
			night_reflection TEXT,
			letter_to_self TEXT,
			no_words_today BOOLEAN NOT NULL DEFAULT FALSE,
			help_request VARCHAR(30),
			allow_reader_access BOOLEAN NOT NULL DEFAULT FALSE,
			bookmark VARCHAR(20),
			taking_space BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE(user_id, entry_date)
		)`,

		// Gentle notes: immutable reader -> writer messages
		`CREATE TABLE IF NOT EXISTS gentle_notes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			from_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			to_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			message VARCHAR(200) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Activity streaks: per-writer aggregate
		`CREATE TABLE IF NOT EXISTS activity_streaks (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			total_days INTEGER NOT NULL DEFAULT 0,
			last_activity_date DATE,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE(user_id)
		)`,

		// Writer settings: taking-space window + gentle-note opt-in
		`CREATE TABLE IF NOT EXISTS writer_settings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			allow_gentle_notes BOOLEAN NOT NULL DEFAULT TRUE,
			taking_space_until TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE(user_id)
		)`,

		// Morning messages: one optional message per date, admin curated
		`CREATE TABLE IF NOT EXISTS morning_messages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			date DATE NOT NULL UNIQUE,
			message TEXT NOT NULL,
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Affirmations: admin curated pool
		`CREATE TABLE IF NOT EXISTS affirmations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			message TEXT NOT NULL,
			category VARCHAR(50),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Create indexes for better performance
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_user_roles_user_id ON user_roles(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_user_roles_role ON user_roles(role)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_entries_user_id ON journal_entries(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_entries_entry_date ON journal_entries(entry_date)`,
		`CREATE INDEX IF NOT EXISTS idx_gentle_notes_from_user_id ON gentle_notes(from_user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_gentle_notes_to_user_id ON gentle_notes(to_user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_gentle_notes_created_at ON gentle_notes(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_streaks_user_id ON activity_streaks(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_writer_settings_user_id ON writer_settings(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_morning_messages_date ON morning_messages(date)`,
		`CREATE INDEX IF NOT EXISTS idx_affirmations_is_active ON affirmations(is_active)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
