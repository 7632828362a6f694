package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/lunaria-app/sanctuary-backend/internal/config"
	"github.com/lunaria-app/sanctuary-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, cfg *config.Config) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)

	// Sanctuary wizard routes (writer)
	r.Get("/api/sanctuary/state", handlers.GetSanctuaryState)
	r.Post("/api/wizard/mood", handlers.SetWizardMood)
	r.Post("/api/wizard/continue", handlers.WizardContinue)
	r.Post("/api/wizard/back", handlers.WizardBack)
	r.Post("/api/wizard/fields", handlers.UpdateWizardFields)
	r.Post("/api/wizard/no-words", handlers.WizardNoWords)
	r.Post("/api/wizard/no-words/close", handlers.WizardNoWordsClose)
	r.Post("/api/wizard/save", handlers.WizardSave)
	r.Post("/api/wizard/fresh", handlers.WizardStartFresh)
	r.Get("/api/journal/entries", handlers.ListJournalEntries)

	// Reader dashboard routes
	r.Get("/api/reader/overview", handlers.GetReaderOverview)
	r.Get("/api/reader/entry", handlers.GetReaderEntry)

	// Gentle notes routes
	r.Post("/api/notes", handlers.SendNote)
	r.Get("/api/notes/inbox", handlers.GetNotesInbox)
	r.Get("/api/notes/cooldown", handlers.GetNoteCooldown)

	// Writer settings routes
	r.Get("/api/settings", handlers.GetSettings)
	r.Post("/api/settings/taking-space", handlers.SetTakingSpaceHandler)
	r.Post("/api/settings/allow-notes", handlers.SetAllowGentleNotesHandler)

	// Streak route (writer sees own, reader sees the writer's)
	r.Get("/api/streak", handlers.GetStreakHandler)

	// Morning routes
	r.Get("/api/morning/message", handlers.GetMorningMessage)
	r.Post("/api/admin/morning-message", handlers.UpsertMorningMessage)
	r.Post("/api/admin/affirmations", handlers.CreateAffirmation)
	r.Get("/api/admin/affirmations", handlers.ListAffirmations)

	// Valentine microsite routes (no auth)
	r.Get("/api/valentine/reason", handlers.GetValentineReason)
	r.Get("/api/valentine/counter", handlers.GetValentineCounter(cfg))

	// Realtime reader updates
	r.Get("/ws/reader", handlers.ReaderWebSocket)
}
