package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/models"
	"github.com/lunaria-app/sanctuary-backend/internal/services"
)

// SanctuaryStateResponse is the writer's landing payload: what the clock
// says, where the wizard stands, and whether today already has an entry.
type SanctuaryStateResponse struct {
	Success       bool                    `json:"success"`
	TimeMode      string                  `json:"time_mode"`
	Greeting      string                  `json:"greeting"`
	NightPrompt   bool                    `json:"night_prompt"`
	Wizard        services.WizardSnapshot `json:"wizard"`
	EntryExists   bool                    `json:"entry_exists"`
	EntryNoWords  bool                    `json:"entry_no_words"`
	DraftRestored bool                    `json:"draft_restored"`
}

// GetSanctuaryState returns the writer's current sanctuary state. A saved
// draft from an interrupted sitting is seeded into an untouched wizard.
func GetSanctuaryState(w http.ResponseWriter, r *http.Request) {
	userID := requireRole(w, r, models.RoleWriter)
	if userID == "" {
		return
	}

	now := time.Now()
	session := services.Wizard.Session(userID)

	restored := false
	if draft, err := services.LoadWizardDraft(userID, session.EntryDate); err != nil {
		log.Printf("failed to load wizard draft for %s: %v", userID, err)
	} else if draft != nil {
		session.Seed(services.EntryFields{
			Mood:            draft.Mood,
			MoodIntensity:   draft.MoodIntensity,
			ThoughtsOnMind:  draft.ThoughtsOnMind,
			SweetMoments:    draft.SweetMoments,
			ThingsThatHurt:  draft.ThingsThatHurt,
			NightReflection: draft.NightReflection,
			LetterToSelf:    draft.LetterToSelf,
			HelpRequest:     draft.HelpRequest,
			Bookmark:        draft.Bookmark,
		})
		restored = true
	}

	entry, err := services.GetEntryByDate(userID, session.EntryDate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load today's entry")
		return
	}

	resp := SanctuaryStateResponse{
		Success:       true,
		TimeMode:      services.CurrentTimeMode(),
		Greeting:      services.GreetingAt(now),
		NightPrompt:   services.IsNightAt(now),
		Wizard:        session.Snapshot(),
		DraftRestored: restored,
	}
	if entry != nil {
		resp.EntryExists = true
		resp.EntryNoWords = entry.NoWordsToday
	}

	writeJSON(w, http.StatusOK, resp)
}

// WizardMoodRequest selects a mood on the Mood step.
type WizardMoodRequest struct {
	Mood string `json:"mood"`
}

var validMoods = map[string]bool{
	models.MoodHappy:        true,
	models.MoodTired:        true,
	models.MoodOverthinking: true,
	models.MoodHurt:         true,
	models.MoodHopeful:      true,
	models.MoodQuiet:        true,
	"":                      true, // mood is skippable
}

// SetWizardMood records the mood selection.
func SetWizardMood(w http.ResponseWriter, r *http.Request) {
	userID := requireRole(w, r, models.RoleWriter)
	if userID == "" {
		return
	}

	var req WizardMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validMoods[req.Mood] {
		writeError(w, http.StatusBadRequest, "Unknown mood")
		return
	}

	session := services.Wizard.Session(userID)
	session.SetMood(req.Mood)
	writeSnapshot(w, session)
}

// WizardContinue advances the wizard one step.
func WizardContinue(w http.ResponseWriter, r *http.Request) {
	userID := requireRole(w, r, models.RoleWriter)
	if userID == "" {
		return
	}
	session := services.Wizard.Session(userID)
	session.Continue()
	writeSnapshot(w, session)
}

// WizardBack steps backward, retaining every entered value.
func WizardBack(w http.ResponseWriter, r *http.Request) {
	userID := requireRole(w, r, models.RoleWriter)
	if userID == "" {
		return
	}
	session := services.Wizard.Session(userID)
	session.Back()
	writeSnapshot(w, session)
}

// UpdateWizardFields merges a partial field patch and restarts the autosave
// debounce.
func UpdateWizardFields(w http.ResponseWriter, r *http.Request) {
	userID := requireRole(w, r, models.RoleWriter)
	if userID == "" {
		return
	}

	var patch services.FieldPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if patch.Mood != nil && !validMoods[*patch.Mood] {
		writeError(w, http.StatusBadRequest, "Unknown mood")
		return
	}

	session := services.Wizard.Session(userID)
	session.Update(patch)
	writeSnapshot(w, session)
}

// WizardNoWords takes the no-words side exit: a rest-day entry is persisted
// immediately.
func WizardNoWords(w http.ResponseWriter, r *http.Request) {
	userID := requireRole(w, r, models.RoleWriter)
	if userID == "" {
		return
	}

	session := services.Wizard.Session(userID)
	err := session.NoWords(func(fields services.EntryFields, noWords bool) error {
		return services.UpsertEntry(userID, session.EntryDate, fields, noWords)
	})
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeSnapshot(w, session)
}

// WizardNoWordsClose is the "come back later" action on the rest screen.
func WizardNoWordsClose(w http.ResponseWriter, r *http.Request) {
	userID := requireRole(w, r, models.RoleWriter)
	if userID == "" {
		return
	}
	session := services.Wizard.Session(userID)
	session.CloseNoWords()
	writeSnapshot(w, session)
}

// WizardSave fires the single authoritative save from the Consent step.
func WizardSave(w http.ResponseWriter, r *http.Request) {
	userID := requireRole(w, r, models.RoleWriter)
	if userID == "" {
		return
	}

	session := services.Wizard.Session(userID)
	err := session.Save(func(fields services.EntryFields, noWords bool) error {
		return services.UpsertEntry(userID, session.EntryDate, fields, noWords)
	})
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeSnapshot(w, session)
}

// WizardStartFresh resets the in-memory sitting without touching anything
// persisted.
func WizardStartFresh(w http.ResponseWriter, r *http.Request) {
	userID := requireRole(w, r, models.RoleWriter)
	if userID == "" {
		return
	}
	session := services.Wizard.Session(userID)
	session.StartFresh()
	writeSnapshot(w, session)
}

func writeSnapshot(w http.ResponseWriter, session *services.WizardSession) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"wizard":  session.Snapshot(),
	})
}

// ListJournalEntries returns the writer's own entries, newest first.
func ListJournalEntries(w http.ResponseWriter, r *http.Request) {
	userID := requireRole(w, r, models.RoleWriter)
	if userID == "" {
		return
	}

	limit := 30
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	entries, err := services.ListEntries(userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entries": entries,
	})
}
