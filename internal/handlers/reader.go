package handlers

import (
	"net/http"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/models"
	"github.com/lunaria-app/sanctuary-backend/internal/services"
)

// readerEntryWindow is how many recent entries the overview carries.
const readerEntryWindow = 30

// ReaderEntry is a journal entry as the reader is allowed to see it.
// letter_to_self is structurally absent: there is no field to leak.
type ReaderEntry struct {
	EntryDate       string `json:"entry_date"`
	Mood            string `json:"mood,omitempty"`
	MoodIntensity   *int   `json:"mood_intensity,omitempty"`
	ThoughtsOnMind  string `json:"thoughts_on_mind,omitempty"`
	SweetMoments    string `json:"sweet_moments,omitempty"`
	ThingsThatHurt  string `json:"things_that_hurt,omitempty"`
	NightReflection string `json:"night_reflection,omitempty"`
	NoWordsToday    bool   `json:"no_words_today"`
	HelpRequest     string `json:"help_request,omitempty"`
	Bookmark        string `json:"bookmark,omitempty"`
	Shared          bool   `json:"shared"`
}

// sanitizeEntryForReader maps an entry to its reader-visible projection.
// Text fields survive only when the writer consented and the day was not a
// rest day; mood, rest-day status, help request and bookmark always show.
func sanitizeEntryForReader(e models.JournalEntry) ReaderEntry {
	out := ReaderEntry{
		EntryDate:     e.EntryDate,
		Mood:          e.Mood,
		MoodIntensity: e.MoodIntensity,
		NoWordsToday:  e.NoWordsToday,
		HelpRequest:   e.HelpRequest,
		Bookmark:      e.Bookmark,
		Shared:        e.AllowReaderAccess && !e.NoWordsToday,
	}
	if out.Shared {
		out.ThoughtsOnMind = e.ThoughtsOnMind
		out.SweetMoments = e.SweetMoments
		out.ThingsThatHurt = e.ThingsThatHurt
		out.NightReflection = e.NightReflection
	}
	return out
}

// ReaderOverviewResponse is the reader dashboard payload.
type ReaderOverviewResponse struct {
	Success          bool                   `json:"success"`
	TakingSpace      bool                   `json:"taking_space"`
	Message          string                 `json:"message,omitempty"`
	TodayEntry       *ReaderEntry           `json:"today_entry,omitempty"`
	Entries          []ReaderEntry          `json:"entries,omitempty"`
	Streak           *models.ActivityStreak `json:"streak,omitempty"`
	Insight          *services.Insight      `json:"insight,omitempty"`
	AllowGentleNotes bool                   `json:"allow_gentle_notes"`
}

// GetReaderOverview assembles the reader dashboard. The taking-space gate
// comes first: while active, nothing but a space-holder message goes out.
func GetReaderOverview(w http.ResponseWriter, r *http.Request) {
	readerID := requireRole(w, r, models.RoleReader)
	if readerID == "" {
		return
	}

	writerID, err := services.FindWriterID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to locate the writer")
		return
	}
	if writerID == "" {
		writeJSON(w, http.StatusOK, ReaderOverviewResponse{
			Success: true,
			Message: "No one is writing here yet.",
		})
		return
	}

	settings, err := services.GetWriterSettings(writerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	if settings.TakingSpaceActive(time.Now()) {
		writeJSON(w, http.StatusOK, ReaderOverviewResponse{
			Success:     true,
			TakingSpace: true,
			Message:     "She's taking a little space right now. She'll be back when she's ready.",
		})
		return
	}

	entries, err := services.ListEntries(writerID, readerEntryWindow)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}

	sanitized := make([]ReaderEntry, 0, len(entries))
	for _, e := range entries {
		sanitized = append(sanitized, sanitizeEntryForReader(e))
	}

	today := services.EntryDate(time.Now())
	var todayEntry *ReaderEntry
	if len(sanitized) > 0 && sanitized[0].EntryDate == today {
		todayEntry = &sanitized[0]
	}

	streak, err := services.GetStreak(writerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load streak")
		return
	}

	insight := insightForWriter(writerID, entries)

	writeJSON(w, http.StatusOK, ReaderOverviewResponse{
		Success:          true,
		TodayEntry:       todayEntry,
		Entries:          sanitized,
		Streak:           &streak,
		Insight:          &insight,
		AllowGentleNotes: settings.AllowGentleNotes,
	})
}

// insightForWriter computes (or retrieves) the cached healing-pace insight
// over the writer's last 7 entries. The save path invalidates this key.
func insightForWriter(writerID string, entries []models.JournalEntry) services.Insight {
	key := services.CacheKey("insight", writerID)

	var cached services.Insight
	if found, err := services.Cache.Get(key, &cached); err == nil && found {
		return cached
	}

	window := entries
	if len(window) > 7 {
		window = window[:7]
	}
	insight := services.ComputeInsight(window)
	services.Cache.Set(key, insight)
	return insight
}

// GetReaderEntry returns one sanitized entry by date. 404 when the date has
// no entry, 403 when the entry exists but was not shared.
func GetReaderEntry(w http.ResponseWriter, r *http.Request) {
	readerID := requireRole(w, r, models.RoleReader)
	if readerID == "" {
		return
	}

	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	writerID, err := services.FindWriterID()
	if err != nil || writerID == "" {
		writeError(w, http.StatusNotFound, "No writer found")
		return
	}

	settings, err := services.GetWriterSettings(writerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	if settings.TakingSpaceActive(time.Now()) {
		writeError(w, http.StatusForbidden, "She's taking a little space right now.")
		return
	}

	entry, err := services.GetEntryByDate(writerID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entry")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "No entry for this date")
		return
	}

	sanitized := sanitizeEntryForReader(*entry)
	if !sanitized.Shared {
		writeError(w, http.StatusForbidden, "This entry wasn't shared")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entry":   sanitized,
	})
}

// GetStreakHandler exposes the writer's streak read model. The writer sees
// their own; the reader sees the writer's.
func GetStreakHandler(w http.ResponseWriter, r *http.Request) {
	userID := requireAuth(w, r)
	if userID == "" {
		return
	}

	role, err := services.GetUserRole(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve role")
		return
	}

	targetID := userID
	if role == models.RoleReader {
		writerID, err := services.FindWriterID()
		if err != nil || writerID == "" {
			writeError(w, http.StatusNotFound, "No writer found")
			return
		}
		targetID = writerID
	} else if role != models.RoleWriter {
		writeError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	streak, err := services.GetStreak(targetID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load streak")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"streak": map[string]interface{}{
			"current": streak.CurrentStreak,
			"longest": streak.LongestStreak,
			"total":   streak.TotalDays,
		},
	})
}
