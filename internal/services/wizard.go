package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lunaria-app/sanctuary-backend/internal/models"
)

// Wizard steps. The flow is linear (Mood -> Journal -> Help -> Consent ->
// Complete) with one side exit: NoWords, reachable only from Mood.
const (
	StepMood     = "mood"
	StepJournal  = "journal"
	StepHelp     = "help"
	StepConsent  = "consent"
	StepComplete = "complete"
	StepNoWords  = "no_words"
)

// Autosave statuses surfaced next to the editor.
const (
	SaveIdle   = "idle"
	SaveSaving = "saving"
	SaveSaved  = "saved"
)

// AutosaveDebounce is how long after the last edit the draft autosave fires.
const AutosaveDebounce = 2 * time.Second

// EntryFields is the wizard's accumulated entry. Every field is optional;
// nothing here ever blocks a forward transition.
type EntryFields struct {
	Mood              string `json:"mood,omitempty"`
	MoodIntensity     *int   `json:"mood_intensity,omitempty"`
	ThoughtsOnMind    string `json:"thoughts_on_mind,omitempty"`
	SweetMoments      string `json:"sweet_moments,omitempty"`
	ThingsThatHurt    string `json:"things_that_hurt,omitempty"`
	NightReflection   string `json:"night_reflection,omitempty"`
	LetterToSelf      string `json:"letter_to_self,omitempty"`
	HelpRequest       string `json:"help_request,omitempty"`
	AllowReaderAccess bool   `json:"allow_reader_access"`
	Bookmark          string `json:"bookmark,omitempty"`
}

// FieldPatch is a partial update; nil pointers leave fields untouched, so
// backward/forward navigation never loses already-entered values.
type FieldPatch struct {
	Mood              *string `json:"mood"`
	MoodIntensity     *int    `json:"mood_intensity"`
	ThoughtsOnMind    *string `json:"thoughts_on_mind"`
	SweetMoments      *string `json:"sweet_moments"`
	ThingsThatHurt    *string `json:"things_that_hurt"`
	NightReflection   *string `json:"night_reflection"`
	LetterToSelf      *string `json:"letter_to_self"`
	HelpRequest       *string `json:"help_request"`
	AllowReaderAccess *bool   `json:"allow_reader_access"`
	Bookmark          *string `json:"bookmark"`
}

// PersistFunc writes the authoritative entry. Supplied by the handler layer
// so the state machine itself never touches storage directly.
type PersistFunc func(fields EntryFields, noWords bool) error

// WizardSession is one writer's in-progress sitting for one calendar date.
// State is held at the wizard level, not per step.
type WizardSession struct {
	mu sync.Mutex

	UserID    string
	EntryDate string

	step       string
	fields     EntryFields
	saveStatus string

	debounce      *time.Timer
	debounceDelay time.Duration
	saveDraft     func(userID, entryDate string, f EntryFields) error
}

// WizardSnapshot is the read model handed to the HTTP layer.
type WizardSnapshot struct {
	Step             string      `json:"step"`
	EntryDate        string      `json:"entry_date"`
	Fields           EntryFields `json:"fields"`
	SaveStatus       string      `json:"save_status"`
	IntensityVisible bool        `json:"intensity_visible"`
}

// WizardManager keeps per-writer sessions. A new calendar date starts a new
// sitting; yesterday's in-memory state is simply discarded (the persisted
// entry stands on its own).
type WizardManager struct {
	mu       sync.Mutex
	sessions map[string]*WizardSession

	debounceDelay time.Duration
	saveDraft     func(userID, entryDate string, f EntryFields) error
	now           func() time.Time
}

// NewWizardManager wires a manager with the given draft saver. A nil saver
// disables autosave persistence (used by tests that only exercise the state
// machine).
func NewWizardManager(saveDraft func(userID, entryDate string, f EntryFields) error, debounce time.Duration) *WizardManager {
	if debounce <= 0 {
		debounce = AutosaveDebounce
	}
	return &WizardManager{
		sessions:      make(map[string]*WizardSession),
		debounceDelay: debounce,
		saveDraft:     saveDraft,
		now:           time.Now,
	}
}

// Wizard is the process-wide manager, autosaving drafts to MongoDB.
var Wizard = NewWizardManager(SaveWizardDraft, AutosaveDebounce)

// Session returns the writer's session for today's date, creating or
// replacing as needed.
func (m *WizardManager) Session(userID string) *WizardSession {
	today := EntryDate(m.now())

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if ok && s.EntryDate == today {
		return s
	}
	if ok {
		s.cancelPending()
	}

	s = &WizardSession{
		UserID:        userID,
		EntryDate:     today,
		step:          StepMood,
		saveStatus:    SaveIdle,
		debounceDelay: m.debounceDelay,
		saveDraft:     m.saveDraft,
	}
	m.sessions[userID] = s
	return s
}

// Drop removes a writer's session (logout/teardown).
func (m *WizardManager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		s.cancelPending()
		delete(m.sessions, userID)
	}
}

// Snapshot returns the session's current read model.
func (s *WizardSession) Snapshot() WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WizardSnapshot{
		Step:             s.step,
		EntryDate:        s.EntryDate,
		Fields:           s.fields,
		SaveStatus:       s.saveStatus,
		IntensityVisible: models.MoodWantsIntensity(s.fields.Mood),
	}
}

// Seed pre-fills fields from a recovered draft; only applied while the
// session is still untouched on the Mood step.
func (s *WizardSession) Seed(f EntryFields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepMood && s.fields == (EntryFields{}) {
		s.fields = f
	}
}

// SetMood records the mood selection. Intensity is cleared when the new
// mood does not solicit it.
func (s *WizardSession) SetMood(mood string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields.Mood = mood
	if !models.MoodWantsIntensity(mood) {
		s.fields.MoodIntensity = nil
	}
}

// Continue advances one step. No validation blocks progress; every field at
// every step is optional. The Consent -> Complete transition goes through
// Save, not Continue.
func (s *WizardSession) Continue() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.step {
	case StepMood:
		s.step = StepJournal
	case StepJournal:
		s.step = StepHelp
	case StepHelp:
		s.step = StepConsent
	}
	return s.step
}

// Back steps backward without discarding any entered values.
func (s *WizardSession) Back() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.step {
	case StepJournal:
		s.step = StepMood
	case StepHelp:
		s.step = StepJournal
	case StepConsent:
		s.step = StepHelp
	}
	return s.step
}

// NoWords takes the side exit from Mood: a minimal rest-day entry is
// persisted immediately and all later steps are bypassed.
func (s *WizardSession) NoWords(persist PersistFunc) error {
	s.mu.Lock()
	if s.step != StepMood {
		step := s.step
		s.mu.Unlock()
		return fmt.Errorf("no-words is only reachable from the mood step (current: %s)", step)
	}
	s.mu.Unlock()

	if err := persist(EntryFields{}, true); err != nil {
		return err
	}

	s.mu.Lock()
	s.cancelPending()
	s.step = StepNoWords
	s.saveStatus = SaveSaved
	s.mu.Unlock()
	return nil
}

// CloseNoWords is the "come back later" action. The already-saved rest
// entry stands; nothing is re-persisted.
func (s *WizardSession) CloseNoWords() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepNoWords {
		s.step = StepMood
	}
	return s.step
}

// Update merges a field patch and restarts the autosave debounce. Each edit
// supersedes a pending timer; only the timer that survives uncancelled
// fires.
func (s *WizardSession) Update(p FieldPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Mood != nil {
		s.fields.Mood = *p.Mood
		if !models.MoodWantsIntensity(*p.Mood) {
			s.fields.MoodIntensity = nil
		}
	}
	if p.MoodIntensity != nil {
		// Intensity only applies to the heavier moods
		if models.MoodWantsIntensity(s.fields.Mood) {
			v := clampIntensity(*p.MoodIntensity)
			s.fields.MoodIntensity = &v
		}
	}
	if p.ThoughtsOnMind != nil {
		s.fields.ThoughtsOnMind = *p.ThoughtsOnMind
	}
	if p.SweetMoments != nil {
		s.fields.SweetMoments = *p.SweetMoments
	}
	if p.ThingsThatHurt != nil {
		s.fields.ThingsThatHurt = *p.ThingsThatHurt
	}
	if p.NightReflection != nil {
		s.fields.NightReflection = *p.NightReflection
	}
	if p.LetterToSelf != nil {
		s.fields.LetterToSelf = *p.LetterToSelf
	}
	if p.HelpRequest != nil {
		s.fields.HelpRequest = *p.HelpRequest
	}
	if p.AllowReaderAccess != nil {
		s.fields.AllowReaderAccess = *p.AllowReaderAccess
	}
	if p.Bookmark != nil {
		s.fields.Bookmark = *p.Bookmark
	}

	s.saveStatus = SaveIdle
	s.restartDebounceLocked()
}

// restartDebounceLocked arms the autosave timer; caller holds s.mu.
func (s *WizardSession) restartDebounceLocked() {
	if s.saveDraft == nil {
		return
	}
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(s.debounceDelay, s.fireAutosave)
}

// fireAutosave runs the best-effort draft save. Failures are logged, never
// retried, and never block the wizard.
func (s *WizardSession) fireAutosave() {
	s.mu.Lock()
	if s.saveStatus != SaveIdle {
		s.mu.Unlock()
		return
	}
	s.saveStatus = SaveSaving
	userID, entryDate, fields := s.UserID, s.EntryDate, s.fields
	save := s.saveDraft
	s.mu.Unlock()

	err := save(userID, entryDate, fields)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveStatus != SaveSaving {
		// A newer edit superseded this save
		return
	}
	if err != nil {
		log.Printf("autosave failed for %s (%s): %v", userID, entryDate, err)
		s.saveStatus = SaveIdle
		return
	}
	s.saveStatus = SaveSaved
}

// Save fires the single authoritative persistence call with the full
// accumulated entry and advances Consent -> Complete.
func (s *WizardSession) Save(persist PersistFunc) error {
	s.mu.Lock()
	if s.step != StepConsent {
		step := s.step
		s.mu.Unlock()
		return fmt.Errorf("save entry fires from the consent step (current: %s)", step)
	}
	fields := s.fields
	s.mu.Unlock()

	if err := persist(fields, false); err != nil {
		return err
	}

	s.mu.Lock()
	s.cancelPending()
	s.step = StepComplete
	s.saveStatus = SaveSaved
	s.mu.Unlock()
	return nil
}

// StartFresh resets transient wizard state for a new sitting. Nothing is
// persisted until the writer again reaches Consent.
func (s *WizardSession) StartFresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPending()
	s.step = StepMood
	s.fields = EntryFields{}
	s.saveStatus = SaveIdle
}

// cancelPending stops any armed autosave timer; caller holds s.mu.
func (s *WizardSession) cancelPending() {
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
}

func clampIntensity(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
