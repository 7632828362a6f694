package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// draftRecorder captures autosave calls for inspection.
type draftRecorder struct {
	mu    sync.Mutex
	calls []EntryFields
	err   error
}

func (d *draftRecorder) save(userID, entryDate string, f EntryFields) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, f)
	return d.err
}

func (d *draftRecorder) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func newTestManager(rec *draftRecorder, debounce time.Duration) *WizardManager {
	var save func(string, string, EntryFields) error
	if rec != nil {
		save = rec.save
	}
	return NewWizardManager(save, debounce)
}

func TestWizardLinearFlow(t *testing.T) {
	m := newTestManager(nil, time.Hour)
	s := m.Session("writer-1")

	snap := s.Snapshot()
	assert.Equal(t, StepMood, snap.Step)
	assert.Equal(t, SaveIdle, snap.SaveStatus)

	assert.Equal(t, StepJournal, s.Continue())
	assert.Equal(t, StepHelp, s.Continue())
	assert.Equal(t, StepConsent, s.Continue())
	// Consent does not advance via Continue; only Save completes the flow
	assert.Equal(t, StepConsent, s.Continue())

	assert.Equal(t, StepHelp, s.Back())
	assert.Equal(t, StepJournal, s.Back())
	assert.Equal(t, StepMood, s.Back())
	assert.Equal(t, StepMood, s.Back())
}

func TestWizardFieldRetentionAcrossNavigation(t *testing.T) {
	m := newTestManager(nil, time.Hour)
	s := m.Session("writer-1")

	s.SetMood("tired")
	s.Update(FieldPatch{MoodIntensity: intPtr(6)})
	s.Continue()
	s.Update(FieldPatch{ThoughtsOnMind: strPtr("a long day"), SweetMoments: strPtr("coffee together")})

	s.Back()
	s.Continue()

	snap := s.Snapshot()
	assert.Equal(t, "tired", snap.Fields.Mood)
	require.NotNil(t, snap.Fields.MoodIntensity)
	assert.Equal(t, 6, *snap.Fields.MoodIntensity)
	assert.Equal(t, "a long day", snap.Fields.ThoughtsOnMind)
	assert.Equal(t, "coffee together", snap.Fields.SweetMoments)
}

func TestWizardIntensityVisibility(t *testing.T) {
	m := newTestManager(nil, time.Hour)
	s := m.Session("writer-1")

	t.Run("heavy moods solicit intensity", func(t *testing.T) {
		for _, mood := range []string{"hurt", "tired", "overthinking"} {
			s.SetMood(mood)
			assert.True(t, s.Snapshot().IntensityVisible, mood)
		}
	})

	t.Run("light moods do not", func(t *testing.T) {
		for _, mood := range []string{"happy", "hopeful", "quiet", ""} {
			s.SetMood(mood)
			assert.False(t, s.Snapshot().IntensityVisible, mood)
		}
	})

	t.Run("switching to a light mood clears intensity", func(t *testing.T) {
		s.SetMood("hurt")
		s.Update(FieldPatch{MoodIntensity: intPtr(8)})
		require.NotNil(t, s.Snapshot().Fields.MoodIntensity)

		s.SetMood("happy")
		assert.Nil(t, s.Snapshot().Fields.MoodIntensity)
	})

	t.Run("intensity is clamped to 1..10", func(t *testing.T) {
		s.SetMood("overthinking")
		s.Update(FieldPatch{MoodIntensity: intPtr(15)})
		require.NotNil(t, s.Snapshot().Fields.MoodIntensity)
		assert.Equal(t, 10, *s.Snapshot().Fields.MoodIntensity)

		s.Update(FieldPatch{MoodIntensity: intPtr(0)})
		assert.Equal(t, 1, *s.Snapshot().Fields.MoodIntensity)
	})
}

func TestWizardNoWords(t *testing.T) {
	t.Run("only reachable from the mood step", func(t *testing.T) {
		m := newTestManager(nil, time.Hour)
		s := m.Session("writer-1")
		s.Continue()

		err := s.NoWords(func(EntryFields, bool) error {
			t.Fatal("persist must not run off the mood step")
			return nil
		})
		assert.Error(t, err)
	})

	t.Run("persists a rest day immediately and skips the flow", func(t *testing.T) {
		m := newTestManager(nil, time.Hour)
		s := m.Session("writer-1")
		s.SetMood("quiet")

		var persisted EntryFields
		var noWords bool
		err := s.NoWords(func(f EntryFields, nw bool) error {
			persisted = f
			noWords = nw
			return nil
		})
		require.NoError(t, err)
		assert.True(t, noWords)
		assert.Equal(t, EntryFields{}, persisted)

		snap := s.Snapshot()
		assert.Equal(t, StepNoWords, snap.Step)
		assert.Equal(t, SaveSaved, snap.SaveStatus)
	})

	t.Run("persist failure keeps the wizard on mood", func(t *testing.T) {
		m := newTestManager(nil, time.Hour)
		s := m.Session("writer-1")

		err := s.NoWords(func(EntryFields, bool) error {
			return errors.New("db down")
		})
		assert.Error(t, err)
		assert.Equal(t, StepMood, s.Snapshot().Step)
	})

	t.Run("close returns to mood without re-persisting", func(t *testing.T) {
		m := newTestManager(nil, time.Hour)
		s := m.Session("writer-1")
		require.NoError(t, s.NoWords(func(EntryFields, bool) error { return nil }))

		assert.Equal(t, StepMood, s.CloseNoWords())
	})
}

func TestWizardSave(t *testing.T) {
	t.Run("fires only from consent", func(t *testing.T) {
		m := newTestManager(nil, time.Hour)
		s := m.Session("writer-1")

		err := s.Save(func(EntryFields, bool) error { return nil })
		assert.Error(t, err)
	})

	t.Run("declining consent still saves with access withheld", func(t *testing.T) {
		m := newTestManager(nil, time.Hour)
		s := m.Session("writer-1")
		s.SetMood("hopeful")
		s.Continue()
		s.Update(FieldPatch{ThoughtsOnMind: strPtr("today was alright")})
		s.Continue()
		s.Continue()
		s.Update(FieldPatch{AllowReaderAccess: boolPtr(false)})

		var persisted EntryFields
		err := s.Save(func(f EntryFields, nw bool) error {
			persisted = f
			assert.False(t, nw)
			return nil
		})
		require.NoError(t, err)
		assert.False(t, persisted.AllowReaderAccess)
		assert.Equal(t, "today was alright", persisted.ThoughtsOnMind)
		assert.Equal(t, StepComplete, s.Snapshot().Step)
	})

	t.Run("persist failure stays on consent", func(t *testing.T) {
		m := newTestManager(nil, time.Hour)
		s := m.Session("writer-1")
		s.Continue()
		s.Continue()
		s.Continue()

		err := s.Save(func(EntryFields, bool) error { return errors.New("db down") })
		assert.Error(t, err)
		assert.Equal(t, StepConsent, s.Snapshot().Step)
	})
}

func TestWizardStartFresh(t *testing.T) {
	m := newTestManager(nil, time.Hour)
	s := m.Session("writer-1")
	s.SetMood("hurt")
	s.Update(FieldPatch{MoodIntensity: intPtr(7), ThoughtsOnMind: strPtr("heavy")})
	s.Continue()

	s.StartFresh()

	snap := s.Snapshot()
	assert.Equal(t, StepMood, snap.Step)
	assert.Equal(t, EntryFields{}, snap.Fields)
	assert.Equal(t, SaveIdle, snap.SaveStatus)
}

func TestWizardAutosaveDebounce(t *testing.T) {
	t.Run("rapid edits collapse into one save", func(t *testing.T) {
		rec := &draftRecorder{}
		m := newTestManager(rec, 30*time.Millisecond)
		s := m.Session("writer-1")

		s.Update(FieldPatch{ThoughtsOnMind: strPtr("a")})
		s.Update(FieldPatch{ThoughtsOnMind: strPtr("ab")})
		s.Update(FieldPatch{ThoughtsOnMind: strPtr("abc")})

		require.Eventually(t, func() bool {
			return rec.count() == 1
		}, time.Second, 5*time.Millisecond)

		assert.Equal(t, "abc", rec.calls[0].ThoughtsOnMind)
		assert.Equal(t, SaveSaved, s.Snapshot().SaveStatus)
	})

	t.Run("editing resets status to idle", func(t *testing.T) {
		rec := &draftRecorder{}
		m := newTestManager(rec, 30*time.Millisecond)
		s := m.Session("writer-1")

		s.Update(FieldPatch{ThoughtsOnMind: strPtr("a")})
		require.Eventually(t, func() bool {
			return s.Snapshot().SaveStatus == SaveSaved
		}, time.Second, 5*time.Millisecond)

		s.Update(FieldPatch{ThoughtsOnMind: strPtr("ab")})
		assert.Equal(t, SaveIdle, s.Snapshot().SaveStatus)
	})

	t.Run("a failed autosave returns to idle", func(t *testing.T) {
		rec := &draftRecorder{err: errors.New("mongo down")}
		m := newTestManager(rec, 10*time.Millisecond)
		s := m.Session("writer-1")

		s.Update(FieldPatch{ThoughtsOnMind: strPtr("a")})
		require.Eventually(t, func() bool {
			return rec.count() >= 1 && s.Snapshot().SaveStatus == SaveIdle
		}, time.Second, 5*time.Millisecond)
	})
}

func TestWizardSessionLifecycle(t *testing.T) {
	t.Run("same day returns the same session", func(t *testing.T) {
		m := newTestManager(nil, time.Hour)
		a := m.Session("writer-1")
		a.SetMood("happy")
		b := m.Session("writer-1")
		assert.Equal(t, "happy", b.Snapshot().Fields.Mood)
	})

	t.Run("a new day starts a fresh sitting", func(t *testing.T) {
		m := newTestManager(nil, time.Hour)
		day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		m.now = func() time.Time { return day }

		a := m.Session("writer-1")
		a.SetMood("happy")
		a.Continue()

		m.now = func() time.Time { return day.AddDate(0, 0, 1) }
		b := m.Session("writer-1")

		snap := b.Snapshot()
		assert.Equal(t, StepMood, snap.Step)
		assert.Equal(t, EntryFields{}, snap.Fields)
		assert.Equal(t, "2026-03-11", snap.EntryDate)
	})

	t.Run("seed only fills an untouched session", func(t *testing.T) {
		m := newTestManager(nil, time.Hour)
		s := m.Session("writer-1")

		s.Seed(EntryFields{ThoughtsOnMind: "recovered draft"})
		assert.Equal(t, "recovered draft", s.Snapshot().Fields.ThoughtsOnMind)

		// A second seed must not clobber live edits
		s.Update(FieldPatch{ThoughtsOnMind: strPtr("fresh words")})
		s.Seed(EntryFields{ThoughtsOnMind: "stale draft"})
		assert.Equal(t, "fresh words", s.Snapshot().Fields.ThoughtsOnMind)
	})

	t.Run("drop removes the session", func(t *testing.T) {
		m := newTestManager(nil, time.Hour)
		s := m.Session("writer-1")
		s.SetMood("quiet")

		m.Drop("writer-1")
		assert.Empty(t, m.Session("writer-1").Snapshot().Fields.Mood)
	})
}
