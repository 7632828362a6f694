package services

import (
	"github.com/lunaria-app/sanctuary-backend/internal/models"
)

// Insight categories, ordered by clinical/emotional severity. The cascade in
// ComputeInsight evaluates them in exactly this order; a single strong signal
// (help requests) must never be masked by a higher count of a milder one.
// Do not reorder without product input.
const (
	InsightJustBeginning  = "just_beginning"
	InsightGentleness     = "needs_extra_gentleness"
	InsightCarryingWeight = "carrying_weight"
	InsightResting        = "resting_more"
	InsightLighter        = "feeling_lighter"
	InsightQuiet          = "showing_up_quietly"
	InsightConsistent     = "consistent"
	InsightFindingRhythm  = "finding_rhythm"
)

// Insight is the single healing-pace status shown on the reader dashboard.
type Insight struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// insightWindow is how many recent entries the cascade inspects.
const insightWindow = 7

// ComputeInsight maps a newest-first sequence of recent journal entries to
// exactly one healing-pace insight. Pure function: no side effects, every
// input (including empty) produces a defined result. Callers should pass at
// most the 7 most recent entries; anything beyond the first 7 is ignored.
func ComputeInsight(entries []models.JournalEntry) Insight {
	if len(entries) == 0 {
		return Insight{
			Category: InsightJustBeginning,
			Message:  "She's just beginning her journey.",
		}
	}

	recent := entries
	if len(recent) > insightWindow {
		recent = recent[:insightWindow]
	}

	var helpCount, hurtCount, noWordsCount, happyCount, quietCount int
	for _, e := range recent {
		if e.HelpRequest == models.HelpYesNeedHelp {
			helpCount++
		}
		if e.Mood == models.MoodHurt {
			hurtCount++
		}
		if e.NoWordsToday {
			noWordsCount++
		}
		if e.Mood == models.MoodHappy || e.Mood == models.MoodHopeful {
			happyCount++
		}
		if e.Mood == models.MoodQuiet {
			quietCount++
		}
	}

	switch {
	case helpCount >= 2:
		return Insight{
			Category: InsightGentleness,
			Message:  "She may need extra gentleness this week.",
		}
	case hurtCount >= 3:
		return Insight{
			Category: InsightCarryingWeight,
			Message:  "She's been carrying some weight lately.",
		}
	case noWordsCount >= 3:
		return Insight{
			Category: InsightResting,
			Message:  "She's been resting more. That's okay.",
		}
	case happyCount >= 3:
		return Insight{
			Category: InsightLighter,
			Message:  "She's been feeling lighter lately.",
		}
	case quietCount >= 2:
		return Insight{
			Category: InsightQuiet,
			Message:  "She's been showing up quietly.",
		}
	case len(recent) >= 5:
		return Insight{
			Category: InsightConsistent,
			Message:  "She's been consistent in her showing up.",
		}
	}

	return Insight{
		Category: InsightFindingRhythm,
		Message:  "She's finding her rhythm.",
	}
}
