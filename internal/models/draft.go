package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WizardDraft is the autosaved working copy of a sitting, upserted by
// (user_id, entry_date) into MongoDB. It is a convenience only: a lost or
// stale draft never blocks anything, and the authoritative entry is always
// the PostgreSQL row written on explicit save.
type WizardDraft struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"user_id"`
	EntryDate       string             `bson:"entry_date" json:"entry_date"`
	Mood            string             `bson:"mood,omitempty" json:"mood,omitempty"`
	MoodIntensity   *int               `bson:"mood_intensity,omitempty" json:"mood_intensity,omitempty"`
	ThoughtsOnMind  string             `bson:"thoughts_on_mind,omitempty" json:"thoughts_on_mind,omitempty"`
	SweetMoments    string             `bson:"sweet_moments,omitempty" json:"sweet_moments,omitempty"`
	ThingsThatHurt  string             `bson:"things_that_hurt,omitempty" json:"things_that_hurt,omitempty"`
	NightReflection string             `bson:"night_reflection,omitempty" json:"night_reflection,omitempty"`
	LetterToSelf    string             `bson:"letter_to_self,omitempty" json:"letter_to_self,omitempty"`
	HelpRequest     string             `bson:"help_request,omitempty" json:"help_request,omitempty"`
	Bookmark        string             `bson:"bookmark,omitempty" json:"bookmark,omitempty"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
