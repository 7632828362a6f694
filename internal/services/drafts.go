package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lunaria-app/sanctuary-backend/internal/database"
	"github.com/lunaria-app/sanctuary-backend/internal/models"
)

const draftCollection = "wizard_drafts"

// EnsureDraftIndexes creates the unique (user_id, entry_date) index backing
// draft upserts.
func EnsureDraftIndexes(ctx context.Context) error {
	if database.DB == nil {
		return nil
	}
	_, err := database.DB.Collection(draftCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "entry_date", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// SaveWizardDraft upserts the working copy of a sitting. Best-effort: the
// wizard treats a failure here as a missed autosave, nothing more.
func SaveWizardDraft(userID string, entryDate string, f EntryFields) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"mood":             f.Mood,
			"mood_intensity":   f.MoodIntensity,
			"thoughts_on_mind": f.ThoughtsOnMind,
			"sweet_moments":    f.SweetMoments,
			"things_that_hurt": f.ThingsThatHurt,
			"night_reflection": f.NightReflection,
			"letter_to_self":   f.LetterToSelf,
			"help_request":     f.HelpRequest,
			"bookmark":         f.Bookmark,
			"updated_at":       time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"entry_date": entryDate,
		},
	}

	_, err := database.DB.Collection(draftCollection).UpdateOne(
		ctx,
		bson.M{"user_id": userID, "entry_date": entryDate},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

// LoadWizardDraft returns the draft for (user, date), or nil when none exists.
func LoadWizardDraft(userID string, entryDate string) (*models.WizardDraft, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var draft models.WizardDraft
	err := database.DB.Collection(draftCollection).FindOne(
		ctx,
		bson.M{"user_id": userID, "entry_date": entryDate},
	).Decode(&draft)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &draft, nil
}

// DeleteWizardDraft clears the working copy once the authoritative entry has
// been written.
func DeleteWizardDraft(userID string, entryDate string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := database.DB.Collection(draftCollection).DeleteOne(
		ctx,
		bson.M{"user_id": userID, "entry_date": entryDate},
	)
	return err
}
