// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"time"

	"github.com/bobprince4u/admin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding per-instance settings.
const Collection = "console_settings"

// Store provides access to the console_settings collection.
// Each console instance has its own settings document (one per instance name).
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// EnsureIndexes makes the instance name unique.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "instance", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Get returns the settings for an instance.
// If none have been saved, the zero settings for that instance are returned.
func (s *Store) Get(ctx context.Context, instance string) (models.ConsoleSettings, error) {
	var settings models.ConsoleSettings
	err := s.c.FindOne(ctx, bson.M{"instance": instance}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return models.ConsoleSettings{Instance: instance}, nil
	}
	if err != nil {
		return models.ConsoleSettings{}, err
	}
	return settings, nil
}

// SignupCompleted reports whether an admin has ever signed up through this
// instance.
func (s *Store) SignupCompleted(ctx context.Context, instance string) (bool, error) {
	settings, err := s.Get(ctx, instance)
	if err != nil {
		return false, err
	}
	return settings.SignupCompleted, nil
}

// MarkSignupCompleted permanently records that signup has happened. The flag
// is never cleared; repeated calls keep the first timestamp and email.
func (s *Store) MarkSignupCompleted(ctx context.Context, instance, email string) error {
	now := time.Now().UTC()
	filter := bson.M{"instance": instance}
	update := bson.M{
		"$set": bson.M{
			"instance":         instance,
			"signup_completed": true,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}
	if _, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return err
	}

	// Only the first completion stamps who and when.
	_, err := s.c.UpdateOne(ctx,
		bson.M{"instance": instance, "signup_completed_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"signup_completed_at": now, "signup_email": email}},
	)
	return err
}
