package mongo

import (
	"context"
	"errors"
	"time"

	"fitrec/workout-app/internal/domain"
	"fitrec/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileCollectionName = "profiles"

// mongoProfileRepository implements repository.ProfileRepository. One
// document per user, keyed by userId.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new profile repository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// GetOrCreate returns the profile for the given user, inserting an empty one
// on first access.
func (r *mongoProfileRepository) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}

	var profile domain.Profile
	filter := bson.M{"userId": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&profile)
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	fresh := domain.NewProfile(userID)
	fresh.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	fresh.CreatedAt = now
	fresh.UpdatedAt = now

	_, err = r.collection.InsertOne(ctx, fresh)
	if err != nil {
		// Another request may have created the profile between the find and
		// the insert; re-read in that case.
		if mongo.IsDuplicateKeyError(err) {
			if err := r.collection.FindOne(ctx, filter).Decode(&profile); err != nil {
				return nil, err
			}
			return &profile, nil
		}
		return nil, err
	}
	return fresh, nil
}

// Save persists the full profile state back to its document.
func (r *mongoProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	if profile.UserID == primitive.NilObjectID {
		return errors.New("profile user ID is required")
	}

	filter := bson.M{"userId": profile.UserID}
	update := bson.M{
		"$set": bson.M{
			"targetGroups": profile.TargetGroups,
			"equipment":    profile.Equipment,
			"targetSongs":  profile.TargetSongs,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProfileIndexes creates necessary indexes for the profiles collection.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal; GetOrCreate tolerates the race either way.
	}
}
