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

const logCollectionName = "logs"

// mongoLogRepository implements repository.LogRepository.
type mongoLogRepository struct {
	collection *mongo.Collection
}

// NewMongoLogRepository creates a new workout log repository.
func NewMongoLogRepository(db *mongo.Database) repository.LogRepository {
	return &mongoLogRepository{
		collection: db.Collection(logCollectionName),
	}
}

// Create inserts a new workout log row.
func (r *mongoLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID || log.Name == "" || log.Date == "" {
		return primitive.NilObjectID, errors.New("log requires userId, name, and date")
	}

	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted log ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves every log row for a user, oldest first.
func (r *mongoLogRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// GetByDate retrieves a user's log rows for one calendar date.
func (r *mongoLogRepository) GetByDate(ctx context.Context, userID primitive.ObjectID, date string) ([]domain.WorkoutLog, error) {
	return r.find(ctx, bson.M{"userId": userID, "date": date})
}

// GetByMuscleGroup retrieves a user's log rows for one muscle group.
func (r *mongoLogRepository) GetByMuscleGroup(ctx context.Context, userID primitive.ObjectID, muscleGroup string) ([]domain.WorkoutLog, error) {
	return r.find(ctx, bson.M{"userId": userID, "muscleGroup": muscleGroup})
}

func (r *mongoLogRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutLog, error) {
	var logs []domain.WorkoutLog
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []domain.WorkoutLog{}
	}
	return logs, nil
}

// UpdateByDate rewrites the exercise name and muscle group on a user's log
// rows for the given date.
func (r *mongoLogRepository) UpdateByDate(ctx context.Context, userID primitive.ObjectID, date, name, muscleGroup string) error {
	filter := bson.M{"userId": userID, "date": date}
	update := bson.M{
		"$set": bson.M{
			"name":        name,
			"muscleGroup": muscleGroup,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByDate removes a user's log rows for the given date.
func (r *mongoLogRepository) DeleteByDate(ctx context.Context, userID primitive.ObjectID, date string) error {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID, "date": date})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes every log row for a user.
func (r *mongoLogRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// CountByUserID returns the number of log rows for a user. Feeds the
// workout-count-driven song recommendation.
func (r *mongoLogRepository) CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID})
}

// EnsureLogIndexes creates necessary indexes for the logs collection.
func EnsureLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "muscleGroup", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal.
	}
}
