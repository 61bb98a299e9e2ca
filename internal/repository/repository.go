package repository

import (
	"context"

	"fitrec/workout-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	DeleteAll(ctx context.Context) error
}

// ProfileRepository defines the interface for per-user recommendation
// profiles. GetOrCreate returns the stored profile for the user, creating an
// empty one on first access.
type ProfileRepository interface {
	GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	Save(ctx context.Context, profile *domain.Profile) error
}

// LogRepository defines the interface for interacting with workout logs.
type LogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
	GetByDate(ctx context.Context, userID primitive.ObjectID, date string) ([]domain.WorkoutLog, error)
	GetByMuscleGroup(ctx context.Context, userID primitive.ObjectID, muscleGroup string) ([]domain.WorkoutLog, error)
	UpdateByDate(ctx context.Context, userID primitive.ObjectID, date, name, muscleGroup string) error
	DeleteByDate(ctx context.Context, userID primitive.ObjectID, date string) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
	CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
