package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"fitrec/workout-app/internal/domain"
	"fitrec/workout-app/internal/repository"
	"fitrec/workout-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLogValidationFailed = errors.New("log validation failed")
	ErrLogNotFound         = errors.New("no logs found")
)

// --- Service Interface ---

// LogService manages the per-user workout log.
type LogService interface {
	CreateLog(ctx context.Context, userID primitive.ObjectID, name, muscleGroup, date string) (*domain.WorkoutLog, error)
	GetAllLogs(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
	GetLogsByDate(ctx context.Context, userID primitive.ObjectID, date string) ([]domain.WorkoutLog, error)
	GetLogsByMuscleGroup(ctx context.Context, userID primitive.ObjectID, muscleGroup string) ([]domain.WorkoutLog, error)
	UpdateLog(ctx context.Context, userID primitive.ObjectID, date, name, muscleGroup string) error
	DeleteLogsByDate(ctx context.Context, userID primitive.ObjectID, date string) error
	ClearLogs(ctx context.Context, userID primitive.ObjectID) error
	CountLogs(ctx context.Context, userID primitive.ObjectID) (int64, error)
	ExportLogs(ctx context.Context, userID primitive.ObjectID) (downloadURL string, err error)
}

// --- Service Implementation ---

type logService struct {
	logRepo     repository.LogRepository
	fileStorage storage.FileStorage
}

// NewLogService creates a new instance of logService. fileStorage may be nil
// when export is not configured.
func NewLogService(logRepo repository.LogRepository, fileStorage storage.FileStorage) LogService {
	return &logService{
		logRepo:     logRepo,
		fileStorage: fileStorage,
	}
}

func validateLogDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrLogValidationFailed)
	}
	return nil
}

// CreateLog records one completed exercise.
func (s *logService) CreateLog(ctx context.Context, userID primitive.ObjectID, name, muscleGroup, date string) (*domain.WorkoutLog, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name must be non-empty", ErrLogValidationFailed)
	}
	if err := validateLogDate(date); err != nil {
		return nil, err
	}

	entry := &domain.WorkoutLog{
		UserID:      userID,
		Name:        name,
		MuscleGroup: muscleGroup,
		Date:        date,
	}

	logID, err := s.logRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = logID
	return entry, nil
}

// GetAllLogs returns every log row for the user.
func (s *logService) GetAllLogs(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return s.logRepo.GetByUserID(ctx, userID)
}

// GetLogsByDate returns the user's log rows for one calendar date.
func (s *logService) GetLogsByDate(ctx context.Context, userID primitive.ObjectID, date string) ([]domain.WorkoutLog, error) {
	if err := validateLogDate(date); err != nil {
		return nil, err
	}
	return s.logRepo.GetByDate(ctx, userID, date)
}

// GetLogsByMuscleGroup returns the user's log rows for one muscle group.
func (s *logService) GetLogsByMuscleGroup(ctx context.Context, userID primitive.ObjectID, muscleGroup string) ([]domain.WorkoutLog, error) {
	if muscleGroup == "" {
		return nil, fmt.Errorf("%w: muscle group must be non-empty", ErrLogValidationFailed)
	}
	return s.logRepo.GetByMuscleGroup(ctx, userID, muscleGroup)
}

// UpdateLog rewrites the exercise recorded for a date.
func (s *logService) UpdateLog(ctx context.Context, userID primitive.ObjectID, date, name, muscleGroup string) error {
	if name == "" {
		return fmt.Errorf("%w: exercise name must be non-empty", ErrLogValidationFailed)
	}
	if err := validateLogDate(date); err != nil {
		return err
	}

	err := s.logRepo.UpdateByDate(ctx, userID, date, name, muscleGroup)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return err
	}
	return nil
}

// DeleteLogsByDate removes the user's log rows for one date.
func (s *logService) DeleteLogsByDate(ctx context.Context, userID primitive.ObjectID, date string) error {
	if err := validateLogDate(date); err != nil {
		return err
	}

	err := s.logRepo.DeleteByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return err
	}
	return nil
}

// ClearLogs removes every log row for the user.
func (s *logService) ClearLogs(ctx context.Context, userID primitive.ObjectID) error {
	return s.logRepo.DeleteByUserID(ctx, userID)
}

// CountLogs returns the user's total workout count.
func (s *logService) CountLogs(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.logRepo.CountByUserID(ctx, userID)
}

// ExportLogs serializes the user's full workout log to JSON, stores it in
// object storage, and returns a presigned download URL.
func (s *logService) ExportLogs(ctx context.Context, userID primitive.ObjectID) (string, error) {
	if s.fileStorage == nil {
		return "", errors.New("log export is not configured")
	}

	logs, err := s.logRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(logs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal logs for export: %w", err)
	}

	objectKey := path.Join("exports", userID.Hex(), fmt.Sprintf("%s.json", uuid.NewString()))
	if err := s.fileStorage.UploadObject(ctx, objectKey, "application/json", payload); err != nil {
		return "", fmt.Errorf("upload log export: %w", err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign log export: %w", err)
	}
	return url, nil
}
