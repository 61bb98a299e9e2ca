package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"fitrec/workout-app/internal/domain"
	"fitrec/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeLogRepo struct {
	logs []domain.WorkoutLog
	err  error
}

func (f *fakeLogRepo) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	id := primitive.NewObjectID()
	stored := *log
	stored.ID = id
	f.logs = append(f.logs, stored)
	return id, nil
}

func (f *fakeLogRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []domain.WorkoutLog{}
	for _, l := range f.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogRepo) GetByDate(ctx context.Context, userID primitive.ObjectID, date string) ([]domain.WorkoutLog, error) {
	out := []domain.WorkoutLog{}
	for _, l := range f.logs {
		if l.UserID == userID && l.Date == date {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogRepo) GetByMuscleGroup(ctx context.Context, userID primitive.ObjectID, muscleGroup string) ([]domain.WorkoutLog, error) {
	out := []domain.WorkoutLog{}
	for _, l := range f.logs {
		if l.UserID == userID && l.MuscleGroup == muscleGroup {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogRepo) UpdateByDate(ctx context.Context, userID primitive.ObjectID, date, name, muscleGroup string) error {
	matched := false
	for i := range f.logs {
		if f.logs[i].UserID == userID && f.logs[i].Date == date {
			f.logs[i].Name = name
			f.logs[i].MuscleGroup = muscleGroup
			matched = true
		}
	}
	if !matched {
		return repository.ErrNotFound
	}
	return nil
}

func (f *fakeLogRepo) DeleteByDate(ctx context.Context, userID primitive.ObjectID, date string) error {
	kept := f.logs[:0]
	matched := false
	for _, l := range f.logs {
		if l.UserID == userID && l.Date == date {
			matched = true
			continue
		}
		kept = append(kept, l)
	}
	f.logs = kept
	if !matched {
		return repository.ErrNotFound
	}
	return nil
}

func (f *fakeLogRepo) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	kept := f.logs[:0]
	for _, l := range f.logs {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	f.logs = kept
	return nil
}

func (f *fakeLogRepo) CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, l := range f.logs {
		if l.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeFileStorage struct {
	uploads   map[string][]byte
	uploadErr error
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{uploads: make(map[string][]byte)}
}

func (f *fakeFileStorage) UploadObject(ctx context.Context, objectKey, contentType string, data []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads[objectKey] = data
	return nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, lifetime time.Duration) (string, error) {
	return "https://storage.test/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	delete(f.uploads, objectKey)
	return nil
}

func TestCreateLog(t *testing.T) {
	t.Parallel()

	repo := &fakeLogRepo{}
	svc := NewLogService(repo, nil)
	userID := primitive.NewObjectID()

	entry, err := svc.CreateLog(context.Background(), userID, "Barbell Squat", "leg", "2026-08-29")
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	if entry.ID.IsZero() {
		t.Fatal("expected assigned log ID")
	}
	if len(repo.logs) != 1 || repo.logs[0].Name != "Barbell Squat" {
		t.Fatalf("unexpected stored logs: %v", repo.logs)
	}
}

func TestCreateLogRejectsBadDate(t *testing.T) {
	t.Parallel()

	svc := NewLogService(&fakeLogRepo{}, nil)

	_, err := svc.CreateLog(context.Background(), primitive.NewObjectID(), "Squat", "leg", "29-08-2026")
	if !errors.Is(err, ErrLogValidationFailed) {
		t.Fatalf("expected ErrLogValidationFailed, got %v", err)
	}
}

func TestCreateLogRejectsEmptyName(t *testing.T) {
	t.Parallel()

	svc := NewLogService(&fakeLogRepo{}, nil)

	_, err := svc.CreateLog(context.Background(), primitive.NewObjectID(), "", "leg", "2026-08-29")
	if !errors.Is(err, ErrLogValidationFailed) {
		t.Fatalf("expected ErrLogValidationFailed, got %v", err)
	}
}

func TestUpdateLogNotFound(t *testing.T) {
	t.Parallel()

	svc := NewLogService(&fakeLogRepo{}, nil)

	err := svc.UpdateLog(context.Background(), primitive.NewObjectID(), "2026-08-29", "Squat", "leg")
	if !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound, got %v", err)
	}
}

func TestDeleteLogsByDateNotFound(t *testing.T) {
	t.Parallel()

	svc := NewLogService(&fakeLogRepo{}, nil)

	err := svc.DeleteLogsByDate(context.Background(), primitive.NewObjectID(), "2026-08-29")
	if !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound, got %v", err)
	}
}

func TestClearLogsScopedToUser(t *testing.T) {
	t.Parallel()

	repo := &fakeLogRepo{}
	svc := NewLogService(repo, nil)
	ctx := context.Background()
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()

	if _, err := svc.CreateLog(ctx, userA, "Squat", "leg", "2026-08-29"); err != nil {
		t.Fatalf("create log: %v", err)
	}
	if _, err := svc.CreateLog(ctx, userB, "Curl", "arm", "2026-08-29"); err != nil {
		t.Fatalf("create log: %v", err)
	}

	if err := svc.ClearLogs(ctx, userA); err != nil {
		t.Fatalf("clear logs: %v", err)
	}

	remaining, err := svc.GetAllLogs(ctx, userB)
	if err != nil {
		t.Fatalf("get all logs: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Name != "Curl" {
		t.Fatalf("expected other user's logs untouched, got %v", remaining)
	}
}

func TestExportLogs(t *testing.T) {
	t.Parallel()

	repo := &fakeLogRepo{}
	store := newFakeFileStorage()
	svc := NewLogService(repo, store)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if _, err := svc.CreateLog(ctx, userID, "Squat", "leg", "2026-08-29"); err != nil {
		t.Fatalf("create log: %v", err)
	}

	url, err := svc.ExportLogs(ctx, userID)
	if err != nil {
		t.Fatalf("export logs: %v", err)
	}
	if !strings.Contains(url, "exports/"+userID.Hex()+"/") {
		t.Fatalf("unexpected download URL: %s", url)
	}
	if len(store.uploads) != 1 {
		t.Fatalf("expected one uploaded object, got %d", len(store.uploads))
	}
	for _, data := range store.uploads {
		var logs []domain.WorkoutLog
		if err := json.Unmarshal(data, &logs); err != nil {
			t.Fatalf("exported payload is not valid JSON: %v", err)
		}
		if len(logs) != 1 || logs[0].Name != "Squat" {
			t.Fatalf("unexpected exported logs: %v", logs)
		}
	}
}

func TestExportLogsNotConfigured(t *testing.T) {
	t.Parallel()

	svc := NewLogService(&fakeLogRepo{}, nil)

	if _, err := svc.ExportLogs(context.Background(), primitive.NewObjectID()); err == nil {
		t.Fatal("expected error when storage is not configured")
	}
}
