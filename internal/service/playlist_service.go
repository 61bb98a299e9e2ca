package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MusicCatalog is the slice of the music client the playlist service needs.
type MusicCatalog interface {
	SongsForWorkoutCount(ctx context.Context, workoutCount int) ([]string, error)
	RandomSong(ctx context.Context) (string, error)
}

// WorkoutCounter reports how many workouts a user has logged. Satisfied by
// LogService.
type WorkoutCounter interface {
	CountLogs(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// --- Service Interface ---

// PlaylistService recommends songs, scaling the suggestion to the user's
// recorded workout count.
type PlaylistService interface {
	SongsForUser(ctx context.Context, userID primitive.ObjectID) ([]string, error)
	SongsForWorkoutCount(ctx context.Context, workoutCount int) ([]string, error)
	RandomSong(ctx context.Context) (string, error)
}

// --- Service Implementation ---

type playlistService struct {
	logs  WorkoutCounter
	music MusicCatalog
}

// NewPlaylistService creates a new instance of playlistService.
func NewPlaylistService(logs WorkoutCounter, music MusicCatalog) PlaylistService {
	return &playlistService{
		logs:  logs,
		music: music,
	}
}

// SongsForUser counts the user's logged workouts and suggests tracks sized
// to that count.
func (s *playlistService) SongsForUser(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	count, err := s.logs.CountLogs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.music.SongsForWorkoutCount(ctx, int(count))
}

// SongsForWorkoutCount suggests tracks for an explicit workout count.
func (s *playlistService) SongsForWorkoutCount(ctx context.Context, workoutCount int) ([]string, error) {
	return s.music.SongsForWorkoutCount(ctx, workoutCount)
}

// RandomSong suggests one track picked at random.
func (s *playlistService) RandomSong(ctx context.Context) (string, error) {
	return s.music.RandomSong(ctx)
}
