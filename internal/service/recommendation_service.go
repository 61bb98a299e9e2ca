package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"fitrec/workout-app/internal/catalog"
	"fitrec/workout-app/internal/domain"
	"fitrec/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCatalog is the slice of the catalog client the matcher needs.
type ExerciseCatalog interface {
	FetchExercises(ctx context.Context) ([]catalog.Entry, error)
}

// muscleGroupKeywords maps a recognized target label to the substrings that
// qualify an exercise name for it. Labels outside this table match nothing.
var muscleGroupKeywords = map[string][]string{
	"leg":    {"squat", "running"},
	"arm":    {"curl", "tricep"},
	"back":   {"pull", "row"},
	"abs":    {"crunch", "plank"},
	"cardio": {"swim", "run"},
}

// equipmentNone is the target label meaning "exercises that need no equipment".
const equipmentNone = "none"

// --- Service Interface ---

// RecommendationService owns the per-user recommendation profile and the
// matching of catalog exercises against target muscle groups and equipment.
type RecommendationService interface {
	// Profile: target muscle groups
	SetTargetGroups(ctx context.Context, userID primitive.ObjectID, groups []string) error
	AddTargetGroup(ctx context.Context, userID primitive.ObjectID, group string) (bool, error)
	RemoveTargetGroup(ctx context.Context, userID primitive.ObjectID, group string) (bool, error)
	GetTargetGroups(ctx context.Context, userID primitive.ObjectID) ([]string, error)

	// Profile: available equipment
	SetEquipment(ctx context.Context, userID primitive.ObjectID, equipment []string) error
	AddEquipment(ctx context.Context, userID primitive.ObjectID, equipment string) (bool, error)
	RemoveEquipment(ctx context.Context, userID primitive.ObjectID, equipment string) (bool, error)
	GetEquipment(ctx context.Context, userID primitive.ObjectID) ([]string, error)

	// Profile: target songs
	SetTargetSongs(ctx context.Context, userID primitive.ObjectID, songs []string) error
	AddTargetSong(ctx context.Context, userID primitive.ObjectID, song string) (bool, error)
	RemoveTargetSong(ctx context.Context, userID primitive.ObjectID, song string) (bool, error)
	GetTargetSongs(ctx context.Context, userID primitive.ObjectID) ([]string, error)

	// Matching
	RecommendByMuscleGroups(ctx context.Context, targets []string) ([]domain.Exercise, error)
	RecommendByEquipment(ctx context.Context, targets []string) ([]domain.Exercise, error)
	RecommendForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	RecommendForUserEquipment(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	ReplaceRecommendation(ctx context.Context, recommendations []domain.Exercise, index int, muscles []string) ([]domain.Exercise, error)
}

// --- Service Implementation ---

type recommendationService struct {
	profileRepo repository.ProfileRepository
	exercises   ExerciseCatalog
	now         func() time.Time
}

// NewRecommendationService creates a new instance of recommendationService.
func NewRecommendationService(profileRepo repository.ProfileRepository, exercises ExerciseCatalog) RecommendationService {
	return &recommendationService{
		profileRepo: profileRepo,
		exercises:   exercises,
		now:         time.Now,
	}
}

// --- Profile operations ---

// mutateProfile loads the user's profile, applies the mutation, and persists
// it. A mutation error leaves the stored profile untouched.
func (s *recommendationService) mutateProfile(ctx context.Context, userID primitive.ObjectID, mutate func(*domain.Profile) error) error {
	profile, err := s.profileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	if err := mutate(profile); err != nil {
		return err
	}
	return s.profileRepo.Save(ctx, profile)
}

func (s *recommendationService) SetTargetGroups(ctx context.Context, userID primitive.ObjectID, groups []string) error {
	return s.mutateProfile(ctx, userID, func(p *domain.Profile) error {
		return p.SetTargetGroups(groups)
	})
}

func (s *recommendationService) AddTargetGroup(ctx context.Context, userID primitive.ObjectID, group string) (bool, error) {
	var added bool
	err := s.mutateProfile(ctx, userID, func(p *domain.Profile) (err error) {
		added, err = p.AddTargetGroup(group)
		return err
	})
	return added, err
}

func (s *recommendationService) RemoveTargetGroup(ctx context.Context, userID primitive.ObjectID, group string) (bool, error) {
	var removed bool
	err := s.mutateProfile(ctx, userID, func(p *domain.Profile) (err error) {
		removed, err = p.RemoveTargetGroup(group)
		return err
	})
	return removed, err
}

func (s *recommendationService) GetTargetGroups(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	profile, err := s.profileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.GetTargetGroups(), nil
}

func (s *recommendationService) SetEquipment(ctx context.Context, userID primitive.ObjectID, equipment []string) error {
	return s.mutateProfile(ctx, userID, func(p *domain.Profile) error {
		return p.SetEquipment(equipment)
	})
}

func (s *recommendationService) AddEquipment(ctx context.Context, userID primitive.ObjectID, equipment string) (bool, error) {
	var added bool
	err := s.mutateProfile(ctx, userID, func(p *domain.Profile) (err error) {
		added, err = p.AddEquipment(equipment)
		return err
	})
	return added, err
}

func (s *recommendationService) RemoveEquipment(ctx context.Context, userID primitive.ObjectID, equipment string) (bool, error) {
	var removed bool
	err := s.mutateProfile(ctx, userID, func(p *domain.Profile) (err error) {
		removed, err = p.RemoveEquipment(equipment)
		return err
	})
	return removed, err
}

func (s *recommendationService) GetEquipment(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	profile, err := s.profileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.GetEquipment(), nil
}

func (s *recommendationService) SetTargetSongs(ctx context.Context, userID primitive.ObjectID, songs []string) error {
	return s.mutateProfile(ctx, userID, func(p *domain.Profile) error {
		return p.SetTargetSongs(songs)
	})
}

func (s *recommendationService) AddTargetSong(ctx context.Context, userID primitive.ObjectID, song string) (bool, error) {
	var added bool
	err := s.mutateProfile(ctx, userID, func(p *domain.Profile) (err error) {
		added, err = p.AddTargetSong(song)
		return err
	})
	return added, err
}

func (s *recommendationService) RemoveTargetSong(ctx context.Context, userID primitive.ObjectID, song string) (bool, error) {
	var removed bool
	err := s.mutateProfile(ctx, userID, func(p *domain.Profile) (err error) {
		removed, err = p.RemoveTargetSong(song)
		return err
	})
	return removed, err
}

func (s *recommendationService) GetTargetSongs(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	profile, err := s.profileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.GetTargetSongs(), nil
}

// --- Matching ---

// RecommendByMuscleGroups matches English catalog exercises against the
// given target muscle groups using the fixed keyword table. The output list
// is not deduplicated: an exercise may appear once per matching target.
func (s *recommendationService) RecommendByMuscleGroups(ctx context.Context, targets []string) ([]domain.Exercise, error) {
	targetSet := dedupe(targets)

	entries, err := s.exercises.FetchExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch exercises: %w", err)
	}

	date := s.now().Format("2006-01-02")
	recommendations := []domain.Exercise{}

	for _, entry := range entries {
		muscleGroup := entry.MuscleNames()
		if muscleGroup == "" {
			muscleGroup = domain.NoMusclesTargeted
		}
		equipment := entry.EquipmentNames()
		if equipment == "" {
			equipment = domain.NoEquipmentRequired
		}

		for _, info := range entry.Exercises {
			if info.Language != catalog.LanguageEnglish {
				continue
			}
			lowerName := strings.ToLower(info.Name)

			for _, target := range targetSet {
				keywords, recognized := muscleGroupKeywords[target]
				if !recognized {
					continue // unknown labels are silently ignored
				}
				if !containsAny(lowerName, keywords) {
					continue
				}

				name := info.Name
				if name == "" {
					name = domain.NoNameAvailable
				}
				recommendations = append(recommendations, domain.Exercise{
					Name:        name,
					MuscleGroup: muscleGroup,
					Equipment:   equipment,
					Date:        date,
				})
			}
		}
	}

	return recommendations, nil
}

// RecommendByEquipment matches English catalog exercises whose joined
// equipment string equals a target label. Unlike muscle group matching there
// is no substring rule; the label "none" selects entries that require no
// equipment.
func (s *recommendationService) RecommendByEquipment(ctx context.Context, targets []string) ([]domain.Exercise, error) {
	targetSet := dedupe(targets)

	entries, err := s.exercises.FetchExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch exercises: %w", err)
	}

	date := s.now().Format("2006-01-02")
	recommendations := []domain.Exercise{}

	for _, entry := range entries {
		muscleGroup := entry.MuscleNames()
		if muscleGroup == "" {
			muscleGroup = domain.NoMusclesTargeted
		}
		equipment := entry.EquipmentNames()
		if equipment == "" {
			equipment = domain.NoEquipmentRequired
		}

		for _, info := range entry.Exercises {
			if info.Language != catalog.LanguageEnglish {
				continue
			}

			for _, target := range targetSet {
				if strings.ToLower(equipment) != target &&
					!(target == equipmentNone && equipment == domain.NoEquipmentRequired) {
					continue
				}

				name := info.Name
				if name == "" {
					name = domain.NoNameAvailable
				}
				recommendations = append(recommendations, domain.Exercise{
					Name:        name,
					MuscleGroup: muscleGroup,
					Equipment:   equipment,
					Date:        date,
				})
			}
		}
	}

	return recommendations, nil
}

// RecommendForUser matches against the user's stored target muscle groups.
func (s *recommendationService) RecommendForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	groups, err := s.GetTargetGroups(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.RecommendByMuscleGroups(ctx, groups)
}

// RecommendForUserEquipment matches against the user's stored available
// equipment.
func (s *recommendationService) RecommendForUserEquipment(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	equipment, err := s.GetEquipment(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.RecommendByEquipment(ctx, equipment)
}

// ReplaceRecommendation swaps one entry of a previously returned
// recommendation list for a freshly matched candidate. An empty candidate
// pool or an out-of-range index leaves the list unchanged; both are logged
// rather than reported as errors.
func (s *recommendationService) ReplaceRecommendation(ctx context.Context, recommendations []domain.Exercise, index int, muscles []string) ([]domain.Exercise, error) {
	pool, err := s.RecommendByMuscleGroups(ctx, muscles)
	if err != nil {
		return nil, err
	}

	if len(pool) == 0 {
		log.Printf("replace recommendation: no candidates for muscles %v, list unchanged", muscles)
		return recommendations, nil
	}
	if index < 0 || index >= len(recommendations) {
		log.Printf("replace recommendation: index %d out of range for %d recommendations, list unchanged", index, len(recommendations))
		return recommendations, nil
	}

	out := make([]domain.Exercise, len(recommendations))
	copy(out, recommendations)
	out[index] = pool[0]
	return out, nil
}

// dedupe collapses duplicate targets, keeping first-occurrence order so the
// output stays deterministic.
func dedupe(targets []string) []string {
	out := make([]string, 0, len(targets))
	seen := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
