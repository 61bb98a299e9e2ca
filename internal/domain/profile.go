package domain

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidInput is returned by profile mutators when given an empty list,
// or a list or value containing an empty string. Validation happens before
// any state is touched, so a failed call never leaves a partial mutation.
var ErrInvalidInput = errors.New("invalid input")

// Profile is the per-user recommendation state: the muscle groups the user
// wants to target, the equipment they have available, and the songs they
// want in their workout playlists. Each list keeps insertion order and
// never holds duplicates.
//
// Stored values are not normalized; callers must pass lowercase labels
// matching the recognized vocabulary (the matcher lower-cases only the
// catalog side).
type Profile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	TargetGroups []string           `bson:"targetGroups" json:"targetGroups"`
	Equipment    []string           `bson:"equipment" json:"equipment"`
	TargetSongs  []string           `bson:"targetSongs" json:"targetSongs"`
	CreatedAt    time.Time          `bson:"createdAt" json:"-"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"-"`
}

// NewProfile returns an empty profile for the given user.
func NewProfile(userID primitive.ObjectID) *Profile {
	return &Profile{
		UserID:       userID,
		TargetGroups: []string{},
		Equipment:    []string{},
		TargetSongs:  []string{},
	}
}

// --- Target muscle groups ---

// SetTargetGroups replaces the whole target group list.
func (p *Profile) SetTargetGroups(groups []string) error {
	validated, err := validateList(groups, "muscle groups list")
	if err != nil {
		return err
	}
	p.TargetGroups = validated
	return nil
}

// AddTargetGroup appends one muscle group. Returns false without mutating
// when the group is already present.
func (p *Profile) AddTargetGroup(group string) (bool, error) {
	return addItem(&p.TargetGroups, group, "muscle group name")
}

// RemoveTargetGroup removes one muscle group. Returns false when the group
// is not present.
func (p *Profile) RemoveTargetGroup(group string) (bool, error) {
	return removeItem(&p.TargetGroups, group, "muscle group name")
}

// GetTargetGroups returns the current target group list (never nil).
func (p *Profile) GetTargetGroups() []string {
	return copyList(p.TargetGroups)
}

// --- Available equipment ---

// SetEquipment replaces the whole available equipment list.
func (p *Profile) SetEquipment(equipment []string) error {
	validated, err := validateList(equipment, "equipment list")
	if err != nil {
		return err
	}
	p.Equipment = validated
	return nil
}

// AddEquipment appends one equipment item. Returns false without mutating
// when the item is already present.
func (p *Profile) AddEquipment(equipment string) (bool, error) {
	return addItem(&p.Equipment, equipment, "equipment name")
}

// RemoveEquipment removes one equipment item. Returns false when the item
// is not present.
func (p *Profile) RemoveEquipment(equipment string) (bool, error) {
	return removeItem(&p.Equipment, equipment, "equipment name")
}

// GetEquipment returns the current equipment list (never nil).
func (p *Profile) GetEquipment() []string {
	return copyList(p.Equipment)
}

// --- Target songs ---

// SetTargetSongs replaces the whole target song list.
func (p *Profile) SetTargetSongs(songs []string) error {
	validated, err := validateList(songs, "songs list")
	if err != nil {
		return err
	}
	p.TargetSongs = validated
	return nil
}

// AddTargetSong appends one song name. Returns false without mutating when
// the song is already present.
func (p *Profile) AddTargetSong(song string) (bool, error) {
	return addItem(&p.TargetSongs, song, "song name")
}

// RemoveTargetSong removes one song name. Returns false when the song is
// not present.
func (p *Profile) RemoveTargetSong(song string) (bool, error) {
	return removeItem(&p.TargetSongs, song, "song name")
}

// GetTargetSongs returns the current target song list (never nil).
func (p *Profile) GetTargetSongs() []string {
	return copyList(p.TargetSongs)
}

// --- Shared list helpers ---

func validateList(values []string, what string) ([]string, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s must be non-empty", ErrInvalidInput, what)
	}
	for _, v := range values {
		if v == "" {
			return nil, fmt.Errorf("%w: %s must not contain empty values", ErrInvalidInput, what)
		}
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !contains(out, v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func addItem(list *[]string, value, what string) (bool, error) {
	if value == "" {
		return false, fmt.Errorf("%w: %s must be non-empty", ErrInvalidInput, what)
	}
	if contains(*list, value) {
		return false, nil
	}
	*list = append(*list, value)
	return true, nil
}

func removeItem(list *[]string, value, what string) (bool, error) {
	if value == "" {
		return false, fmt.Errorf("%w: %s must be non-empty", ErrInvalidInput, what)
	}
	for i, v := range *list {
		if v == value {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func copyList(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
