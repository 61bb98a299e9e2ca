package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"fitrec/workout-app/internal/catalog"
	"fitrec/workout-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Fakes ---

type fakeCatalog struct {
	entries []catalog.Entry
	err     error
	calls   int
}

func (f *fakeCatalog) FetchExercises(ctx context.Context) ([]catalog.Entry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*domain.Profile
	saves    int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[primitive.ObjectID]*domain.Profile)}
}

func (f *fakeProfileRepo) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		clone := *p
		clone.TargetGroups = append([]string{}, p.TargetGroups...)
		clone.Equipment = append([]string{}, p.Equipment...)
		clone.TargetSongs = append([]string{}, p.TargetSongs...)
		return &clone, nil
	}
	fresh := domain.NewProfile(userID)
	f.profiles[userID] = fresh
	return fresh, nil
}

func (f *fakeProfileRepo) Save(ctx context.Context, profile *domain.Profile) error {
	f.saves++
	f.profiles[profile.UserID] = profile
	return nil
}

func squatEntry() catalog.Entry {
	return catalog.Entry{
		Exercises: []catalog.ExerciseInfo{
			{Name: "Barbell Squat", Language: catalog.LanguageEnglish},
		},
	}
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// --- Muscle group matching ---

func TestRecommendByMuscleGroupsKeywordMatch(t *testing.T) {
	t.Parallel()

	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{squatEntry()}})

	got, err := svc.RecommendByMuscleGroups(context.Background(), []string{"leg", "arm"})
	if err != nil {
		t.Fatalf("recommend by muscle groups: %v", err)
	}

	want := []domain.Exercise{{
		Name:        "Barbell Squat",
		MuscleGroup: domain.NoMusclesTargeted,
		Equipment:   domain.NoEquipmentRequired,
		Date:        today(),
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRecommendByMuscleGroupsJoinsMetadata(t *testing.T) {
	t.Parallel()

	entry := catalog.Entry{
		Muscles:   []catalog.NamedItem{{Name: "Quads"}, {Name: "Glutes"}},
		Equipment: []catalog.NamedItem{{Name: "Barbell"}},
		Exercises: []catalog.ExerciseInfo{
			{Name: "Barbell Squat", Language: catalog.LanguageEnglish},
		},
	}
	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{entry}})

	got, err := svc.RecommendByMuscleGroups(context.Background(), []string{"leg"})
	if err != nil {
		t.Fatalf("recommend by muscle groups: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(got))
	}
	if got[0].MuscleGroup != "Quads, Glutes" || got[0].Equipment != "Barbell" {
		t.Fatalf("unexpected metadata: %+v", got[0])
	}
}

func TestRecommendByMuscleGroupsSkipsNonEnglish(t *testing.T) {
	t.Parallel()

	entry := catalog.Entry{
		Exercises: []catalog.ExerciseInfo{
			{Name: "Kniebeuge Squat", Language: 1},
		},
	}
	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{entry}})

	got, err := svc.RecommendByMuscleGroups(context.Background(), []string{"leg"})
	if err != nil {
		t.Fatalf("recommend by muscle groups: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches for non-English exercise, got %v", got)
	}
}

func TestRecommendByMuscleGroupsUnknownLabelIgnored(t *testing.T) {
	t.Parallel()

	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{squatEntry()}})

	got, err := svc.RecommendByMuscleGroups(context.Background(), []string{"shoulders"})
	if err != nil {
		t.Fatalf("recommend by muscle groups: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected unknown label to match nothing, got %v", got)
	}
}

func TestRecommendByMuscleGroupsNoOutputDedup(t *testing.T) {
	t.Parallel()

	// "Squat Row" matches both leg (squat) and back (row), so it appears
	// once per matching target.
	entry := catalog.Entry{
		Exercises: []catalog.ExerciseInfo{
			{Name: "Squat Row", Language: catalog.LanguageEnglish},
		},
	}
	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{entry}})

	got, err := svc.RecommendByMuscleGroups(context.Background(), []string{"leg", "back"})
	if err != nil {
		t.Fatalf("recommend by muscle groups: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for doubly matched exercise, got %d: %v", len(got), got)
	}
	if got[0].Name != "Squat Row" || got[1].Name != "Squat Row" {
		t.Fatalf("unexpected names: %v", got)
	}
}

func TestRecommendByMuscleGroupsDedupesTargets(t *testing.T) {
	t.Parallel()

	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{squatEntry()}})

	got, err := svc.RecommendByMuscleGroups(context.Background(), []string{"leg", "leg"})
	if err != nil {
		t.Fatalf("recommend by muscle groups: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected duplicate targets to count once, got %d matches", len(got))
	}
}

func TestRecommendByMuscleGroupsNameSentinel(t *testing.T) {
	t.Parallel()

	entry := catalog.Entry{
		Exercises: []catalog.ExerciseInfo{
			{Name: "", Language: catalog.LanguageEnglish},
		},
	}
	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{entry}})

	got, err := svc.RecommendByMuscleGroups(context.Background(), []string{"leg"})
	if err != nil {
		t.Fatalf("recommend by muscle groups: %v", err)
	}
	// An empty name contains no keywords, so nothing matches.
	if len(got) != 0 {
		t.Fatalf("expected no matches for empty name, got %v", got)
	}
}

func TestRecommendByMuscleGroupsCatalogError(t *testing.T) {
	t.Parallel()

	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{err: errors.New("connection refused")})

	if _, err := svc.RecommendByMuscleGroups(context.Background(), []string{"leg"}); err == nil {
		t.Fatal("expected catalog error to propagate")
	}
}

func TestRecommendByMuscleGroupsEmptyCatalog(t *testing.T) {
	t.Parallel()

	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{})

	got, err := svc.RecommendByMuscleGroups(context.Background(), []string{"leg"})
	if err != nil {
		t.Fatalf("recommend by muscle groups: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

// --- Equipment matching ---

func TestRecommendByEquipmentExactMatch(t *testing.T) {
	t.Parallel()

	entry := catalog.Entry{
		Equipment: []catalog.NamedItem{{Name: "Dumbbell"}},
		Exercises: []catalog.ExerciseInfo{
			{Name: "Axe Hold", Language: catalog.LanguageEnglish},
			{Name: "Axthalten", Language: 1},
		},
	}
	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{entry}})

	got, err := svc.RecommendByEquipment(context.Background(), []string{"dumbbell", "kettlebell"})
	if err != nil {
		t.Fatalf("recommend by equipment: %v", err)
	}

	want := []domain.Exercise{{
		Name:        "Axe Hold",
		MuscleGroup: domain.NoMusclesTargeted,
		Equipment:   "Dumbbell",
		Date:        today(),
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRecommendByEquipmentNoSubstringMatch(t *testing.T) {
	t.Parallel()

	entry := catalog.Entry{
		Equipment: []catalog.NamedItem{{Name: "Dumbbell"}, {Name: "Bench"}},
		Exercises: []catalog.ExerciseInfo{
			{Name: "Bench Press", Language: catalog.LanguageEnglish},
		},
	}
	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{entry}})

	// Joined string is "Dumbbell, Bench"; the single label must not match it.
	got, err := svc.RecommendByEquipment(context.Background(), []string{"dumbbell"})
	if err != nil {
		t.Fatalf("recommend by equipment: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no partial equipment matches, got %v", got)
	}
}

func TestRecommendByEquipmentNoneSentinel(t *testing.T) {
	t.Parallel()

	entry := catalog.Entry{
		Exercises: []catalog.ExerciseInfo{
			{Name: "Push Up", Language: catalog.LanguageEnglish},
		},
	}
	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{entry}})

	got, err := svc.RecommendByEquipment(context.Background(), []string{"none"})
	if err != nil {
		t.Fatalf("recommend by equipment: %v", err)
	}
	if len(got) != 1 || got[0].Equipment != domain.NoEquipmentRequired {
		t.Fatalf("expected the no-equipment entry to match \"none\", got %v", got)
	}
}

func TestRecommendByEquipmentNameSentinel(t *testing.T) {
	t.Parallel()

	entry := catalog.Entry{
		Equipment: []catalog.NamedItem{{Name: "Barbell"}},
		Exercises: []catalog.ExerciseInfo{
			{Name: "", Language: catalog.LanguageEnglish},
		},
	}
	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{entry}})

	got, err := svc.RecommendByEquipment(context.Background(), []string{"barbell"})
	if err != nil {
		t.Fatalf("recommend by equipment: %v", err)
	}
	if len(got) != 1 || got[0].Name != domain.NoNameAvailable {
		t.Fatalf("expected name sentinel for unnamed exercise, got %v", got)
	}
}

// --- Replace ---

func TestReplaceRecommendation(t *testing.T) {
	t.Parallel()

	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{squatEntry()}})

	recs := []domain.Exercise{
		{Name: "Old One", Date: today()},
		{Name: "Old Two", Date: today()},
	}

	got, err := svc.ReplaceRecommendation(context.Background(), recs, 1, []string{"leg"})
	if err != nil {
		t.Fatalf("replace recommendation: %v", err)
	}
	if got[0].Name != "Old One" || got[1].Name != "Barbell Squat" {
		t.Fatalf("expected index 1 replaced with pool head, got %v", got)
	}
	// The input slice must stay untouched.
	if recs[1].Name != "Old Two" {
		t.Fatalf("input list mutated: %v", recs)
	}
}

func TestReplaceRecommendationBadIndexNoOp(t *testing.T) {
	t.Parallel()

	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{entries: []catalog.Entry{squatEntry()}})

	recs := []domain.Exercise{
		{Name: "Old One"},
		{Name: "Old Two"},
	}

	got, err := svc.ReplaceRecommendation(context.Background(), recs, 99, []string{"leg"})
	if err != nil {
		t.Fatalf("replace recommendation: %v", err)
	}
	if !reflect.DeepEqual(got, recs) {
		t.Fatalf("expected unchanged list for bad index, got %v", got)
	}
}

func TestReplaceRecommendationEmptyPoolNoOp(t *testing.T) {
	t.Parallel()

	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{})

	recs := []domain.Exercise{{Name: "Old One"}}

	got, err := svc.ReplaceRecommendation(context.Background(), recs, 0, []string{"leg"})
	if err != nil {
		t.Fatalf("replace recommendation: %v", err)
	}
	if !reflect.DeepEqual(got, recs) {
		t.Fatalf("expected unchanged list for empty pool, got %v", got)
	}
}

func TestReplaceRecommendationCatalogError(t *testing.T) {
	t.Parallel()

	svc := NewRecommendationService(newFakeProfileRepo(), &fakeCatalog{err: errors.New("boom")})

	if _, err := svc.ReplaceRecommendation(context.Background(), []domain.Exercise{{Name: "x"}}, 0, []string{"leg"}); err == nil {
		t.Fatal("expected catalog error to propagate")
	}
}

// --- Profile operations through the service ---

func TestProfileOpsPersist(t *testing.T) {
	t.Parallel()

	repo := newFakeProfileRepo()
	svc := NewRecommendationService(repo, &fakeCatalog{})
	userID := primitive.NewObjectID()
	ctx := context.Background()

	added, err := svc.AddTargetGroup(ctx, userID, "leg")
	if err != nil || !added {
		t.Fatalf("add target group: added=%v err=%v", added, err)
	}
	added, err = svc.AddTargetGroup(ctx, userID, "leg")
	if err != nil || added {
		t.Fatalf("duplicate add: added=%v err=%v", added, err)
	}

	groups, err := svc.GetTargetGroups(ctx, userID)
	if err != nil {
		t.Fatalf("get target groups: %v", err)
	}
	if !reflect.DeepEqual(groups, []string{"leg"}) {
		t.Fatalf("expected [leg], got %v", groups)
	}
}

func TestProfileSetInvalidDoesNotSave(t *testing.T) {
	t.Parallel()

	repo := newFakeProfileRepo()
	svc := NewRecommendationService(repo, &fakeCatalog{})
	userID := primitive.NewObjectID()

	err := svc.SetTargetGroups(context.Background(), userID, []string{""})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatalf("expected no save after validation failure, got %d", repo.saves)
	}
}

func TestRecommendForUserUsesStoredGroups(t *testing.T) {
	t.Parallel()

	repo := newFakeProfileRepo()
	cat := &fakeCatalog{entries: []catalog.Entry{squatEntry()}}
	svc := NewRecommendationService(repo, cat)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	if err := svc.SetTargetGroups(ctx, userID, []string{"leg"}); err != nil {
		t.Fatalf("set target groups: %v", err)
	}

	got, err := svc.RecommendForUser(ctx, userID)
	if err != nil {
		t.Fatalf("recommend for user: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Barbell Squat" {
		t.Fatalf("expected stored groups to drive matching, got %v", got)
	}
	if cat.calls != 1 {
		t.Fatalf("expected exactly one catalog fetch, got %d", cat.calls)
	}
}
