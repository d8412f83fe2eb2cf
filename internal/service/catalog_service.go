package service

import (
	"context"
	"errors"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/repository"

	"github.com/sirupsen/logrus"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// CatalogService is the read-mostly exercise catalog the routine builder
// picks from. Log entries snapshot catalog fields at write time; the catalog
// is never re-joined afterwards.
type CatalogService interface {
	List(ctx context.Context, group *domain.Group) ([]domain.Exercise, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error)
	// SeedDefault loads the built-in catalog into an empty collection.
	SeedDefault(ctx context.Context) error
}

type catalogService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(exerciseRepo repository.ExerciseRepository) CatalogService {
	return &catalogService{exerciseRepo: exerciseRepo}
}

func (s *catalogService) List(ctx context.Context, group *domain.Group) ([]domain.Exercise, error) {
	if group != nil && !group.Valid() {
		return nil, ErrUnknownGroup
	}
	exercises, err := s.exerciseRepo.List(ctx, group)
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	return exercises, nil
}

func (s *catalogService) GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// SeedDefault inserts the built-in exercises when the collection is empty.
// Safe to call on every startup.
func (s *catalogService) SeedDefault(ctx context.Context) error {
	count, err := s.exerciseRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	logrus.Infof("seeding exercise catalog with %d entries", len(defaultCatalog))
	return s.exerciseRepo.InsertMany(ctx, defaultCatalog)
}

// defaultCatalog is the stock routine-builder catalog. Slugs are stable ids:
// log entries and favorites reference them, so never reuse a slug for a
// different movement.
var defaultCatalog = []domain.Exercise{
	{Slug: "bench-press", Title: "Bench Press", Group: domain.GroupChest, Difficulty: domain.DifficultyMid,
		Cues: []string{"Pin shoulder blades to the bench", "Bar path over mid-chest"}},
	{Slug: "incline-dumbbell-press", Title: "Incline Dumbbell Press", Group: domain.GroupChest, Difficulty: domain.DifficultyMid,
		Cues: []string{"30-45 degree bench", "Elbows about 45 degrees from torso"}},
	{Slug: "push-up", Title: "Push Up", Group: domain.GroupChest, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Straight line from head to heels"}},
	{Slug: "pec-deck-fly", Title: "Pec Deck Fly", Group: domain.GroupChest, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Slight elbow bend, squeeze at the front"}},

	{Slug: "lat-pulldown", Title: "Lat Pulldown", Group: domain.GroupBack, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Pull to the upper chest", "Elbows down, not back"}},
	{Slug: "seated-row", Title: "Seated Row", Group: domain.GroupBack, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Chest up, pull to the belly"}},
	{Slug: "pull-up", Title: "Pull Up", Group: domain.GroupBack, Difficulty: domain.DifficultyHard,
		Cues: []string{"Full hang at the bottom", "Chin over the bar"}},
	{Slug: "deadlift", Title: "Deadlift", Group: domain.GroupBack, Difficulty: domain.DifficultyHard,
		Cues: []string{"Neutral spine", "Push the floor away"}},

	{Slug: "overhead-press", Title: "Overhead Press", Group: domain.GroupShoulder, Difficulty: domain.DifficultyMid,
		Cues: []string{"Glutes and abs tight", "Head through at lockout"}},
	{Slug: "lateral-raise", Title: "Lateral Raise", Group: domain.GroupShoulder, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Lead with the elbows", "Stop at shoulder height"}},
	{Slug: "face-pull", Title: "Face Pull", Group: domain.GroupShoulder, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Pull towards the forehead", "Thumbs back"}},

	{Slug: "barbell-curl", Title: "Barbell Curl", Group: domain.GroupArm, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Elbows pinned to the sides"}},
	{Slug: "triceps-pushdown", Title: "Triceps Pushdown", Group: domain.GroupArm, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Lock the elbows at the bottom"}},
	{Slug: "hammer-curl", Title: "Hammer Curl", Group: domain.GroupArm, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Neutral grip throughout"}},

	{Slug: "back-squat", Title: "Back Squat", Group: domain.GroupLegs, Difficulty: domain.DifficultyHard,
		Cues: []string{"Knees track over toes", "Hit depth, stay braced"}},
	{Slug: "leg-press", Title: "Leg Press", Group: domain.GroupLegs, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Lower until thighs touch the torso"}},
	{Slug: "lunge", Title: "Lunge", Group: domain.GroupLegs, Difficulty: domain.DifficultyMid,
		Cues: []string{"Long step, torso upright"}},
	{Slug: "romanian-deadlift", Title: "Romanian Deadlift", Group: domain.GroupLegs, Difficulty: domain.DifficultyMid,
		Cues: []string{"Hips back, soft knees", "Stretch the hamstrings"}},
	{Slug: "calf-raise", Title: "Calf Raise", Group: domain.GroupLegs, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Pause at the top"}},

	{Slug: "treadmill-run", Title: "Treadmill Run", Group: domain.GroupCardio, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Keep a conversational pace for base work"}},
	{Slug: "rowing-machine", Title: "Rowing Machine", Group: domain.GroupCardio, Difficulty: domain.DifficultyMid,
		Cues: []string{"Legs, back, arms - in that order"}},
	{Slug: "jump-rope", Title: "Jump Rope", Group: domain.GroupCardio, Difficulty: domain.DifficultyEasy,
		Cues: []string{"Small hops, wrists do the work"}},
}
