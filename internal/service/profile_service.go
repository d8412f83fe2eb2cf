package service

import (
	"context"
	"errors"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidGoalWeight = errors.New("goal weight must be positive")
)

// ProfileService covers the authenticated user's own record: profile reads,
// the goal weight and the favorite-exercise set.
type ProfileService interface {
	GetMe(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	SetGoalWeight(ctx context.Context, userID primitive.ObjectID, goalWeight *float64) (*domain.User, error)

	Favorites(ctx context.Context, userID primitive.ObjectID) ([]string, error)
	ReplaceFavorites(ctx context.Context, userID primitive.ObjectID, slugs []string) ([]string, error)
	AddFavorite(ctx context.Context, userID primitive.ObjectID, slug string) ([]string, error)
	RemoveFavorite(ctx context.Context, userID primitive.ObjectID, slug string) ([]string, error)
	ToggleFavorite(ctx context.Context, userID primitive.ObjectID, slug string) ([]string, error)
}

type profileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetMe(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// SetGoalWeight updates the goal weight; nil clears it.
func (s *profileService) SetGoalWeight(ctx context.Context, userID primitive.ObjectID, goalWeight *float64) (*domain.User, error) {
	if goalWeight != nil && *goalWeight <= 0 {
		return nil, ErrInvalidGoalWeight
	}
	if err := s.userRepo.SetGoalWeight(ctx, userID, goalWeight); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetMe(ctx, userID)
}

func (s *profileService) Favorites(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.FavoriteExercises == nil {
		return []string{}, nil
	}
	return user.FavoriteExercises, nil
}

// ReplaceFavorites overwrites the whole set, dropping duplicates while
// keeping first-seen order.
func (s *profileService) ReplaceFavorites(ctx context.Context, userID primitive.ObjectID, slugs []string) ([]string, error) {
	seen := make(map[string]bool, len(slugs))
	deduped := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		deduped = append(deduped, slug)
	}
	return s.translateFavorites(s.userRepo.ReplaceFavorites(ctx, userID, deduped))
}

func (s *profileService) AddFavorite(ctx context.Context, userID primitive.ObjectID, slug string) ([]string, error) {
	return s.translateFavorites(s.userRepo.AddFavorite(ctx, userID, slug))
}

func (s *profileService) RemoveFavorite(ctx context.Context, userID primitive.ObjectID, slug string) ([]string, error) {
	return s.translateFavorites(s.userRepo.RemoveFavorite(ctx, userID, slug))
}

// ToggleFavorite flips one slug's membership. Read-then-write, same as the
// per-item buttons in the client; no atomicity needed for a single user's own
// favorites.
func (s *profileService) ToggleFavorite(ctx context.Context, userID primitive.ObjectID, slug string) ([]string, error) {
	current, err := s.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, fav := range current {
		if fav == slug {
			return s.RemoveFavorite(ctx, userID, slug)
		}
	}
	return s.AddFavorite(ctx, userID, slug)
}

func (s *profileService) translateFavorites(favorites []string, err error) ([]string, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return favorites, nil
}
