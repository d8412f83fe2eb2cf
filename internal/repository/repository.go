package repository

import (
	"context"
	"time"

	"monggle/fitlog/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors from everything else.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// DayFields is the mutable field set a whole-day write replaces wholesale.
// Last write wins; no merge and no version check.
type DayFields struct {
	Entries     []domain.Entry
	DurationSec int
	StartedAt   *time.Time
	FinishedAt  *time.Time
}

// GroupFields carries a group-scoped write after the service has merged the
// entry list. Entries is the full merged list for the day; GroupDurationSec
// replaces durationByGroup[Group] as a scalar. InitialDurationSec seeds the
// whole-day counter only when the upsert inserts a fresh document, so an
// existing day's counter is never silently zeroed.
type GroupFields struct {
	Group              domain.Group
	Entries            []domain.Entry
	GroupDurationSec   int
	StartedAt          *time.Time
	FinishedAt         *time.Time
	InitialDurationSec int
}

// WorkoutLogRepository persists the per-(user,date) day-documents. Both write
// methods are atomic insert-or-update operations on the (userId,date) key.
type WorkoutLogRepository interface {
	GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.WorkoutLog, error)
	ReplaceDay(ctx context.Context, userID primitive.ObjectID, date string, fields DayFields) (*domain.WorkoutLog, error)
	ReplaceGroup(ctx context.Context, userID primitive.ObjectID, date string, fields GroupFields) (*domain.WorkoutLog, error)
	// ListMonth returns every day-document whose date falls within the given
	// YYYY-MM month, unordered. Read-only.
	ListMonth(ctx context.Context, userID primitive.ObjectID, month string) ([]domain.WorkoutLog, error)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)

	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, exp time.Time) error
	// GetByResetToken finds the user carrying the given token hash with an
	// unexpired reset window.
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	// UpdatePassword swaps the password hash and clears any reset token.
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	SetGoalWeight(ctx context.Context, id primitive.ObjectID, goalWeight *float64) error

	ReplaceFavorites(ctx context.Context, id primitive.ObjectID, slugs []string) ([]string, error)
	AddFavorite(ctx context.Context, id primitive.ObjectID, slug string) ([]string, error)
	RemoveFavorite(ctx context.Context, id primitive.ObjectID, slug string) ([]string, error)
}

// DailyStatusFields is the replaceable payload of a daily-status upsert.
type DailyStatusFields struct {
	DidWorkout bool
	WaterMl    int
	SleepHours float64
	Mood       domain.Mood
	Note       string
}

// DailyStatusRepository persists the per-(user,date) dashboard status.
type DailyStatusRepository interface {
	GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.DailyStatus, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, date string, fields DailyStatusFields) (*domain.DailyStatus, error)
}

// WeightFields carries a partial weight-entry update; nil fields are left
// untouched in the stored document.
type WeightFields struct {
	Weight  *float64
	BodyFat *float64
	Muscle  *float64
	Memo    *string
}

// WeightRepository persists the per-(user,dateKey) body measurements.
type WeightRepository interface {
	ListRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.WeightEntry, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, dateKey string, fields WeightFields) (*domain.WeightEntry, error)
}

// DiaryRepository persists the per-(user,date) journal entries.
type DiaryRepository interface {
	GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.Diary, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, date, title, content string) (*domain.Diary, error)
	ListRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.Diary, error)
}

// DietMemoRepository persists the per-(user,weekStart) diet memos.
type DietMemoRepository interface {
	GetByWeek(ctx context.Context, userID primitive.ObjectID, weekStart string) (*domain.DietMemo, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, weekStart, content string, meals []domain.Meal) (*domain.DietMemo, error)
}

// ExerciseRepository is the read-mostly workout catalog.
type ExerciseRepository interface {
	List(ctx context.Context, group *domain.Group) ([]domain.Exercise, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error)
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, exercises []domain.Exercise) error
}
