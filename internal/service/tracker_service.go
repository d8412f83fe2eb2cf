package service

import (
	"context"
	"errors"
	"time"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackerService bundles the thin day/week-keyed aggregates around the
// workout log: daily status, weights, diary and the weekly diet memo. Each
// follows the same pattern as the day-document: upsert on write, defaults on
// a read that finds nothing.
type TrackerService interface {
	GetDailyStatus(ctx context.Context, userID primitive.ObjectID, date string) (*domain.DailyStatus, error)
	PutDailyStatus(ctx context.Context, userID primitive.ObjectID, date string, fields repository.DailyStatusFields) (*domain.DailyStatus, error)

	ListWeights(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.WeightEntry, error)
	PutWeight(ctx context.Context, userID primitive.ObjectID, dateKey string, fields repository.WeightFields) (*domain.WeightEntry, error)

	GetDiary(ctx context.Context, userID primitive.ObjectID, date string) (*domain.Diary, error)
	PutDiary(ctx context.Context, userID primitive.ObjectID, date, title, content string) (*domain.Diary, error)
	ListDiaries(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.Diary, error)

	GetDietMemo(ctx context.Context, userID primitive.ObjectID, weekStart string) (*domain.DietMemo, error)
	PutDietMemo(ctx context.Context, userID primitive.ObjectID, weekStart, content string, meals []domain.Meal) (*domain.DietMemo, error)
}

type trackerService struct {
	dailyRepo  repository.DailyStatusRepository
	weightRepo repository.WeightRepository
	diaryRepo  repository.DiaryRepository
	memoRepo   repository.DietMemoRepository
}

// NewTrackerService creates a new instance of trackerService.
func NewTrackerService(
	dailyRepo repository.DailyStatusRepository,
	weightRepo repository.WeightRepository,
	diaryRepo repository.DiaryRepository,
	memoRepo repository.DietMemoRepository,
) TrackerService {
	return &trackerService{
		dailyRepo:  dailyRepo,
		weightRepo: weightRepo,
		diaryRepo:  diaryRepo,
		memoRepo:   memoRepo,
	}
}

// GetDailyStatus returns the stored status, or an all-defaults placeholder
// when the day was never touched.
func (s *trackerService) GetDailyStatus(ctx context.Context, userID primitive.ObjectID, date string) (*domain.DailyStatus, error) {
	if !domain.IsDateKey(date) {
		return nil, ErrDateKeyRequired
	}
	status, err := s.dailyRepo.GetByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.DailyStatus{
				UserID: userID,
				Date:   date,
				Mood:   domain.MoodSoso,
				Note:   "",
			}, nil
		}
		return nil, err
	}
	return status, nil
}

// PutDailyStatus upserts the day's status. An unknown mood is coerced to
// "soso" rather than rejected; the client's three buttons are the only
// legitimate source anyway.
func (s *trackerService) PutDailyStatus(ctx context.Context, userID primitive.ObjectID, date string, fields repository.DailyStatusFields) (*domain.DailyStatus, error) {
	if !domain.IsDateKey(date) {
		return nil, ErrDateKeyRequired
	}
	if !fields.Mood.Valid() {
		fields.Mood = domain.MoodSoso
	}
	if fields.WaterMl < 0 {
		fields.WaterMl = 0
	}
	if fields.SleepHours < 0 {
		fields.SleepHours = 0
	}
	return s.dailyRepo.Upsert(ctx, userID, date, fields)
}

// ListWeights returns entries in [from, to], defaulting to the trailing 30
// days when the caller gives no range.
func (s *trackerService) ListWeights(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.WeightEntry, error) {
	now := time.Now().UTC()
	if to == "" {
		to = now.Format("2006-01-02")
	}
	if from == "" {
		from = now.AddDate(0, 0, -29).Format("2006-01-02")
	}
	if !domain.IsDateKey(from) || !domain.IsDateKey(to) {
		return nil, ErrDateKeyRequired
	}

	entries, err := s.weightRepo.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.WeightEntry{}
	}
	return entries, nil
}

// PutWeight partially updates the day's measurements; nil fields stay as
// stored.
func (s *trackerService) PutWeight(ctx context.Context, userID primitive.ObjectID, dateKey string, fields repository.WeightFields) (*domain.WeightEntry, error) {
	if !domain.IsDateKey(dateKey) {
		return nil, ErrDateKeyRequired
	}
	return s.weightRepo.Upsert(ctx, userID, dateKey, fields)
}

// GetDiary returns the stored entry, or an empty placeholder.
func (s *trackerService) GetDiary(ctx context.Context, userID primitive.ObjectID, date string) (*domain.Diary, error) {
	if !domain.IsDateKey(date) {
		return nil, ErrDateKeyRequired
	}
	diary, err := s.diaryRepo.GetByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.Diary{UserID: userID, Date: date}, nil
		}
		return nil, err
	}
	return diary, nil
}

func (s *trackerService) PutDiary(ctx context.Context, userID primitive.ObjectID, date, title, content string) (*domain.Diary, error) {
	if !domain.IsDateKey(date) {
		return nil, ErrDateKeyRequired
	}
	return s.diaryRepo.Upsert(ctx, userID, date, title, content)
}

func (s *trackerService) ListDiaries(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.Diary, error) {
	if !domain.IsDateKey(from) || !domain.IsDateKey(to) {
		return nil, ErrDateKeyRequired
	}
	diaries, err := s.diaryRepo.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if diaries == nil {
		diaries = []domain.Diary{}
	}
	return diaries, nil
}

// GetDietMemo returns the stored weekly memo, or an empty placeholder.
func (s *trackerService) GetDietMemo(ctx context.Context, userID primitive.ObjectID, weekStart string) (*domain.DietMemo, error) {
	if !domain.IsDateKey(weekStart) {
		return nil, ErrDateKeyRequired
	}
	memo, err := s.memoRepo.GetByWeek(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.DietMemo{
				UserID:    userID,
				WeekStart: weekStart,
				Meals:     []domain.Meal{},
			}, nil
		}
		return nil, err
	}
	return memo, nil
}

func (s *trackerService) PutDietMemo(ctx context.Context, userID primitive.ObjectID, weekStart, content string, meals []domain.Meal) (*domain.DietMemo, error) {
	if !domain.IsDateKey(weekStart) {
		return nil, ErrDateKeyRequired
	}
	return s.memoRepo.Upsert(ctx, userID, weekStart, content, meals)
}
