package service_test

import (
	"context"
	"testing"
	"time"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/repository"
	"monggle/fitlog/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeDailyStatusRepo struct {
	docs map[string]*domain.DailyStatus
}

func (r *fakeDailyStatusRepo) GetByDate(_ context.Context, userID primitive.ObjectID, date string) (*domain.DailyStatus, error) {
	doc, ok := r.docs[key(userID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *doc
	return &c, nil
}

func (r *fakeDailyStatusRepo) Upsert(_ context.Context, userID primitive.ObjectID, date string, fields repository.DailyStatusFields) (*domain.DailyStatus, error) {
	doc, ok := r.docs[key(userID, date)]
	if !ok {
		doc = &domain.DailyStatus{UserID: userID, Date: date}
		r.docs[key(userID, date)] = doc
	}
	doc.DidWorkout = fields.DidWorkout
	doc.WaterMl = fields.WaterMl
	doc.SleepHours = fields.SleepHours
	doc.Mood = fields.Mood
	doc.Note = fields.Note
	c := *doc
	return &c, nil
}

type fakeWeightRepo struct {
	docs map[string]*domain.WeightEntry
}

func (r *fakeWeightRepo) ListRange(_ context.Context, userID primitive.ObjectID, from, to string) ([]domain.WeightEntry, error) {
	var out []domain.WeightEntry
	for _, doc := range r.docs {
		if doc.UserID == userID && doc.DateKey >= from && doc.DateKey <= to {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (r *fakeWeightRepo) Upsert(_ context.Context, userID primitive.ObjectID, dateKey string, fields repository.WeightFields) (*domain.WeightEntry, error) {
	doc, ok := r.docs[key(userID, dateKey)]
	if !ok {
		doc = &domain.WeightEntry{UserID: userID, DateKey: dateKey}
		r.docs[key(userID, dateKey)] = doc
	}
	if fields.Weight != nil {
		doc.Weight = fields.Weight
	}
	if fields.BodyFat != nil {
		doc.BodyFat = fields.BodyFat
	}
	if fields.Muscle != nil {
		doc.Muscle = fields.Muscle
	}
	if fields.Memo != nil {
		doc.Memo = fields.Memo
	}
	c := *doc
	return &c, nil
}

type fakeDiaryRepo struct {
	docs map[string]*domain.Diary
}

func (r *fakeDiaryRepo) GetByDate(_ context.Context, userID primitive.ObjectID, date string) (*domain.Diary, error) {
	doc, ok := r.docs[key(userID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *doc
	return &c, nil
}

func (r *fakeDiaryRepo) Upsert(_ context.Context, userID primitive.ObjectID, date, title, content string) (*domain.Diary, error) {
	doc, ok := r.docs[key(userID, date)]
	if !ok {
		doc = &domain.Diary{UserID: userID, Date: date}
		r.docs[key(userID, date)] = doc
	}
	doc.Title = title
	doc.Content = content
	c := *doc
	return &c, nil
}

func (r *fakeDiaryRepo) ListRange(_ context.Context, userID primitive.ObjectID, from, to string) ([]domain.Diary, error) {
	var out []domain.Diary
	for _, doc := range r.docs {
		if doc.UserID == userID && doc.Date >= from && doc.Date <= to {
			out = append(out, *doc)
		}
	}
	return out, nil
}

type fakeDietMemoRepo struct {
	docs map[string]*domain.DietMemo
}

func (r *fakeDietMemoRepo) GetByWeek(_ context.Context, userID primitive.ObjectID, weekStart string) (*domain.DietMemo, error) {
	doc, ok := r.docs[key(userID, weekStart)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *doc
	return &c, nil
}

func (r *fakeDietMemoRepo) Upsert(_ context.Context, userID primitive.ObjectID, weekStart, content string, meals []domain.Meal) (*domain.DietMemo, error) {
	doc, ok := r.docs[key(userID, weekStart)]
	if !ok {
		doc = &domain.DietMemo{UserID: userID, WeekStart: weekStart}
		r.docs[key(userID, weekStart)] = doc
	}
	doc.Content = content
	doc.Meals = append([]domain.Meal(nil), meals...)
	c := *doc
	return &c, nil
}

func newTrackerFixture() service.TrackerService {
	return service.NewTrackerService(
		&fakeDailyStatusRepo{docs: make(map[string]*domain.DailyStatus)},
		&fakeWeightRepo{docs: make(map[string]*domain.WeightEntry)},
		&fakeDiaryRepo{docs: make(map[string]*domain.Diary)},
		&fakeDietMemoRepo{docs: make(map[string]*domain.DietMemo)},
	)
}

func TestGetDailyStatus_DefaultPlaceholder(t *testing.T) {
	svc := newTrackerFixture()
	userID := primitive.NewObjectID()

	status, err := svc.GetDailyStatus(context.Background(), userID, "2025-08-20")
	require.NoError(t, err)
	assert.Equal(t, userID, status.UserID)
	assert.Equal(t, domain.MoodSoso, status.Mood)
	assert.False(t, status.DidWorkout)
	assert.Zero(t, status.WaterMl)
}

func TestPutDailyStatus_CoercesBadInput(t *testing.T) {
	svc := newTrackerFixture()
	userID := primitive.NewObjectID()

	status, err := svc.PutDailyStatus(context.Background(), userID, "2025-08-20", repository.DailyStatusFields{
		DidWorkout: true,
		WaterMl:    -100,
		SleepHours: -2,
		Mood:       domain.Mood("ecstatic"),
	})
	require.NoError(t, err)
	assert.True(t, status.DidWorkout)
	assert.Zero(t, status.WaterMl)
	assert.Zero(t, status.SleepHours)
	assert.Equal(t, domain.MoodSoso, status.Mood)

	_, err = svc.PutDailyStatus(context.Background(), userID, "bad-date", repository.DailyStatusFields{})
	assert.ErrorIs(t, err, service.ErrDateKeyRequired)
}

func TestPutWeight_PartialUpdate(t *testing.T) {
	svc := newTrackerFixture()
	userID := primitive.NewObjectID()
	ctx := context.Background()

	w := 81.4
	entry, err := svc.PutWeight(ctx, userID, "2025-08-20", repository.WeightFields{Weight: &w})
	require.NoError(t, err)
	require.NotNil(t, entry.Weight)
	assert.Equal(t, 81.4, *entry.Weight)
	assert.Nil(t, entry.BodyFat)

	// A later write touching only body fat keeps the stored weight.
	bf := 18.2
	entry, err = svc.PutWeight(ctx, userID, "2025-08-20", repository.WeightFields{BodyFat: &bf})
	require.NoError(t, err)
	require.NotNil(t, entry.Weight)
	assert.Equal(t, 81.4, *entry.Weight)
	require.NotNil(t, entry.BodyFat)
	assert.Equal(t, 18.2, *entry.BodyFat)
}

func TestListWeights_DefaultRange(t *testing.T) {
	svc := newTrackerFixture()
	userID := primitive.NewObjectID()
	ctx := context.Background()

	today := time.Now().UTC().Format("2006-01-02")
	w := 80.0
	_, err := svc.PutWeight(ctx, userID, today, repository.WeightFields{Weight: &w})
	require.NoError(t, err)

	old := 75.0
	_, err = svc.PutWeight(ctx, userID, "2020-01-01", repository.WeightFields{Weight: &old})
	require.NoError(t, err)

	entries, err := svc.ListWeights(ctx, userID, "", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, today, entries[0].DateKey)

	entries, err = svc.ListWeights(ctx, userID, "2020-01-01", today)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDiaryRoundTrip(t *testing.T) {
	svc := newTrackerFixture()
	userID := primitive.NewObjectID()
	ctx := context.Background()

	// Reading an untouched day yields an empty placeholder, not an error.
	diary, err := svc.GetDiary(ctx, userID, "2025-08-20")
	require.NoError(t, err)
	assert.Empty(t, diary.Content)

	_, err = svc.PutDiary(ctx, userID, "2025-08-20", "Leg day", "Squats felt heavy.")
	require.NoError(t, err)

	diary, err = svc.GetDiary(ctx, userID, "2025-08-20")
	require.NoError(t, err)
	assert.Equal(t, "Leg day", diary.Title)
	assert.Equal(t, "Squats felt heavy.", diary.Content)
}

func TestDietMemoRoundTrip(t *testing.T) {
	svc := newTrackerFixture()
	userID := primitive.NewObjectID()
	ctx := context.Background()

	memo, err := svc.GetDietMemo(ctx, userID, "2025-08-18")
	require.NoError(t, err)
	assert.NotNil(t, memo.Meals)
	assert.Empty(t, memo.Meals)

	meals := []domain.Meal{{Date: "2025-08-18", Text: "oats with berries"}}
	_, err = svc.PutDietMemo(ctx, userID, "2025-08-18", "cutting week", meals)
	require.NoError(t, err)

	memo, err = svc.GetDietMemo(ctx, userID, "2025-08-18")
	require.NoError(t, err)
	assert.Equal(t, "cutting week", memo.Content)
	assert.Equal(t, meals, memo.Meals)

	_, err = svc.GetDietMemo(ctx, userID, "2025-W34")
	assert.ErrorIs(t, err, service.ErrDateKeyRequired)
}
