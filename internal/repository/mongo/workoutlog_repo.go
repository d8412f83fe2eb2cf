package mongo

import (
	"context"
	"errors"
	"time"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutLogCollectionName = "workout_logs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new workout-log repository.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

// GetByDate retrieves the day-document for (userID, date).
// Absence is reported as repository.ErrNotFound; callers decide whether that
// is an empty state or an error.
func (r *mongoWorkoutLogRepository) GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	filter := bson.M{"userId": userID, "date": date}
	err := r.collection.FindOne(ctx, filter).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// ReplaceDay atomically replaces the whole day's mutable fields, creating the
// document when absent. Last write wins.
func (r *mongoWorkoutLogRepository) ReplaceDay(ctx context.Context, userID primitive.ObjectID, date string, fields repository.DayFields) (*domain.WorkoutLog, error) {
	now := time.Now().UTC()
	entries := fields.Entries
	if entries == nil {
		entries = []domain.Entry{}
	}

	filter := bson.M{"userId": userID, "date": date}
	update := bson.M{
		"$set": bson.M{
			"entries":     entries,
			"durationSec": fields.DurationSec,
			"startedAt":   fields.StartedAt,
			"finishedAt":  fields.FinishedAt,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"userId":    userID,
			"date":      date,
			"createdAt": now,
		},
	}

	return r.findOneAndUpsert(ctx, filter, update)
}

// ReplaceGroup applies a merged group-scoped write in a single upsert:
// the merged entry list and session bounds are set, durationByGroup[group] is
// replaced as a scalar, and the whole-day counter is seeded only on insert.
func (r *mongoWorkoutLogRepository) ReplaceGroup(ctx context.Context, userID primitive.ObjectID, date string, fields repository.GroupFields) (*domain.WorkoutLog, error) {
	now := time.Now().UTC()
	entries := fields.Entries
	if entries == nil {
		entries = []domain.Entry{}
	}

	filter := bson.M{"userId": userID, "date": date}
	update := bson.M{
		"$set": bson.M{
			"entries":    entries,
			"startedAt":  fields.StartedAt,
			"finishedAt": fields.FinishedAt,
			"durationByGroup." + string(fields.Group): fields.GroupDurationSec,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"userId":      userID,
			"date":        date,
			"durationSec": fields.InitialDurationSec,
			"createdAt":   now,
		},
	}

	return r.findOneAndUpsert(ctx, filter, update)
}

func (r *mongoWorkoutLogRepository) findOneAndUpsert(ctx context.Context, filter, update bson.M) (*domain.WorkoutLog, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var log domain.WorkoutLog
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&log); err != nil {
		return nil, err
	}
	return &log, nil
}

// ListMonth fetches every day-document of the given YYYY-MM month. The date
// key is stored as a string, so an anchored prefix regex covers the range.
func (r *mongoWorkoutLogRepository) ListMonth(ctx context.Context, userID primitive.ObjectID, month string) ([]domain.WorkoutLog, error) {
	filter := bson.M{
		"userId": userID,
		"date":   primitive.Regex{Pattern: "^" + month + `-\d{2}$`},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.WorkoutLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureWorkoutLogIndexes creates necessary indexes. Call during startup.
// The unique (userId, date) index is what guarantees at most one day-document
// per user per calendar date.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
