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

const dailyStatusCollectionName = "daily_statuses"

// mongoDailyStatusRepository implements repository.DailyStatusRepository
type mongoDailyStatusRepository struct {
	collection *mongo.Collection
}

// NewMongoDailyStatusRepository creates a new daily-status repository.
func NewMongoDailyStatusRepository(db *mongo.Database) repository.DailyStatusRepository {
	return &mongoDailyStatusRepository{
		collection: db.Collection(dailyStatusCollectionName),
	}
}

// GetByDate retrieves the status document for (userID, date).
func (r *mongoDailyStatusRepository) GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.DailyStatus, error) {
	var status domain.DailyStatus
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &status, nil
}

// Upsert replaces the day's status fields, creating the document when absent.
func (r *mongoDailyStatusRepository) Upsert(ctx context.Context, userID primitive.ObjectID, date string, fields repository.DailyStatusFields) (*domain.DailyStatus, error) {
	now := time.Now().UTC()
	filter := bson.M{"userId": userID, "date": date}
	update := bson.M{
		"$set": bson.M{
			"didWorkout": fields.DidWorkout,
			"waterMl":    fields.WaterMl,
			"sleepHours": fields.SleepHours,
			"mood":       fields.Mood,
			"note":       fields.Note,
			"updatedAt":  now,
		},
		"$setOnInsert": bson.M{
			"userId":    userID,
			"date":      date,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var status domain.DailyStatus
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}

// EnsureDailyStatusIndexes creates necessary indexes. Call during startup.
func EnsureDailyStatusIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
