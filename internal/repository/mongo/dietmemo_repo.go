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

const dietMemoCollectionName = "diet_memos"

// mongoDietMemoRepository implements repository.DietMemoRepository
type mongoDietMemoRepository struct {
	collection *mongo.Collection
}

// NewMongoDietMemoRepository creates a new diet-memo repository.
func NewMongoDietMemoRepository(db *mongo.Database) repository.DietMemoRepository {
	return &mongoDietMemoRepository{
		collection: db.Collection(dietMemoCollectionName),
	}
}

// GetByWeek retrieves the memo for (userID, weekStart).
func (r *mongoDietMemoRepository) GetByWeek(ctx context.Context, userID primitive.ObjectID, weekStart string) (*domain.DietMemo, error) {
	var memo domain.DietMemo
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "weekStart": weekStart}).Decode(&memo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &memo, nil
}

// Upsert replaces the week's content and meal lines, creating the memo when
// absent.
func (r *mongoDietMemoRepository) Upsert(ctx context.Context, userID primitive.ObjectID, weekStart, content string, meals []domain.Meal) (*domain.DietMemo, error) {
	if meals == nil {
		meals = []domain.Meal{}
	}
	now := time.Now().UTC()
	filter := bson.M{"userId": userID, "weekStart": weekStart}
	update := bson.M{
		"$set": bson.M{
			"content":   content,
			"meals":     meals,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"userId":    userID,
			"weekStart": weekStart,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var memo domain.DietMemo
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&memo); err != nil {
		return nil, err
	}
	return &memo, nil
}

// EnsureDietMemoIndexes creates necessary indexes. Call during startup.
func EnsureDietMemoIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "weekStart", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
