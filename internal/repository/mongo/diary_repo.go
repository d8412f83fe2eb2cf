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

const diaryCollectionName = "diaries"

// mongoDiaryRepository implements repository.DiaryRepository
type mongoDiaryRepository struct {
	collection *mongo.Collection
}

// NewMongoDiaryRepository creates a new diary repository.
func NewMongoDiaryRepository(db *mongo.Database) repository.DiaryRepository {
	return &mongoDiaryRepository{
		collection: db.Collection(diaryCollectionName),
	}
}

// GetByDate retrieves the diary entry for (userID, date).
func (r *mongoDiaryRepository) GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.Diary, error) {
	var diary domain.Diary
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&diary)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &diary, nil
}

// Upsert replaces the day's title and content, creating the entry when absent.
func (r *mongoDiaryRepository) Upsert(ctx context.Context, userID primitive.ObjectID, date, title, content string) (*domain.Diary, error) {
	now := time.Now().UTC()
	filter := bson.M{"userId": userID, "date": date}
	update := bson.M{
		"$set": bson.M{
			"title":     title,
			"content":   content,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"userId":    userID,
			"date":      date,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var diary domain.Diary
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&diary); err != nil {
		return nil, err
	}
	return &diary, nil
}

// ListRange returns the user's entries with from <= date <= to, ascending.
func (r *mongoDiaryRepository) ListRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.Diary, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": from, "$lte": to},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var diaries []domain.Diary
	if err = cursor.All(ctx, &diaries); err != nil {
		return nil, err
	}
	return diaries, nil
}

// EnsureDiaryIndexes creates necessary indexes. Call during startup.
func EnsureDiaryIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
