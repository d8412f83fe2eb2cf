package mongo

import (
	"context"
	"time"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const weightCollectionName = "weight_entries"

// mongoWeightRepository implements repository.WeightRepository
type mongoWeightRepository struct {
	collection *mongo.Collection
}

// NewMongoWeightRepository creates a new weight-entry repository.
func NewMongoWeightRepository(db *mongo.Database) repository.WeightRepository {
	return &mongoWeightRepository{
		collection: db.Collection(weightCollectionName),
	}
}

// ListRange returns the user's entries with from <= dateKey <= to, ascending.
func (r *mongoWeightRepository) ListRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.WeightEntry, error) {
	filter := bson.M{
		"userId":  userID,
		"dateKey": bson.M{"$gte": from, "$lte": to},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "dateKey", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.WeightEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Upsert applies a partial update to the day's entry: only non-nil fields are
// written, everything else stays as stored.
func (r *mongoWeightRepository) Upsert(ctx context.Context, userID primitive.ObjectID, dateKey string, fields repository.WeightFields) (*domain.WeightEntry, error) {
	now := time.Now().UTC()

	set := bson.M{"updatedAt": now}
	if fields.Weight != nil {
		set["weight"] = *fields.Weight
	}
	if fields.BodyFat != nil {
		set["bodyFat"] = *fields.BodyFat
	}
	if fields.Muscle != nil {
		set["muscle"] = *fields.Muscle
	}
	if fields.Memo != nil {
		set["memo"] = *fields.Memo
	}

	filter := bson.M{"userId": userID, "dateKey": dateKey}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"userId":    userID,
			"dateKey":   dateKey,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var entry domain.WeightEntry
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// EnsureWeightIndexes creates necessary indexes. Call during startup.
func EnsureWeightIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "dateKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
