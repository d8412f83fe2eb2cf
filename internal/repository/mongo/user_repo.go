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

const userCollectionName = "users"

// mongoUserRepository implements repository.UserRepository
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new User repository.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user account.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" || user.Nickname == "" {
		return primitive.NilObjectID, errors.New("user requires email, passwordHash and nickname")
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ExerciseStartDate.IsZero() {
		user.ExerciseStartDate = now
	}
	if user.FavoriteExercises == nil {
		user.FavoriteExercises = []string{}
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted user ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves a user by their (lowercased) email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetResetToken stores the hashed reset token and its expiry on the user.
func (r *mongoUserRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, exp time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"resetTokenHash": tokenHash,
			"resetTokenExp":  exp,
			"updatedAt":      time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetByResetToken finds the user holding the token hash with an unexpired
// reset window.
func (r *mongoUserRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	filter := bson.M{
		"resetTokenHash": tokenHash,
		"resetTokenExp":  bson.M{"$gt": now},
	}
	var user domain.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword swaps the password hash and clears any pending reset token.
func (r *mongoUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	update := bson.M{
		"$set": bson.M{
			"passwordHash": passwordHash,
			"updatedAt":    time.Now().UTC(),
		},
		"$unset": bson.M{
			"resetTokenHash": "",
			"resetTokenExp":  "",
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetGoalWeight updates (or clears, when nil) the user's goal weight.
func (r *mongoUserRepository) SetGoalWeight(ctx context.Context, id primitive.ObjectID, goalWeight *float64) error {
	update := bson.M{
		"$set": bson.M{
			"goalWeight": goalWeight,
			"updatedAt":  time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReplaceFavorites overwrites the favorite set with the given slugs.
func (r *mongoUserRepository) ReplaceFavorites(ctx context.Context, id primitive.ObjectID, slugs []string) ([]string, error) {
	if slugs == nil {
		slugs = []string{}
	}
	update := bson.M{
		"$set": bson.M{
			"favoriteExercises": slugs,
			"updatedAt":         time.Now().UTC(),
		},
	}
	return r.updateFavorites(ctx, id, update)
}

// AddFavorite adds one slug to the favorite set if not already present.
func (r *mongoUserRepository) AddFavorite(ctx context.Context, id primitive.ObjectID, slug string) ([]string, error) {
	update := bson.M{
		"$addToSet": bson.M{"favoriteExercises": slug},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.updateFavorites(ctx, id, update)
}

// RemoveFavorite removes one slug from the favorite set.
func (r *mongoUserRepository) RemoveFavorite(ctx context.Context, id primitive.ObjectID, slug string) ([]string, error) {
	update := bson.M{
		"$pull": bson.M{"favoriteExercises": slug},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.updateFavorites(ctx, id, update)
}

func (r *mongoUserRepository) updateFavorites(ctx context.Context, id primitive.ObjectID, update bson.M) ([]string, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user domain.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if user.FavoriteExercises == nil {
		return []string{}, nil
	}
	return user.FavoriteExercises, nil
}

// EnsureUserIndexes creates necessary indexes. Call during startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
