package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account. Every tracked record in the system hangs off a
// user's ObjectID.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"` // unique, stored lowercase
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Nickname     string             `bson:"nickname" json:"nickname"`

	// Password-reset state; set by the forgot-password flow and cleared once
	// a reset completes or expires.
	ResetTokenHash string     `bson:"resetTokenHash,omitempty" json:"-"`
	ResetTokenExp  *time.Time `bson:"resetTokenExp,omitempty" json:"-"`

	// ExerciseStartDate defaults to the registration time and feeds the
	// "day N" counter on the dashboard.
	ExerciseStartDate time.Time `bson:"exerciseStartDate" json:"exerciseStartDate"`

	// FavoriteExercises holds catalog exercise slugs pinned by the user.
	FavoriteExercises []string `bson:"favoriteExercises" json:"favoriteExercises"`

	// GoalWeight in kg; nil when the user never set one.
	GoalWeight *float64 `bson:"goalWeight" json:"goalWeight"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
