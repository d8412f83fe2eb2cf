package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal is one dated line within a weekly diet memo.
type Meal struct {
	Date string `bson:"date" json:"date"` // YYYY-MM-DD
	Text string `bson:"text" json:"text"`
}

// DietMemo is the weekly diet note, keyed by the week's starting date.
// One document per (user, weekStart).
type DietMemo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	WeekStart string             `bson:"weekStart" json:"weekStart"` // YYYY-MM-DD
	Content   string             `bson:"content" json:"content"`
	Meals     []Meal             `bson:"meals" json:"meals"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
