package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mood is the three-state daily mood indicator.
type Mood string

const (
	MoodGood Mood = "good"
	MoodSoso Mood = "soso"
	MoodBad  Mood = "bad"
)

// Valid reports whether m is one of the known mood values.
func (m Mood) Valid() bool {
	switch m {
	case MoodGood, MoodSoso, MoodBad:
		return true
	}
	return false
}

// DailyStatus is the per-day dashboard record: did-workout flag, water and
// sleep counters, mood and a short note. One document per (user, date).
type DailyStatus struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Date       string             `bson:"date" json:"date"` // YYYY-MM-DD
	DidWorkout bool               `bson:"didWorkout" json:"didWorkout"`
	WaterMl    int                `bson:"waterMl" json:"waterMl"`
	SleepHours float64            `bson:"sleepHours" json:"sleepHours"`
	Mood       Mood               `bson:"mood" json:"mood"`
	Note       string             `bson:"note" json:"note"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
