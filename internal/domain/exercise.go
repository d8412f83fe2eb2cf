package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty is the catalog's coarse difficulty rating.
type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyMid  Difficulty = "mid"
	DifficultyHard Difficulty = "hard"
)

// Exercise is a catalog entry the routine builder picks from. Workout-log
// entries snapshot Slug/Title/Group at write time and never re-query the
// catalog, so editing an Exercise does not rewrite history.
type Exercise struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Slug       string             `bson:"slug" json:"id"` // stable unique id, e.g. "bench-press"
	Title      string             `bson:"title" json:"title"`
	Group      Group              `bson:"group" json:"group"`
	Difficulty Difficulty         `bson:"difficulty" json:"difficulty"`
	Cues       []string           `bson:"cues" json:"cues"`
}
