package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightEntry is the per-day body measurement record. All measured fields are
// optional pointers so a partial update can leave untouched fields alone.
type WeightEntry struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID  primitive.ObjectID `bson:"userId" json:"userId"`
	DateKey string             `bson:"dateKey" json:"dateKey"` // YYYY-MM-DD

	Weight  *float64 `bson:"weight,omitempty" json:"weight,omitempty"`   // kg
	BodyFat *float64 `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"` // %
	Muscle  *float64 `bson:"muscle,omitempty" json:"muscle,omitempty"`   // kg
	Memo    *string  `bson:"memo,omitempty" json:"memo,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
