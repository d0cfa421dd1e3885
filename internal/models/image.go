package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompressedImage records the recompressed artifact produced by the
// standalone upload endpoint. It is written once and never updated.
type CompressedImage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Profile   string             `bson:"profile" json:"profile"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
