package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Broadcast is a platform-wide announcement. Deletion is soft: the record
// stays with IsDeleted set and listings filter it out.
type Broadcast struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Message   string `bson:"message" json:"message"`
	IsDeleted bool   `bson:"is_deleted" json:"is_deleted"`
}
