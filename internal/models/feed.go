package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var FeedFeelings = []string{"happy", "sad", "excited", "angry", "alone", "neutral"}

// ValidFeedFeeling reports whether f is one of the allowed feelings.
func ValidFeedFeeling(f string) bool {
	for _, v := range FeedFeelings {
		if v == f {
			return true
		}
	}
	return false
}

// Feed is a public mood-board post. Not tied to a user account; the
// display name is whatever the poster typed.
type Feed struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Title       string `bson:"title" json:"title"`
	Content     string `bson:"content" json:"content"`
	Feeling     string `bson:"feeling" json:"feeling"`
	Location    string `bson:"location,omitempty" json:"location,omitempty"`
	YourName    string `bson:"your_name" json:"your_name"`
	Likes       int    `bson:"likes" json:"likes"`
	LikedByUser bool   `bson:"liked_by_user" json:"liked_by_user"`
}
