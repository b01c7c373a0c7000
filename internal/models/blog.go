package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogCategories is the closed set of accepted blog categories.
// "lonliness" keeps the spelling the frontend already sends.
var BlogCategories = []string{"lonliness", "Health", "Travel", "Education"}

// ValidBlogCategory reports whether c is an accepted category.
func ValidBlogCategory(c string) bool {
	for _, v := range BlogCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Blog stores the cumulative rating sum and count; the average is computed
// on read and never stored.
type Blog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Title       string `bson:"title" json:"title"`
	AuthorName  string `bson:"author_name,omitempty" json:"author_name,omitempty"`
	Description string `bson:"description" json:"description"`
	Category    string `bson:"category" json:"category"`
	Photo       string `bson:"photo,omitempty" json:"photo,omitempty"` // Cloudinary URL

	TotalRating int `bson:"total_rating" json:"total_rating"`
	RatingCount int `bson:"rating_count" json:"rating_count"`

	Author primitive.ObjectID `bson:"author" json:"author"`
}

// AverageRating returns the mean rating, or 0 when unrated.
func (b *Blog) AverageRating() float64 {
	if b.RatingCount == 0 {
		return 0
	}
	return float64(b.TotalRating) / float64(b.RatingCount)
}
