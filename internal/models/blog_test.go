package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	unrated := &Blog{}
	assert.Equal(t, float64(0), unrated.AverageRating())

	rated := &Blog{TotalRating: 9, RatingCount: 2}
	assert.Equal(t, 4.5, rated.AverageRating())
}

func TestValidBlogCategory(t *testing.T) {
	for _, c := range BlogCategories {
		assert.True(t, ValidBlogCategory(c), c)
	}
	assert.False(t, ValidBlogCategory("health"), "categories are case sensitive")
	assert.False(t, ValidBlogCategory("Sports"))
	assert.False(t, ValidBlogCategory(""))
}
