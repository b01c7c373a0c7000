package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetzy/meetzy-backend/internal/models"
)

func chronologicalMessages(n int) []models.Message {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	msgs := make([]models.Message, n)
	for i := range msgs {
		msgs[i] = models.Message{
			ID:        primitive.NewObjectID(),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Content:   "m",
		}
	}
	return msgs
}

func TestReverseMessages(t *testing.T) {
	msgs := chronologicalMessages(5)
	newestFirst := make([]models.Message, 5)
	for i, m := range msgs {
		newestFirst[len(msgs)-1-i] = m
	}

	reverseMessages(newestFirst)
	assert.Equal(t, msgs, newestFirst, "a descending fetch must flip back to chronological order")

	var empty []models.Message
	reverseMessages(empty)
	assert.Empty(t, empty)

	one := chronologicalMessages(1)
	reverseMessages(one)
	assert.Len(t, one, 1)
}

// A limited listing must return the newest messages on both the cache and
// the Mongo path: tailN slices the newest end of a chronological list.
func TestTailN(t *testing.T) {
	msgs := chronologicalMessages(10)

	tail := tailN(msgs, 3)
	assert.Equal(t, msgs[7:], tail, "limited listings serve the newest messages")
	assert.True(t, tail[0].CreatedAt.Before(tail[2].CreatedAt), "still chronological")

	assert.Equal(t, msgs, tailN(msgs, 10))
	assert.Equal(t, msgs, tailN(msgs, 50), "limit past the end returns everything")
	assert.Empty(t, tailN(nil, 3))
}

func TestRecentCacheNilRedisSafe(t *testing.T) {
	group := primitive.NewObjectID()

	PushMessageToRecentCache(&models.Message{Group: group})
	InvalidateRecentCache(context.Background(), group)

	msgs, ok := RecentMessagesFromCache(context.Background(), group)
	assert.False(t, ok)
	assert.Nil(t, msgs)
}
