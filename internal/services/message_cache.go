package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/meetzy/meetzy-backend/internal/database"
	"github.com/meetzy/meetzy-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	recentKeyPrefix = "chat:group:"
	recentKeySuffix = ":recent"
	recentMaxLen    = 50
	recentTTL       = 1 * time.Hour
)

func recentKey(group primitive.ObjectID) string {
	return recentKeyPrefix + group.Hex() + recentKeySuffix
}

// PushMessageToRecentCache appends a freshly sent message to the Redis
// recent list for its group (newest at head, capped at 50, 1h TTL).
// Best-effort: cache failures only get logged.
func PushMessageToRecentCache(msg *models.Message) {
	if database.RedisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	key := recentKey(msg.Group)
	pipe := database.RedisClient.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, recentMaxLen-1)
	pipe.Expire(ctx, key, recentTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("message_cache: push failed for group %s: %v", msg.Group.Hex(), err)
	}
}

// RecentMessagesFromCache returns up to recentMaxLen newest messages for a
// group, oldest-first. (nil, false) on miss.
func RecentMessagesFromCache(ctx context.Context, group primitive.ObjectID) ([]models.Message, bool) {
	if database.RedisClient == nil {
		return nil, false
	}

	raw, err := database.RedisClient.LRange(ctx, recentKey(group), 0, -1).Result()
	if err != nil || len(raw) == 0 {
		return nil, false
	}

	var msgs []models.Message
	for i := len(raw) - 1; i >= 0; i-- {
		var m models.Message
		if json.Unmarshal([]byte(raw[i]), &m) != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, true
}

// ListMessagesWithCache serves a limited listing from the Redis recent
// cache when possible, falling back to Mongo and warming the cache. A full
// listing (limit <= 0) always goes to Mongo. Both paths return the newest
// messages in chronological order.
func ListMessagesWithCache(ctx context.Context, group primitive.ObjectID, limit int64) ([]models.Message, error) {
	if limit > 0 && limit <= recentMaxLen {
		if cached, ok := RecentMessagesFromCache(ctx, group); ok {
			return tailN(cached, limit), nil
		}
		// Warm the cache with the full recent window, not just the
		// requested slice, so later larger limits still hit it.
		msgs, err := ListMessages(ctx, group, recentMaxLen)
		if err != nil {
			return nil, err
		}
		warmRecentCache(ctx, group, msgs)
		return tailN(msgs, limit), nil
	}

	msgs, err := ListMessages(ctx, group, limit)
	if err != nil {
		return nil, err
	}
	warmRecentCache(ctx, group, msgs)
	return msgs, nil
}

// tailN returns the last n messages (the newest, since listings are
// chronological).
func tailN(msgs []models.Message, n int64) []models.Message {
	if int64(len(msgs)) > n {
		return msgs[int64(len(msgs))-n:]
	}
	return msgs
}

// warmRecentCache stores the tail of a Mongo fetch (newest recentMaxLen
// messages) so the next limited listing hits Redis.
func warmRecentCache(ctx context.Context, group primitive.ObjectID, msgs []models.Message) {
	if database.RedisClient == nil || len(msgs) == 0 {
		return
	}
	if len(msgs) > recentMaxLen {
		msgs = msgs[len(msgs)-recentMaxLen:]
	}

	key := recentKey(group)
	pipe := database.RedisClient.Pipeline()
	pipe.Del(ctx, key)
	for i := len(msgs) - 1; i >= 0; i-- {
		data, err := json.Marshal(msgs[i])
		if err != nil {
			continue
		}
		pipe.RPush(ctx, key, data)
	}
	pipe.Expire(ctx, key, recentTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("message_cache: warm failed for group %s: %v", group.Hex(), err)
	}
}

// InvalidateRecentCache drops a group's recent list. Called when a message
// document changes shape outside the send path (e.g. read receipts).
func InvalidateRecentCache(ctx context.Context, group primitive.ObjectID) {
	if database.RedisClient == nil {
		return
	}
	database.RedisClient.Del(ctx, recentKey(group))
}
