package services

import (
	"context"
	"errors"
	"time"

	"github.com/meetzy/meetzy-backend/internal/database"
	"github.com/meetzy/meetzy-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const messagesCollection = "messages"

// EnsureMessageIndexes configures indexes for the messages collection.
// Called on startup from main after Mongo has connected.
func EnsureMessageIndexes(ctx context.Context) error {
	col := database.DB.Collection(messagesCollection)

	// Compound index on (group, created_at) for chronological listing.
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "group", Value: 1},
			{Key: "created_at", Value: 1},
		},
		Options: options.Index().SetName("idx_group_created"),
	})
	return err
}

// SaveMessage appends a message to a group's log. The sender is seeded
// into the read-receipt set at creation time.
func SaveMessage(ctx context.Context, group, sender primitive.ObjectID, content string, msgType models.MessageType) (*models.Message, error) {
	msg := &models.Message{
		CreatedAt:   time.Now().UTC(),
		Sender:      sender,
		Group:       group,
		Content:     content,
		MessageType: msgType,
		ReadBy:      []primitive.ObjectID{sender},
	}

	res, err := database.DB.Collection(messagesCollection).InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)
	return msg, nil
}

// ListMessages returns a group's messages in chronological order. The
// query is restartable: no cursor state is kept between calls. limit <= 0
// means the full log; limit > 0 means the newest limit messages.
func ListMessages(ctx context.Context, group primitive.ObjectID, limit int64) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		// Newest limit messages: fetch descending, flip back to
		// chronological order below.
		opts = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	}

	cur, err := database.DB.Collection(messagesCollection).Find(ctx, bson.M{"group": group}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	if limit > 0 {
		reverseMessages(msgs)
	}
	return msgs, nil
}

func reverseMessages(msgs []models.Message) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}

// MarkMessageRead adds user to the message's read-receipt set and returns
// the updated message, so callers learn the group without a second fetch.
// $addToSet makes the call idempotent: a second call with the same user is
// a no-op.
func MarkMessageRead(ctx context.Context, messageID, user primitive.ObjectID) (*models.Message, error) {
	var m models.Message
	err := database.DB.Collection(messagesCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": messageID},
		bson.M{"$addToSet": bson.M{"read_by": user}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
