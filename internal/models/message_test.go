package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMarkReadBy(t *testing.T) {
	sender := primitive.NewObjectID()
	reader := primitive.NewObjectID()
	msg := &Message{Sender: sender, ReadBy: []primitive.ObjectID{sender}}

	assert.True(t, msg.MarkReadBy(reader))
	assert.Equal(t, []primitive.ObjectID{sender, reader}, msg.ReadBy)

	// Marking again is a no-op.
	assert.False(t, msg.MarkReadBy(reader))
	assert.Len(t, msg.ReadBy, 2)

	assert.False(t, msg.MarkReadBy(sender), "sender is already a reader")
}

func TestValidMessageType(t *testing.T) {
	assert.True(t, ValidMessageType(MessageTypeText))
	assert.True(t, ValidMessageType(MessageTypeImage))
	assert.True(t, ValidMessageType(MessageTypeFile))
	assert.False(t, ValidMessageType("video"))
	assert.False(t, ValidMessageType(""))
}
