package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageType tags message content. Valid values: "text", "image", "file".
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)

// ValidMessageType reports whether t is one of the known message types.
func ValidMessageType(t MessageType) bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeFile:
		return true
	}
	return false
}

// Message is one entry in a group's append-only message log. ReadBy grows
// monotonically and always contains the sender.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	Sender      primitive.ObjectID   `bson:"sender" json:"sender"`
	Group       primitive.ObjectID   `bson:"group" json:"group"`
	Content     string               `bson:"content" json:"content"` // text or stored-file URL
	MessageType MessageType          `bson:"message_type" json:"message_type"`
	ReadBy      []primitive.ObjectID `bson:"read_by" json:"read_by"`
}

// MarkReadBy adds user to ReadBy if absent. Returns true when the set changed.
func (m *Message) MarkReadBy(user primitive.ObjectID) bool {
	for _, r := range m.ReadBy {
		if r == user {
			return false
		}
	}
	m.ReadBy = append(m.ReadBy, user)
	return true
}
