package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report statuses form a small state machine:
// pending → reviewed | ignored | action_taken.
const (
	ReportStatusPending     = "pending"
	ReportStatusReviewed    = "reviewed"
	ReportStatusIgnored     = "ignored"
	ReportStatusActionTaken = "action_taken"
)

var ReportCategories = []string{"sex", "terrorism", "abuse", "hateSpeech", "fake", "other"}

// ValidReportStatus reports whether s is one of the allowed statuses.
func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusIgnored, ReportStatusActionTaken:
		return true
	}
	return false
}

// ValidReportCategory reports whether c is one of the allowed categories.
func ValidReportCategory(c string) bool {
	for _, v := range ReportCategories {
		if v == c {
			return true
		}
	}
	return false
}

type Report struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	BlogID      primitive.ObjectID `bson:"blog_id" json:"blog_id"`
	ReportedBy  string             `bson:"reported_by" json:"reported_by"` // free text, "Anonymous" allowed
	Category    string             `bson:"category" json:"category"`
	Status      string             `bson:"status" json:"status"`
	ActionTaken string             `bson:"action_taken,omitempty" json:"action_taken,omitempty"`
}
