package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is an interest group / meetup. GroupAdmin is exactly one member
// while the group is non-empty and the zero ObjectID once everyone has
// left. Members is append-ordered: joins append, so Members[0] is always
// the earliest-joined current member. Admin succession relies on that.
type Group struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Title         string    `bson:"title" json:"title"`
	Location      string    `bson:"location" json:"location"`
	StartDateTime time.Time `bson:"start_date_time" json:"start_date_time"`
	EndDateTime   time.Time `bson:"end_date_time" json:"end_date_time"`
	Description   string    `bson:"description" json:"description"`
	Image         string    `bson:"image,omitempty" json:"image,omitempty"` // Cloudinary URL

	CreatedBy  primitive.ObjectID `bson:"created_by" json:"created_by"` // immutable creator
	GroupAdmin primitive.ObjectID `bson:"group_admin,omitempty" json:"group_admin,omitempty"`

	IsLimited      bool                 `bson:"is_limited" json:"is_limited"`
	NumMembers     int                  `bson:"num_members" json:"num_members"` // capacity when IsLimited
	CurrentMembers int                  `bson:"current_members" json:"current_members"`
	Members        []primitive.ObjectID `bson:"members" json:"members"`
}

// HasMember reports whether id is in the member list.
func (g *Group) HasMember(id primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}

// IsFull reports whether a capacity-limited group cannot take another member.
func (g *Group) IsFull() bool {
	return g.IsLimited && g.CurrentMembers >= g.NumMembers
}
