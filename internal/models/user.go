package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // bcrypt hash, never returned

	FullName    string     `bson:"full_name,omitempty" json:"full_name,omitempty"`
	DOB         *time.Time `bson:"dob,omitempty" json:"dob,omitempty"`
	Address     string     `bson:"address,omitempty" json:"address,omitempty"`
	PhoneNumber string     `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Website     string     `bson:"website,omitempty" json:"website,omitempty"`
	AllInfo     string     `bson:"all_info,omitempty" json:"all_info,omitempty"`

	IsAdmin bool `bson:"is_admin" json:"is_admin"`

	// Back-references to groups, maintained by the group lifecycle code on
	// every membership transition. A user appears in a group's member list
	// iff that group appears in GroupsJoined.
	GroupsJoined  []primitive.ObjectID `bson:"groups_joined,omitempty" json:"groups_joined,omitempty"`
	GroupsCreated []primitive.ObjectID `bson:"groups_created,omitempty" json:"groups_created,omitempty"`
	AdminOfGroups []primitive.ObjectID `bson:"admin_of_groups,omitempty" json:"admin_of_groups,omitempty"`

	Verified  bool       `bson:"verified" json:"verified"`
	OTP       string     `bson:"otp,omitempty" json:"-"`
	OTPExpiry *time.Time `bson:"otp_expiry,omitempty" json:"-"`
}
