package services

import (
	"time"

	"github.com/meetzy/meetzy-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership transitions are pure functions over a Group value. They mutate
// the in-memory group and return the back-reference updates that must be
// applied to the affected user documents. The caller persists the group and
// the user updates as sequential writes (no multi-document transaction).

// MemberChange lists the back-reference updates for one user resulting
// from a membership transition.
type MemberChange struct {
	UserID primitive.ObjectID

	AddGroupsJoined    bool
	RemoveGroupsJoined bool
	AddAdminOf         bool
	RemoveAdminOf      bool
}

// NewGroup builds a group for its creator: sole member, admin, count 1.
// Required fields must already be validated by the caller.
func NewGroup(creator primitive.ObjectID, title, location, description, image string, start, end time.Time, isLimited bool, numMembers int) *models.Group {
	now := time.Now().UTC()
	if !isLimited {
		numMembers = 0
	}
	return &models.Group{
		CreatedAt:      now,
		UpdatedAt:      now,
		Title:          title,
		Location:       location,
		StartDateTime:  start,
		EndDateTime:    end,
		Description:    description,
		Image:          image,
		CreatedBy:      creator,
		GroupAdmin:     creator,
		IsLimited:      isLimited,
		NumMembers:     numMembers,
		CurrentMembers: 1,
		Members:        []primitive.ObjectID{creator},
	}
}

// ApplyJoin adds user to the group. Fails with ErrAlreadyMember for an
// existing member and ErrGroupFull when a limited group is at capacity;
// in both cases the group is left unchanged.
func ApplyJoin(g *models.Group, user primitive.ObjectID) (MemberChange, error) {
	if g.HasMember(user) {
		return MemberChange{}, ErrAlreadyMember
	}
	if g.IsFull() {
		return MemberChange{}, ErrGroupFull
	}

	g.Members = append(g.Members, user)
	g.CurrentMembers++

	return MemberChange{UserID: user, AddGroupsJoined: true}, nil
}

// ApplyLeave removes user from the group, handing the admin role to the
// earliest-joined remaining member when the leaver was admin. Fails with
// ErrNotMember when user is not in the member list.
func ApplyLeave(g *models.Group, user primitive.ObjectID) ([]MemberChange, error) {
	if !g.HasMember(user) {
		return nil, ErrNotMember
	}

	wasAdmin := g.GroupAdmin == user
	removeMember(g, user)

	leaver := MemberChange{UserID: user, RemoveGroupsJoined: true}
	if wasAdmin {
		leaver.RemoveAdminOf = true
	}
	changes := []MemberChange{leaver}

	if wasAdmin {
		if successor, ok := succeedAdmin(g); ok {
			changes = append(changes, MemberChange{UserID: successor, AddAdminOf: true})
		}
	}
	return changes, nil
}

// ApplyRemoveMember removes target from the group on behalf of the group
// admin (the authorization gate runs before this). Same succession rules
// as ApplyLeave; the target's joined and admin back-references are both
// purged regardless of role.
func ApplyRemoveMember(g *models.Group, target primitive.ObjectID) ([]MemberChange, error) {
	if !g.HasMember(target) {
		return nil, ErrNotMember
	}

	wasAdmin := g.GroupAdmin == target
	removeMember(g, target)

	changes := []MemberChange{{UserID: target, RemoveGroupsJoined: true, RemoveAdminOf: true}}

	if wasAdmin {
		if successor, ok := succeedAdmin(g); ok {
			changes = append(changes, MemberChange{UserID: successor, AddAdminOf: true})
		}
	}
	return changes, nil
}

// removeMember drops user from the member list and decrements the counter,
// flooring at zero.
func removeMember(g *models.Group, user primitive.ObjectID) {
	members := g.Members[:0]
	for _, m := range g.Members {
		if m != user {
			members = append(members, m)
		}
	}
	g.Members = members
	if g.CurrentMembers > 0 {
		g.CurrentMembers--
	}
}

// succeedAdmin promotes the earliest-joined remaining member. Members is
// append-ordered on join, so Members[0] is that member. Empty groups end
// up with no admin.
func succeedAdmin(g *models.Group) (primitive.ObjectID, bool) {
	if len(g.Members) == 0 {
		g.GroupAdmin = primitive.NilObjectID
		return primitive.NilObjectID, false
	}
	g.GroupAdmin = g.Members[0]
	return g.GroupAdmin, true
}

// GroupPatch carries a partial group update: nil fields are left untouched,
// so omitted and zero-valued inputs are distinguishable.
type GroupPatch struct {
	Title         *string
	Location      *string
	StartDateTime *time.Time
	EndDateTime   *time.Time
	Description   *string
	IsLimited     *bool
	NumMembers    *int
	Image         *string
}

// Apply copies the present fields onto g and returns the previous image
// URL when the image was replaced, so the caller can release the old blob.
func (p GroupPatch) Apply(g *models.Group) (oldImage string, changed bool) {
	if p.Title != nil {
		g.Title = *p.Title
		changed = true
	}
	if p.Location != nil {
		g.Location = *p.Location
		changed = true
	}
	if p.StartDateTime != nil {
		g.StartDateTime = *p.StartDateTime
		changed = true
	}
	if p.EndDateTime != nil {
		g.EndDateTime = *p.EndDateTime
		changed = true
	}
	if p.Description != nil {
		g.Description = *p.Description
		changed = true
	}
	if p.IsLimited != nil {
		g.IsLimited = *p.IsLimited
		changed = true
	}
	if p.NumMembers != nil {
		g.NumMembers = *p.NumMembers
		changed = true
	}
	if p.Image != nil && *p.Image != g.Image {
		oldImage = g.Image
		g.Image = *p.Image
		changed = true
	}
	if changed {
		g.UpdatedAt = time.Now().UTC()
	}
	return oldImage, changed
}
