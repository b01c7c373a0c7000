package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetzy/meetzy-backend/internal/models"
)

func newTestGroup(creator primitive.ObjectID, isLimited bool, capacity int) *models.Group {
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	return NewGroup(creator, "Board Games Night", "Berlin", "Weekly meetup", "", start, start.Add(3*time.Hour), isLimited, capacity)
}

func assertCounterMatchesMembers(t *testing.T, g *models.Group) {
	t.Helper()
	assert.Equal(t, len(g.Members), g.CurrentMembers, "current_members must equal len(members)")
}

func TestNewGroup(t *testing.T) {
	creator := primitive.NewObjectID()
	g := newTestGroup(creator, true, 5)

	assert.Equal(t, creator, g.CreatedBy)
	assert.Equal(t, creator, g.GroupAdmin)
	assert.Equal(t, []primitive.ObjectID{creator}, g.Members)
	assert.Equal(t, 1, g.CurrentMembers)
	assert.Equal(t, 5, g.NumMembers)
	assertCounterMatchesMembers(t, g)
}

func TestNewGroupUnlimitedClearsCapacity(t *testing.T) {
	g := newTestGroup(primitive.NewObjectID(), false, 42)
	assert.False(t, g.IsLimited)
	assert.Equal(t, 0, g.NumMembers)
	assert.False(t, g.IsFull())
}

func TestApplyJoin(t *testing.T) {
	creator := primitive.NewObjectID()
	joiner := primitive.NewObjectID()
	g := newTestGroup(creator, false, 0)

	change, err := ApplyJoin(g, joiner)
	require.NoError(t, err)

	assert.Equal(t, joiner, change.UserID)
	assert.True(t, change.AddGroupsJoined)
	assert.False(t, change.AddAdminOf)
	assert.True(t, g.HasMember(joiner))
	assert.Equal(t, creator, g.GroupAdmin, "joining never changes the admin")
	assertCounterMatchesMembers(t, g)
}

func TestApplyJoinAlreadyMember(t *testing.T) {
	creator := primitive.NewObjectID()
	g := newTestGroup(creator, false, 0)

	_, err := ApplyJoin(g, creator)
	assert.ErrorIs(t, err, ErrAlreadyMember)
	assert.Equal(t, 1, g.CurrentMembers)
	assert.Len(t, g.Members, 1)
}

func TestApplyJoinFullGroupUnchanged(t *testing.T) {
	creator := primitive.NewObjectID()
	g := newTestGroup(creator, true, 2)

	_, err := ApplyJoin(g, primitive.NewObjectID())
	require.NoError(t, err)
	require.True(t, g.IsFull())

	before := *g
	beforeMembers := append([]primitive.ObjectID(nil), g.Members...)

	_, err = ApplyJoin(g, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrGroupFull)
	assert.Equal(t, before.CurrentMembers, g.CurrentMembers)
	assert.Equal(t, before.GroupAdmin, g.GroupAdmin)
	assert.Equal(t, beforeMembers, g.Members)
	assertCounterMatchesMembers(t, g)
}

func TestApplyLeaveNonMember(t *testing.T) {
	g := newTestGroup(primitive.NewObjectID(), false, 0)

	_, err := ApplyLeave(g, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotMember)
	assertCounterMatchesMembers(t, g)
}

func TestApplyLeaveRegularMember(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	g := newTestGroup(creator, false, 0)
	_, err := ApplyJoin(g, member)
	require.NoError(t, err)

	changes, err := ApplyLeave(g, member)
	require.NoError(t, err)

	require.Len(t, changes, 1)
	assert.Equal(t, member, changes[0].UserID)
	assert.True(t, changes[0].RemoveGroupsJoined)
	assert.False(t, changes[0].RemoveAdminOf, "non-admin leaver keeps no admin back-reference to purge")
	assert.Equal(t, creator, g.GroupAdmin)
	assert.False(t, g.HasMember(member))
	assertCounterMatchesMembers(t, g)
}

func TestApplyLeaveAdminSuccession(t *testing.T) {
	creator := primitive.NewObjectID()
	second := primitive.NewObjectID()
	third := primitive.NewObjectID()
	g := newTestGroup(creator, false, 0)
	_, err := ApplyJoin(g, second)
	require.NoError(t, err)
	_, err = ApplyJoin(g, third)
	require.NoError(t, err)

	changes, err := ApplyLeave(g, creator)
	require.NoError(t, err)

	// Earliest-joined remaining member inherits the admin role.
	assert.Equal(t, second, g.GroupAdmin)
	assert.True(t, g.HasMember(g.GroupAdmin), "admin must be a member")

	require.Len(t, changes, 2)
	assert.True(t, changes[0].RemoveGroupsJoined)
	assert.True(t, changes[0].RemoveAdminOf)
	assert.Equal(t, second, changes[1].UserID)
	assert.True(t, changes[1].AddAdminOf)
	assertCounterMatchesMembers(t, g)
}

func TestApplyLeaveSoleMemberEmptiesGroup(t *testing.T) {
	creator := primitive.NewObjectID()
	g := newTestGroup(creator, false, 0)

	changes, err := ApplyLeave(g, creator)
	require.NoError(t, err)

	require.Len(t, changes, 1)
	assert.Empty(t, g.Members)
	assert.Equal(t, 0, g.CurrentMembers)
	assert.Equal(t, primitive.NilObjectID, g.GroupAdmin, "empty group has no admin")
}

func TestApplyRemoveMember(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	g := newTestGroup(creator, false, 0)
	_, err := ApplyJoin(g, member)
	require.NoError(t, err)

	changes, err := ApplyRemoveMember(g, member)
	require.NoError(t, err)

	require.Len(t, changes, 1)
	assert.Equal(t, member, changes[0].UserID)
	assert.True(t, changes[0].RemoveGroupsJoined)
	assert.True(t, changes[0].RemoveAdminOf, "removal purges the admin back-reference even for non-admins")
	assert.False(t, g.HasMember(member))
	assert.Equal(t, creator, g.GroupAdmin)
	assertCounterMatchesMembers(t, g)
}

func TestApplyRemoveMemberNonMember(t *testing.T) {
	g := newTestGroup(primitive.NewObjectID(), false, 0)
	before := len(g.Members)

	_, err := ApplyRemoveMember(g, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotMember)
	assert.Len(t, g.Members, before)
}

func TestApplyRemoveAdminSuccession(t *testing.T) {
	creator := primitive.NewObjectID()
	second := primitive.NewObjectID()
	g := newTestGroup(creator, false, 0)
	_, err := ApplyJoin(g, second)
	require.NoError(t, err)

	changes, err := ApplyRemoveMember(g, creator)
	require.NoError(t, err)

	assert.Equal(t, second, g.GroupAdmin)
	require.Len(t, changes, 2)
	assert.Equal(t, second, changes[1].UserID)
	assert.True(t, changes[1].AddAdminOf)
}

// Full capacity scenario: limited group of 2, a second member joins, a third
// is rejected, then the admin leaves and the second member takes over.
func TestLimitedGroupLifecycle(t *testing.T) {
	creator := primitive.NewObjectID()
	second := primitive.NewObjectID()
	third := primitive.NewObjectID()
	g := newTestGroup(creator, true, 2)

	_, err := ApplyJoin(g, second)
	require.NoError(t, err)

	_, err = ApplyJoin(g, third)
	assert.ErrorIs(t, err, ErrGroupFull)

	changes, err := ApplyLeave(g, creator)
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, second, g.GroupAdmin)
	assert.Equal(t, []primitive.ObjectID{second}, g.Members)
	assert.Equal(t, 1, g.CurrentMembers)
	assert.False(t, g.IsFull())
}

func TestGroupPatchApply(t *testing.T) {
	g := newTestGroup(primitive.NewObjectID(), true, 5)
	g.Image = "https://res.cloudinary.com/demo/image/upload/v1/group_uploads/old.jpg"
	origTitle := g.Title
	origLocation := g.Location

	newDesc := "Updated description"
	newImage := "https://res.cloudinary.com/demo/image/upload/v1/group_uploads/new.jpg"
	patch := GroupPatch{Description: &newDesc, Image: &newImage}

	oldImage, changed := patch.Apply(g)
	assert.True(t, changed)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/group_uploads/old.jpg", oldImage)
	assert.Equal(t, newDesc, g.Description)
	assert.Equal(t, newImage, g.Image)
	assert.Equal(t, origTitle, g.Title, "omitted fields stay untouched")
	assert.Equal(t, origLocation, g.Location)
}

func TestGroupPatchEmptyIsNoop(t *testing.T) {
	g := newTestGroup(primitive.NewObjectID(), false, 0)
	before := *g

	oldImage, changed := GroupPatch{}.Apply(g)
	assert.False(t, changed)
	assert.Empty(t, oldImage)
	assert.Equal(t, before.UpdatedAt, g.UpdatedAt)
}

func TestGroupPatchSameImageNotReplaced(t *testing.T) {
	g := newTestGroup(primitive.NewObjectID(), false, 0)
	g.Image = "https://res.cloudinary.com/demo/image/upload/v1/a.jpg"
	same := g.Image

	oldImage, changed := GroupPatch{Image: &same}.Apply(g)
	assert.False(t, changed)
	assert.Empty(t, oldImage)
}
