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
)

const groupsCollection = "groups"

// FindGroupByID loads a group document. Returns ErrNotFound for a missing id.
func FindGroupByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var g models.Group
	err := database.DB.Collection(groupsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// InsertGroup stores a new group and records the three creator
// back-references (joined, created, admin-of). Sequential writes; a
// failure after the insert leaves the creator's lists behind the group
// document.
func InsertGroup(ctx context.Context, g *models.Group) error {
	res, err := database.DB.Collection(groupsCollection).InsertOne(ctx, g)
	if err != nil {
		return err
	}
	g.ID = res.InsertedID.(primitive.ObjectID)

	_, err = database.DB.Collection(usersCollection).UpdateByID(ctx, g.CreatedBy, bson.M{
		"$addToSet": bson.M{
			"groups_joined":   g.ID,
			"groups_created":  g.ID,
			"admin_of_groups": g.ID,
		},
	})
	return err
}

// SaveMembership persists a group after a membership transition and applies
// the per-user back-reference updates produced by the transition.
func SaveMembership(ctx context.Context, g *models.Group, changes []MemberChange) error {
	g.UpdatedAt = time.Now().UTC()

	groupAdmin := any(g.GroupAdmin)
	if g.GroupAdmin.IsZero() {
		groupAdmin = nil
	}

	_, err := database.DB.Collection(groupsCollection).UpdateByID(ctx, g.ID, bson.M{
		"$set": bson.M{
			"members":         g.Members,
			"current_members": g.CurrentMembers,
			"group_admin":     groupAdmin,
			"updated_at":      g.UpdatedAt,
		},
	})
	if err != nil {
		return err
	}

	for _, ch := range changes {
		add := bson.M{}
		pull := bson.M{}
		if ch.AddGroupsJoined {
			add["groups_joined"] = g.ID
		}
		if ch.AddAdminOf {
			add["admin_of_groups"] = g.ID
		}
		if ch.RemoveGroupsJoined {
			pull["groups_joined"] = g.ID
		}
		if ch.RemoveAdminOf {
			pull["admin_of_groups"] = g.ID
		}

		update := bson.M{}
		if len(add) > 0 {
			update["$addToSet"] = add
		}
		if len(pull) > 0 {
			update["$pull"] = pull
		}
		if len(update) == 0 {
			continue
		}
		if _, err := database.DB.Collection(usersCollection).UpdateByID(ctx, ch.UserID, update); err != nil {
			return err
		}
	}
	return nil
}

// SaveGroup persists the full group document (used after a patch update).
func SaveGroup(ctx context.Context, g *models.Group) error {
	_, err := database.DB.Collection(groupsCollection).ReplaceOne(ctx, bson.M{"_id": g.ID}, g)
	return err
}

// DeleteGroup purges the group id from every user's back-reference lists
// and then removes the group document.
func DeleteGroup(ctx context.Context, g *models.Group) error {
	_, err := database.DB.Collection(usersCollection).UpdateMany(ctx,
		bson.M{"groups_joined": g.ID},
		bson.M{"$pull": bson.M{
			"groups_joined":   g.ID,
			"groups_created":  g.ID,
			"admin_of_groups": g.ID,
		}},
	)
	if err != nil {
		return err
	}

	_, err = database.DB.Collection(groupsCollection).DeleteOne(ctx, bson.M{"_id": g.ID})
	return err
}

// ListGroups returns every group.
func ListGroups(ctx context.Context) ([]models.Group, error) {
	cur, err := database.DB.Collection(groupsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// IsGroupMember reports whether user is in the group's member list.
// Used as the membership-on-send check for the message log.
func IsGroupMember(ctx context.Context, groupID, user primitive.ObjectID) (bool, error) {
	count, err := database.DB.Collection(groupsCollection).CountDocuments(ctx, bson.M{
		"_id":     groupID,
		"members": user,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GroupReportRow is one line of the admin group report.
type GroupReportRow struct {
	Title          string         `bson:"title" json:"title"`
	Location       string         `bson:"location" json:"location"`
	StartDateTime  time.Time      `bson:"start_date_time" json:"start_date_time"`
	EndDateTime    time.Time      `bson:"end_date_time" json:"end_date_time"`
	CurrentMembers int            `bson:"current_members" json:"current_members"`
	CreatedBy      GroupReportRef `bson:"created_by" json:"created_by"`
	GroupAdmin     GroupReportRef `bson:"group_admin" json:"group_admin"`
}

type GroupReportRef struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name   string             `bson:"name" json:"name"`
	Email  string             `bson:"email" json:"email"`
}

// groupReportPipeline resolves creator and admin via $lookup. The unwinds
// preserve empty lookups: emptied groups have no admin and a creator may
// have deleted their account, but the group still belongs in the report.
func groupReportPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from": usersCollection, "localField": "created_by",
			"foreignField": "_id", "as": "created_by_user",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path": "$created_by_user", "preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": usersCollection, "localField": "group_admin",
			"foreignField": "_id", "as": "group_admin_user",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path": "$group_admin_user", "preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":             0,
			"title":           1,
			"location":        1,
			"start_date_time": 1,
			"end_date_time":   1,
			"current_members": 1,
			"created_by": bson.M{
				"user_id": "$created_by_user._id",
				"name":    "$created_by_user.name",
				"email":   "$created_by_user.email",
			},
			"group_admin": bson.M{
				"user_id": "$group_admin_user._id",
				"name":    "$group_admin_user.name",
				"email":   "$group_admin_user.email",
			},
		}}},
		{{Key: "$sort", Value: bson.M{"start_date_time": -1}}},
	}
}

// GroupReport aggregates every group with its creator and admin resolved,
// newest start time first.
func GroupReport(ctx context.Context) ([]GroupReportRow, error) {
	cur, err := database.DB.Collection(groupsCollection).Aggregate(ctx, groupReportPipeline())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []GroupReportRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
