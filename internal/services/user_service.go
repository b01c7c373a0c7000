package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/meetzy/meetzy-backend/internal/config"
	"github.com/meetzy/meetzy-backend/internal/database"
	"github.com/meetzy/meetzy-backend/internal/models"
	"github.com/meetzy/meetzy-backend/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// EnsureUserIndexes configures indexes for the users collection. The unique
// email index is what actually enforces one-account-per-email; the handler
// duplicate check is only a friendlier fast path.
func EnsureUserIndexes(ctx context.Context) error {
	_, err := database.DB.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_email_unique").SetUnique(true),
	})
	return err
}

// IsDuplicateEmail reports whether err is the unique-index violation raised
// when an insert loses the race against another registration.
func IsDuplicateEmail(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// FindUserByID loads a user document. Returns ErrNotFound for a missing id.
func FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := database.DB.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByEmail loads a user by email. Returns ErrNotFound when absent.
func FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := database.DB.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserNamesByIDs resolves user ids to display names in one query. Unknown
// ids are simply absent from the map.
func UserNamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	cur, err := database.DB.Collection(usersCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u struct {
			ID   primitive.ObjectID `bson:"_id"`
			Name string             `bson:"name"`
		}
		if err := cur.Decode(&u); err != nil {
			continue
		}
		names[u.ID] = u.Name
	}
	return names, cur.Err()
}

// DeleteAccount removes a user. Before deleting the document every joined
// group is left through the normal lifecycle, so member lists, counters
// and admin succession stay consistent.
func DeleteAccount(ctx context.Context, user *models.User) error {
	for _, groupID := range user.GroupsJoined {
		g, err := FindGroupByID(ctx, groupID)
		if errors.Is(err, ErrNotFound) {
			continue // stale back-reference
		}
		if err != nil {
			return err
		}

		changes, err := ApplyLeave(g, user.ID)
		if errors.Is(err, ErrNotMember) {
			continue
		}
		if err != nil {
			return err
		}
		if err := SaveMembership(ctx, g, changes); err != nil {
			return err
		}
	}

	_, err := database.DB.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": user.ID})
	return err
}

// EnsureDefaultAdmin creates the platform admin account from ADMIN_EMAIL /
// ADMIN_PASSWORD when it does not exist yet. No-op when the env is unset.
func EnsureDefaultAdmin(ctx context.Context, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping default admin")
		return nil
	}

	_, err := FindUserByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = database.DB.Collection(usersCollection).InsertOne(ctx, &models.User{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      "Default Admin",
		Email:     cfg.AdminEmail,
		Password:  hashed,
		IsAdmin:   true,
		Verified:  true,
	})
	if err != nil {
		return err
	}
	log.Println("✅ Default admin created")
	return nil
}
