package handlers

import (
	"net/http"
	"time"

	"github.com/meetzy/meetzy-backend/internal/database"
	"github.com/meetzy/meetzy-backend/internal/models"
	"github.com/meetzy/meetzy-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DateCount is one bucket of a per-day histogram.
type DateCount struct {
	Date  string `bson:"_id" json:"date"`
	Count int    `bson:"count" json:"count"`
}

func dailyCounts(r *http.Request, collection string, since time.Time) ([]DateCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := database.DB.Collection(collection).Aggregate(r.Context(), pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(r.Context())

	var out []DateCount
	if err := cur.All(r.Context(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAdminStats returns platform totals plus 7-day registration and blog
// histograms. Admin only.
func GetAdminStats(w http.ResponseWriter, r *http.Request) {
	since := time.Now().UTC().AddDate(0, 0, -7)

	registrations, err := dailyCounts(r, "users", since)
	if err != nil {
		writeError(w, err)
		return
	}
	blogPosts, err := dailyCounts(r, "blogs", since)
	if err != nil {
		writeError(w, err)
		return
	}

	totalUsers, err := database.DB.Collection("users").CountDocuments(r.Context(), bson.M{})
	if err != nil {
		writeError(w, err)
		return
	}
	totalBlogs, err := database.DB.Collection("blogs").CountDocuments(r.Context(), bson.M{})
	if err != nil {
		writeError(w, err)
		return
	}
	reportedBlogs, err := database.DB.Collection("reports").CountDocuments(r.Context(), bson.M{"status": models.ReportStatusPending})
	if err != nil {
		writeError(w, err)
		return
	}
	activeGroups, err := database.DB.Collection("groups").CountDocuments(r.Context(), bson.M{})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userRegistrations": registrations,
		"blogPosts":         blogPosts,
		"totalUsers":        totalUsers,
		"totalBlogs":        totalBlogs,
		"reportedBlogs":     reportedBlogs,
		"activeGroups":      activeGroups,
	})
}

// GetGroupReport returns every group with creator and admin resolved,
// newest start time first, plus the total count. Admin only.
func GetGroupReport(w http.ResponseWriter, r *http.Request) {
	rows, err := services.GroupReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalCount": len(rows),
		"groups":     rows,
	})
}
