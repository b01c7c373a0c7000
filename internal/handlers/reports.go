package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meetzy/meetzy-backend/internal/database"
	"github.com/meetzy/meetzy-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CreateReportRequest struct {
	BlogID     string `json:"blogId"`
	Category   string `json:"category"`
	ReportedBy string `json:"reportedBy"`
}

// CreateReport files a report directly (the blog-scoped shortcut lives in
// blogs.go). Reporter defaults to "Anonymous".
func CreateReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.BlogID == "" || req.Category == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	blogID, err := primitive.ObjectIDFromHex(req.BlogID)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid blogId")
		return
	}
	if !models.ValidReportCategory(req.Category) {
		writeMessage(w, http.StatusBadRequest, "Invalid category")
		return
	}

	reportedBy := req.ReportedBy
	if reportedBy == "" {
		reportedBy = "Anonymous"
	}

	now := time.Now().UTC()
	report := &models.Report{
		CreatedAt:  now,
		UpdatedAt:  now,
		BlogID:     blogID,
		ReportedBy: reportedBy,
		Category:   req.Category,
		Status:     models.ReportStatusPending,
	}
	res, err := database.DB.Collection("reports").InsertOne(r.Context(), report)
	if err != nil {
		writeError(w, err)
		return
	}
	report.ID = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Report created successfully",
		"report":  report,
	})
}

// ReportView is a report with its target blog resolved.
type ReportView struct {
	models.Report `bson:",inline"`
	Blog          *models.Blog `bson:"blog,omitempty" json:"blog,omitempty"`
}

// GetReportedBlogs lists all reports, newest first, with the reported
// blog populated. Admin only.
func GetReportedBlogs(w http.ResponseWriter, r *http.Request) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := database.DB.Collection("reports").Find(r.Context(), bson.M{}, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cur.Close(r.Context())

	var reports []models.Report
	if err := cur.All(r.Context(), &reports); err != nil {
		writeError(w, err)
		return
	}

	views := make([]ReportView, 0, len(reports))
	for _, rep := range reports {
		view := ReportView{Report: rep}
		var blog models.Blog
		err := database.DB.Collection("blogs").FindOne(r.Context(), bson.M{"_id": rep.BlogID}).Decode(&blog)
		if err == nil {
			view.Blog = &blog
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, views)
}

type updateReportRequest struct {
	Status      string `json:"status"`
	ActionTaken string `json:"actionTaken"`
}

// UpdateReportStatus moves a report through the moderation state machine
// and records the optional action note. Admin only.
func UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid report id")
		return
	}

	var req updateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidReportStatus(req.Status) {
		writeMessage(w, http.StatusBadRequest, "Invalid status")
		return
	}

	after := options.After
	res := database.DB.Collection("reports").FindOneAndUpdate(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":       req.Status,
			"action_taken": req.ActionTaken,
			"updated_at":   time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	)

	var report models.Report
	err = res.Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		writeMessage(w, http.StatusNotFound, "Report not found")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Report status updated",
		"report":  report,
	})
}

// DeleteReport removes a single report. Admin only.
func DeleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid report id")
		return
	}

	res, err := database.DB.Collection("reports").DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		writeError(w, err)
		return
	}
	if res.DeletedCount == 0 {
		writeMessage(w, http.StatusNotFound, "Report not found")
		return
	}
	writeMessage(w, http.StatusOK, "Report deleted successfully")
}

type deleteReportsRequest struct {
	ReportIDs []string `json:"reportIds"`
}

// DeleteReports bulk-deletes reports by id. Admin only.
func DeleteReports(w http.ResponseWriter, r *http.Request) {
	var req deleteReportsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.ReportIDs) == 0 {
		writeMessage(w, http.StatusBadRequest, "No report IDs provided.")
		return
	}

	var ids []primitive.ObjectID
	for _, raw := range req.ReportIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid report id: "+raw)
			return
		}
		ids = append(ids, id)
	}

	if _, err := database.DB.Collection("reports").DeleteMany(r.Context(), bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Reports deleted successfully.")
}
