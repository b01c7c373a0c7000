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

type broadcastRequest struct {
	Message string `json:"message"`
}

// CreateBroadcast posts a platform-wide announcement. Admin only.
func CreateBroadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		writeMessage(w, http.StatusBadRequest, "Message is required")
		return
	}

	now := time.Now().UTC()
	broadcast := &models.Broadcast{CreatedAt: now, UpdatedAt: now, Message: req.Message}
	res, err := database.DB.Collection("broadcasts").InsertOne(r.Context(), broadcast)
	if err != nil {
		writeError(w, err)
		return
	}
	broadcast.ID = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, broadcast)
}

// GetAllBroadcasts lists live announcements, newest first, with a count.
func GetAllBroadcasts(w http.ResponseWriter, r *http.Request) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := database.DB.Collection("broadcasts").Find(r.Context(), bson.M{"is_deleted": false}, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cur.Close(r.Context())

	var broadcasts []models.Broadcast
	if err := cur.All(r.Context(), &broadcasts); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":      len(broadcasts),
		"broadcasts": broadcasts,
	})
}

// UpdateBroadcast replaces an announcement's message. Admin only.
func UpdateBroadcast(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid broadcast id")
		return
	}

	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		writeMessage(w, http.StatusBadRequest, "Message is required")
		return
	}

	after := options.After
	res := database.DB.Collection("broadcasts").FindOneAndUpdate(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"message": req.Message, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	)

	var broadcast models.Broadcast
	err = res.Decode(&broadcast)
	if errors.Is(err, mongo.ErrNoDocuments) {
		writeMessage(w, http.StatusNotFound, "Broadcast not found")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Broadcast updated successfully!",
		"broadcast": broadcast,
	})
}

// DeleteBroadcast soft-deletes an announcement. Admin only.
func DeleteBroadcast(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid broadcast id")
		return
	}

	res, err := database.DB.Collection("broadcasts").UpdateByID(r.Context(), id,
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		writeError(w, err)
		return
	}
	if res.MatchedCount == 0 {
		writeMessage(w, http.StatusNotFound, "Broadcast not found")
		return
	}
	writeMessage(w, http.StatusOK, "Broadcast deleted successfully")
}
