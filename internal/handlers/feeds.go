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

type FeedRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Feeling  string `json:"feeling"`
	Location string `json:"location"`
	YourName string `json:"yourName"`
}

func (f FeedRequest) validate() string {
	if f.Title == "" || f.Content == "" || f.YourName == "" {
		return "title, content and yourName are required"
	}
	if !models.ValidFeedFeeling(f.Feeling) {
		return "Invalid feeling"
	}
	return ""
}

// CreateFeed posts a new mood-board entry.
func CreateFeed(w http.ResponseWriter, r *http.Request) {
	var req FeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now().UTC()
	feed := &models.Feed{
		CreatedAt: now,
		UpdatedAt: now,
		Title:     req.Title,
		Content:   req.Content,
		Feeling:   req.Feeling,
		Location:  req.Location,
		YourName:  req.YourName,
	}
	res, err := database.DB.Collection("feeds").InsertOne(r.Context(), feed)
	if err != nil {
		writeError(w, err)
		return
	}
	feed.ID = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, feed)
}

// GetAllFeeds lists feeds newest-first.
func GetAllFeeds(w http.ResponseWriter, r *http.Request) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := database.DB.Collection("feeds").Find(r.Context(), bson.M{}, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cur.Close(r.Context())

	var feeds []models.Feed
	if err := cur.All(r.Context(), &feeds); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feeds)
}

// GetFeedByID returns one feed entry.
func GetFeedByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid feed id")
		return
	}

	var feed models.Feed
	err = database.DB.Collection("feeds").FindOne(r.Context(), bson.M{"_id": id}).Decode(&feed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		writeMessage(w, http.StatusNotFound, "Feed not found")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

// UpdateFeed replaces the editable fields of a feed entry.
func UpdateFeed(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid feed id")
		return
	}

	var req FeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	after := options.After
	res := database.DB.Collection("feeds").FindOneAndUpdate(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"title":      req.Title,
			"content":    req.Content,
			"feeling":    req.Feeling,
			"location":   req.Location,
			"your_name":  req.YourName,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	)

	var feed models.Feed
	err = res.Decode(&feed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		writeMessage(w, http.StatusNotFound, "Feed not found")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

// DeleteFeed removes a feed entry.
func DeleteFeed(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid feed id")
		return
	}

	res, err := database.DB.Collection("feeds").DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		writeError(w, err)
		return
	}
	if res.DeletedCount == 0 {
		writeMessage(w, http.StatusNotFound, "Feed not found")
		return
	}
	writeMessage(w, http.StatusOK, "Feed deleted successfully")
}

type likeFeedRequest struct {
	Likes       int  `json:"likes"`
	LikedByUser bool `json:"likedByUser"`
}

// LikeFeed stores the client-computed like state for a feed entry.
func LikeFeed(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid feed id")
		return
	}

	var req likeFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	after := options.After
	res := database.DB.Collection("feeds").FindOneAndUpdate(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"likes":         req.Likes,
			"liked_by_user": req.LikedByUser,
			"updated_at":    time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	)

	var feed models.Feed
	err = res.Decode(&feed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		writeMessage(w, http.StatusNotFound, "Feed not found")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}
