package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/meetzy/meetzy-backend/internal/database"
	"github.com/meetzy/meetzy-backend/internal/middleware"
	"github.com/meetzy/meetzy-backend/internal/models"
	"github.com/meetzy/meetzy-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson"
)

// GetProfile returns the logged-in user's profile (password excluded by
// the model's JSON tags).
func GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.CurrentUser(r))
}

type UpdateProfileRequest struct {
	FullName    *string    `json:"full_name"`
	DOB         *time.Time `json:"dob"`
	Address     *string    `json:"address"`
	PhoneNumber *string    `json:"phone_number"`
	Website     *string    `json:"website"`
	AllInfo     *string    `json:"all_info"`
}

// UpdateProfile applies a partial update: only fields present in the body
// are touched.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if req.FullName != nil {
		set["full_name"] = *req.FullName
	}
	if req.DOB != nil {
		set["dob"] = *req.DOB
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.PhoneNumber != nil {
		set["phone_number"] = *req.PhoneNumber
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.AllInfo != nil {
		set["all_info"] = *req.AllInfo
	}

	if _, err := database.DB.Collection("users").UpdateByID(r.Context(), user.ID, bson.M{"$set": set}); err != nil {
		writeError(w, err)
		return
	}

	updated, err := services.FindUserByID(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}

// DeleteAccount deletes the logged-in user's account. Every joined group
// is left first so member lists and admin succession stay consistent.
func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	if err := services.DeleteAccount(r.Context(), user); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "User account deleted successfully")
}

// GetAllUsers lists users, optionally filtered by a case-insensitive
// search over full name and email. Admin only.
func GetAllUsers(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if search := r.URL.Query().Get("search"); search != "" {
		filter = bson.M{"$or": []bson.M{
			{"full_name": bson.M{"$regex": search, "$options": "i"}},
			{"email": bson.M{"$regex": search, "$options": "i"}},
		}}
	}

	cur, err := database.DB.Collection("users").Find(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cur.Close(r.Context())

	var users []models.User
	if err := cur.All(r.Context(), &users); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
