package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/meetzy/meetzy-backend/internal/database"
	"github.com/meetzy/meetzy-backend/internal/models"
	"github.com/meetzy/meetzy-backend/internal/services"
	"github.com/meetzy/meetzy-backend/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

// Register creates an unverified account and emails a 6-digit OTP valid
// for 10 minutes.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		writeMessage(w, http.StatusBadRequest, "Please fill all required fields")
		return
	}
	if req.Password != req.ConfirmPassword {
		writeMessage(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	if _, err := services.FindUserByEmail(r.Context(), req.Email); err == nil {
		writeMessage(w, http.StatusBadRequest, "User already exists with this email")
		return
	} else if !errors.Is(err, services.ErrNotFound) {
		writeError(w, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	otp, err := services.GenerateOTP()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to generate OTP")
		return
	}
	now := time.Now().UTC()
	expiry := now.Add(services.OTPValidity)

	user := &models.User{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashed,
		OTP:       otp,
		OTPExpiry: &expiry,
	}
	if _, err := database.DB.Collection("users").InsertOne(r.Context(), user); err != nil {
		// Concurrent registration can slip past the read above; the
		// unique email index is the real gate.
		if services.IsDuplicateEmail(err) {
			writeMessage(w, http.StatusBadRequest, "User already exists with this email")
			return
		}
		writeError(w, err)
		return
	}

	if err := emailService.SendVerificationEmail(user.Email, otp); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}

	writeJSON(w, http.StatusCreated, map[string]string{"email": user.Email})
}

// Login authenticates by email and password and issues a bearer token.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := services.FindUserByEmail(r.Context(), req.Email)
	if errors.Is(err, services.ErrNotFound) || (err == nil && !utils.CheckPassword(req.Password, user.Password)) {
		writeMessage(w, http.StatusUnauthorized, "Invalid Email or Password")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), cfg.JWTSecret)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		ID:      user.ID.Hex(),
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	})
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP activates an account when the submitted OTP matches and has
// not expired. The stored OTP is cleared on success.
func VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.OTP == "" {
		writeMessage(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	user, err := services.FindUserByEmail(r.Context(), req.Email)
	if errors.Is(err, services.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	if !services.OTPMatches(user, req.OTP, time.Now()) {
		writeMessage(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	_, err = database.DB.Collection("users").UpdateByID(r.Context(), user.ID, bson.M{
		"$set":   bson.M{"verified": true, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"otp": "", "otp_expiry": ""},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "OTP verified successfully")
}

// ResendOTP regenerates the OTP for an unverified account and re-sends it.
func ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := services.FindUserByEmail(r.Context(), req.Email)
	if errors.Is(err, services.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	otp, err := services.GenerateOTP()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to generate OTP")
		return
	}
	expiry := time.Now().UTC().Add(services.OTPValidity)

	_, err = database.DB.Collection("users").UpdateByID(r.Context(), user.ID, bson.M{
		"$set": bson.M{"otp": otp, "otp_expiry": expiry, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if err := emailService.SendVerificationEmail(user.Email, otp); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}

	writeMessage(w, http.StatusOK, "OTP resent successfully")
}
