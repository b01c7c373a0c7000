package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meetzy/meetzy-backend/internal/config"
	"github.com/meetzy/meetzy-backend/internal/services"
)

var (
	cfg               *config.Config
	cloudinaryService *services.CloudinaryService
	emailService      *services.EmailService
	chatbotService    *services.ChatbotService
)

// Init wires the handler package to its configuration. Must be called
// before the router is set up.
func Init(c *config.Config) {
	cfg = c
}

// InitCloudinaryService initializes the shared Cloudinary uploader.
func InitCloudinaryService(c *config.Config) error {
	service, err := services.NewCloudinaryService(c.CloudinaryName, c.CloudinaryAPIKey, c.CloudinaryAPISecret)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

// InitEmailService initializes the SMTP sender used for OTP mail.
func InitEmailService(c *config.Config) {
	emailService = services.NewEmailService(c.SMTPHost, c.SMTPPort, c.EmailUser, c.EmailPass)
}

// InitChatbotService wires the Gemini proxy.
func InitChatbotService(s *services.ChatbotService) {
	chatbotService = s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Success: status < 400, Message: message})
}

// writeError maps domain errors to HTTP statuses; anything unrecognized is
// a storage failure.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAlreadyMember), errors.Is(err, services.ErrNotMember), errors.Is(err, services.ErrGroupFull):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrModelOutput):
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, err.Error())
	}
}
