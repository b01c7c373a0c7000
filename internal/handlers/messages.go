package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meetzy/meetzy-backend/internal/middleware"
	"github.com/meetzy/meetzy-backend/internal/models"
	"github.com/meetzy/meetzy-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const chatUploadFolder = "chat_uploads"

// SendMessage appends a message to a group's log. Multipart form: groupId,
// optional content, optional messageType, optional file attachment. The
// sender must be a member of the group.
func SendMessage(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(r.FormValue("groupId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid groupId")
		return
	}

	isMember, err := services.IsGroupMember(r.Context(), groupID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !isMember {
		writeMessage(w, http.StatusForbidden, "You are not a member of this group")
		return
	}

	var fileURL string
	if _, header, err := r.FormFile("file"); err == nil {
		if cloudinaryService == nil {
			writeMessage(w, http.StatusInternalServerError, "File uploads are not available")
			return
		}
		fileURL, err = cloudinaryService.UploadFileFromHeader(r.Context(), header, chatUploadFolder)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to upload file")
			return
		}
	}

	content := r.FormValue("content")
	if content == "" && fileURL == "" {
		writeMessage(w, http.StatusBadRequest, "Either content or file is required")
		return
	}
	if content == "" {
		content = fileURL
	}

	msgType := models.MessageType(r.FormValue("messageType"))
	if msgType == "" {
		if fileURL != "" {
			msgType = models.MessageTypeFile
		} else {
			msgType = models.MessageTypeText
		}
	}
	if !models.ValidMessageType(msgType) {
		writeMessage(w, http.StatusBadRequest, "Invalid messageType")
		return
	}

	msg, err := services.SaveMessage(r.Context(), groupID, user.ID, content, msgType)
	if err != nil {
		writeError(w, err)
		return
	}
	services.PushMessageToRecentCache(msg)

	writeJSON(w, http.StatusCreated, msg)
}

// GetMessages lists a group's messages in chronological order. An optional
// ?limit= query serves the newest messages through the Redis recent cache.
func GetMessages(w http.ResponseWriter, r *http.Request) {
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid groupId")
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 1 {
			writeMessage(w, http.StatusBadRequest, "Invalid limit")
			return
		}
	}

	msgs, err := services.ListMessagesWithCache(r.Context(), groupID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// MarkAsRead adds the current user to a message's read-receipt set.
// Idempotent: marking twice is the same as marking once.
func MarkAsRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	messageID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	msg, err := services.MarkMessageRead(r.Context(), messageID, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Message not found")
			return
		}
		writeError(w, err)
		return
	}

	// The cached copy now has a stale read-set; drop it.
	services.InvalidateRecentCache(r.Context(), msg.Group)

	writeMessage(w, http.StatusOK, "Message marked as read")
}
