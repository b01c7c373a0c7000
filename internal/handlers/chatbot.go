package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type chatRequest struct {
	Message string `json:"message"`
}

// Chat proxies one user message to the generative model and relays its
// structured JSON reply with a timestamp.
func Chat(w http.ResponseWriter, r *http.Request) {
	if chatbotService == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Chatbot is not available")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeMessage(w, http.StatusBadRequest, "Message must be a non-empty string")
		return
	}

	reply, err := chatbotService.Chat(r.Context(), req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	reply["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, reply)
}
