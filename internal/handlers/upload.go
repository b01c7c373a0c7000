package handlers

import "net/http"

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadFile handles generic file uploads to Cloudinary. The target folder
// comes from the ?folder= query (default "meetzy").
func UploadFile(w http.ResponseWriter, r *http.Request) {
	if cloudinaryService == nil {
		writeMessage(w, http.StatusInternalServerError, "Cloudinary service not initialized")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse form: "+err.Error())
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file provided: "+err.Error())
		return
	}
	defer file.Close()

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "meetzy"
	}

	url, err := cloudinaryService.UploadFileFromHeader(r.Context(), fileHeader, folder)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to upload file: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		URL:     url,
	})
}
