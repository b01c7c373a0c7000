package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

// UploadFile uploads a file into folder under a random public ID and
// returns the secure URL to store on the owning record.
func (s *CloudinaryService) UploadFile(ctx context.Context, file multipart.File, folder string) (string, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	uploadResult, err := s.cld.Upload.Upload(ctx, fileBytes, uploader.UploadParams{
		Folder:       folder,
		PublicID:     uuid.NewString(),
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return uploadResult.SecureURL, nil
}

func (s *CloudinaryService) UploadFileFromHeader(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return s.UploadFile(ctx, file, folder)
}

// DestroyByURL releases the asset a stored URL points at. Record deletion
// and asset deletion are not transactional: callers treat failures as
// best-effort and keep going.
func (s *CloudinaryService) DestroyByURL(ctx context.Context, url string) error {
	publicID := PublicIDFromURL(url)
	if publicID == "" {
		return nil
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// PublicIDFromURL extracts the public ID from a Cloudinary delivery URL:
// .../<resource>/upload/v123/<folder>/<id>.<ext> → "<folder>/<id>".
// Returns "" when the URL does not look like a Cloudinary asset.
func PublicIDFromURL(url string) string {
	idx := strings.Index(url, "/upload/")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimPrefix(url[idx+len("/upload/"):], "")

	parts := strings.Split(rest, "/")
	if len(parts) > 0 && strings.HasPrefix(parts[0], "v") {
		// version segment like v1712345678
		allDigits := len(parts[0]) > 1
		for _, r := range parts[0][1:] {
			if r < '0' || r > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			parts = parts[1:]
		}
	}
	if len(parts) == 0 {
		return ""
	}

	publicID := strings.Join(parts, "/")
	if dot := strings.LastIndex(publicID, "."); dot > 0 {
		publicID = publicID[:dot]
	}
	return publicID
}
