package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meetzy/meetzy-backend/internal/database"
	"github.com/meetzy/meetzy-backend/internal/middleware"
	"github.com/meetzy/meetzy-backend/internal/models"
	"github.com/meetzy/meetzy-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const blogImageFolder = "blog_uploads"

func findBlogByID(r *http.Request, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	err := database.DB.Collection("blogs").FindOne(r.Context(), bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBlog creates a blog post from a multipart form with an optional
// photo. Author is the logged-in user.
func CreateBlog(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	category := r.FormValue("category")
	if title == "" || description == "" || category == "" {
		writeMessage(w, http.StatusBadRequest, "All fields are required: title, description, category")
		return
	}
	if !models.ValidBlogCategory(category) {
		writeMessage(w, http.StatusBadRequest, "Invalid category")
		return
	}

	var photo string
	if _, header, err := r.FormFile("photo"); err == nil {
		if cloudinaryService == nil {
			writeMessage(w, http.StatusInternalServerError, "File uploads are not available")
			return
		}
		photo, err = cloudinaryService.UploadFileFromHeader(r.Context(), header, blogImageFolder)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to upload photo")
			return
		}
	}

	now := time.Now().UTC()
	blog := &models.Blog{
		CreatedAt:   now,
		UpdatedAt:   now,
		Title:       title,
		AuthorName:  user.Name,
		Description: description,
		Category:    category,
		Photo:       photo,
		Author:      user.ID,
	}

	res, err := database.DB.Collection("blogs").InsertOne(r.Context(), blog)
	if err != nil {
		writeError(w, err)
		return
	}
	blog.ID = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, blog)
}

// GetAllBlogs lists every blog.
func GetAllBlogs(w http.ResponseWriter, r *http.Request) {
	cur, err := database.DB.Collection("blogs").Find(r.Context(), bson.M{})
	if err != nil {
		writeError(w, err)
		return
	}
	defer cur.Close(r.Context())

	var blogs []models.Blog
	if err := cur.All(r.Context(), &blogs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

// GetBlogByID returns one blog with its average rating computed on read.
func GetBlogByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid blog id")
		return
	}

	blog, err := findBlogByID(r, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"blog":          blog,
		"averageRating": blog.AverageRating(),
	})
}

// UpdateBlog replaces title/description/category and optionally the photo.
// Only the author may update.
func UpdateBlog(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid blog id")
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	category := r.FormValue("category")
	if title == "" || description == "" || category == "" {
		writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if !models.ValidBlogCategory(category) {
		writeMessage(w, http.StatusBadRequest, "Invalid category")
		return
	}

	blog, err := findBlogByID(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if blog.Author != user.ID {
		writeMessage(w, http.StatusForbidden, "You are not authorized to update this blog")
		return
	}

	oldPhoto := ""
	if _, header, err := r.FormFile("photo"); err == nil {
		if cloudinaryService == nil {
			writeMessage(w, http.StatusInternalServerError, "File uploads are not available")
			return
		}
		url, err := cloudinaryService.UploadFileFromHeader(r.Context(), header, blogImageFolder)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to upload photo")
			return
		}
		oldPhoto = blog.Photo
		blog.Photo = url
	}

	blog.Title = title
	blog.Description = description
	blog.Category = category
	blog.UpdatedAt = time.Now().UTC()

	if _, err := database.DB.Collection("blogs").ReplaceOne(r.Context(), bson.M{"_id": blog.ID}, blog); err != nil {
		writeError(w, err)
		return
	}
	if oldPhoto != "" && cloudinaryService != nil {
		if err := cloudinaryService.DestroyByURL(r.Context(), oldPhoto); err != nil {
			log.Printf("Failed to release old blog photo: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Blog updated successfully!",
		"blog":    blog,
	})
}

// DeleteBlog removes a blog. Allowed for the author or a platform admin;
// the stored photo is released best-effort.
func DeleteBlog(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid blog id")
		return
	}

	blog, err := findBlogByID(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if blog.Author != user.ID && !user.IsAdmin {
		writeMessage(w, http.StatusForbidden, "You are not authorized to delete this blog")
		return
	}

	if blog.Photo != "" && cloudinaryService != nil {
		if err := cloudinaryService.DestroyByURL(r.Context(), blog.Photo); err != nil {
			log.Printf("Failed to release blog photo: %v", err)
		}
	}

	if _, err := database.DB.Collection("blogs").DeleteOne(r.Context(), bson.M{"_id": blog.ID}); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Blog deleted successfully")
}

type rateBlogRequest struct {
	Rating int `json:"rating"`
}

// RateBlog appends a 1-5 vote to the blog's cumulative rating. Votes
// cannot be revised or withdrawn.
func RateBlog(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid blog id")
		return
	}

	var req rateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeMessage(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	res := database.DB.Collection("blogs").FindOneAndUpdate(r.Context(),
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"total_rating": req.Rating, "rating_count": 1}},
	)
	if errors.Is(res.Err(), mongo.ErrNoDocuments) {
		writeMessage(w, http.StatusNotFound, "Blog not found")
		return
	}
	if res.Err() != nil {
		writeError(w, res.Err())
		return
	}

	blog, err := findBlogByID(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Rating added successfully!",
		"averageRating": blog.AverageRating(),
	})
}

type reportBlogRequest struct {
	Category   string `json:"category"`
	ReportedBy string `json:"reportedBy"`
}

// ReportBlog files a moderation report against a blog. No membership or
// account requirement beyond authentication; anonymous reporter allowed.
func ReportBlog(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid blog id")
		return
	}

	var req reportBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Category == "" {
		writeMessage(w, http.StatusBadRequest, "Category is required")
		return
	}
	if !models.ValidReportCategory(req.Category) {
		writeMessage(w, http.StatusBadRequest, "Invalid category")
		return
	}

	if _, err := findBlogByID(r, id); err != nil {
		writeError(w, err)
		return
	}

	reportedBy := req.ReportedBy
	if reportedBy == "" {
		reportedBy = "Anonymous"
	}

	now := time.Now().UTC()
	_, err = database.DB.Collection("reports").InsertOne(r.Context(), &models.Report{
		CreatedAt:  now,
		UpdatedAt:  now,
		BlogID:     id,
		ReportedBy: reportedBy,
		Category:   req.Category,
		Status:     models.ReportStatusPending,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Blog reported successfully")
}

// GetFilteredBlogs returns blogs matching admin-supplied filters plus
// total and per-category counts. Admin only.
func GetFilteredBlogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := bson.M{}
	if category := q.Get("category"); category != "" {
		filter["category"] = category
	}
	if author := q.Get("author"); author != "" {
		if authorID, err := primitive.ObjectIDFromHex(author); err == nil {
			filter["author"] = authorID
		}
	}
	if title := q.Get("title"); title != "" {
		filter["title"] = bson.M{"$regex": title, "$options": "i"}
	}
	created := bson.M{}
	if from := q.Get("dateFrom"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			created["$gte"] = t
		}
	}
	if to := q.Get("dateTo"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			created["$lte"] = t
		}
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	cur, err := database.DB.Collection("blogs").Find(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cur.Close(r.Context())

	var blogs []models.Blog
	if err := cur.All(r.Context(), &blogs); err != nil {
		writeError(w, err)
		return
	}

	totalCount, err := database.DB.Collection("blogs").CountDocuments(r.Context(), bson.M{})
	if err != nil {
		writeError(w, err)
		return
	}

	categoryCounts := map[string]int64{}
	for _, cat := range models.BlogCategories {
		catFilter := bson.M{}
		for k, v := range filter {
			catFilter[k] = v
		}
		catFilter["category"] = cat
		n, err := database.DB.Collection("blogs").CountDocuments(r.Context(), catFilter)
		if err != nil {
			writeError(w, err)
			return
		}
		categoryCounts[cat] = n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalCount":     totalCount,
		"filteredCount":  len(blogs),
		"categoryCounts": categoryCounts,
		"blogs":          blogs,
	})
}
