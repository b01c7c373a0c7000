package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/meetzy/meetzy-backend/internal/config"
	"github.com/meetzy/meetzy-backend/internal/handlers"
	"github.com/meetzy/meetzy-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux, cfg *config.Config) {
	protect := middleware.Protect(cfg.JWTSecret)

	// Auth routes (public)
	r.Post("/api/auth/register", handlers.Register)
	r.Post("/api/auth/login", handlers.Login)
	r.Post("/api/auth/verify-otp", handlers.VerifyOTP)
	r.Post("/api/auth/resend-otp", handlers.ResendOTP)

	// User profile routes
	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Get("/api/users/profile", handlers.GetProfile)
		r.Put("/api/users/profile", handlers.UpdateProfile)
		r.Delete("/api/users/profile", handlers.DeleteAccount)
	})

	// Group community routes
	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/api/groups", handlers.CreateGroup)
		r.Get("/api/groups", handlers.GetGroups)
		r.Get("/api/groups/{id}", handlers.GetGroupByID)
		r.Post("/api/groups/{id}/join", handlers.JoinGroup)
		r.Post("/api/groups/{id}/leave", handlers.LeaveGroup)

		// Group-admin-gated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.GroupAdminOnly)
			r.Put("/api/groups/{id}", handlers.UpdateGroup)
			r.Delete("/api/groups/{id}", handlers.DeleteGroup)
			r.Post("/api/groups/{id}/remove/{memberId}", handlers.RemoveMember)
		})
	})

	// Group chat routes (pull-polled, no push delivery)
	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/api/messages/sendMessage", handlers.SendMessage)
		r.Get("/api/messages/{groupId}", handlers.GetMessages)
		r.Put("/api/messages/mark-as-read/{id}", handlers.MarkAsRead)
	})

	// Blog routes
	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/api/blogs", handlers.CreateBlog)
		r.Get("/api/blogs", handlers.GetAllBlogs)
		r.Get("/api/blogs/{id}", handlers.GetBlogByID)
		r.Put("/api/blogs/{id}", handlers.UpdateBlog)
		r.Delete("/api/blogs/{id}", handlers.DeleteBlog)
		r.Post("/api/blogs/{id}/rate", handlers.RateBlog)
		r.Post("/api/blogs/{id}/report", handlers.ReportBlog)
	})

	// Report routes (create is open to any authenticated user)
	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/api/reports", handlers.CreateReport)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminOnly)
			r.Get("/api/reports", handlers.GetReportedBlogs)
			r.Put("/api/reports/{id}", handlers.UpdateReportStatus)
			r.Delete("/api/reports/{id}", handlers.DeleteReport)
			r.Post("/api/reports/delete-multiple", handlers.DeleteReports)
		})
	})

	// Feed routes (public mood board)
	r.Post("/api/feeds", handlers.CreateFeed)
	r.Get("/api/feeds", handlers.GetAllFeeds)
	r.Get("/api/feeds/{id}", handlers.GetFeedByID)
	r.Put("/api/feeds/{id}", handlers.UpdateFeed)
	r.Delete("/api/feeds/{id}", handlers.DeleteFeed)
	r.Put("/api/feeds/{id}/like", handlers.LikeFeed)

	// Broadcast routes
	r.Get("/api/broadcasts", handlers.GetAllBroadcasts)
	r.Group(func(r chi.Router) {
		r.Use(protect, middleware.AdminOnly)
		r.Post("/api/broadcasts", handlers.CreateBroadcast)
		r.Put("/api/broadcasts/{id}", handlers.UpdateBroadcast)
		r.Delete("/api/broadcasts/{id}", handlers.DeleteBroadcast)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(protect, middleware.AdminOnly)
		r.Get("/api/admin/stats", handlers.GetAdminStats)
		r.Get("/api/admin/groups/count", handlers.GetGroupReport)
		r.Get("/api/admin/users", handlers.GetAllUsers)
		r.Get("/api/admin/blogs", handlers.GetFilteredBlogs)
	})

	// File upload
	r.With(protect).Post("/api/upload", handlers.UploadFile)

	// Chatbot proxy
	r.Post("/api/chatbot/chat", handlers.Chat)
}
