package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/meetzy/meetzy-backend/internal/config"
	"github.com/meetzy/meetzy-backend/internal/database"
	"github.com/meetzy/meetzy-backend/internal/handlers"
	"github.com/meetzy/meetzy-backend/internal/middleware"
	"github.com/meetzy/meetzy-backend/internal/routes"
	"github.com/meetzy/meetzy-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	handlers.Init(cfg)

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Initialize Cloudinary service
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("File uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. File uploads will not be available")
	}

	// SMTP sender for OTP mail
	handlers.InitEmailService(cfg)

	// Gemini chatbot proxy
	if cfg.GeminiAPIKey != "" {
		chatbot, err := services.NewChatbotService(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("Warning: Failed to initialize chatbot: %v", err)
		} else {
			defer chatbot.Close()
			handlers.InitChatbotService(chatbot)
			log.Println("✅ Chatbot service initialized")
		}
	} else {
		log.Println("Warning: GEMINI_API_KEY not set. Chatbot will not be available")
	}

	// Ensure MongoDB indexes (unique email, message log)
	if err := services.EnsureUserIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB user indexes: %v", err)
	}
	if err := services.EnsureMessageIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB message indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	// Default platform admin
	if err := services.EnsureDefaultAdmin(context.Background(), cfg); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure default admin: %v", err)
	}

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, login rate limiting)")
	}
	r.Use(middleware.RateLimitMiddleware)

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, cfg)

	log.Printf("🚀 Meetzy backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
