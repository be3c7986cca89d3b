package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"shelfkeeper/backend/internal/enrich"
	"shelfkeeper/backend/internal/handler"
	"shelfkeeper/backend/internal/importer"
	"shelfkeeper/backend/internal/middleware"
	"shelfkeeper/backend/internal/store"
)

func main() {
	godotenv.Load(".env.local")

	env := os.Getenv("ENV")
	log.Printf("[INFO] Starting Shelfkeeper env=%s", env)

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	st, err := store.Open(filepath.Join(dataDir, "db"))
	if err != nil {
		log.Fatalf("[FATAL] Failed to open store: %v", err)
	}
	defer st.Close()

	// The Gemini collaborators are optional: without an API key the app
	// still serves the collection, just without enrichment features.
	var (
		enricher    handler.Enricher       = enrich.Disabled{}
		recommender handler.Recommender    = enrich.Disabled{}
		extractor   handler.TitleExtractor = enrich.Disabled{}
		aiReady     bool
	)
	gemini, err := enrich.NewGemini(context.Background(), os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Printf("[WARN] Failed to initialize Gemini client: %v", err)
		log.Println("[WARN] AI enrichment, recommendations and image import will be unavailable")
	} else {
		enricher, recommender, extractor = gemini, gemini, gemini
		aiReady = true
		log.Println("[INFO] Gemini client initialized successfully")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Security headers (before CORS)
	r.Use(middleware.SecurityHeaders())

	allowedOrigins := []string{}
	if gin.Mode() != gin.ReleaseMode {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173")
	}
	if extraOrigins := os.Getenv("ALLOWED_ORIGINS"); extraOrigins != "" {
		allowedOrigins = append(allowedOrigins, strings.Split(extraOrigins, ",")...)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiting applies only to endpoints that spend model calls.
	ipLimiter := middleware.NewIPRateLimiter(rate.Every(2*time.Second), 3)
	dailyQuota := middleware.NewDailyQuota(200)
	aiLimit := middleware.RateLimitMiddleware(ipLimiter, dailyQuota)
	log.Printf("[INFO] Rate limiting enabled")

	dedupImageImports := os.Getenv("DEDUP_IMAGE_IMPORTS") != "false"
	im := importer.New(st, dedupImageImports)

	books := handler.NewBookHandler(st)
	ai := handler.NewAIHandler(st, enricher, recommender)
	imports := handler.NewImportHandler(im, extractor, filepath.Join(dataDir, "legacy_books.json"))
	health := handler.NewHealthHandler(aiReady)

	// Health check endpoints (outside /api group, no rate limiting)
	r.GET("/health", health.HandleHealth)
	r.GET("/ready", health.HandleReadiness)

	api := r.Group("/api")
	{
		api.GET("/books", books.HandleList)
		api.GET("/books/recent", books.HandleRecent)
		api.GET("/books/:id", books.HandleGet)
		api.POST("/books", books.HandleCreate)
		api.PUT("/books/:id", books.HandleUpdate)
		api.DELETE("/books/:id", books.HandleDelete)
		api.GET("/stats", books.HandleStats)
		api.POST("/import/legacy", imports.HandleImportLegacy)
		api.POST("/import/image", aiLimit, imports.HandleImportImage)
		api.POST("/enrich", aiLimit, ai.HandleEnrich)
		api.GET("/recommendations", aiLimit, ai.HandleRecommendations)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("[INFO] Server ready port=%s allowed_origins=%v", port, allowedOrigins)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
