package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/justyntemme/shelfkeep/internal/api"
	"github.com/justyntemme/shelfkeep/internal/auth"
	"github.com/justyntemme/shelfkeep/internal/config"
	"github.com/justyntemme/shelfkeep/internal/storage"
)

func main() {
	// Command-line flags
	urlFlag := flag.String("url", "", "Server bind address (e.g., :8080 or 0.0.0.0:8080)")
	flag.Parse()

	cfg := config.Load()
	dbPath := filepath.Join(cfg.DataDir, "shelfkeep.db")

	// Flag takes precedence over env
	bindAddr := cfg.BindAddr
	if *urlFlag != "" {
		bindAddr = *urlFlag
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Initialize database
	db, err := storage.NewDatabase(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize handlers
	handler := api.NewHandler(db)
	authHandler := api.NewAuthHandler(db)

	// Set up Gin router
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.Default()

	// Enable CORS for mobile access
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", handler.HealthCheck)

	// API routes
	apiGroup := r.Group("/api")
	{
		// API documentation (for TUI clients)
		apiGroup.GET("", handler.APIInfo)

		// Auth routes (public)
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.RefreshToken)
		}

		// Protected routes (catalogs are per-user, so auth is required)
		protected := apiGroup.Group("")
		protected.Use(auth.AuthMiddleware())
		{
			// Current user
			protected.GET("/auth/me", authHandler.GetCurrentUser)

			// Books
			protected.POST("/books", handler.CreateBook)
			protected.GET("/books", handler.ListBooks)
			protected.GET("/books/:id", handler.GetBook)
			protected.PUT("/books/:id", handler.UpdateBook)
			protected.DELETE("/books/:id", handler.DeleteBook)

			// Lending
			protected.POST("/books/:id/borrow", handler.BorrowBook)
			protected.POST("/books/:id/return", handler.ReturnBook)

			// Reading
			protected.POST("/books/:id/reading/start", handler.StartReading)
			protected.PUT("/books/:id/reading/progress", handler.UpdateProgress)
			protected.POST("/books/:id/rating", handler.RateBook)

			// Statistics
			protected.GET("/stats", handler.GetStats)
			protected.GET("/stats/categories", handler.GetCategoryBreakdown)

			// Goals
			protected.GET("/goals", handler.GetGoals)
			protected.PUT("/goals", handler.SaveGoals)
			protected.GET("/goals/progress", handler.GetGoalProgress)

			// Import/export
			protected.GET("/export", handler.ExportBooks)
			protected.POST("/import", handler.ImportBooks)
		}
	}

	// Start server
	log.Printf("Shelfkeep server starting on %s", bindAddr)
	log.Printf("Data directory: %s", cfg.DataDir)
	if err := r.Run(bindAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
