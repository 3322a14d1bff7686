package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"propchat/internal/config"
	"propchat/internal/handler"
	"propchat/internal/repository"
	"propchat/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("PropChat Conversational Property Search")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Load the property dataset
	dataset, cleanup, err := loadDataset(cfg)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	log.Printf("✅ Loaded %d property records (%d rows skipped)", dataset.Len(), dataset.Skipped())

	// Initialize OpenAI client
	var aiClient service.AIClient
	if cfg.OpenAI.Enabled {
		aiClient = service.NewOpenAIClient(&cfg.OpenAI)
		log.Printf("✅ OpenAI client initialized")
		log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("   - Chat model: %s", cfg.OpenAI.ChatModel)
		log.Printf("   - Chat Temperature: %.2f", cfg.OpenAI.ChatTemperature)
		log.Printf("   - Chat TopP: %.2f", cfg.OpenAI.ChatTopP)
		log.Printf("   - Chat MaxTokens: %d", cfg.OpenAI.ChatMaxTokens)
	} else {
		log.Println("⚠️  OpenAI is disabled - filter extraction will use pattern matching only")
		log.Println("   Set OPENAI_API_KEY environment variable to enable AI features")
	}

	// Initialize services
	extractor := service.NewExtractor(aiClient)
	summarizer := service.NewSummarizer(aiClient, cfg.Search.SummarySampleSize)
	sessions := service.NewSessionManager(cfg.Search.HistoryLimit)
	chatService := service.NewChatService(dataset, extractor, summarizer, sessions, cfg.Search.MaxCards)

	log.Println("✅ Services initialized")

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatService)
	sessionHandler := handler.NewSessionHandler(chatService)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "healthy",
			"service":      "propchat",
			"version":      Version,
			"records":      chatService.DatasetSize(),
			"skipped_rows": chatService.DatasetSkipped(),
			"sessions":     chatService.SessionCount(),
			"ai_enabled":   chatService.AIEnabled(),
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Chat endpoints
		apiV1.POST("/chat", chatHandler.Chat)
		apiV1.POST("/chat/stream", chatHandler.ChatStream) // Streaming chat
		apiV1.GET("/properties/:id", chatHandler.GetProperty)

		// Session endpoints
		apiV1.GET("/sessions/:id", sessionHandler.Get)
		apiV1.POST("/sessions/:id/reset", sessionHandler.Reset)
		apiV1.DELETE("/sessions/:id", sessionHandler.Delete)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API Documentation: http://localhost:%d/api/v1", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}

// loadDataset reads the property records from the configured source.
// The returned cleanup closes the database connection for the postgres
// source; it is nil for CSV.
func loadDataset(cfg *config.Config) (*repository.Dataset, func(), error) {
	switch cfg.Dataset.Source {
	case "csv":
		dataset, err := repository.LoadCSV(cfg.Dataset.CSVPath)
		if err != nil {
			return nil, nil, err
		}
		return dataset, nil, nil

	case "postgres":
		source, err := repository.NewPostgresSource(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			return nil, nil, err
		}
		log.Println("✅ Connected to PostgreSQL database")

		dataset, err := source.Load(context.Background())
		if err != nil {
			source.Close()
			return nil, nil, err
		}
		return dataset, func() { source.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown dataset source %q (expected csv or postgres)", cfg.Dataset.Source)
	}
}
