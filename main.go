package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"medical-history-server/internal/auth"
	"medical-history-server/internal/config"
	"medical-history-server/internal/identity"
	"medical-history-server/internal/models"
	"medical-history-server/internal/repository"
	"medical-history-server/internal/routes"
	"medical-history-server/internal/service"
	"medical-history-server/internal/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		logger.Fatal("Error connecting to database", zap.Error(err))
	}

	// Token revocation denylist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	revoker := auth.NewRedisTokenRevoker(redisClient)

	// File byte storage
	var store storage.FileStore
	switch cfg.Storage.Driver {
	case "minio":
		minioClient, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessKey, cfg.Storage.MinioSecretKey, ""),
			Secure: cfg.Storage.MinioUseSSL,
		})
		if err != nil {
			logger.Fatal("Error creating minio client", zap.Error(err))
		}
		store, err = storage.NewMinioStore(context.Background(), minioClient, cfg.Storage.MinioBucket)
		if err != nil {
			logger.Fatal("Error initializing minio storage", zap.Error(err))
		}
	default:
		store = storage.NewLocalStore()
	}

	users := identity.NewHTTPLookup(cfg.IdentityService.BaseURL, logger)
	verifier := auth.NewTokenVerifier(cfg.JWTSecret)

	historyRepo := repository.NewGormHistoryRepository(db)
	fileRepo := repository.NewGormFileRepository(db)
	svc := service.NewHistoryService(historyRepo, fileRepo, users, store, logger,
		cfg.Storage.UploadDir, cfg.EnrichmentConcurrency)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, svc, users, verifier, revoker, logger)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := router.Run(serverAddr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
