package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port                  string
	Origin                string
	Environment           string
	JWTSecret             string
	Database              DatabaseConfig
	IdentityService       IdentityServiceConfig
	Redis                 RedisConfig
	Storage               StorageConfig
	EnrichmentConcurrency int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// IdentityServiceConfig holds the location of the external user service.
type IdentityServiceConfig struct {
	BaseURL string
}

// RedisConfig holds connection details for the token revocation store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig holds file byte storage configuration. Driver selects
// between "local" (filesystem under UploadDir) and "minio".
type StorageConfig struct {
	Driver         string
	UploadDir      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "medical_history"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	enrichmentConcurrency, err := strconv.Atoi(getEnv("ENRICHMENT_CONCURRENCY", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENRICHMENT_CONCURRENCY: %w", err)
	}
	if enrichmentConcurrency < 1 {
		return nil, fmt.Errorf("ENRICHMENT_CONCURRENCY must be at least 1, got %d", enrichmentConcurrency)
	}

	minioUseSSL, err := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid MINIO_USE_SSL: %w", err)
	}

	storageDriver := getEnv("STORAGE_DRIVER", "local")
	if storageDriver != "local" && storageDriver != "minio" {
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: must be \"local\" or \"minio\"", storageDriver)
	}

	// Return complete configuration
	return &Config{
		Port:        getEnv("PORT", "8084"),
		Origin:      getEnv("ORIGIN", "http://localhost:4200"),
		Environment: getEnv("APP_ENV", "development"),
		JWTSecret:   getEnv("JWT_SECRET", "default_jwt_secret"),
		Database:    dbConfig,
		IdentityService: IdentityServiceConfig{
			BaseURL: getEnv("USER_SERVICE_URL", "http://localhost:8081"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Storage: StorageConfig{
			Driver:         storageDriver,
			UploadDir:      getEnv("UPLOAD_DIR", "uploads/medical-history"),
			MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
			MinioBucket:    getEnv("MINIO_BUCKET", "medical-history-files"),
			MinioUseSSL:    minioUseSSL,
		},
		EnrichmentConcurrency: enrichmentConcurrency,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
