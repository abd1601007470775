// Package config holds the explicit runtime configuration. Everything comes
// from the environment; components receive the struct, never read env vars
// themselves.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr    string
	DatabaseURL   string
	JWTSecret     string
	TokenTTL      time.Duration
	TempDir       string
	ViewsDir      string
	PublicDir     string
	MaxUploadSize int64

	Media MediaConfig
}

// MediaConfig configures the S3-compatible media host the upload pipeline
// relays files to.
type MediaConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

func Load() *Config {
	return &Config{
		ListenAddr:    getEnv("APP_HOST", "") + ":" + getEnv("APP_PORT", "8000"),
		DatabaseURL:   getEnv("DATABASE_URL", "user=postgres password=postgres dbname=db sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET_KEY", ""),
		TokenTTL:      time.Duration(getEnvAsInt64("TOKEN_TTL_MINUTES", 60)) * time.Minute,
		TempDir:       getEnv("UPLOAD_TEMP_DIR", "./uploads"),
		ViewsDir:      getEnv("VIEWS_DIR", "./web/views"),
		PublicDir:     getEnv("PUBLIC_DIR", "./web/public"),
		MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 5<<20),
		Media: MediaConfig{
			Endpoint:  getEnv("MEDIA_S3_ENDPOINT", ""),
			Region:    getEnv("MEDIA_S3_REGION", "us-east-1"),
			Bucket:    getEnv("MEDIA_S3_BUCKET", "media"),
			AccessKey: getEnv("MEDIA_S3_ACCESS_KEY", ""),
			SecretKey: getEnv("MEDIA_S3_SECRET_KEY", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
