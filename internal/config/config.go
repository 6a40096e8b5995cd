package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the realtime service reads from the environment.
type Config struct {
	Port string

	PostgresDSN        string
	MongoURI           string
	DocsDBName         string
	ChaptersCollection string
	RedisAddr          string

	JWTSecret      string
	MediaUploadURL string

	// SendBufferSize is the per-connection outbound queue depth. A peer whose
	// queue is full is dropped rather than allowed to stall the room.
	SendBufferSize int

	// IdleTimeout closes connections with no inbound traffic. Zero disables it.
	IdleTimeout time.Duration
}

func Load() *Config {
	return &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		PostgresDSN:        getEnvOrDefault("POSTGRES_DSN", "host=postgres user=readify password=readify dbname=readify port=5432 sslmode=disable"),
		MongoURI:           getEnvOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		DocsDBName:         getEnvOrDefault("DOCS_DB_NAME", "readify"),
		ChaptersCollection: getEnvOrDefault("CHAPTERS_COLLECTION", "books_chapter"),
		RedisAddr:          getEnvOrDefault("REDIS_ADDR", "redis:6379"),
		JWTSecret:          getEnvOrDefault("JWT_SECRET", "dev"),
		MediaUploadURL:     getEnvOrDefault("MEDIA_UPLOAD_URL", "http://media-service:8080/api/v1/upload"),
		SendBufferSize:     getEnvIntOrDefault("SEND_BUFFER_SIZE", 64),
		IdleTimeout:        time.Duration(getEnvIntOrDefault("IDLE_TIMEOUT_SECONDS", 0)) * time.Second,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
