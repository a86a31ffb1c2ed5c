package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ProviderConfig holds the connection details for one inference endpoint.
// Endpoint is the base URL of an OpenAI-compatible API (no /v1 suffix).
type ProviderConfig struct {
	Endpoint       string
	Token          string
	Model          string
	Style          string // "chat" or "text" completion shape
	TimeoutSeconds int
}

// Configured reports whether enough is set to attempt a provider call.
func (p ProviderConfig) Configured() bool {
	return p.Endpoint != "" && p.Token != ""
}

type Config struct {
	HTTPPort string
	LogLevel string

	CORSAllowedOrigins []string

	Completion ProviderConfig
	Embedding  ProviderConfig

	RedisHost     string
	RedisPort     int
	RedisUsername string
	RedisPassword string
	RedisDB       int

	// RecurringThreshold is the minimum cosine similarity for a current
	// theme to count as recurring. Kept configurable because the value is
	// product policy, not a property of the embedding model.
	RecurringThreshold float64
}

// RedisConfigured reports whether a durable storage backend is available.
func (c Config) RedisConfigured() bool {
	return c.RedisHost != "" && c.RedisPassword != ""
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		Completion: ProviderConfig{
			Endpoint:       getEnv("COMPLETION_ENDPOINT", ""),
			Token:          getEnv("COMPLETION_TOKEN", ""),
			Model:          getEnv("COMPLETION_MODEL", "google/gemma-3-27b-it"),
			Style:          getEnv("COMPLETION_STYLE", "chat"),
			TimeoutSeconds: getEnvAsInt("COMPLETION_TIMEOUT_SECONDS", 60),
		},
		Embedding: ProviderConfig{
			Endpoint:       getEnv("EMBEDDING_ENDPOINT", ""),
			Token:          getEnv("EMBEDDING_TOKEN", ""),
			Model:          getEnv("EMBEDDING_MODEL", "Qwen/Qwen3-Embedding-8B"),
			TimeoutSeconds: getEnvAsInt("EMBEDDING_TIMEOUT_SECONDS", 30),
		},
		RedisHost:          getEnv("REDIS_HOST", ""),
		RedisPort:          getEnvAsInt("REDIS_PORT", 6379),
		RedisUsername:      getEnv("REDIS_USERNAME", "default"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		RecurringThreshold: getEnvAsFloat("RECURRING_THEME_THRESHOLD", 0.7),
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
