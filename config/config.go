package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	FrontendURL string
	// Gemini Configuration
	GeminiAPIKey     string
	ModelName        string
	ModelTemperature float64
	LLMMaxAttempts   int
	// Data Storage
	DataDir       string
	DBUrl         string // optional, JSONL store is used when empty
	RetentionDays int
	// Redis/Upstash Configuration (optional, in-memory fallback otherwise)
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Adapter Rate Limiting (per adapter name, sliding window)
	EnableRateLimiting     bool
	RateLimitRequests      int
	RateLimitPeriodSeconds int
	// HTTP Rate Limiting
	RateLimitWindowSeconds    int
	RateLimitMessageThreshold int
	RateLimitGlobalThreshold  int
	// Turn input caps
	MaxMessageChars int
	MaxAnswerChars  int
	// Logging
	LogLevel string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; ignored in production when missing
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Gemini Configuration
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		ModelName:        getEnv("MODEL_NAME", "gemini-2.5-flash"),
		ModelTemperature: getEnvFloat("MODEL_TEMPERATURE", 0.2),
		LLMMaxAttempts:   getEnvInt("LLM_MAX_ATTEMPTS", 3),
		// Data Storage
		DataDir:       getEnv("DATA_DIR", "data"),
		DBUrl:         getEnv("DATABASE_URL", ""),
		RetentionDays: getEnvInt("RETENTION_DAYS", 90),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Adapter Rate Limiting
		EnableRateLimiting:     getEnvBool("ENABLE_RATE_LIMITING", true),
		RateLimitRequests:      getEnvInt("RATE_LIMIT_REQUESTS", 10),
		RateLimitPeriodSeconds: getEnvInt("RATE_LIMIT_PERIOD_SECONDS", 60),
		// HTTP Rate Limiting (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitMessageThreshold: getEnvInt("RATE_LIMIT_MESSAGE_THRESHOLD", 30),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Turn input caps
		MaxMessageChars: getEnvInt("MAX_MESSAGE_CHARS", 1000),
		MaxAnswerChars:  getEnvInt("MAX_ANSWER_CHARS", 5000),
		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY is missing. Falling back to deterministic extraction only.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. HTTP rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat returns a float environment variable or fallback if not set/invalid
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
