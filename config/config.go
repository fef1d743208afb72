package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Storage StorageConfig
	Session SessionConfig
	Deals   DealsConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig selects the durable storage driver for shopper session
// state: "redis", "file" or "memory".
type StorageConfig struct {
	Driver        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DataDir       string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type DealsConfig struct {
	RefreshSchedule string
	CacheTTL        time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:5000"),
			Timeout: parseDuration(getEnv("BACKEND_TIMEOUT", "30s"), 30*time.Second),
		},
		Storage: StorageConfig{
			Driver:        getEnv("STORAGE_DRIVER", "file"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       parseInt(getEnv("REDIS_DB", "0"), 0),
			DataDir:       getEnv("STORAGE_DATA_DIR", "./data"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "voicecart-session-secret"),
			TTL:    parseDuration(getEnv("SESSION_TTL", "720h"), 720*time.Hour),
		},
		Deals: DealsConfig{
			RefreshSchedule: getEnv("DEALS_REFRESH_SCHEDULE", "*/15 * * * *"),
			CacheTTL:        parseDuration(getEnv("DEALS_CACHE_TTL", "15m"), 15*time.Minute),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return value
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for i := 0; i < len(s); {
		end := i
		for end < len(s) && s[end] != ',' {
			end++
		}
		result = append(result, s[i:end])
		i = end + 1
	}
	return result
}
