package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the shortest signing secret accepted at startup.
const MinJWTSecretLength = 32

// Configuration errors returned by Load.
var (
	ErrJWTSecretMissing   = errors.New("JWT_SECRET is required")
	ErrJWTSecretTooShort  = fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength)
	ErrDatabaseURLMissing = errors.New("DATABASE_URL is required")
	ErrJWTExpiryInvalid   = errors.New("JWT_EXPIRY_HOURS must be positive")
	ErrAuthRateLimit      = errors.New("AUTH_RATE_LIMIT must be positive")
)

// Config holds all application configuration.
type Config struct {
	ServerPort  string
	GinMode     string
	LogLevel    string
	LogFormat   string
	DatabaseURL string
	MaxDBConns  int32
	// RedisURL is optional. When empty the auth rate limiter runs in-process.
	RedisURL   string
	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int
	// AllowedOrigins controls HTTP CORS. Empty slice means all origins are permitted.
	AllowedOrigins []string
	// AuthRateLimit is the number of register/login requests allowed per IP per minute.
	AuthRateLimit int
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing. The signing
// secret and database URL have no defaults.
func Load() (*Config, error) {
	cfg := load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadForTools is Load for the command-line tools. Only the database URL is required.
func LoadForTools() (*Config, error) {
	cfg := load()
	if cfg.DatabaseURL == "" {
		return nil, ErrDatabaseURLMissing
	}
	return cfg, nil
}

func load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "4000"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MaxDBConns:     int32(getEnvInt("MAX_DB_CONNS", 16)),
		RedisURL:       getEnv("REDIS_URL", ""),
		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTExpiry:      time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		BcryptCost:     getEnvInt("BCRYPT_COST", 10),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		AuthRateLimit:  getEnvInt("AUTH_RATE_LIMIT", 30),
	}
}

// Validate reports the first configuration value the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrJWTSecretMissing
	}
	if len(c.JWTSecret) < MinJWTSecretLength {
		return ErrJWTSecretTooShort
	}
	if c.DatabaseURL == "" {
		return ErrDatabaseURLMissing
	}
	if c.JWTExpiry <= 0 {
		return ErrJWTExpiryInvalid
	}
	if c.AuthRateLimit <= 0 {
		return ErrAuthRateLimit
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
