package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Storage  StorageConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds SurrealDB connection settings.
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
	OpTimeout time.Duration
}

// SessionConfig holds session lifetime and cookie settings.
type SessionConfig struct {
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
	ReapInterval time.Duration
}

// StorageConfig holds blob storage (poster) settings. When Bucket is
// empty the server falls back to the in-memory store, which is only
// suitable for development and tests.
type StorageConfig struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for S3-compatible stores
	AccessKey string
	SecretKey string
	URLExpiry time.Duration
}

// MaxPosterBytes caps multipart poster uploads.
const MaxPosterBytes = 5 << 20 // 5 MiB

// MaxFormOverheadBytes is headroom for the non-file fields and
// multipart framing around a poster upload.
const MaxFormOverheadBytes = 64 << 10

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "unisync"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
			OpTimeout: getDurationEnv("DB_OP_TIMEOUT", 5*time.Second),
		},
		Session: SessionConfig{
			TTL:          getDurationEnv("SESSION_TTL", 6*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "unisync_session"),
			CookieSecure: getBoolEnv("SESSION_COOKIE_SECURE", false),
			ReapInterval: getDurationEnv("SESSION_REAP_INTERVAL", 15*time.Minute),
		},
		Storage: StorageConfig{
			Bucket:    getEnv("POSTER_BUCKET", ""),
			Region:    getEnv("POSTER_REGION", "us-east-1"),
			Endpoint:  getEnv("POSTER_ENDPOINT", ""),
			AccessKey: getEnv("POSTER_ACCESS_KEY", ""),
			SecretKey: getEnv("POSTER_SECRET_KEY", ""),
			URLExpiry: getDurationEnv("POSTER_URL_EXPIRY", 15*time.Minute),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and
// valid. It returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("SESSION_COOKIE_NAME is required"))
	}

	// Posters live in an object store in production.
	if c.IsProduction() && c.Storage.Bucket == "" {
		errs = append(errs, errors.New("POSTER_BUCKET is required in production"))
	}
	if c.Storage.Bucket != "" && c.Storage.Region == "" {
		errs = append(errs, errors.New("POSTER_REGION is required when POSTER_BUCKET is set"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
