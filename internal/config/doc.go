// Package config manages application configuration for the UniSync API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - SessionConfig: session lifetime, cookie and reaper settings
//   - StorageConfig: poster blob store (S3 or S3-compatible) settings
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT          - HTTP server port (default: 8080)
//	SERVER_ENV           - development, production or test
//	DB_HOST, DB_PORT     - SurrealDB endpoint
//	DB_NAMESPACE, DB_DATABASE
//	DB_USER, DB_PASSWORD
//	SESSION_TTL          - session lifetime (default: 6h)
//	SESSION_COOKIE_NAME  - cookie carrying the session token
//	POSTER_BUCKET        - S3 bucket for posters (required in production)
//	POSTER_ENDPOINT      - optional endpoint for S3-compatible stores
//
// # Default Values
//
// Sensible defaults are provided for development; Validate enforces
// what production cannot run without.
package config
