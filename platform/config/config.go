// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// PlacesConfig provides settings for the external place-search service.
type PlacesConfig interface {
	GetPlacesAPIKey() string
	GetPlacesBaseURL() string
	GetPlacesLanguage() string
	GetPlacesRegion() string
}

// CacheConfig provides settings for the place-response cache.
type CacheConfig interface {
	GetRedisURL() string
	GetPlacesCacheTTL() time.Duration
	IsCacheEnabled() bool
}

// LocationConfig provides the fallback search center used when a user
// has no selected delivery address.
type LocationConfig interface {
	GetDefaultLatitude() float64
	GetDefaultLongitude() float64
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketMenus() string
	IsMinIOEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	DatabaseURL      string
	JWTAccessSecret  string
	CORSAllowAll     bool
	CORSOrigins      []string
	CORSAllowCreds   bool
	PlacesAPIKey     string
	PlacesBaseURL    string
	PlacesLanguage   string
	PlacesRegion     string
	RedisURL         string
	PlacesCacheTTL   time.Duration
	DefaultLatitude  float64
	DefaultLongitude float64
	MinIOEndpoint    string
	MinIOAccessKey   string
	MinIOSecretKey   string
	MinIOUseSSL      bool
	MinioBucketMenus string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// PlacesConfig implementation
func (c *Config) GetPlacesAPIKey() string   { return c.PlacesAPIKey }
func (c *Config) GetPlacesBaseURL() string  { return c.PlacesBaseURL }
func (c *Config) GetPlacesLanguage() string { return c.PlacesLanguage }
func (c *Config) GetPlacesRegion() string   { return c.PlacesRegion }

// CacheConfig implementation
func (c *Config) GetRedisURL() string              { return c.RedisURL }
func (c *Config) GetPlacesCacheTTL() time.Duration { return c.PlacesCacheTTL }
func (c *Config) IsCacheEnabled() bool             { return c.RedisURL != "" }

// LocationConfig implementation
func (c *Config) GetDefaultLatitude() float64  { return c.DefaultLatitude }
func (c *Config) GetDefaultLongitude() float64 { return c.DefaultLongitude }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string    { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string   { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string   { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool        { return c.MinIOUseSSL }
func (c *Config) GetMinioBucketMenus() string { return c.MinioBucketMenus }
func (c *Config) IsMinIOEnabled() bool        { return c.MinIOEndpoint != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		JWTAccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		CORSAllowCreds:   strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		PlacesAPIKey:     getEnv("GOOGLE_API_KEY", ""),
		PlacesBaseURL:    getEnv("PLACES_BASE_URL", "https://places.googleapis.com"),
		PlacesLanguage:   getEnv("PLACES_LANGUAGE", "ja"),
		PlacesRegion:     getEnv("PLACES_REGION", "JP"),
		RedisURL:         getEnv("REDIS_URL", ""),
		PlacesCacheTTL:   mustDuration(getEnv("PLACES_CACHE_TTL", "24h")),
		// Shibuya city center, the fallback when no address is selected.
		DefaultLatitude:  mustFloat(getEnv("DEFAULT_LATITUDE", "35.6669248")),
		DefaultLongitude: mustFloat(getEnv("DEFAULT_LONGITUDE", "139.6990609")),
		MinIOEndpoint:    getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:   getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:   getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:      strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinioBucketMenus: getEnv("MINIO_BUCKET_MENUS", "menus"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.PlacesAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func mustFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
