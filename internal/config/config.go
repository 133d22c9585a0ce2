// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DBTypeMongo  = "mongo"
	DBTypeMemory = "memory"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
	RequestTimeout time.Duration
}

// DatabaseConfig holds database configuration settings
type DatabaseConfig struct {
	Type string // "mongo" or "memory"
	URI  string
	Name string
}

// AuthConfig holds token signing settings
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Config holds the complete application configuration
type Config struct {
	Server            *ServerConfig
	Database          *DatabaseConfig
	Auth              *AuthConfig
	MaxReferenceDepth int
	AllowedOrigins    []string
	LogLevel          string
	Debug             bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
		RequestTimeout: 5 * time.Second,
	}
}

// DefaultDatabaseConfig provides default database settings
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Type: DBTypeMongo,
		Name: "fritter",
	}
}

// DefaultAuthConfig provides default token settings. The secret must be overridden outside development.
func DefaultAuthConfig() *AuthConfig {
	return &AuthConfig{
		JWTSecret: "fritter_development_secret",
		TokenTTL:  24 * time.Hour,
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Try to load .env file from multiple possible locations
	envLocations := []string{
		".env",       // Current directory
		"../../.env", // Project root when running from cmd/engine
		filepath.Join(os.Getenv("GOPATH"), "src/fritter/.env"),
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		// No .env file is fine, the environment may carry everything
		_ = godotenv.Load()
	}

	serverConfig := DefaultConfig()
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		serverConfig.Port = port
	}
	serverConfig.Host = getEnvOrDefault("HOST", serverConfig.Host)
	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		serverConfig.MetricsEnabled = metricsEnabled == "true"
	}
	timeout, err := getDurationOrDefault("REQUEST_TIMEOUT", serverConfig.RequestTimeout)
	if err != nil {
		return nil, err
	}
	serverConfig.RequestTimeout = timeout

	dbConfig := DefaultDatabaseConfig()
	dbConfig.Type = getEnvOrDefault("DB_TYPE", dbConfig.Type)
	dbConfig.Name = getEnvOrDefault("MONGODB_DATABASE", dbConfig.Name)
	switch dbConfig.Type {
	case DBTypeMongo:
		dbConfig.URI = os.Getenv("MONGODB_URI")
		if dbConfig.URI == "" {
			return nil, fmt.Errorf("MONGODB_URI environment variable is required when DB_TYPE is %s", DBTypeMongo)
		}
	case DBTypeMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbConfig.Type)
	}

	authConfig := DefaultAuthConfig()
	authConfig.JWTSecret = getEnvOrDefault("JWT_SECRET", authConfig.JWTSecret)
	ttl, err := getDurationOrDefault("TOKEN_TTL", authConfig.TokenTTL)
	if err != nil {
		return nil, err
	}
	authConfig.TokenTTL = ttl

	config := &Config{
		Server:            serverConfig,
		Database:          dbConfig,
		Auth:              authConfig,
		MaxReferenceDepth: 32,
		AllowedOrigins:    []string{"*"},
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if depth := os.Getenv("MAX_REFERENCE_DEPTH"); depth != "" {
		n, err := strconv.Atoi(depth)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("MAX_REFERENCE_DEPTH must be a positive integer, got %q", depth)
		}
		config.MaxReferenceDepth = n
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
		config.LogLevel = "debug"
	}

	return config, nil
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
