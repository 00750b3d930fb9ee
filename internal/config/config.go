package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
}

// ServerConfig holds portal HTTP server configuration
type ServerConfig struct {
	Port            int
	DefaultPageSize int
}

// BackendConfig holds configuration for the remote customer API
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// SessionConfig holds session store configuration
type SessionConfig struct {
	Store    string // memory, redis or postgres
	TTLHours int
	RedisURL string
	Postgres PostgresConfig
}

// PostgresConfig holds the postgres session store connection settings
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Load reads configuration from the environment, loading a .env file
// first when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORTAL_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORTAL_PORT: %w", err)
	}

	pageSize, err := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_PAGE_SIZE: %w", err)
	}

	backendTimeout, err := strconv.Atoi(getEnv("BACKEND_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT_SECONDS: %w", err)
	}

	ttlHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %w", err)
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	store := getEnv("SESSION_STORE", "memory")
	switch store {
	case "memory", "redis", "postgres":
	default:
		return nil, fmt.Errorf("invalid SESSION_STORE %q (must be memory, redis or postgres)", store)
	}

	return &Config{
		Server: ServerConfig{
			Port:            port,
			DefaultPageSize: pageSize,
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "https://localhost:7176"),
			TimeoutSeconds: backendTimeout,
		},
		Session: SessionConfig{
			Store:    store,
			TTLHours: ttlHours,
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Postgres: PostgresConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     dbPort,
				User:     getEnv("DB_USER", "portal"),
				Password: getEnv("DB_PASSWORD", "portal"),
				DBName:   getEnv("DB_NAME", "portal"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
		},
	}, nil
}

// DSN returns the postgres connection string
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
