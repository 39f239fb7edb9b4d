package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables (a .env file is loaded in main for local runs).
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Officers OfficersConfig
	Clients  ClientsConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// OfficersConfig selects which storage backend serves the officers domain.
// This is an explicit startup decision, not an ambient profile: the factory
// in the officer repository package switches on Backend.
type OfficersConfig struct {
	Backend    string // postgres | sqlite
	SQLitePath string // file path, or :memory:
}

// ClientsConfig configures the outbound API clients.
type ClientsConfig struct {
	AstroURL string
	JokeURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	clientTimeout, err := time.ParseDuration(getEnv("CLIENT_TIMEOUT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLIENT_TIMEOUT: %w", err)
	}

	clientCacheTTL, err := time.ParseDuration(getEnv("CLIENT_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLIENT_CACHE_TTL: %w", err)
	}

	officersBackend := getEnv("OFFICERS_BACKEND", "postgres")
	if officersBackend != "postgres" && officersBackend != "sqlite" {
		return nil, fmt.Errorf("invalid OFFICERS_BACKEND %q: must be postgres or sqlite", officersBackend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Shopping API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Officers: OfficersConfig{
			Backend:    officersBackend,
			SQLitePath: getEnv("OFFICERS_SQLITE_PATH", "officers.db"),
		},
		Clients: ClientsConfig{
			AstroURL: getEnv("ASTRO_URL", "http://api.open-notify.org/astros.json"),
			JokeURL:  getEnv("JOKE_URL", "http://api.icndb.com/jokes/random?limitTo=[nerdy]"),
			Timeout:  clientTimeout,
			CacheTTL: clientCacheTTL,
		},
	}

	return cfg, nil
}

// getEnv reads an environment variable with a fallback default.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
