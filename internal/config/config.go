package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	GRPC     GRPCConfig
	Auth     AuthConfig
	Password PasswordConfig
	Catalog  CatalogConfig
	Logging  LoggingConfig
	Client   ClientConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address             string // gRPC server listen address (e.g., ":50051")
	LoginRatePerMinute  int    // Login attempts allowed per peer per minute
	ShutdownGracePeriod time.Duration
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string // JWT signing secret
}

// PasswordConfig selects the password hasher.
type PasswordConfig struct {
	Hasher string // "sha256" or "argon2id"
	Salt   string // installation salt, argon2id only
}

// CatalogConfig contains the movie catalog API settings.
type CatalogConfig struct {
	APIKey   string
	BaseURL  string
	ImageURL string
	Language string
	Timeout  time.Duration
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string
}

// ClientConfig holds settings of the terminal client.
type ClientConfig struct {
	ServerAddress string
	SessionPath   string
}

// Load loads configuration from environment variables (and an optional .env
// file) with sensible defaults. Secrets have no default.
func Load() (*Config, error) {
	cfg, err := load("")
	if err != nil {
		return nil, err
	}

	// Validate critical settings
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	if cfg.Catalog.APIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY environment variable is not set")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	return load("dev-secret-change-me")
}

func load(defaultSecret string) (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	rate, err := getEnvInt("LOGIN_RATE_PER_MINUTE", 10)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvInt("TMDB_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	grace, err := getEnvInt("SHUTDOWN_GRACE_SECONDS", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "users.db"),
		},
		GRPC: GRPCConfig{
			Address:             getEnv("GRPC_ADDRESS", ":50051"),
			LoginRatePerMinute:  rate,
			ShutdownGracePeriod: time.Duration(grace) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", defaultSecret),
		},
		Password: PasswordConfig{
			Hasher: getEnv("PASSWORD_HASHER", "sha256"),
			Salt:   getEnv("PASSWORD_SALT", ""),
		},
		Catalog: CatalogConfig{
			APIKey:   getEnv("TMDB_API_KEY", ""),
			BaseURL:  getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			ImageURL: getEnv("TMDB_IMAGE_URL", "https://image.tmdb.org/t/p/w500"),
			Language: getEnv("TMDB_LANGUAGE", "es-ES"),
			Timeout:  time.Duration(timeout) * time.Second,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Client: ClientConfig{
			ServerAddress: getEnv("SERVER_ADDRESS", "localhost:50051"),
			SessionPath:   getEnv("SESSION_PATH", defaultSessionPath()),
		},
	}
	if cfg.GRPC.LoginRatePerMinute < 0 {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MINUTE must not be negative")
	}
	return cfg, nil
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(dir, "moviebrowser", "session.json")
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, gRPC: %s, Hasher: %s, Catalog: %s (%s), Auth: *** (masked) ***}",
		c.Database.Path, c.GRPC.Address, c.Password.Hasher, c.Catalog.BaseURL, c.Catalog.Language)
}
