package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Upload storage configuration
	Storage StorageConfig

	// Admin authentication configuration
	Auth AuthConfig

	// Public submission throttling
	RateLimit RateLimitConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MigrationsPath  string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// StorageConfig holds local upload settings
type StorageConfig struct {
	PublicDir        string // web root served as static files
	UploadsDir       string // relative to PublicDir
	MaxImageSize     int64  // content images, in bytes
	MaxProofSize     int64  // donation proofs, in bytes
	ThumbnailWidth   int
	EnableThumbnails bool
}

// AuthConfig holds the single admin credential and session settings
type AuthConfig struct {
	AdminUsername     string
	AdminPassword     string // plaintext fallback, hashed at startup
	AdminPasswordHash string // bcrypt hash, preferred
	JWTSecret         string
	TokenTTL          time.Duration
	CookieName        string
	SecureCookie      bool
}

// RateLimitConfig holds limits for public submissions
type RateLimitConfig struct {
	SubmissionsPerWindow int
	Window               time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables, after importing a
// .env file from the working directory when one exists
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "rosa_mystica"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Storage: StorageConfig{
			PublicDir:        getEnv("PUBLIC_DIR", "./public"),
			UploadsDir:       getEnv("UPLOADS_DIR", "uploads"),
			MaxImageSize:     getInt64Env("MAX_IMAGE_SIZE", 1*1024*1024),
			MaxProofSize:     getInt64Env("MAX_PROOF_SIZE", 5*1024*1024),
			ThumbnailWidth:   getIntEnv("THUMBNAIL_WIDTH", 400),
			EnableThumbnails: getBoolEnv("ENABLE_THUMBNAILS", true),
		},
		Auth: AuthConfig{
			AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
			AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			JWTSecret:         os.Getenv("JWT_SECRET"),
			TokenTTL:          getDurationEnv("ADMIN_TOKEN_TTL", 12*time.Hour),
			CookieName:        getEnv("ADMIN_COOKIE_NAME", "admin_session"),
			SecureCookie:      getBoolEnv("ADMIN_COOKIE_SECURE", false),
		},
		RateLimit: RateLimitConfig{
			SubmissionsPerWindow: getIntEnv("RATE_LIMIT_SUBMISSIONS", 10),
			Window:               getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.AdminPassword == "" && c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if c.Storage.MaxImageSize <= 0 || c.Storage.MaxProofSize <= 0 {
		return fmt.Errorf("upload size limits must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
