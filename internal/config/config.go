package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	App   AppConfig
	Store StoreConfig
	Auth  AuthConfig
	CORS  CORSConfig
	Email EmailConfig
	Dedup DedupConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name    string
	Version string
	Debug   bool
	Port    string
	Host    string
}

// StoreConfig holds snapshot store configuration
type StoreConfig struct {
	Path             string
	SnapshotInterval time.Duration
}

// AuthConfig holds admin authentication configuration
type AuthConfig struct {
	SecretKey          string
	TokenExpiryMinutes int
	AdminUsername      string
	AdminPasswordHash  string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// EmailConfig holds email transport configuration
type EmailConfig struct {
	SMTPHost    string
	SMTPPort    int
	Username    string
	Password    string
	FromEmail   string
	FromName    string
	ReplyTo     string
	OpsEmail    string
	SendTimeout time.Duration
}

// DedupConfig holds duplicate-submission filter policy. The duplicate
// window and the eviction TTL are independent constants, not derived
// from one another.
type DedupConfig struct {
	Window time.Duration
	TTL    time.Duration
}

// Configured reports whether SMTP credentials are present. When they are
// not, the mailer runs in development mode and simulates delivery.
func (c *EmailConfig) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "Websutech API"),
			Version: getEnv("APP_VERSION", "1.0.0"),
			Debug:   getEnvAsBool("DEBUG", false),
			Port:    getEnv("PORT", "3000"),
			Host:    getEnv("HOST", "0.0.0.0"),
		},
		Store: StoreConfig{
			Path:             getEnv("DATA_FILE", "data/storage.json"),
			SnapshotInterval: getEnvAsDuration("SNAPSHOT_INTERVAL", 5*time.Minute),
		},
		Auth: AuthConfig{
			SecretKey:          getEnv("SECRET_KEY", ""),
			TokenExpiryMinutes: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60),
			AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
			AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: []string{"GET", "POST", "OPTIONS", "HEAD"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         86400,
		},
		Email: EmailConfig{
			SMTPHost:    getEnv("SMTP_HOST", "smtp.zoho.com"),
			SMTPPort:    getEnvAsInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USER", ""),
			Password:    getEnv("SMTP_PASS", ""),
			FromEmail:   getEnv("EMAIL_FROM", "contact@websutech.com"),
			FromName:    getEnv("EMAIL_FROM_NAME", "Websutech"),
			ReplyTo:     getEnv("EMAIL_REPLY_TO", ""),
			OpsEmail:    getEnv("EMAIL_OPS", "contact@websutech.com"),
			SendTimeout: getEnvAsDuration("EMAIL_SEND_TIMEOUT", 15*time.Second),
		},
		Dedup: DedupConfig{
			Window: getEnvAsDuration("DEDUP_WINDOW", 5*time.Second),
			TTL:    getEnvAsDuration("DEDUP_TTL", 60*time.Second),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if cfg.Store.Path == "" {
		return fmt.Errorf("DATA_FILE must be set")
	}
	if cfg.Store.SnapshotInterval <= 0 {
		return fmt.Errorf("SNAPSHOT_INTERVAL must be greater than 0")
	}
	if cfg.Auth.TokenExpiryMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be greater than 0")
	}
	if cfg.Dedup.Window <= 0 || cfg.Dedup.TTL <= 0 {
		return fmt.Errorf("DEDUP_WINDOW and DEDUP_TTL must be greater than 0")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
