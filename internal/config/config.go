package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database        DatabaseConfig
	App             AppConfig
	Kiosk           KioskConfig
	FaceRecognition FaceRecognitionConfig
	Reconciler      ReconcilerConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// KioskConfig holds the attendance-camera session settings
type KioskConfig struct {
	Secret          string
	TokenExpiration string
}

type FaceRecognitionConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ReconcilerConfig drives the two periodic jobs: the daily record
// provisioner and the absence sweeper.
type ReconcilerConfig struct {
	ProvisionAt   string // local wall-clock "HH:MM", before the earliest shift
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Kiosk configuration
	config.Kiosk = KioskConfig{
		Secret:          getEnv("KIOSK_JWT_SECRET", ""),
		TokenExpiration: getEnv("KIOSK_TOKEN_EXPIRATION", "12h"),
	}

	// Face recognition configuration
	faceTimeout, err := time.ParseDuration(getEnv("FACE_RECOGNITION_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_RECOGNITION_TIMEOUT: %w", err)
	}

	config.FaceRecognition = FaceRecognitionConfig{
		BaseURL: getEnv("FACE_RECOGNITION_URL", "http://localhost:5000"),
		Timeout: faceTimeout,
	}

	// Reconciler configuration
	sweepInterval, err := time.ParseDuration(getEnv("SWEEP_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}

	config.Reconciler = ReconcilerConfig{
		ProvisionAt:   getEnv("PROVISION_AT", "06:00"),
		SweepInterval: sweepInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Kiosk.Secret == "" {
		return fmt.Errorf("KIOSK_JWT_SECRET is required")
	}
	if _, err := time.Parse("15:04", c.Reconciler.ProvisionAt); err != nil {
		return fmt.Errorf("PROVISION_AT must be HH:MM: %w", err)
	}
	if c.Reconciler.SweepInterval < time.Minute {
		return fmt.Errorf("SWEEP_INTERVAL must be at least one minute")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
