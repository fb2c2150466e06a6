package config

import (
	"errors"
	"os"
	"strings"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	// AdminToken must accompany sign-up requests asking for the ADMIN role.
	AdminToken  string
	CORSOrigins string
	LogLevel    string
	LogFormat   string
	AutoMigrate bool
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:        getEnv("APP_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminToken:  os.Getenv("ADMIN_TOKEN"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		AutoMigrate: strings.EqualFold(getEnv("AUTO_MIGRATE", "true"), "true"),
	}
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
