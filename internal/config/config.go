package config

import (
	"os"
	"strconv"
)

type Config struct {
	// App
	AppEnv string
	Port   string

	// Database
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	// Auth
	JWTSecret   string
	JWTTTLHours int

	// API behaviour
	DefaultPageSize int
	CORSOrigins     string
}

func Load() (*Config, error) {
	cfg := &Config{
		// App
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),

		// DB
		DBHost:    getEnv("DB_HOST", "127.0.0.1"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "postgres"),
		DBPass:    getEnv("DB_PASS", "postgres"),
		DBName:    getEnv("DB_NAME", "taskflow_db"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret:   getEnv("JWT_SECRET", "secret123"),
		JWTTTLHours: getEnvInt("JWT_TTL_HOURS", 24),

		// Listing behaves as "no effective limit" unless the caller
		// passes one.
		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 1000),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
	}

	return cfg, nil
}

// getEnv returns environment variable or default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns int from env or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
