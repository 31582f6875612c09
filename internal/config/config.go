package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration, loaded from environment
// variables with defaults that work for local development.
type Config struct {
	// Server
	Port           int
	LogLevel       string
	AllowedOrigins string

	// Database
	DBHost       string
	DBPort       int
	DBName       string
	DBUser       string
	DBPassword   string
	DBSSLDisable bool

	// Auth
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// AI provider
	AIBaseURL string
	AIAPIKey  string
	AIModel   string

	// Notifications
	EmailAPIURL      string
	EmailAPIKey      string
	EmailFrom        string
	WhatsAppAPIURL   string
	WhatsAppAPIKey   string
	WhatsAppInstance string

	// Dev
	SeedDemoData bool
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Port:           getEnvInt("PORT", 8080),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnvInt("DB_PORT", 5432),
		DBName:       getEnv("DB_NAME", "nexushub"),
		DBUser:       getEnv("DB_USERNAME", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBSSLDisable: getEnvBool("DB_SSL_MODE_DISABLE", true),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		AccessTTL:  getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL: getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute),

		AIBaseURL: getEnv("AI_BASE_URL", ""),
		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIModel:   getEnv("AI_MODEL", "gemini-2.0-flash"),

		EmailAPIURL:      getEnv("EMAIL_API_URL", "https://api.resend.com/emails"),
		EmailAPIKey:      getEnv("EMAIL_API_KEY", ""),
		EmailFrom:        getEnv("EMAIL_FROM", "NexusHub <no-reply@nexushub.com>"),
		WhatsAppAPIURL:   getEnv("WHATSAPP_API_URL", ""),
		WhatsAppAPIKey:   getEnv("WHATSAPP_API_KEY", ""),
		WhatsAppInstance: getEnv("WHATSAPP_INSTANCE", "nexushub"),

		SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
