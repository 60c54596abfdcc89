package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string
	LogMode    string

	// DatabaseType selects the persistence mirror. "memory" keeps all state
	// in the process only.
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	SessionSecret   string
	SessionDuration time.Duration

	AudioPath string

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
	EmailDebug   bool

	RateLimit  int
	RateWindow time.Duration

	// TrustedProxies lists IPs or CIDRs allowed to set X-Forwarded-For
	TrustedProxies []string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		LogMode:         getEnv("LOG_MODE", "dev"),
		DatabaseType:    strings.ToLower(getEnv("DB_TYPE", "memory")),
		DatabasePath:    getEnv("DB_PATH", "./englishpath.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		SessionDuration: getDuration("SESSION_DURATION", 365*24*time.Hour),
		AudioPath:       getEnv("AUDIO_PATH", "./static/audio"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:    getEnv("SES_FROM_EMAIL", ""),
		SESFromName:     getEnv("SES_FROM_NAME", "English Path"),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),
		EmailDebug:      getBool("EMAIL_DEBUG", false),
		RateLimit:       getInt("RATE_LIMIT", 20),
		RateWindow:      getDuration("RATE_WINDOW", time.Minute),
		TrustedProxies:  getList("TRUSTED_PROXIES"),
	}
}

// Persistent reports whether a SQL mirror is configured
func (c *Config) Persistent() bool {
	return c.DatabaseType != "" && c.DatabaseType != "memory"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getList(key string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, ""), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
