package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTIssuer        string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration

	ChallengeTTL  time.Duration
	SweepInterval time.Duration

	ConsentRequired       bool
	DefaultConsentVersion string
	SeedDemoUsers         bool
	BcryptCost            int

	AllowedOrigins []string // CORS allowed origins
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:  getEnv("APP_PORT", "8000"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTAccessSecret:  getEnv("JWT_ACCESS_SECRET", "driversense-dev-secret-key-2024"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "driversense-dev-refresh-secret-2024"),
		JWTIssuer:        getEnv("JWT_ISSUER", "driversense-api"),
		AccessTokenTTL:   getEnvDuration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL:  getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		ChallengeTTL:  getEnvDuration("CHALLENGE_TTL", 5*time.Minute),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", time.Minute),

		ConsentRequired:       getEnvBool("CONSENT_REQUIRED", true),
		DefaultConsentVersion: getEnv("DEFAULT_CONSENT_VERSION", "1.0"),
		SeedDemoUsers:         getEnvBool("SEED_DEMO_USERS", true),
		BcryptCost:            getEnvInt("BCRYPT_COST", 10),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
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

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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

// getEnvDuration accepts Go duration strings ("90s", "1h").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
