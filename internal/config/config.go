package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	// Database
	MongoURI      string
	MongoDatabase string
	RedisURL      string

	// Authorization policy: emails that always hold admin privilege.
	// Matching is case-insensitive; see the authz package for the full
	// fast-path rule.
	AdminEmails []string

	// Auth
	JWTSecret     string
	JWTExpiration time.Duration

	// API
	APIPort            string
	RateLimitPerMinute int
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "procurehub"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),

		AdminEmails: parseEmailList(getEnv("ADMIN_EMAILS", "")),

		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpiration: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,

		APIPort:            getEnv("API_PORT", "3000"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
	}

	return cfg
}

func (c *Config) Validate(log *zap.Logger) {
	if c.MongoURI == "" {
		log.Warn("MONGO_URI is not set, running with storage disabled")
	}
	if c.JWTSecret == "change-me-in-production" {
		log.Warn("JWT_SECRET is default, change in production")
	}
	if len(c.AdminEmails) == 0 {
		log.Warn("ADMIN_EMAILS is empty, admin access relies on stored profiles only")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func parseEmailList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var emails []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			emails = append(emails, p)
		}
	}
	return emails
}
