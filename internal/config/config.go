package config

import (
	"log"
	"os"
	"strings"
	"time"
)

const (
	DefaultSecretKey  = "dev-secret-key"
	DefaultSessionTTL = 7 * 24 * time.Hour
)

// Origins the frontend is served from during local development.
var defaultOrigins = []string{
	"http://127.0.0.1:5500",
	"http://localhost:5500",
	"http://127.0.0.1:5001",
	"http://localhost:5001",
}

type Config struct {
	Port           string
	Environment    string // ENV: production, development, etc.
	MongoURI       string
	MongoDB        string
	MongoTLSCAFile string // optional CA bundle for Atlas TLS
	RedisURI       string
	SecretKey      string // signs session cookies
	SessionTTL     time.Duration
	AllowedOrigins []string
	CatalogFile    string // optional YAML catalog replacing the built-in one
}

func Load() *Config {
	origins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(origins) == 0 {
		origins = append([]string(nil), defaultOrigins...)
	}

	return &Config{
		Port:           getEnv("PORT", "5001"),
		Environment:    strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017/"),
		MongoDB:        getEnv("MONGODB_DB", "aih_db"),
		MongoTLSCAFile: getEnv("MONGODB_TLS_CA_FILE", ""),
		RedisURI:       getEnv("REDIS_URI", "redis://localhost:6379/0"),
		SecretKey:      getEnv("SECRET_KEY", DefaultSecretKey),
		SessionTTL:     getDuration("SESSION_TTL", DefaultSessionTTL),
		AllowedOrigins: origins,
		CatalogFile:    getEnv("CATALOG_FILE", ""),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using default %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
