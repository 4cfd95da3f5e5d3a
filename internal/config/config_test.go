package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "ENV", "MONGODB_URI", "MONGODB_DB", "MONGODB_TLS_CA_FILE", "REDIS_URI",
		"SECRET_KEY", "SESSION_TTL", "ALLOWED_ORIGINS", "CATALOG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c := Load()

	assert.Equal(t, "5001", c.Port)
	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, "mongodb://localhost:27017/", c.MongoURI)
	assert.Equal(t, "aih_db", c.MongoDB)
	assert.Empty(t, c.MongoTLSCAFile)
	assert.Equal(t, "redis://localhost:6379/0", c.RedisURI)
	assert.Equal(t, DefaultSecretKey, c.SecretKey)
	assert.Equal(t, DefaultSessionTTL, c.SessionTTL)
	assert.Equal(t, defaultOrigins, c.AllowedOrigins)
	assert.False(t, c.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", " Production ")
	t.Setenv("MONGODB_DB", "triage")
	t.Setenv("MONGODB_TLS_CA_FILE", "/etc/ssl/atlas.pem")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ALLOWED_ORIGINS", "https://aih.example.com, ,http://localhost:3000")

	c := Load()

	assert.Equal(t, "8080", c.Port)
	assert.True(t, c.IsProduction())
	assert.Equal(t, "triage", c.MongoDB)
	assert.Equal(t, "/etc/ssl/atlas.pem", c.MongoTLSCAFile)
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
	assert.Equal(t, []string{"https://aih.example.com", "http://localhost:3000"}, c.AllowedOrigins)
}

func TestLoadInvalidSessionTTLFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "forever")

	assert.Equal(t, DefaultSessionTTL, Load().SessionTTL)
}
