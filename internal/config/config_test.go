package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"APP_HOST", "APP_PORT", "APP_ENV",
	"STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE", "DATABASE_URL", "STORE_TIMEOUT",
	"REDIS_ADDR", "REDIS_PASSWORD", "CACHE_TTL",
	"JWT_SECRET", "JWT_TTL", "COOKIE_SECURE",
	"MAIL_HOST", "MAIL_PORT", "MAIL_USERNAME", "MAIL_PASSWORD", "MAIL_FROM", "MAIL_FROM_NAME",
	"MAIL_TIMEOUT", "ADMIN_EMAIL", "SHUTDOWN_TIMEOUT",
}

// clearEnv sets every key to "" which envOrDefault treats as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "gluto", cfg.MongoDatabase)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "admin@glutointernational.com", cfg.AdminEmail)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ADMIN_EMAIL", "ops@example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "ops@example.com", cfg.AdminEmail)
}

func TestFromEnv_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":           {"STORE_DRIVER": "sqlite"},
		"bad duration":             {"STORE_TIMEOUT": "soon"},
		"bad bool":                 {"COOKIE_SECURE": "maybe"},
		"production default JWT":   {"APP_ENV": "production"},
		"production memory driver": {"APP_ENV": "production", "JWT_SECRET": "s3cret", "STORE_DRIVER": "memory"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
