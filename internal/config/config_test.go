package config_test

import (
	"testing"
	"time"

	"polyglot/backend/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoadBackend(t *testing.T) {
	t.Setenv("POLYGLOT_ADDR", ":9999")
	t.Setenv("DATABASE_URL", "postgresql://user:password@db:5432/translations")
	t.Setenv("POLYGLOT_AIEND_URL", "http://localhost:8001/translate/")
	t.Setenv("POLYGLOT_LOG_LEVEL", "debug")
	t.Setenv("POLYGLOT_DB_RETRIES", "3")
	t.Setenv("POLYGLOT_DB_RETRY_DELAY", "2")
	t.Setenv("POLYGLOT_SWAGGER", "false")
	t.Setenv("POLYGLOT_CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := config.LoadBackend()
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, "postgresql://user:password@db:5432/translations", cfg.DatabaseURL)
	require.Equal(t, "http://localhost:8001/translate/", cfg.AIEndURL)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 3, cfg.DBRetries)
	require.Equal(t, 2*time.Second, cfg.DBRetryDelay)
	require.False(t, cfg.Swagger)
	require.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
}

func TestLoadBackend_Defaults(t *testing.T) {
	t.Setenv("POLYGLOT_ADDR", "")
	t.Setenv("DATABASE_URL", "sqlite://data/translations.db")
	t.Setenv("POLYGLOT_AIEND_URL", "")
	t.Setenv("POLYGLOT_LOG_LEVEL", "")
	t.Setenv("POLYGLOT_DB_RETRIES", "not-a-number")
	t.Setenv("POLYGLOT_DB_RETRY_DELAY", "")
	t.Setenv("POLYGLOT_SWAGGER", "")
	t.Setenv("POLYGLOT_CORS_ORIGINS", "")

	cfg, err := config.LoadBackend()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "http://aiend:8001/translate/", cfg.AIEndURL)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 5, cfg.DBRetries)
	require.Equal(t, 5*time.Second, cfg.DBRetryDelay)
	require.True(t, cfg.Swagger)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadBackend_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "  ")

	_, err := config.LoadBackend()
	require.ErrorIs(t, err, config.ErrMissingDatabaseURL)
}

func TestLoadAIEnd(t *testing.T) {
	t.Setenv("POLYGLOT_AIEND_ADDR", "")
	t.Setenv("POLYGLOT_MODEL_PATH", "/srv/models/m4t/")

	cfg := config.LoadAIEnd()
	require.Equal(t, ":8001", cfg.Addr)
	require.Equal(t, "/srv/models/m4t", cfg.ModelPath)

	t.Setenv("POLYGLOT_MODEL_PATH", "")
	require.Equal(t, "models/seamless-m4t-v2-large", config.LoadAIEnd().ModelPath)
}
