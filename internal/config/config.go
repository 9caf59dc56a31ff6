package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBackendAddr   = ":8080"
	DefaultAIEndAddr     = ":8001"
	DefaultAIEndURL      = "http://aiend:8001/translate/"
	DefaultModelPath     = "models/seamless-m4t-v2-large"
	DefaultDBRetries     = 5
	DefaultDBRetryDelay  = 5 * time.Second
	DatabaseURLEnv       = "DATABASE_URL"
	defaultLogLevel      = "info"
	defaultCORSAllowlist = "*"
)

// ErrMissingDatabaseURL is returned when DATABASE_URL is not set.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is not set")

// Backend configures the gateway process.
type Backend struct {
	Addr         string
	DatabaseURL  string
	AIEndURL     string
	AIEndProxy   string
	LogLevel     string
	DBRetries    int
	DBRetryDelay time.Duration
	Swagger      bool
	CORSOrigins  []string
}

// AIEnd configures the inference process.
type AIEnd struct {
	Addr        string
	ModelPath   string
	LogLevel    string
	Swagger     bool
	CORSOrigins []string
}

// LoadBackend reads the gateway configuration from the environment.
// A missing DATABASE_URL is reported as ErrMissingDatabaseURL alongside the
// rest of the loaded values.
func LoadBackend() (Backend, error) {
	cfg := Backend{
		Addr:         envOr("POLYGLOT_ADDR", DefaultBackendAddr),
		DatabaseURL:  strings.TrimSpace(os.Getenv(DatabaseURLEnv)),
		AIEndURL:     envOr("POLYGLOT_AIEND_URL", DefaultAIEndURL),
		AIEndProxy:   os.Getenv("POLYGLOT_AIEND_PROXY"),
		LogLevel:     envOr("POLYGLOT_LOG_LEVEL", defaultLogLevel),
		DBRetries:    envInt("POLYGLOT_DB_RETRIES", DefaultDBRetries),
		DBRetryDelay: envDuration("POLYGLOT_DB_RETRY_DELAY", DefaultDBRetryDelay),
		Swagger:      envBool("POLYGLOT_SWAGGER", true),
		CORSOrigins:  splitList(envOr("POLYGLOT_CORS_ORIGINS", defaultCORSAllowlist)),
	}
	if cfg.DatabaseURL == "" {
		return cfg, ErrMissingDatabaseURL
	}
	return cfg, nil
}

// LoadAIEnd reads the inference configuration from the environment.
func LoadAIEnd() AIEnd {
	return AIEnd{
		Addr:        envOr("POLYGLOT_AIEND_ADDR", DefaultAIEndAddr),
		ModelPath:   filepath.Clean(envOr("POLYGLOT_MODEL_PATH", DefaultModelPath)),
		LogLevel:    envOr("POLYGLOT_LOG_LEVEL", defaultLogLevel),
		Swagger:     envBool("POLYGLOT_SWAGGER", true),
		CORSOrigins: splitList(envOr("POLYGLOT_CORS_ORIGINS", defaultCORSAllowlist)),
	}
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if value, err := time.ParseDuration(raw); err == nil && value >= 0 {
		return value
	}
	// bare numbers are seconds
	if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
