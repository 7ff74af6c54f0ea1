package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const devScopeSecret = "dev-secret-change-in-production"

type Config struct {
	Port             string
	Env              string
	APIURL           string
	ScopeSecret      string
	ScopeTTL         time.Duration
	RequestTimeout   time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
	ScopeCreateRPS   float64
	ScopeCreateBurst int
	MaxScopes        int
}

func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		APIURL:           getEnv("API_URL", "http://localhost:3001"),
		ScopeSecret:      getEnv("SCOPE_SECRET", devScopeSecret),
		ScopeTTL:         getDuration("SCOPE_TTL", 24*time.Hour),
		RequestTimeout:   getDuration("REQUEST_TIMEOUT", 15*time.Second),
		RateLimitRPS:     getFloat("AUTH_RATE_LIMIT_RPS", 5),
		RateLimitBurst:   getInt("AUTH_RATE_LIMIT_BURST", 10),
		ScopeCreateRPS:   getFloat("SCOPE_CREATE_RPS", 0.2),
		ScopeCreateBurst: getInt("SCOPE_CREATE_BURST", 5),
		MaxScopes:        getInt("MAX_SCOPES", 10000),
	}

	if cfg.Env == "production" && cfg.ScopeSecret == devScopeSecret {
		slog.Error("SCOPE_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("invalid number, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
