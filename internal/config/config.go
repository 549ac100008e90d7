package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// Config carries everything the server needs at construction time.
// Secrets are threaded in explicitly so tests can inject their own
// values instead of reading ambient globals.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Host        string
	Port        string
	UploadDir   string
	RedisURL    string
	TokenTTL    time.Duration
}

// Load reads configuration from the environment. DATABASE_URL and
// JWT_SECRET are required; everything else has a default.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Host:        getenv("HOST", "127.0.0.1"),
		Port:        getenv("PORT", "8080"),
		UploadDir:   getenv("UPLOAD_DIR", "./uploads"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	raw := getenv("TOKEN_TTL", "168h")
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return Config{}, fmt.Errorf("invalid duration in TOKEN_TTL=%s: %w", raw, err)
	}
	cfg.TokenTTL = ttl

	return cfg, nil
}

// Addr is the host:port the HTTP server binds to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
