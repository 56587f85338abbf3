package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	authdomain "github.com/Apurer/dharai-delivery/internal/domains/auth/domain"
	sessionpostgres "github.com/Apurer/dharai-delivery/internal/domains/session/adapters/persistence/postgres"
	sessionredis "github.com/Apurer/dharai-delivery/internal/domains/session/adapters/redis"
)

const devClientTokenSecret = "dharai-development-client-secret"

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	Environment       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	SessionTTL        time.Duration
	TransferTTL       time.Duration
	ClientTokenSecret string
	DemoPassword      string
	LoginLatency      time.Duration
	AllowedOrigins    []string
}

// Production reports whether cookies must be secure and secrets explicit.
func (c Config) Production() bool {
	return c.Environment == "production"
}

// LoadConfig loads .env when present, reads environment variables, applies
// defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		Environment:       strings.ToLower(envDefault("ENVIRONMENT", "development")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SessionTTL:        sessionpostgres.DefaultSessionTTL,
		TransferTTL:       sessionredis.DefaultTransferTTL,
		ClientTokenSecret: strings.TrimSpace(os.Getenv("CLIENT_TOKEN_SECRET")),
		DemoPassword:      envDefault("DEMO_PASSWORD", authdomain.DemoPassword),
		LoginLatency:      authdomain.SubmitLatency,
		AllowedOrigins:    splitList(envDefault("ALLOWED_ORIGINS", "http://localhost:5173")),
	}
	var err error
	if cfg.SessionTTL, err = positiveDuration("SESSION_TTL_HOURS", time.Hour, cfg.SessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.TransferTTL, err = positiveDuration("TRANSFER_TTL_MINUTES", time.Minute, cfg.TransferTTL); err != nil {
		return Config{}, err
	}
	if raw := strings.TrimSpace(os.Getenv("LOGIN_LATENCY_MS")); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return Config{}, fmt.Errorf("LOGIN_LATENCY_MS must be a non-negative integer")
		}
		cfg.LoginLatency = time.Duration(ms) * time.Millisecond
	}
	if cfg.ClientTokenSecret == "" {
		if cfg.Production() {
			return Config{}, fmt.Errorf("CLIENT_TOKEN_SECRET is required in production")
		}
		cfg.ClientTokenSecret = devClientTokenSecret
	}
	return cfg, nil
}

func positiveDuration(key string, unit, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return time.Duration(n) * unit, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
