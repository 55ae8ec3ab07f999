// Package config reads the storefront process configuration from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tair/storefront-state/internal/pricing"
	"github.com/tair/storefront-state/pkg/database"
)

// Persistence backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds everything main needs to assemble the process.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	HTTPPort       string
	JaegerEndpoint string

	Backend       string
	StateDir      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	Database      database.Config

	KafkaBrokers []string
	KafkaGroupID string

	Pricing pricing.Policy
}

// IsDevelopment reports whether console logging should be used.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		ServiceName:    getEnv("SERVICE_NAME", "storefront-state"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		Backend:        strings.ToLower(getEnv("STATE_BACKEND", BackendFile)),
		StateDir:       getEnv("STATE_DIR", ".storefront"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisPrefix:    getEnv("REDIS_PREFIX", "storefront:"),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "storefrontdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "storefront-state"),
	}

	switch cfg.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("unknown STATE_BACKEND %q", cfg.Backend)
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}

	policy := pricing.DefaultPolicy()
	if policy.FreeShippingThreshold, err = getEnvFloat("FREE_SHIPPING_THRESHOLD", policy.FreeShippingThreshold); err != nil {
		return Config{}, err
	}
	if policy.FlatShipping, err = getEnvFloat("FLAT_SHIPPING", policy.FlatShipping); err != nil {
		return Config{}, err
	}
	if policy.TaxRate, err = getEnvFloat("TAX_RATE", policy.TaxRate); err != nil {
		return Config{}, err
	}
	if err := policy.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid pricing policy: %w", err)
	}
	cfg.Pricing = policy

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
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
