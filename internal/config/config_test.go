package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront-state/internal/pricing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "storefront-state", cfg.ServiceName)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, pricing.DefaultPolicy(), cfg.Pricing)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STATE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "50")
	t.Setenv("TAX_RATE", "0.2")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 50.0, cfg.Pricing.FreeShippingThreshold)
	assert.Equal(t, 10.0, cfg.Pricing.FlatShipping)
	assert.Equal(t, 0.2, cfg.Pricing.TaxRate)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string][2]string{
		"unknown backend":   {"STATE_BACKEND", "sqlite"},
		"bad redis db":      {"REDIS_DB", "zero"},
		"bad tax":           {"TAX_RATE", "ten"},
		"negative shipping": {"FLAT_SHIPPING", "-1"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
