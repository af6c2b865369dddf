package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "STORAGE", "STATS_CACHE_TTL", "PUSH_DRIVER", "KAFKA_BROKERS", "METRICS_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	assert.Equal(t, "noop", cfg.PushDriver)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE", "Memory")
	t.Setenv("STATS_CACHE_TTL", "2m")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("PUSH_DRIVER", "KAFKA")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "15")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 2*time.Minute, cfg.StatsCacheTTL)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
	assert.Equal(t, "kafka", cfg.PushDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	t.Setenv("STATS_CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
}
