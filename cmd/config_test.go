package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.MarginCacheTTL)
	assert.Equal(t, 100, cfg.RelayBatchSize)
	assert.True(t, cfg.ValidateRequests)
	assert.False(t, cfg.TracingEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Contains(t, cfg.DSN(), "dbname=mfgorders")
}

func TestLoadConfig_ParsesEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("MARGIN_CACHE_TTL", "30s")
	t.Setenv("RELAY_BATCH_SIZE", "25")
	t.Setenv("VALIDATE_REQUESTS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.MarginCacheTTL)
	assert.Equal(t, 25, cfg.RelayBatchSize)
	assert.False(t, cfg.ValidateRequests)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]struct {
		key, value, want string
	}{
		"bad port":  {"HTTP_PORT", "http", "HTTP_PORT"},
		"bad ttl":   {"MARGIN_CACHE_TTL", "soon", "MARGIN_CACHE_TTL"},
		"bad batch": {"RELAY_BATCH_SIZE", "0", "RELAY_BATCH_SIZE"},
		"bad bool":  {"TRACING_ENABLED", "maybe", "TRACING_ENABLED"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
