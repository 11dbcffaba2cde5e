package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/inkwell")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("BATCH_SIZE", "-3")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("FANOUT_INTERVAL", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.FanoutInterval)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.EqualValues(t, 800, cfg.TimelineMaxLen)
	assert.True(t, cfg.KafkaAsync)
	assert.False(t, cfg.IsProduction())
}

func TestLoadKafkaSync(t *testing.T) {
	t.Setenv("DB_DSN", "dsn")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("KAFKA_ASYNC", "FALSE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaAsync)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DB_DSN", "dsn")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	assert.EqualError(t, err, "REDIS_ADDR is not set")
}
