package cfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func setRequiredDBEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "catalog")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "catalog")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredDBEnv(t)

	config, err := Load(nopLogger{})
	require.NoError(t, err)

	assert.Equal(t, "8080", config.Http.Port)
	assert.Equal(t, 5*time.Second, config.Http.ReadTimeout)
	assert.Equal(t, 10*time.Second, config.Http.WriteTimeout)
	assert.Equal(t, 60*time.Second, config.Http.IdleTimeout)

	assert.Equal(t, "localhost", config.Db.Host)
	assert.Equal(t, "5432", config.Db.Port)
	assert.Equal(t, "disable", config.Db.SSLMode)

	assert.Equal(t, uint64(10000), config.Cache.Capacity)
	assert.Equal(t, 5*time.Minute, config.Cache.TTL)

	assert.Equal(t, 4, config.Async.Workers)
	assert.Equal(t, 64, config.Async.QueueSize)

	assert.False(t, config.Seed.Enabled)
	assert.Equal(t, 10000, config.Seed.Count)
	assert.Equal(t, 1000, config.Seed.BatchSize)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredDBEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_READ_TIMEOUT", "2s")
	t.Setenv("CACHE_CAPACITY", "500")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("ASYNC_WORKERS", "8")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("SEED_COUNT", "25")
	t.Setenv("SEED_BATCH_SIZE", "10")

	config, err := Load(nopLogger{})
	require.NoError(t, err)

	assert.Equal(t, "9090", config.Http.Port)
	assert.Equal(t, 2*time.Second, config.Http.ReadTimeout)
	assert.Equal(t, uint64(500), config.Cache.Capacity)
	assert.Equal(t, 30*time.Second, config.Cache.TTL)
	assert.Equal(t, 8, config.Async.Workers)
	assert.True(t, config.Seed.Enabled)
	assert.Equal(t, 25, config.Seed.Count)
	assert.Equal(t, 10, config.Seed.BatchSize)
}

func TestLoad_MissingRequiredDBVars(t *testing.T) {
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "catalog")

	_, err := Load(nopLogger{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_USER")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "CACHE_TTL", "five minutes"},
		{"bad capacity", "CACHE_CAPACITY", "lots"},
		{"zero capacity", "CACHE_CAPACITY", "0"},
		{"bad seed flag", "SEED_DEMO_DATA", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredDBEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(nopLogger{})
			assert.Error(t, err)
		})
	}
}
