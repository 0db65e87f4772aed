package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/ordertable")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadFileDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.MigrateOnUp)
	assert.Equal(t, 60*time.Minute, cfg.Booking.TurnoverBuffer)
	assert.Equal(t, 120*time.Minute, cfg.Booking.DefaultDuration)
	assert.Equal(t, 30*time.Second, cfg.Booking.SnapshotCacheTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "booking.notifications", cfg.Kafka.NotifyTopic)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileReadsEnvFileAndEnvWins(t *testing.T) {
	setRequired(t)
	t.Setenv("TURNOVER_BUFFER", "45m")

	path := filepath.Join(t.TempDir(), "app.env")
	content := "APP_ENV=prod\nTURNOVER_BUFFER=30m\nKAFKA_BROKERS=k1:9092, k2:9092\nREDIS_ADDR=localhost:6379\nPROD_ORIGINS=https://a.example,https://b.example\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, 45*time.Minute, cfg.Booking.TurnoverBuffer)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.ProdOrigins)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoadFileValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing dsn", env: map[string]string{"DB_DSN": "", "JWT_SECRET": "x"}},
		{name: "missing secret", env: map[string]string{"DB_DSN": "postgres://x", "JWT_SECRET": ""}},
		{name: "bad buffer", env: map[string]string{"TURNOVER_BUFFER": "soon"}},
		{name: "fractional buffer", env: map[string]string{"TURNOVER_BUFFER": "90s"}},
		{name: "negative buffer", env: map[string]string{"TURNOVER_BUFFER": "-5m"}},
		{name: "zero duration", env: map[string]string{"DEFAULT_BOOKING_DURATION": "0m"}},
		{name: "bad ttl", env: map[string]string{"SNAPSHOT_CACHE_TTL": "forever"}},
		{name: "bad pool", env: map[string]string{"DB_MAX_CONNS": "0"}},
		{name: "prod without origins", env: map[string]string{"APP_ENV": "prod", "PROD_ORIGINS": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
