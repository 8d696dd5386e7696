package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STATE_BACKEND", "memory")
	t.Setenv("ANCHOR_MODE", "hashchain")
	t.Setenv("SIMULATED_UPLOAD_DELAY_MS", "0")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "memory", cfg.State.Backend)
	assert.Equal(t, "hashchain", cfg.Simulation.AnchorMode)
	assert.Equal(t, time.Duration(0), cfg.Simulation.UploadDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.Simulation.ChainDelay)
	assert.Equal(t, "documents.verified", cfg.NATS.Subject)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STATE_BACKEND", "ANCHOR_MODE", "CONTENT_BACKEND", "NATS_URL", "BREAKER_ENABLED", "RETRY_MAX_ATTEMPTS"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "file", cfg.State.Backend)
	assert.Equal(t, "simulated", cfg.Simulation.AnchorMode)
	assert.Equal(t, "simulated", cfg.Simulation.ContentBackend)
	assert.Empty(t, cfg.NATS.URL)
	assert.True(t, cfg.Resilience.BreakerEnabled)
	assert.Equal(t, 3, cfg.Resilience.RetryMaxAttempts)
}

func TestEnvHelpers(t *testing.T) {
	const key = "DOCVERIFY_TEST_VAR"

	tests := []struct {
		value string
		str   string
		b     bool
		i     int
		ms    time.Duration
	}{
		{value: "", str: "fallback", b: true, i: 10, ms: 40 * time.Millisecond},
		{value: "true", str: "true", b: true, i: 10, ms: 40 * time.Millisecond},
		{value: "false", str: "false", b: false, i: 10, ms: 40 * time.Millisecond},
		{value: "123", str: "123", b: true, i: 123, ms: 123 * time.Millisecond},
		{value: "-5", str: "-5", b: true, i: -5, ms: 40 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv(key, tt.value)

			assert.Equal(t, tt.str, getEnv(key, "fallback"))
			assert.Equal(t, tt.b, getEnvBool(key, true))
			assert.Equal(t, tt.i, getEnvInt(key, 10))
			assert.Equal(t, tt.ms, getEnvMillis(key, 40))
		})
	}
}
