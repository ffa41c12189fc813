package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, int64(42), cfg.Generator.Seed)
	assert.Equal(t, 50000, cfg.Generator.Impressions)
	assert.Equal(t, 10.0, cfg.Reports.PacingThresholdPct)
	assert.Equal(t, 45, cfg.Reports.ReceivableTermDays)
	assert.Equal(t, 30, cfg.Reports.PayableTermDays)

	start, end, err := cfg.Generator.WindowDates()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VECTOR_INSIGHTS_HTTP_ADDR", ":9999")
	t.Setenv("VECTOR_INSIGHTS_GEN_SEED", "7")
	t.Setenv("VECTOR_INSIGHTS_GEN_IMPRESSIONS", "1000")
	t.Setenv("VECTOR_INSIGHTS_RATE_LIMIT_ENABLED", "false")
	t.Setenv("VECTOR_INSIGHTS_AUTH_SKIP_PATHS", "/health, /metrics ,/debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, int64(7), cfg.Generator.Seed)
	assert.Equal(t, 1000, cfg.Generator.Impressions)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"/health", "/metrics", "/debug"}, cfg.Auth.SkipPaths)
}

func TestValidateRejectsAuthWithoutKey(t *testing.T) {
	t.Setenv("VECTOR_INSIGHTS_AUTH_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VECTOR_INSIGHTS_API_KEY_MASTER")
}

func TestValidateRejectsNonPositiveGeneratorCounts(t *testing.T) {
	// The generator indexes into publisher/placement vocabularies sized
	// by these counts, so a zero must never reach it.
	t.Setenv("VECTOR_INSIGHTS_GEN_PUBLISHERS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator entity counts")

	t.Setenv("VECTOR_INSIGHTS_GEN_PUBLISHERS", "25")
	t.Setenv("VECTOR_INSIGHTS_GEN_IMPRESSIONS", "-1")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("VECTOR_INSIGHTS_GEN_IMPRESSIONS", "1000")
	t.Setenv("VECTOR_INSIGHTS_GEN_PLACEMENTS", "0")
	_, err = Load()
	require.Error(t, err)
}

func TestValidateRejectsBadWindow(t *testing.T) {
	t.Setenv("VECTOR_INSIGHTS_GEN_WINDOW_START", "2024-06-01")
	t.Setenv("VECTOR_INSIGHTS_GEN_WINDOW_END", "2024-01-01")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window end precedes start")

	t.Setenv("VECTOR_INSIGHTS_GEN_WINDOW_END", "not-a-date")
	_, err = Load()
	require.Error(t, err)
}
