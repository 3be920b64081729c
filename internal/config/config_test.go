package config

import (
	"testing"
	"time"

	"esglens/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "MAX_UPLOAD_MB", "MAX_CONCURRENT_UPLOADS",
		"CATEGORY_DEFAULT_CAP", "PREVIEW_ROWS", "HISTOGRAM_BINS", "SESSION_TTL", "LOG_LEVEL",
		"PPROF_PORT", "PPROF_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(32<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 5, cfg.Dashboard.CategoryDefaultCap)
	assert.Equal(t, 30, cfg.Dashboard.HistogramBins)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_UPLOAD_MB", "8")
	t.Setenv("CATEGORY_DEFAULT_CAP", "0")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("PPROF_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, int64(8<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 0, cfg.Dashboard.CategoryDefaultCap)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Profiling.Enabled)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("HISTOGRAM_BINS", "many")
	t.Setenv("SESSION_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Dashboard.HistogramBins)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("CATEGORY_DEFAULT_CAP", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
