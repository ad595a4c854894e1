package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("CONFIG_ENV", "nonexistent")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 3500, cfg.Port)
	assert.Equal(t, int64(4096), cfg.ReadLimit)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, 32, cfg.SendBuffer)
	assert.NotEmpty(t, cfg.AllowedOrigins)
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	t.Setenv("CONFIG_ENV", "bad")

	cfg, err := Load()
	require.Error(t, err, "a config that cannot be parsed must fail startup, not limp along")
	assert.Nil(t, cfg)
}
