package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "json", cfg.Server.LogFormat)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.Auth.TokenMapJSON)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("WISHLIST_SERVER_PORT", "9090")
	t.Setenv("WISHLIST_SERVER_LOG_LEVEL", "debug")
	t.Setenv("WISHLIST_SERVER_LOG_FORMAT", "console")
	t.Setenv("WISHLIST_DATABASE_URL", "postgres://localhost:5432/wishlist")
	t.Setenv("VAULT_TOKEN_MAP_JSON", `{"t": "alice"}`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "console", cfg.Server.LogFormat)
	assert.Equal(t, "postgres://localhost:5432/wishlist", cfg.Database.URL)
	assert.Equal(t, `{"t": "alice"}`, cfg.Auth.TokenMapJSON)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("WISHLIST_SERVER_LOG_LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
