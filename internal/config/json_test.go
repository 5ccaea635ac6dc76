package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_Overlay(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"db_host":         "db.example",
		"db_port":         6543,
		"db_user":         "shop",
		"db_password":     "secret",
		"db_name":         "store",
		"db_charset":      "UTF8",
		"db_sslmode":      "require",
		"connect_timeout": "2s",
		"run_migrations":  true,
		"log_level":       "debug",
	})

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseJson(cfg, []string{"-config", path}))

	assert.Equal(t, "db.example", cfg.DBHost)
	assert.Equal(t, 6543, cfg.DBPort)
	assert.Equal(t, "shop", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "store", cfg.DBName)
	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Equal(t, 2*time.Second, cfg.ConnectTimeout)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func Test_parseJson_PartialKeepsDefaults(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"db_name": "other"})

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseJson(cfg, []string{"-c", path}))

	assert.Equal(t, "other", cfg.DBName)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
}

func Test_parseJson_NoFlag(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, parseJson(cfg, []string{"-h", "db"}))
	assert.Equal(t, Config{}, *cfg)
}

func Test_parseJson_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		err := parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		err := parseJson(&Config{}, []string{"-c", path})
		require.Error(t, err)
	})
}
