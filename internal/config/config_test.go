package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_DRIVER", "SQLITE_PATH", "ARK_MODEL", "ARK_API_KEY", "LOG_FORMAT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.False(t, cfg.AI.Enabled())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadServerConfigPortForms(t *testing.T) {
	cases := map[string]string{
		"9000":           ":9000",
		":9001":          ":9001",
		"127.0.0.1:9002": "127.0.0.1:9002",
	}
	for raw, want := range cases {
		t.Setenv("PORT", raw)
		cfg, err := loadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, want, cfg.Addr)
	}
}

func TestLoadServerConfigAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://serene.app")
	cfg, err := loadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:5173", "https://serene.app"}, cfg.AllowedOrigins)
}

func TestLoadServerConfigRejectsSpaces(t *testing.T) {
	t.Setenv("PORT", "80 80")
	_, err := loadServerConfig()
	assert.Error(t, err)
}

func TestLoadStorageConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := loadStorageConfig()
	assert.Error(t, err)
}

func TestLoadStorageConfigSQLite(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/serene.db")
	cfg, err := loadStorageConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "/tmp/serene.db", cfg.SQLitePath)
}

func TestAIConfigEnabled(t *testing.T) {
	assert.False(t, AIConfig{APIKey: "k"}.Enabled())
	assert.True(t, AIConfig{APIKey: "k", Model: "m"}.Enabled())
	assert.True(t, AIConfig{AccessKey: "a", SecretKey: "s", Model: "m"}.Enabled())
	assert.False(t, AIConfig{AccessKey: "a", Model: "m"}.Enabled())
}

func TestLoadAIConfigClampsHistoryLimit(t *testing.T) {
	t.Setenv("AI_HISTORY_LIMIT", "0")
	cfg, err := loadAIConfig()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.HistoryLimit)
}

func TestLoadLogConfigRejectsUnknownFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := loadLogConfig()
	assert.Error(t, err)
}
