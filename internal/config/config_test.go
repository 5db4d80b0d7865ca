package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "pocketly", cfg.Database.Schema)
	assert.Equal(t, "UTC", cfg.Defaults.Timezone)
	assert.Equal(t, "monday", cfg.Defaults.WeekFirstDay)
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	yaml := `
server:
  port: 9090
db:
  host: db.internal
  name: finance
defaults:
  timezone: Europe/Warsaw
  weekfirstday: sunday
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("POCKETLY_DB_HOST", "db.from.env")
	t.Setenv("POCKETLY_DB_PASS", "secret")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.from.env", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Database.Pass)
	assert.Equal(t, "finance", cfg.Database.Name)
	assert.Equal(t, "pocketly", cfg.Database.User)
	assert.Equal(t, "Europe/Warsaw", cfg.Defaults.Timezone)
	assert.Equal(t, "sunday", cfg.Defaults.WeekFirstDay)
}

func TestLoad_InvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: [unclosed"), 0o600))

	_, err := Load(path)

	assert.Error(t, err)
}
