package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", env(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.DatabaseURLSet)
	assert.False(t, cfg.DatabaseNameSet)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "sledilnik.toml", `
addr = "127.0.0.1:9000"
database_url = "mongodb://localhost:27017"
database_name = "tracker"
cors_origins = ["https://app.example.com"]
`)

	cfg, err := Load(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "mongodb://localhost:27017", cfg.DatabaseURL)
	assert.Equal(t, "tracker", cfg.DatabaseName)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.True(t, cfg.DatabaseURLSet)
	assert.True(t, cfg.DatabaseNameSet)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "sledilnik.yaml", `
database_url: data/items.sqlite3
log_level: debug
log_file: /tmp/sledilnik.log
`)

	cfg, err := Load(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, "data/items.sqlite3", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/sledilnik.log", cfg.LogFile)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""), env(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "sledilnik.toml", `database_url = "file.sqlite3"`)

	cfg, err := Load(path, env(map[string]string{
		"DATABASE_URL":  "env.sqlite3",
		"DATABASE_NAME": "envdb",
		"PORT":          "9090",
		"CORS_ORIGINS":  "http://a.test, http://b.test",
	}))
	require.NoError(t, err)

	assert.Equal(t, "env.sqlite3", cfg.DatabaseURL)
	assert.Equal(t, "envdb", cfg.DatabaseName)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), env(nil))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "config.json", `{}`), env(nil))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "typo.toml", `adress = ":1"`), env(nil))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "typo.yaml", "adress: ':1'\n"), env(nil))
	assert.Error(t, err)
}
