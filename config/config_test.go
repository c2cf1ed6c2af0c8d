package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, NotifierMemory, cfg.Notifier)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=waitlist sslmode=disable", cfg.DSN())
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("NOTIFIER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("POLL_INTERVAL", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, ":memory:", cfg.DSN())
	assert.Equal(t, NotifierRedis, cfg.Notifier)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_NAME=fromdotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DB_NAME") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fromdotenv", cfg.DBName)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "waitlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_port: \"7000\"\ndb_name: filedb\n"), 0o600))
	t.Setenv("DB_NAME", "envdb")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.ServerPort)
	assert.Equal(t, "envdb", cfg.DBName)
}

func TestLoad_RejectsUnknownNotifier(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("NOTIFIER", "carrier-pigeon")

	_, err := Load("")
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
