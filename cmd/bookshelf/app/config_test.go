package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bookshelf/internal/cmd/globals"
	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultStoreURL, cfg.Store)
	assert.Equal(t, "json", cfg.StoreFormat)
	assert.Equal(t, "pgx", cfg.StoreDriver)
	assert.True(t, cfg.UniqueUserIDs)
	assert.True(t, cfg.CascadeRemovals)
	assert.Equal(t, constants.DefaultHost, cfg.ServerHost)
	assert.Equal(t, constants.DefaultPort, cfg.ServerPort)
	assert.Equal(t, "stderr", cfg.LogOutput)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BOOKSHELF_STORE", "memory://")
	t.Setenv("BOOKSHELF_CASCADE_REMOVALS", "false")
	t.Setenv("SERVER_PORT", "9191")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory://", cfg.Store)
	assert.False(t, cfg.CascadeRemovals)
	assert.Equal(t, 9191, cfg.ServerPort)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BOOKSHELF_STORE_FORMAT=yaml\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("BOOKSHELF_STORE_FORMAT") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.StoreFormat)
}

func TestLoadConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "bookshelf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: memory://\nserver_port: 9090\nunique_user_ids: false\n"), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "memory://", cfg.Store)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.False(t, cfg.UniqueUserIDs)
	assert.Equal(t, path, cfg.ConfigFile)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Output: "yaml", LogLevel: "warn", Quiet: true}

	cfg.UpdateFromFlags(&globals.Flags{Verbose: true})
	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Quiet)
	assert.True(t, cfg.Verbose)

	cfg.UpdateFromFlags(&globals.Flags{Output: "json", LogLevel: "debug"})
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
}
