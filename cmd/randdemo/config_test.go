package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Empty(t, cfg.ServerCommand)
	assert.Equal(t, 30*time.Second, cfg.CallTimeout)
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
server_command = "random-number-mcp"
server_args = ["-debug"]
call_timeout = "5s"
debug = true
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "random-number-mcp", cfg.ServerCommand)
	assert.Equal(t, []string{"-debug"}, cfg.ServerArgs)
	assert.Equal(t, 5*time.Second, cfg.CallTimeout)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_EnvWinsOverFile(t *testing.T) {
	path := writeConfig(t, `server_path = "/opt/from-file"`)

	t.Setenv("RANDMCP_SERVER_PATH", "/opt/from-env")
	t.Setenv("RANDMCP_CALL_TIMEOUT", "2s")

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/from-env", cfg.ServerPath)
	assert.Equal(t, 2*time.Second, cfg.CallTimeout)
}

func TestLoadConfig_BadTimeout(t *testing.T) {
	path := writeConfig(t, `call_timeout = "not a duration"`)

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig("/nonexistent/config.toml")
	assert.Error(t, err)
}
