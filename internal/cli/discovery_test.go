package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/fastmcp-me/random-number-mcp/internal/errors"
)

func TestDiscover_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "random-number-mcp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	d := NewDiscoverer(&Config{ServerPath: path})

	found, err := d.Discover()
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestDiscover_ExplicitPathMissing(t *testing.T) {
	d := NewDiscoverer(&Config{ServerPath: "/nonexistent/random-number-mcp"})

	_, err := d.Discover()
	require.Error(t, err)

	var notFound *sdkerrors.ServerNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"/nonexistent/random-number-mcp"}, notFound.SearchedPaths)
}

func TestDiscover_SearchesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-tool-server")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("PATH", dir)

	d := NewDiscoverer(&Config{ServerCommand: "fake-tool-server"})

	found, err := d.Discover()
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestDiscover_NotFoundReportsSearchedPaths(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	d := NewDiscoverer(&Config{ServerCommand: "definitely-not-a-real-binary"})

	_, err := d.Discover()
	require.Error(t, err)

	var notFound *sdkerrors.ServerNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.SearchedPaths, "$PATH")
}

func TestBuildEnvironment(t *testing.T) {
	env := BuildEnvironment(map[string]string{"RANDMCP_TEST_KEY": "1"})
	assert.Contains(t, env, "RANDMCP_TEST_KEY=1")
}
