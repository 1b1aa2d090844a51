package cli

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fastmcp-me/random-number-mcp/internal/errors"
)

// Config holds configuration for tool server discovery.
type Config struct {
	// ServerPath is an explicit binary path that skips PATH search.
	// If empty, discovery will search PATH and common locations.
	ServerPath string

	// ServerCommand is the binary name searched for when ServerPath is empty.
	ServerCommand string

	// Logger is an optional logger for discovery operations.
	// If nil, a default no-op logger is used.
	Logger *slog.Logger
}

// Discoverer locates the tool server binary.
type Discoverer interface {
	// Discover locates the tool server binary.
	// Returns the path to the binary or a ServerNotFoundError.
	Discover() (string, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	cfg *Config
	log *slog.Logger
}

// Compile-time verification that discoverer implements Discoverer.
var _ Discoverer = (*discoverer)(nil)

// NewDiscoverer creates a new tool server discoverer with the given configuration.
func NewDiscoverer(cfg *Config) Discoverer {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	}

	return &discoverer{
		cfg: cfg,
		log: log,
	}
}

// Discover locates the tool server binary.
func (d *discoverer) Discover() (string, error) {
	// If explicit path provided, use it and only it
	if d.cfg.ServerPath != "" {
		d.log.Debug("Using explicit server path", "server_path", d.cfg.ServerPath)

		if _, err := os.Stat(d.cfg.ServerPath); err == nil {
			return d.cfg.ServerPath, nil
		}

		d.log.Debug("Explicit server path not found", "server_path", d.cfg.ServerPath)

		return "", &errors.ServerNotFoundError{SearchedPaths: []string{d.cfg.ServerPath}}
	}

	command := d.cfg.ServerCommand
	if command == "" {
		command = "random-number-mcp"
	}

	searchedPaths := make([]string, 0, 4)

	// Search in PATH
	d.log.Debug("Searching for server binary in PATH", "command", command)

	if path, err := exec.LookPath(command); err == nil {
		d.log.Debug("Found server binary in PATH", "path", path)

		return path, nil
	}

	searchedPaths = append(searchedPaths, "$PATH")

	// Check common locations
	commonPaths := []string{
		filepath.Join("/usr/local/bin", command),
		filepath.Join("/usr/bin", command),
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		commonPaths = append(commonPaths,
			filepath.Join(homeDir, ".local/bin", command),
			filepath.Join(homeDir, "go/bin", command),
		)
	}

	for _, path := range commonPaths {
		searchedPaths = append(searchedPaths, path)
		d.log.Debug("Checking common path", "path", path)

		if _, err := os.Stat(path); err == nil {
			d.log.Debug("Found server binary at common path", "path", path)

			return path, nil
		}
	}

	d.log.Warn("Tool server binary not found in any searched paths", "searched_paths", searchedPaths)

	return "", &errors.ServerNotFoundError{SearchedPaths: searchedPaths}
}

// BuildEnvironment merges the process environment with extra variables.
func BuildEnvironment(extra map[string]string) []string {
	env := os.Environ()

	for k, v := range extra {
		env = append(env, k+"="+v)
	}

	return env
}
