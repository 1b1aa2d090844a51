package randmcp

import (
	"log/slog"
	"time"

	"github.com/fastmcp-me/random-number-mcp/internal/config"
)

// Option configures a Channel using the functional options pattern.
type Option func(*config.Options)

// Transport defines the interface for tool server communication.
// Implement this to provide custom transports for testing, mocking,
// or alternative communication methods.
//
// The default implementation spawns the tool server as a subprocess.
// Custom transports can be injected via WithTransport.
type Transport = config.Transport

// applyOptions applies functional options to a config.Options struct.
func applyOptions(opts []Option) *config.Options {
	options := &config.Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *config.Options) {
		o.Logger = logger
	}
}

// WithServerCommand sets the tool server executable name to search for.
// Defaults to "random-number-mcp".
func WithServerCommand(command string) Option {
	return func(o *config.Options) {
		o.ServerCommand = command
	}
}

// WithServerPath sets the explicit path to the tool server binary.
// If not set, the binary will be searched in PATH and common locations.
func WithServerPath(path string) Option {
	return func(o *config.Options) {
		o.ServerPath = path
	}
}

// WithServerArgs sets extra arguments passed to the tool server.
func WithServerArgs(args ...string) Option {
	return func(o *config.Options) {
		o.ServerArgs = args
	}
}

// WithEnv provides additional environment variables for the server process.
func WithEnv(env map[string]string) Option {
	return func(o *config.Options) {
		o.Env = env
	}
}

// WithCwd sets the working directory for the server process.
func WithCwd(cwd string) Option {
	return func(o *config.Options) {
		o.Cwd = cwd
	}
}

// WithCallTimeout bounds the wait for each response line.
// Defaults to 30 seconds.
func WithCallTimeout(timeout time.Duration) Option {
	return func(o *config.Options) {
		o.CallTimeout = timeout
	}
}

// WithMaxBufferSize sets the maximum bytes for a single response line.
func WithMaxBufferSize(size int) Option {
	return func(o *config.Options) {
		o.MaxBufferSize = size
	}
}

// WithStderr sets a callback receiving each line of server stderr output.
func WithStderr(callback func(line string)) Option {
	return func(o *config.Options) {
		o.Stderr = callback
	}
}

// WithTransport injects a custom transport, bypassing the subprocess
// transport entirely. Used for testing and alternative communication methods.
func WithTransport(transport Transport) Option {
	return func(o *config.Options) {
		o.Transport = transport
	}
}
