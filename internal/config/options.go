// Package config provides configuration types for the random-number-mcp SDK.
package config

import (
	"log/slog"
	"time"
)

// DefaultServerCommand is the tool server binary launched when no explicit
// command or path is configured.
const DefaultServerCommand = "random-number-mcp"

// DefaultCallTimeout bounds the wait for a single response line.
const DefaultCallTimeout = 30 * time.Second

// Options holds all channel configuration.
//
// Options are constructed via the functional options at the module root and
// consumed by the subprocess transport and the jsonrpc channel.
type Options struct {
	// Logger receives debug, info, warn, and error messages during channel
	// operations. Nil means silent operation.
	Logger *slog.Logger

	// ServerCommand is the tool server executable name, resolved via
	// discovery when ServerPath is empty. Defaults to DefaultServerCommand.
	ServerCommand string

	// ServerPath is an explicit path to the tool server binary.
	// When set, discovery is skipped.
	ServerPath string

	// ServerArgs are extra arguments passed to the tool server.
	ServerArgs []string

	// Env provides additional environment variables for the server process.
	Env map[string]string

	// Cwd sets the working directory for the server process.
	Cwd string

	// CallTimeout bounds the wait for each response line.
	// Zero means DefaultCallTimeout.
	CallTimeout time.Duration

	// MaxBufferSize caps the size of a single response line in bytes.
	// Zero means the transport default.
	MaxBufferSize int

	// Stderr receives each line of the server's stderr output as it arrives.
	Stderr func(line string)

	// Transport overrides the default subprocess transport.
	// Used for testing and alternative communication methods.
	Transport Transport
}

// Timeout returns the effective call timeout.
func (o *Options) Timeout() time.Duration {
	if o.CallTimeout > 0 {
		return o.CallTimeout
	}

	return DefaultCallTimeout
}

// Command returns the effective server command.
func (o *Options) Command() string {
	if o.ServerCommand != "" {
		return o.ServerCommand
	}

	return DefaultServerCommand
}
