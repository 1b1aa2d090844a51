package randmcp

import "github.com/fastmcp-me/random-number-mcp/internal/errors"

// Re-export error types from internal package

// ServerNotFoundError indicates the tool server binary was not found.
type ServerNotFoundError = errors.ServerNotFoundError

// LaunchError indicates the tool server process could not be created.
type LaunchError = errors.LaunchError

// ProcessError indicates the tool server process failed.
type ProcessError = errors.ProcessError

// ProtocolDecodeError indicates a response line was missing, invalid, or the
// stream closed before a full line arrived.
type ProtocolDecodeError = errors.ProtocolDecodeError

// ProtocolViolationError indicates a response id did not match the request.
type ProtocolViolationError = errors.ProtocolViolationError

// ToolError indicates the response carried an error payload from the server.
type ToolError = errors.ToolError

// MalformedResultError indicates a result payload had an unexpected shape.
type MalformedResultError = errors.MalformedResultError

// RandMCPError is the base interface for all SDK errors.
type RandMCPError = errors.RandMCPError

// Re-export sentinel errors from internal package.
var (
	// ErrChannelNotStarted indicates Call was invoked before Start succeeded.
	ErrChannelNotStarted = errors.ErrChannelNotStarted

	// ErrChannelAlreadyStarted indicates Start was called twice.
	ErrChannelAlreadyStarted = errors.ErrChannelAlreadyStarted

	// ErrChannelStopped indicates the channel has been stopped and cannot be reused.
	ErrChannelStopped = errors.ErrChannelStopped

	// ErrTransportNotConnected indicates the transport is not connected.
	ErrTransportNotConnected = errors.ErrTransportNotConnected

	// ErrCallTimeout indicates a call exceeded its bounded wait.
	ErrCallTimeout = errors.ErrCallTimeout
)
