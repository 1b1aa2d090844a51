package errors

import (
	"errors"
	"fmt"
)

// RandMCPError is the base interface for all SDK errors.
type RandMCPError interface {
	error
	IsRandMCPError() bool
}

// Compile-time verification that all error types implement RandMCPError.
var (
	_ RandMCPError = (*ServerNotFoundError)(nil)
	_ RandMCPError = (*LaunchError)(nil)
	_ RandMCPError = (*ProcessError)(nil)
	_ RandMCPError = (*ProtocolDecodeError)(nil)
	_ RandMCPError = (*ProtocolViolationError)(nil)
	_ RandMCPError = (*ToolError)(nil)
	_ RandMCPError = (*MalformedResultError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrChannelNotStarted indicates Call was invoked before Start succeeded.
	ErrChannelNotStarted = errors.New("channel not started")

	// ErrChannelAlreadyStarted indicates Start was called twice.
	ErrChannelAlreadyStarted = errors.New("channel already started")

	// ErrChannelStopped indicates the channel has been stopped and cannot be
	// reused. Channels are single-use; create a new one with NewChannel().
	ErrChannelStopped = errors.New("channel stopped: channels are single-use, create a new one with NewChannel()")

	// ErrTransportNotConnected indicates the transport is not connected.
	ErrTransportNotConnected = errors.New("transport not connected")

	// ErrStdinClosed indicates stdin was closed due to context cancellation.
	ErrStdinClosed = errors.New("stdin closed")

	// ErrCallTimeout indicates a call exceeded its bounded wait.
	ErrCallTimeout = errors.New("call timeout")
)

// ServerNotFoundError indicates the tool server binary was not found.
type ServerNotFoundError struct {
	SearchedPaths []string
}

func (e *ServerNotFoundError) Error() string {
	return fmt.Sprintf("tool server binary not found in: %v", e.SearchedPaths)
}

// IsRandMCPError implements RandMCPError.
func (e *ServerNotFoundError) IsRandMCPError() bool { return true }

// LaunchError indicates the tool server process could not be created.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch tool server %q: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsRandMCPError implements RandMCPError.
func (e *LaunchError) IsRandMCPError() bool { return true }

// ProcessError indicates the tool server process failed.
type ProcessError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tool server process failed (exit %d): %v", e.ExitCode, e.Err)
	}

	return fmt.Sprintf("tool server process failed (exit %d): %s", e.ExitCode, e.Stderr)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// IsRandMCPError implements RandMCPError.
func (e *ProcessError) IsRandMCPError() bool { return true }

// ProtocolDecodeError indicates a response line was missing, was not a valid
// JSON object, or the stream closed before a full line arrived.
// This error preserves the raw line that failed to parse, if any.
type ProtocolDecodeError struct {
	RawData string
	Err     error
}

func (e *ProtocolDecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from tool server: %v", e.Err)
}

func (e *ProtocolDecodeError) Unwrap() error {
	return e.Err
}

// IsRandMCPError implements RandMCPError.
func (e *ProtocolDecodeError) IsRandMCPError() bool { return true }

// ProtocolViolationError indicates a response carried an id that does not
// match the request it should answer.
type ProtocolViolationError struct {
	SentID int64
	GotID  int64
}

func (e *ProtocolViolationError) Error() string {
	return fmt.Sprintf("response id %d does not match request id %d", e.GotID, e.SentID)
}

// IsRandMCPError implements RandMCPError.
func (e *ProtocolViolationError) IsRandMCPError() bool { return true }

// ToolError indicates the response carried an error payload from the server.
// The payload is opaque to the channel; Message extracts the conventional
// "message" field when present.
type ToolError struct {
	Payload map[string]any
}

func (e *ToolError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("tool error: %s", msg)
	}

	return fmt.Sprintf("tool error: %v", e.Payload)
}

// Message returns the "message" field of the error payload, or "".
func (e *ToolError) Message() string {
	if m, ok := e.Payload["message"].(string); ok {
		return m
	}

	return ""
}

// IsRandMCPError implements RandMCPError.
func (e *ToolError) IsRandMCPError() bool { return true }

// MalformedResultError indicates a result payload did not have the shape the
// caller expected (e.g. no content items, or a content item without text).
type MalformedResultError struct {
	Reason string
	Result map[string]any
}

func (e *MalformedResultError) Error() string {
	return fmt.Sprintf("malformed tool result: %s", e.Reason)
}

// IsRandMCPError implements RandMCPError.
func (e *MalformedResultError) IsRandMCPError() bool { return true }
