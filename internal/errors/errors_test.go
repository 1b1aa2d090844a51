package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchError(t *testing.T) {
	cause := errors.New("fork/exec: permission denied")
	err := &LaunchError{Command: "random-number-mcp", Err: cause}

	assert.Contains(t, err.Error(), "random-number-mcp")
	assert.Contains(t, err.Error(), "permission denied")
	assert.ErrorIs(t, err, cause)
	assert.True(t, err.IsRandMCPError())
}

func TestProcessError_PrefersWrappedError(t *testing.T) {
	err := &ProcessError{ExitCode: 2, Stderr: "boom", Err: errors.New("exit status 2")}
	assert.Contains(t, err.Error(), "exit 2")
	assert.Contains(t, err.Error(), "exit status 2")

	err = &ProcessError{ExitCode: 1, Stderr: "traceback"}
	assert.Contains(t, err.Error(), "traceback")
}

func TestProtocolDecodeError_PreservesRawData(t *testing.T) {
	err := &ProtocolDecodeError{RawData: "{not json", Err: errors.New("invalid character")}
	assert.Equal(t, "{not json", err.RawData)
	assert.Contains(t, err.Error(), "invalid character")
}

func TestProtocolViolationError(t *testing.T) {
	err := &ProtocolViolationError{SentID: 3, GotID: 7}
	assert.Contains(t, err.Error(), "7")
	assert.Contains(t, err.Error(), "3")
}

func TestToolError_Message(t *testing.T) {
	err := &ToolError{Payload: map[string]any{"message": "population must be non-empty"}}
	require.Equal(t, "population must be non-empty", err.Message())
	assert.Contains(t, err.Error(), "population must be non-empty")

	// Payload without a message field stays opaque but printable.
	err = &ToolError{Payload: map[string]any{"code": float64(-32602)}}
	assert.Empty(t, err.Message())
	assert.Contains(t, err.Error(), "-32602")
}

func TestMalformedResultError(t *testing.T) {
	err := &MalformedResultError{Reason: "content is empty", Result: map[string]any{"content": []any{}}}
	assert.Contains(t, err.Error(), "content is empty")
}
