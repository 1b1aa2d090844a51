package subprocess

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/fastmcp-me/random-number-mcp/internal/cli"
	"github.com/fastmcp-me/random-number-mcp/internal/config"
	"github.com/fastmcp-me/random-number-mcp/internal/errors"
)

const (
	// defaultMaxLineSize is the maximum buffer size for reading server
	// output lines when Options.MaxBufferSize is not set.
	defaultMaxLineSize = 1024 * 1024 // 1MB
	// maxStderrBufferSize caps the stderr buffer used for error reporting.
	// Stderr reading continues past the cap (the callback still receives
	// every line), but the buffer stops growing.
	maxStderrBufferSize = 1 * 1024 * 1024 // 1MB
)

// ProcTransport implements config.Transport by spawning the tool server
// as a child process and speaking newline-delimited JSON over its pipes.
//
// The child process and both pipe ends are exclusively owned by the
// transport; Close kills the process and is safe to call repeatedly.
type ProcTransport struct {
	log            *slog.Logger
	options        *config.Options
	serverPath     string
	cmd            *exec.Cmd
	stdin          io.WriteCloser
	stdout         io.ReadCloser
	stderr         io.ReadCloser
	stderrCallback func(string)
	mu             sync.Mutex // Protects stdin writes and lifecycle flags
	closing        bool       // Whether Close() has been called (intentional shutdown)
	stdinClosed    bool       // Whether stdin was closed (e.g., due to context cancellation)
}

// Compile-time verification that ProcTransport implements the Transport interface.
var _ config.Transport = (*ProcTransport)(nil)

// NewProcTransport creates a transport that will spawn the tool server
// described by options. Binary discovery is deferred to Start().
func NewProcTransport(log *slog.Logger, options *config.Options) *ProcTransport {
	return &ProcTransport{
		log:            log.With("component", "proc_transport"),
		options:        options,
		stderrCallback: options.Stderr,
	}
}

// Start spawns the tool server subprocess.
//
// This method discovers the server binary and starts it with stdin, stdout,
// and stderr redirected to pipes owned by this transport.
//
// Returns ServerNotFoundError if the binary cannot be located, or
// LaunchError if the process fails to start.
func (t *ProcTransport) Start(ctx context.Context) error {
	t.log.Info("Starting tool server subprocess", "command", t.options.Command())

	discoverer := cli.NewDiscoverer(&cli.Config{
		ServerPath:    t.options.ServerPath,
		ServerCommand: t.options.Command(),
		Logger:        t.log,
	})

	serverPath, err := discoverer.Discover()
	if err != nil {
		return fmt.Errorf("discover tool server: %w", err)
	}

	t.serverPath = serverPath

	cwd := t.options.Cwd
	if cwd == "" {
		cwd, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
	}

	//nolint:gosec // G204: Subprocess launching with configured args is the point of this transport
	cmd := exec.CommandContext(ctx, serverPath, t.options.ServerArgs...)
	cmd.Dir = cwd
	cmd.Env = cli.BuildEnvironment(t.options.Env)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		t.log.Error("Failed to create stdin pipe", "error", err)

		return &errors.LaunchError{Command: serverPath, Err: fmt.Errorf("stdin pipe: %w", err)}
	}

	t.stdin = stdin

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		t.log.Error("Failed to create stdout pipe", "error", err)

		return &errors.LaunchError{Command: serverPath, Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	t.stdout = stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		t.log.Error("Failed to create stderr pipe", "error", err)

		return &errors.LaunchError{Command: serverPath, Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	t.stderr = stderr

	if err := cmd.Start(); err != nil {
		t.log.Error("Failed to start tool server process", "error", err)

		return &errors.LaunchError{Command: serverPath, Err: fmt.Errorf("start process: %w", err)}
	}

	t.cmd = cmd
	t.log.Info("Tool server subprocess started", "pid", cmd.Process.Pid)

	return nil
}

// ReadMessages reads JSON messages from the server stdout.
//
// This method starts a goroutine that reads line-delimited JSON from the
// server process stdout. Each line is parsed as a JSON object and sent to
// the messages channel.
//
// The goroutine exits when:
//   - The server process terminates
//   - The context is cancelled
//   - An unrecoverable error occurs
//
// Lines that fail to parse are sent to the error channel as
// ProtocolDecodeError but do not stop message processing. The goroutine
// closes both channels when it exits.
func (t *ProcTransport) ReadMessages(
	ctx context.Context,
) (<-chan map[string]any, <-chan error) {
	messages := make(chan map[string]any)
	errs := make(chan error, 1)

	var stderrWg sync.WaitGroup

	var stderrBuffer strings.Builder

	var stderrMu sync.Mutex

	// Always buffer stderr for error reporting (must complete reads before Wait())
	// See: https://pkg.go.dev/os/exec#Cmd.StderrPipe

	stderrWg.Go(func() {
		// Simple scanner loop - relies on process kill to close pipes and
		// unblock Scan().
		scanner := bufio.NewScanner(t.stderr)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			default:
			}

			line := scanner.Text()

			stderrMu.Lock()

			if stderrBuffer.Len() < maxStderrBufferSize {
				if stderrBuffer.Len() > 0 {
					stderrBuffer.WriteString("\n")
				}

				stderrBuffer.WriteString(line)
			}

			stderrMu.Unlock()

			if t.stderrCallback != nil {
				t.stderrCallback(line)
			}
		}

		if err := scanner.Err(); err != nil {
			t.log.Debug("Stderr scanner error", "error", err)
		}
	})

	go func() {
		defer close(messages)
		defer close(errs)
		defer t.log.Debug("ReadMessages goroutine stopped")

		maxLineSize := t.options.MaxBufferSize
		if maxLineSize <= 0 {
			maxLineSize = defaultMaxLineSize
		}

		scanner := bufio.NewScanner(t.stdout)
		buf := make([]byte, maxLineSize)
		scanner.Buffer(buf, maxLineSize)

		messageCount := 0

		for scanner.Scan() {
			select {
			case <-ctx.Done():
				t.log.Debug("Context cancelled during scan", "error", ctx.Err())

				errs <- ctx.Err()

				return
			default:
			}

			line := scanner.Bytes()

			var msg map[string]any

			if err := json.Unmarshal(line, &msg); err != nil {
				t.log.Debug("Failed to unmarshal JSON message", "error", err, "message", string(line))

				errs <- &errors.ProtocolDecodeError{
					RawData: string(line),
					Err:     err,
				}

				continue
			}

			messageCount++
			t.log.Debug("Received message from tool server", "message_count", messageCount)

			select {
			case messages <- msg:
			case <-ctx.Done():
				t.log.Debug("Context cancelled during message send", "error", ctx.Err())

				errs <- ctx.Err()

				return
			}
		}

		if err := scanner.Err(); err != nil {
			t.log.Error("Scanner error while reading server output", "error", err)

			errs <- fmt.Errorf("scanner error: %w", err)
		}

		// Wait for stderr goroutine before process wait
		stderrWg.Wait()

		t.log.Debug("Waiting for tool server process to exit")

		if err := t.cmd.Wait(); err != nil {
			// Check if this is an intentional shutdown
			t.mu.Lock()
			isClosing := t.closing
			t.mu.Unlock()

			if isClosing {
				t.log.Debug("Tool server terminated during shutdown")

				return
			}

			stderrMu.Lock()

			stderrOutput := stderrBuffer.String()

			stderrMu.Unlock()

			exitCode := 0

			if exitErr, ok := stderrors.AsType[*exec.ExitError](err); ok {
				exitCode = exitErr.ExitCode()
			}

			t.log.Error("Tool server exited with error", "exit_code", exitCode, "stderr", stderrOutput)

			errs <- &errors.ProcessError{
				ExitCode: exitCode,
				Stderr:   stderrOutput,
				Err:      err,
			}
		} else {
			t.log.Info("Tool server exited cleanly")
		}
	}()

	return messages, errs
}

// SendMessage sends a JSON message to the server stdin.
//
// The data should be a complete JSON message followed by a newline.
// This method is safe for concurrent use and respects context cancellation
// even during blocking writes.
//
// If context is cancelled during a blocked write, stdin is closed to unblock
// the goroutine. Subsequent calls will return ErrStdinClosed.
func (t *ProcTransport) SendMessage(ctx context.Context, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stdin == nil {
		return errors.ErrTransportNotConnected
	}

	if t.stdinClosed {
		return errors.ErrStdinClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.log.Debug("Sending message to tool server", "data_len", len(data))

	// Ensure data ends with newline.
	// Use explicit copy to avoid mutating caller's backing array if slice has spare capacity
	if len(data) == 0 || data[len(data)-1] != '\n' {
		newData := make([]byte, len(data)+1)
		copy(newData, data)
		newData[len(data)] = '\n'
		data = newData
	}

	// Write in goroutine to respect context cancellation
	done := make(chan error, 1)

	go func() {
		_, err := t.stdin.Write(data)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.log.Error("Failed to write message to tool server", "error", err)

			return fmt.Errorf("write to stdin: %w", err)
		}

		return nil

	case <-ctx.Done():
		t.log.Debug("Context cancelled during write, closing stdin")

		if t.stdin != nil {
			_ = t.stdin.Close()
			t.stdinClosed = true
		}
		// Wait for goroutine to exit with timeout to prevent leak
		select {
		case <-done:
		case <-time.After(1 * time.Second):
			t.log.Warn("Write goroutine did not exit after stdin close, potential leak")
		}

		return ctx.Err()
	}
}

// IsReady checks if the transport is ready for communication.
//
// Returns true if the server process is running and stdin is open.
func (t *ProcTransport) IsReady() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cmd != nil && t.cmd.Process != nil && t.stdin != nil
}

// Close terminates the tool server process.
//
// This forcefully kills the server process using SIGKILL. It's safe to call
// Close multiple times or on an already-terminated process.
func (t *ProcTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closing = true
	t.stdinClosed = true

	if t.cmd != nil && t.cmd.Process != nil {
		t.log.Debug("Killing tool server process", "pid", t.cmd.Process.Pid)

		if err := t.cmd.Process.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("kill tool server process (pid %d): %w", t.cmd.Process.Pid, err)
		}
	}

	return nil
}
