package jsonrpc

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fastmcp-me/random-number-mcp/internal/config"
	"github.com/fastmcp-me/random-number-mcp/internal/errors"
)

// state tracks the channel lifecycle: Unstarted -> Running -> Stopped.
// Stopped is terminal; channels are single-use.
type state int

const (
	stateUnstarted state = iota
	stateRunning
	stateStopped
)

// Channel is a blocking, one-at-a-time call interface over a transport.
//
// Each Call performs exactly one write and then waits for exactly one
// response envelope. Request ids are strictly increasing for the lifetime
// of the channel. callMu serializes calls, so there is never more than one
// request in flight.
type Channel struct {
	log       *slog.Logger
	transport config.Transport
	timeout   time.Duration

	// callMu serializes calls: single in-flight by construction.
	callMu sync.Mutex
	nextID int64

	// stateMu guards lifecycle state. Separate from callMu so Stop can
	// terminate the transport while a call is still waiting; the abandoned
	// call then observes the stream closing.
	stateMu sync.Mutex
	state   state

	msgs <-chan map[string]any
	errs <-chan error
}

// NewChannel creates a channel over the given transport.
//
// The logger receives debug, info, warn, and error messages during channel
// operations and is tagged with a fresh channel id for log correlation.
func NewChannel(log *slog.Logger, transport config.Transport, timeout time.Duration) *Channel {
	if timeout <= 0 {
		timeout = config.DefaultCallTimeout
	}

	return &Channel{
		log:       log.With("component", "channel", "channel_id", ulid.Make().String()),
		transport: transport,
		timeout:   timeout,
	}
}

// Start starts the transport and begins reading responses.
//
// Valid only in the Unstarted state: a second Start returns
// ErrChannelAlreadyStarted, and Start after Stop returns ErrChannelStopped.
func (c *Channel) Start(ctx context.Context) error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	switch c.state {
	case stateRunning:
		return errors.ErrChannelAlreadyStarted
	case stateStopped:
		return errors.ErrChannelStopped
	case stateUnstarted:
	}

	if err := c.transport.Start(ctx); err != nil {
		return err
	}

	// The read loop must outlive the Start context: per-call contexts and
	// the call timeout bound the waiting instead.
	c.msgs, c.errs = c.transport.ReadMessages(context.Background())
	c.state = stateRunning

	c.log.Info("Channel started")

	return nil
}

// Call sends one request envelope and blocks until its response arrives.
//
// The response id must match the request id; a mismatch fails with
// ProtocolViolationError. An error payload fails with ToolError and leaves
// the channel usable for subsequent calls. A closed stream or an
// undecodable line fails with ProtocolDecodeError. The wait is bounded by
// the configured call timeout and by ctx.
func (c *Channel) Call(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	c.callMu.Lock()
	defer c.callMu.Unlock()

	c.stateMu.Lock()
	st := c.state
	c.stateMu.Unlock()

	switch st {
	case stateUnstarted:
		return nil, errors.ErrChannelNotStarted
	case stateStopped:
		return nil, errors.ErrChannelStopped
	case stateRunning:
	}

	c.nextID++
	id := c.nextID

	req := NewRequest(id, method, params)

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request %d: %w", id, err)
	}

	c.log.Debug("Sending request", "id", id, "method", method)

	if err := c.transport.SendMessage(ctx, data); err != nil {
		return nil, &errors.ProtocolDecodeError{Err: fmt.Errorf("send request %d: %w", id, err)}
	}

	return c.awaitResponse(ctx, id)
}

// awaitResponse blocks until one envelope arrives for the given request id.
// Called with callMu held, which is what enforces single in-flight.
func (c *Channel) awaitResponse(ctx context.Context, id int64) (map[string]any, error) {
	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case msg, ok := <-c.msgs:
		if !ok {
			c.log.Warn("Response stream closed mid-call", "id", id)

			return nil, &errors.ProtocolDecodeError{Err: fmt.Errorf("awaiting response %d: %w", id, c.drainReadError())}
		}

		return c.decodeResponse(id, Response(msg))

	case err, ok := <-c.errs:
		if !ok {
			return nil, &errors.ProtocolDecodeError{Err: fmt.Errorf("awaiting response %d: %w", id, io.EOF)}
		}

		c.log.Warn("Transport error while awaiting response", "id", id, "error", err)

		if decodeErr, ok := stderrors.AsType[*errors.ProtocolDecodeError](err); ok {
			return nil, decodeErr
		}

		return nil, &errors.ProtocolDecodeError{Err: err}

	case <-timer.C:
		c.log.Warn("Call timed out", "id", id, "timeout", c.timeout)

		return nil, fmt.Errorf("awaiting response %d: %w", id, errors.ErrCallTimeout)

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// decodeResponse validates the envelope and extracts its payload.
func (c *Channel) decodeResponse(sentID int64, resp Response) (map[string]any, error) {
	gotID, ok := resp.ID()
	if !ok {
		return nil, &errors.ProtocolDecodeError{Err: fmt.Errorf("response to request %d has no numeric id", sentID)}
	}

	if gotID != sentID {
		c.log.Error("Response id mismatch", "sent_id", sentID, "got_id", gotID)

		return nil, &errors.ProtocolViolationError{SentID: sentID, GotID: gotID}
	}

	if resp.IsError() {
		payload := resp.ErrorPayload()
		c.log.Debug("Received error response", "id", gotID, "payload", payload)

		return nil, &errors.ToolError{Payload: payload}
	}

	result, ok := resp.Result()
	if !ok {
		return nil, &errors.ProtocolDecodeError{Err: fmt.Errorf("response %d carries neither result object nor error", gotID)}
	}

	c.log.Debug("Received result", "id", gotID)

	return result, nil
}

// drainReadError returns a pending transport error, or io.EOF when the
// stream simply closed.
func (c *Channel) drainReadError() error {
	select {
	case err, ok := <-c.errs:
		if ok && err != nil {
			return err
		}
	default:
	}

	return io.EOF
}

// Stop terminates the transport and transitions to the terminal Stopped
// state. Safe to call before Start (no-op) and safe to call repeatedly;
// termination failures are logged, never returned.
func (c *Channel) Stop() {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	if c.state == stateRunning {
		if err := c.transport.Close(); err != nil {
			c.log.Warn("Failed to terminate tool server", "error", err)
		}

		c.log.Info("Channel stopped")
	}

	c.state = stateStopped
}
