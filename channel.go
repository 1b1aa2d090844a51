package randmcp

import (
	"context"
	"io"
	"log/slog"

	"github.com/fastmcp-me/random-number-mcp/internal/jsonrpc"
	"github.com/fastmcp-me/random-number-mcp/internal/subprocess"
)

// Channel is a blocking, one-at-a-time call interface to the tool server.
//
// A channel owns the server subprocess and its pipe pair exclusively.
// There is never more than one request in flight: each Call writes one
// request line and blocks until its response line arrives. Channels are
// single-use: Unstarted -> Running -> Stopped, with no restart.
//
// Example usage:
//
//	channel := randmcp.NewChannel(
//	    randmcp.WithLogger(slog.Default()),
//	    randmcp.WithServerPath("./bin/random-number-mcp"),
//	)
//	if err := channel.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer channel.Stop()
//
//	text, err := channel.CallTool(ctx, "random_int", map[string]any{
//	    "low": 1, "high": 100,
//	})
type Channel interface {
	// Start spawns the tool server and prepares the channel for calls.
	// Valid only once; returns ServerNotFoundError or LaunchError on failure.
	Start(ctx context.Context) error

	// Call sends one request envelope and blocks until its response arrives.
	// On an error envelope it fails with ToolError; the channel remains
	// usable for subsequent calls.
	Call(ctx context.Context, method string, params map[string]any) (map[string]any, error)

	// CallTool invokes a named tool via tools/call and unwraps the text of
	// the first content item. Shape mismatches fail with MalformedResultError.
	CallTool(ctx context.Context, name string, arguments map[string]any) (string, error)

	// Stop terminates the tool server and releases its pipes. Safe to call
	// before Start (no-op) and safe to call repeatedly; never reports an
	// error for an already-exited process.
	Stop()
}

// channelImpl is the concrete Channel backed by the jsonrpc channel.
type channelImpl struct {
	ch *jsonrpc.Channel
}

// Compile-time verification that channelImpl implements Channel.
var _ Channel = (*channelImpl)(nil)

// NewChannel creates a channel configured by the given options.
// The tool server is not spawned until Start.
func NewChannel(opts ...Option) Channel {
	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	transport := options.Transport
	if transport == nil {
		transport = subprocess.NewProcTransport(log, options)
	}

	return &channelImpl{
		ch: jsonrpc.NewChannel(log, transport, options.Timeout()),
	}
}

// Start implements Channel.
func (c *channelImpl) Start(ctx context.Context) error {
	return c.ch.Start(ctx)
}

// Call implements Channel.
func (c *channelImpl) Call(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	return c.ch.Call(ctx, method, params)
}

// CallTool implements Channel.
func (c *channelImpl) CallTool(ctx context.Context, name string, arguments map[string]any) (string, error) {
	if arguments == nil {
		arguments = map[string]any{}
	}

	result, err := c.ch.Call(ctx, "tools/call", map[string]any{
		"name":      name,
		"arguments": arguments,
	})
	if err != nil {
		return "", err
	}

	return FirstText(result)
}

// Stop implements Channel.
func (c *channelImpl) Stop() {
	c.ch.Stop()
}

// NopLogger returns a logger that discards all output.
// Use this when you want silent operation with no logging overhead.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
