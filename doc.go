// Package randmcp provides a Go client for the random-number-mcp tool
// server, plus the server implementation itself (see cmd/random-number-mcp).
//
// The client spawns the tool server as a subprocess and speaks a
// line-delimited JSON-RPC protocol over its stdin/stdout: one request line
// out, one response line back, strictly one call in flight at a time.
//
// # Basic Usage
//
//	ctx := context.Background()
//
//	channel := randmcp.NewChannel(
//	    randmcp.WithLogger(slog.Default()),
//	)
//	if err := channel.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer channel.Stop()
//
//	text, err := channel.CallTool(ctx, "random_int", map[string]any{
//	    "low": 1, "high": 100,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("random integer:", text)
//
// # Error Handling
//
// The SDK provides typed errors for different failure scenarios:
//
//	text, err := channel.CallTool(ctx, "random_choices", args)
//	if err != nil {
//	    if toolErr, ok := errors.AsType[*randmcp.ToolError](err); ok {
//	        log.Printf("server rejected the call: %s", toolErr.Message())
//	    }
//	    if _, ok := errors.AsType[*randmcp.ProtocolDecodeError](err); ok {
//	        log.Print("server stream broke; channel must be stopped")
//	    }
//	}
//
// A ToolError is fatal only to that call; the channel stays usable.
// Launch and decode failures are fatal to the channel.
//
// # Requirements
//
// The default transport requires the random-number-mcp server binary to be
// installed and available in your system PATH. Use WithServerPath to point
// at an explicit binary, or WithTransport to inject a custom transport.
package randmcp
