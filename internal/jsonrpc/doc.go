// Package jsonrpc implements the line-delimited request/response protocol
// spoken with the tool server.
//
// Each message is a single UTF-8 line holding one JSON object. The Channel
// sends one request envelope per call, with a strictly increasing numeric
// id, and blocks until exactly one response envelope arrives. There is
// never more than one request in flight; responses must answer the request
// just sent, and an id mismatch is a protocol violation.
//
// Example usage:
//
//	transport := subprocess.NewProcTransport(log, options)
//	channel := jsonrpc.NewChannel(log, transport, 30*time.Second)
//
//	if err := channel.Start(ctx); err != nil { ... }
//	defer channel.Stop()
//
//	result, err := channel.Call(ctx, "tools/call", map[string]any{
//		"name":      "random_int",
//		"arguments": map[string]any{"low": 1, "high": 100},
//	})
package jsonrpc
