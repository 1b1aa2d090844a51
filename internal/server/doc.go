// Package server implements the stdio side of the line protocol: the tool
// registry and the read-dispatch-respond loop driven by cmd/random-number-mcp.
//
// The server accepts one JSON-RPC request per input line and emits exactly
// one response line per request, in the order requests were received.
package server
