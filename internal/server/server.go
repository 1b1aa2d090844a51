package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/fastmcp-me/random-number-mcp/internal/jsonrpc"
)

// ProtocolVersion is reported in the initialize response.
const ProtocolVersion = "2024-11-05"

// maxLineSize caps the size of a single request line.
const maxLineSize = 1024 * 1024 // 1MB

// request is the decoded wire shape of one incoming line.
type request struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// callParams is the params shape of a tools/call request.
type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Server serves the line-delimited JSON-RPC protocol over an in/out stream
// pair, conventionally stdin/stdout.
//
// Requests are processed strictly in arrival order and every request gets
// exactly one response line; the server never emits unsolicited lines.
type Server struct {
	log      *slog.Logger
	registry *Registry
	name     string
	version  string
	in       io.Reader
	out      io.Writer
}

// New creates a server over the given streams.
func New(log *slog.Logger, registry *Registry, name, version string, in io.Reader, out io.Writer) *Server {
	return &Server{
		log:      log.With("component", "server"),
		registry: registry,
		name:     name,
		version:  version,
		in:       in,
		out:      out,
	}
}

// Run reads requests until the input stream closes or ctx is cancelled.
//
// Each line is decoded, dispatched, and answered with one response line
// before the next line is read, which preserves request order on the wire.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("Tool server serving", "name", s.name, "version", s.version)

	scanner := bufio.NewScanner(s.in)
	buf := make([]byte, maxLineSize)
	scanner.Buffer(buf, maxLineSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.handleLine(ctx, line)
		if err := s.writeResponse(resp); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	s.log.Info("Input stream closed, shutting down")

	return nil
}

// handleLine decodes and dispatches a single request line.
func (s *Server) handleLine(ctx context.Context, line []byte) *jsonrpc.ServerResponse {
	var req request

	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn("Failed to parse request line", "error", err)

		return jsonrpc.NewError(nil, jsonrpc.CodeParseError, fmt.Sprintf("parse error: %v", err))
	}

	if req.Method == "" {
		return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidRequest, "missing method")
	}

	s.log.Debug("Dispatching request", "id", req.ID, "method", req.Method)

	switch req.Method {
	case "initialize":
		return jsonrpc.NewResult(req.ID, map[string]any{
			"protocolVersion": ProtocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo":      map[string]any{"name": s.name, "version": s.version},
		})

	case "ping":
		return jsonrpc.NewResult(req.ID, map[string]any{})

	case "tools/list":
		return jsonrpc.NewResult(req.ID, map[string]any{"tools": s.registry.List()})

	case "tools/call":
		return s.handleToolCall(ctx, &req)

	default:
		return jsonrpc.NewError(req.ID, jsonrpc.CodeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

// handleToolCall dispatches a tools/call request to the registry.
func (s *Server) handleToolCall(ctx context.Context, req *request) *jsonrpc.ServerResponse {
	var params callParams

	if err := json.Unmarshal(req.Params, &params); err != nil {
		return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, fmt.Sprintf("invalid params: %v", err))
	}

	if params.Name == "" {
		return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, "missing tool name")
	}

	result, err := s.registry.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Debug("Tool call failed", "tool", params.Name, "error", err)

		return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, err.Error())
	}

	return jsonrpc.NewResult(req.ID, result)
}

// writeResponse marshals one response envelope onto a single output line.
func (s *Server) writeResponse(resp *jsonrpc.ServerResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	data = append(data, '\n')

	if _, err := s.out.Write(data); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	return nil
}
