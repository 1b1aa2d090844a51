package jsonrpc

import (
	"github.com/spf13/cast"
)

// Version is the protocol tag carried by every envelope.
const Version = "2.0"

// Request is the envelope for a single outgoing call.
//
// Wire format:
//
//	{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{...}}
//
// Ids are strictly increasing per channel instance.
type Request struct {
	Jsonrpc string         `json:"jsonrpc"`
	ID      int64          `json:"id"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params"`
}

// NewRequest builds a request envelope with the protocol tag set.
func NewRequest(id int64, method string, params map[string]any) *Request {
	if params == nil {
		params = map[string]any{}
	}

	return &Request{
		Jsonrpc: Version,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// Response wraps a decoded response envelope.
//
// Exactly one of the "result" or "error" keys is expected. The raw map is
// retained so opaque error payloads can be surfaced untouched.
type Response map[string]any

// ID extracts the numeric id. The second return is false when the id is
// absent or not a number.
func (r Response) ID() (int64, bool) {
	raw, ok := r["id"]
	if !ok {
		return 0, false
	}

	id, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, false
	}

	return id, true
}

// IsError reports whether the envelope carries an error payload.
func (r Response) IsError() bool {
	_, ok := r["error"]

	return ok
}

// ErrorPayload returns the error payload as a map. A bare (non-object)
// error value is wrapped under "message" so callers always see a map.
func (r Response) ErrorPayload() map[string]any {
	raw, ok := r["error"]
	if !ok {
		return nil
	}

	if payload, ok := raw.(map[string]any); ok {
		return payload
	}

	return map[string]any{"message": cast.ToString(raw)}
}

// Result returns the result payload. The second return is false when the
// result is absent or not an object.
func (r Response) Result() (map[string]any, bool) {
	raw, ok := r["result"]
	if !ok {
		return nil, false
	}

	result, ok := raw.(map[string]any)

	return result, ok
}

// ErrorObject is the error payload written by the server side.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON-RPC 2.0 error codes used by the server.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// ServerResponse is the envelope written by the server side. Exactly one of
// Result or Error must be set.
type ServerResponse struct {
	Jsonrpc string       `json:"jsonrpc"`
	ID      any          `json:"id"`
	Result  any          `json:"result,omitempty"`
	Error   *ErrorObject `json:"error,omitempty"`
}

// NewResult builds a success envelope for the given request id.
func NewResult(id any, result any) *ServerResponse {
	return &ServerResponse{Jsonrpc: Version, ID: id, Result: result}
}

// NewError builds an error envelope for the given request id.
func NewError(id any, code int, message string) *ServerResponse {
	return &ServerResponse{Jsonrpc: Version, ID: id, Error: &ErrorObject{Code: code, Message: message}}
}
