package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serve runs the server over the given input and returns one decoded
// response envelope per line of output.
func serve(t *testing.T, input string) []map[string]any {
	t.Helper()

	var out bytes.Buffer

	srv := New(nopLogger(), NewToolRegistry(), "random-number-mcp", "1.0.0", strings.NewReader(input), &out)
	require.NoError(t, srv.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	responses := make([]map[string]any, 0, len(lines))

	for _, line := range lines {
		if line == "" {
			continue
		}

		var resp map[string]any

		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}

	return responses
}

// firstText digs result.content[0].text out of a response envelope.
func firstText(t *testing.T, resp map[string]any) string {
	t.Helper()

	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "expected result envelope, got %v", resp)

	content, ok := result["content"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, content)

	item, ok := content[0].(map[string]any)
	require.True(t, ok)

	text, ok := item["text"].(string)
	require.True(t, ok)

	return text
}

func errorMessage(t *testing.T, resp map[string]any) string {
	t.Helper()

	errObj, ok := resp["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", resp)

	msg, ok := errObj["message"].(string)
	require.True(t, ok)

	return msg
}

func TestServer_Ping(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":1,"method":"ping","params":{}}`+"\n")
	require.Len(t, responses, 1)

	assert.Equal(t, "2.0", responses[0]["jsonrpc"])
	assert.Equal(t, float64(1), responses[0]["id"])
	assert.Equal(t, map[string]any{}, responses[0]["result"])
}

func TestServer_Initialize(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`+"\n")
	require.Len(t, responses, 1)

	result, ok := responses[0]["result"].(map[string]any)
	require.True(t, ok)

	info, ok := result["serverInfo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "random-number-mcp", info["name"])
	assert.Equal(t, ProtocolVersion, result["protocolVersion"])
}

func TestServer_ToolsList(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`+"\n")
	require.Len(t, responses, 1)

	result, ok := responses[0]["result"].(map[string]any)
	require.True(t, ok)

	tools, ok := result["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 6)

	names := make([]string, 0, len(tools))

	for _, raw := range tools {
		tool, ok := raw.(map[string]any)
		require.True(t, ok)
		names = append(names, tool["name"].(string))
		assert.Contains(t, tool, "inputSchema")
	}

	// List is sorted by name.
	assert.Equal(t, []string{
		"random_choices", "random_float", "random_int",
		"random_shuffle", "secure_random_int", "secure_token_hex",
	}, names)
}

func TestServer_CallRandomInt(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"random_int","arguments":{"low":1,"high":100}}}`+"\n")
	require.Len(t, responses, 1)

	n, err := strconv.ParseInt(firstText(t, responses[0]), 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))
	assert.LessOrEqual(t, n, int64(100))
}

func TestServer_CallInvalidRange(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"random_int","arguments":{"low":10,"high":5}}}`+"\n")
	require.Len(t, responses, 1)

	assert.Equal(t, float64(7), responses[0]["id"])
	assert.Contains(t, errorMessage(t, responses[0]), "low must be <= high")
}

func TestServer_CallEmptyPopulation(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"random_choices","arguments":{"population":[]}}}`+"\n")
	require.Len(t, responses, 1)

	assert.Contains(t, errorMessage(t, responses[0]), "population must be non-empty")
}

func TestServer_CallNegativeTokenBytes(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"secure_token_hex","arguments":{"nbytes":-1}}}`+"\n")
	require.Len(t, responses, 1)

	assert.Contains(t, errorMessage(t, responses[0]), "nbytes must be >= 1")
}

func TestServer_CallShuffleReturnsJSONList(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"random_shuffle","arguments":{"items":[1,2,3]}}}`+"\n")
	require.Len(t, responses, 1)

	var shuffled []any
	require.NoError(t, json.Unmarshal([]byte(firstText(t, responses[0])), &shuffled))
	assert.ElementsMatch(t, []any{float64(1), float64(2), float64(3)}, shuffled)
}

func TestServer_UnknownTool(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"nope","arguments":{}}}`+"\n")
	require.Len(t, responses, 1)

	assert.Contains(t, errorMessage(t, responses[0]), "unknown tool")
}

func TestServer_UnknownMethod(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":1,"method":"resources/list","params":{}}`+"\n")
	require.Len(t, responses, 1)

	errObj, ok := responses[0]["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(-32601), errObj["code"])
}

func TestServer_ParseErrorAnswersWithNullID(t *testing.T) {
	responses := serve(t, "{not json\n")
	require.Len(t, responses, 1)

	assert.Nil(t, responses[0]["id"])

	errObj, ok := responses[0]["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(-32700), errObj["code"])
}

func TestServer_OneResponsePerRequestInOrder(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"ping","params":{}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"random_int","arguments":{"low":10,"high":5}}}` + "\n" +
		`{"jsonrpc":"2.0","id":3,"method":"ping","params":{}}` + "\n"

	responses := serve(t, input)
	require.Len(t, responses, 3)

	assert.Equal(t, float64(1), responses[0]["id"])
	assert.Equal(t, float64(2), responses[1]["id"])
	assert.Equal(t, float64(3), responses[2]["id"])

	// An error reply occupies exactly one line like any other.
	assert.Contains(t, responses[1], "error")
}
