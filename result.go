package randmcp

import (
	"github.com/spf13/cast"

	"github.com/fastmcp-me/random-number-mcp/internal/errors"
)

// FirstText extracts the text of the first content item from a tool result.
//
// A successful tool result is conventionally shaped as:
//
//	{"content": [{"type": "text", "text": "57"}, ...]}
//
// Any deviation from that shape fails with MalformedResultError carrying
// the offending result.
func FirstText(result map[string]any) (string, error) {
	raw, ok := result["content"]
	if !ok {
		return "", &errors.MalformedResultError{Reason: "result has no content field", Result: result}
	}

	content, ok := raw.([]any)
	if !ok {
		return "", &errors.MalformedResultError{Reason: "content is not an array", Result: result}
	}

	if len(content) == 0 {
		return "", &errors.MalformedResultError{Reason: "content is empty", Result: result}
	}

	item, ok := content[0].(map[string]any)
	if !ok {
		return "", &errors.MalformedResultError{Reason: "first content item is not an object", Result: result}
	}

	rawText, ok := item["text"]
	if !ok {
		return "", &errors.MalformedResultError{Reason: "first content item has no text field", Result: result}
	}

	text, err := cast.ToStringE(rawText)
	if err != nil {
		return "", &errors.MalformedResultError{Reason: "text field is not a string", Result: result}
	}

	return text, nil
}
