package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cast"

	"github.com/fastmcp-me/random-number-mcp/internal/randtool"
)

// NewToolRegistry builds the registry with all randomness tools mounted.
func NewToolRegistry() *Registry {
	registry := NewRegistry()

	registry.Add(NewTool("random_int", "Generate a random integer in [low, high] (inclusive).",
		&jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"low":  {Type: "integer", Description: "Lower bound (inclusive)"},
				"high": {Type: "integer", Description: "Upper bound (inclusive)"},
			},
			Required: []string{"low", "high"},
		}), handleRandomInt)

	registry.Add(NewTool("random_float", "Generate a random float in [low, high). Defaults to [0.0, 1.0).",
		&jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"low":  {Type: "number", Description: "Lower bound (inclusive), default 0.0"},
				"high": {Type: "number", Description: "Upper bound (exclusive), default 1.0"},
			},
		}), handleRandomFloat)

	registry.Add(NewTool("random_choices", "Choose k elements from a population, optionally weighted, with replacement.",
		&jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"population": {Type: "array", Description: "Values to choose from"},
				"k":          {Type: "integer", Description: "Number of choices, default 1"},
				"weights": {
					Type:        "array",
					Items:       &jsonschema.Schema{Type: "number"},
					Description: "Relative weights, one per population element",
				},
			},
			Required: []string{"population"},
		}), handleRandomChoices)

	registry.Add(NewTool("random_shuffle", "Return a new list with the items in random order.",
		&jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"items": {Type: "array", Description: "Items to shuffle"},
			},
			Required: []string{"items"},
		}), handleRandomShuffle)

	registry.Add(NewTool("secure_token_hex", "Generate a cryptographically secure random hex token.",
		&jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"nbytes": {Type: "integer", Description: "Token size in bytes, default 32"},
			},
		}), handleSecureTokenHex)

	registry.Add(NewTool("secure_random_int", "Generate a cryptographically secure random integer in [0, upper_bound).",
		&jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"upper_bound": {Type: "integer", Description: "Exclusive upper bound"},
			},
			Required: []string{"upper_bound"},
		}), handleSecureRandomInt)

	return registry
}

func handleRandomInt(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return nil, err
	}

	low, err := intArg(args, "low")
	if err != nil {
		return nil, err
	}

	high, err := intArg(args, "high")
	if err != nil {
		return nil, err
	}

	n, err := randtool.Int(low, high)
	if err != nil {
		return nil, err
	}

	return TextResult(cast.ToString(n)), nil
}

func handleRandomFloat(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return nil, err
	}

	low, err := optFloatArg(args, "low", 0.0)
	if err != nil {
		return nil, err
	}

	high, err := optFloatArg(args, "high", 1.0)
	if err != nil {
		return nil, err
	}

	f, err := randtool.Float(low, high)
	if err != nil {
		return nil, err
	}

	return TextResult(cast.ToString(f)), nil
}

func handleRandomChoices(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return nil, err
	}

	population, err := sliceArg(args, "population")
	if err != nil {
		return nil, err
	}

	k, err := optIntArg(args, "k", 1)
	if err != nil {
		return nil, err
	}

	weights, err := optWeights(args)
	if err != nil {
		return nil, err
	}

	chosen, err := randtool.Choices(population, int(k), weights)
	if err != nil {
		return nil, err
	}

	return jsonTextResult(chosen)
}

func handleRandomShuffle(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return nil, err
	}

	items, err := sliceArg(args, "items")
	if err != nil {
		return nil, err
	}

	return jsonTextResult(randtool.Shuffle(items))
}

func handleSecureTokenHex(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return nil, err
	}

	nbytes, err := optIntArg(args, "nbytes", randtool.DefaultTokenBytes)
	if err != nil {
		return nil, err
	}

	token, err := randtool.TokenHex(int(nbytes))
	if err != nil {
		return nil, err
	}

	return TextResult(token), nil
}

func handleSecureRandomInt(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return nil, err
	}

	upperBound, err := intArg(args, "upper_bound")
	if err != nil {
		return nil, err
	}

	n, err := randtool.SecureInt(upperBound)
	if err != nil {
		return nil, err
	}

	return TextResult(cast.ToString(n)), nil
}

// jsonTextResult serializes a value as JSON into a single text content item.
func jsonTextResult(value any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	return TextResult(string(data)), nil
}

// intArg extracts a required integer argument.
func intArg(args map[string]any, name string) (int64, error) {
	raw, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", name)
	}

	n, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, fmt.Errorf("argument %q must be an integer: %w", name, err)
	}

	return n, nil
}

// optIntArg extracts an optional integer argument with a default.
func optIntArg(args map[string]any, name string, def int64) (int64, error) {
	if _, ok := args[name]; !ok {
		return def, nil
	}

	return intArg(args, name)
}

// optFloatArg extracts an optional number argument with a default.
func optFloatArg(args map[string]any, name string, def float64) (float64, error) {
	raw, ok := args[name]
	if !ok {
		return def, nil
	}

	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("argument %q must be a number: %w", name, err)
	}

	return f, nil
}

// sliceArg extracts a required array argument.
func sliceArg(args map[string]any, name string) ([]any, error) {
	raw, ok := args[name]
	if !ok {
		return nil, fmt.Errorf("missing required argument %q", name)
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be an array", name)
	}

	return items, nil
}

// optWeights extracts the optional weights argument as floats.
func optWeights(args map[string]any) ([]float64, error) {
	raw, ok := args["weights"]
	if !ok || raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be an array of numbers", "weights")
	}

	weights := make([]float64, len(items))

	for i, item := range items {
		w, err := cast.ToFloat64E(item)
		if err != nil {
			return nil, fmt.Errorf("weights[%d] must be a number: %w", i, err)
		}

		weights[i] = w
	}

	return weights, nil
}
