// Command randdemo launches the random-number-mcp tool server and walks it
// through every tool, then through the error paths.
//
// Each demo phase owns its own channel and always stops it, so the server
// process never outlives a phase. A failed phase is logged and the next one
// still runs; the exit code reports whether every phase succeeded.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	randmcp "github.com/fastmcp-me/random-number-mcp"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to demo config.toml")
	flag.Parse()

	// Optional .env overlay for the RANDMCP_* variables.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)

		return 1
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fmt.Println("Random Number MCP Demo")
	fmt.Println("This demo shows the server running and responding to tool calls.")

	ctx := context.Background()
	ok := true

	for _, phase := range []struct {
		name string
		fn   func(context.Context, *slog.Logger, demoConfig) error
	}{
		{"tools", demoRandomTools},
		{"error handling", demoErrorHandling},
	} {
		if err := phase.fn(ctx, log, cfg); err != nil {
			// A failed phase is independent of the next one.
			log.Error("Demo phase failed", "phase", phase.name, "error", err)
			fmt.Printf("\nphase %q failed: %v\n", phase.name, err)

			ok = false
		}
	}

	if !ok {
		fmt.Println("\nsome demo phases failed")

		return 1
	}

	fmt.Println("\nall demo phases completed successfully")

	return 0
}

// newChannel builds a started channel for one phase.
func newChannel(ctx context.Context, log *slog.Logger, cfg demoConfig) (randmcp.Channel, error) {
	opts := []randmcp.Option{
		randmcp.WithLogger(log),
		randmcp.WithCallTimeout(cfg.CallTimeout),
		randmcp.WithServerArgs(cfg.ServerArgs...),
	}

	if cfg.ServerCommand != "" {
		opts = append(opts, randmcp.WithServerCommand(cfg.ServerCommand))
	}

	if cfg.ServerPath != "" {
		opts = append(opts, randmcp.WithServerPath(cfg.ServerPath))
	}

	channel := randmcp.NewChannel(opts...)
	if err := channel.Start(ctx); err != nil {
		return nil, err
	}

	fmt.Println("tool server started")

	return channel, nil
}

// demoRandomTools exercises every tool once with representative arguments.
func demoRandomTools(ctx context.Context, log *slog.Logger, cfg demoConfig) error {
	channel, err := newChannel(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer channel.Stop()

	fmt.Println("\n=== Tool showcase ===")

	fmt.Println("\n1. random_int - Generate random integers")

	if err := show(ctx, channel, "random integer (1-100)", "random_int",
		map[string]any{"low": 1, "high": 100}); err != nil {
		return err
	}

	if err := show(ctx, channel, "random integer (-10 to 10)", "random_int",
		map[string]any{"low": -10, "high": 10}); err != nil {
		return err
	}

	fmt.Println("\n2. random_float - Generate random floats")

	if err := show(ctx, channel, "random float (default 0.0-1.0)", "random_float",
		map[string]any{}); err != nil {
		return err
	}

	if err := show(ctx, channel, "random float (2.5-7.5)", "random_float",
		map[string]any{"low": 2.5, "high": 7.5}); err != nil {
		return err
	}

	fmt.Println("\n3. random_choices - Choose from population")

	population := []any{"apple", "banana", "cherry", "date", "elderberry"}

	if err := show(ctx, channel, "random choice from fruits", "random_choices",
		map[string]any{"population": population, "k": 1}); err != nil {
		return err
	}

	if err := show(ctx, channel, "3 weighted choices", "random_choices",
		map[string]any{
			"population": population,
			"k":          3,
			"weights":    []any{0.4, 0.3, 0.2, 0.1, 0.0},
		}); err != nil {
		return err
	}

	fmt.Println("\n4. random_shuffle - Shuffle lists")

	if err := show(ctx, channel, "shuffled 1-10", "random_shuffle",
		map[string]any{"items": []any{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}}); err != nil {
		return err
	}

	fmt.Println("\n5. secure_token_hex - Cryptographically secure tokens")

	if err := show(ctx, channel, "16-byte secure hex token", "secure_token_hex",
		map[string]any{"nbytes": 16}); err != nil {
		return err
	}

	if err := show(ctx, channel, "32-byte secure hex token (default)", "secure_token_hex",
		map[string]any{}); err != nil {
		return err
	}

	fmt.Println("\n6. secure_random_int - Cryptographically secure integers")

	if err := show(ctx, channel, "secure random int (0-999)", "secure_random_int",
		map[string]any{"upper_bound": 1000}); err != nil {
		return err
	}

	if err := show(ctx, channel, "secure dice roll (0-5)", "secure_random_int",
		map[string]any{"upper_bound": 6}); err != nil {
		return err
	}

	fmt.Println("\nall tools demonstrated")

	return nil
}

// demoErrorHandling shows that invalid arguments fail the call, not the channel.
func demoErrorHandling(ctx context.Context, log *slog.Logger, cfg demoConfig) error {
	channel, err := newChannel(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer channel.Stop()

	fmt.Println("\n=== Error handling ===")

	fmt.Println("\n1. invalid range (low > high)")
	expectToolError(ctx, channel, "random_int", map[string]any{"low": 10, "high": 5})

	fmt.Println("\n2. empty population")
	expectToolError(ctx, channel, "random_choices", map[string]any{"population": []any{}})

	fmt.Println("\n3. negative token bytes")
	expectToolError(ctx, channel, "secure_token_hex", map[string]any{"nbytes": -1})

	fmt.Println("\nerror handling working correctly")

	return nil
}

// show performs one tool call and prints its text result.
func show(ctx context.Context, channel randmcp.Channel, label, tool string, args map[string]any) error {
	text, err := channel.CallTool(ctx, tool, args)
	if err != nil {
		return fmt.Errorf("%s: %w", tool, err)
	}

	fmt.Printf("   %s: %s\n", label, text)

	return nil
}

// expectToolError performs a call that should be rejected and prints the
// server's complaint. The channel stays usable afterwards.
func expectToolError(ctx context.Context, channel randmcp.Channel, tool string, args map[string]any) {
	_, err := channel.CallTool(ctx, tool, args)
	if err != nil {
		fmt.Printf("   expected error: %v\n", err)

		return
	}

	fmt.Printf("   unexpected success calling %s\n", tool)
}
