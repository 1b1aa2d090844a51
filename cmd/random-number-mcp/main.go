// Command random-number-mcp serves the randomness tools over stdio.
//
// Requests arrive as line-delimited JSON-RPC on stdin; every request is
// answered with exactly one line on stdout. All logging goes to stderr so
// the protocol stream stays clean.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/fastmcp-me/random-number-mcp/internal/server"
)

const (
	serverName    = "random-number-mcp"
	serverVersion = "1.0.0"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	debug := flag.Bool("debug", false, "enable debug logging on stderr")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("%s %s\n", serverName, serverVersion)

		return nil
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(log, server.NewToolRegistry(), serverName, serverVersion, os.Stdin, os.Stdout)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer stop()

		return srv.Run(gCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()

		// Closing stdin unblocks the serve loop's scanner on shutdown.
		return os.Stdin.Close()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
