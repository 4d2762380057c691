// main is the entry point of the TrackStudent application.
//
// STARTUP SEQUENCE (inside cli.Execute):
//  1. Load configuration (--config flag, CONFIG_PATH, or environment)
//  2. Initialise the logger for the configured environment
//  3. Open the storage backend (JSON/YAML file or SQLite)
//  4. Run the interactive menu, or the subcommand given on the command line
//
// RUNNING:
//
//	go run ./cmd/trackstudent --config=config/local.yaml
//	go run ./cmd/trackstudent add --name "Ana" --email ana@x.com --course ADS --age 20
//	go run ./cmd/trackstudent report courses
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/trackstudent/internal/cli"
)

func main() {
	// Ctrl+C cancels the context, which also aborts a prompt waiting for
	// input. After the first signal the default handling is restored, so a
	// second Ctrl+C kills the process outright.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	context.AfterFunc(ctx, stop)

	opts := cli.Options{
		In:        os.Stdin,
		Out:       os.Stdout,
		Err:       os.Stderr,
		NewLogger: setupLogger,
	}

	if err := cli.Execute(ctx, opts, os.Args[1:]); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "\nInterrupted by user.")
		}
		os.Exit(1) // non-zero exit code signals failure to the shell / CI
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging (staging): JSON output at DEBUG level.
// Production (prod): machine-readable JSON output at WARN level.
//
// Logs go to w (stderr) so they never mix with the menu on stdout.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelWarn, // only problems reach an interactive user
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
