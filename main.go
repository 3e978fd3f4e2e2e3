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
	"time"

	"github.com/bond-kaneko/go-calc/display"
	"github.com/bond-kaneko/go-calc/watcher"
)

func main() {
	// Configure command line arguments
	scriptFlag := flag.String("f", "", "Keystroke script to evaluate (default: read keys from stdin)")
	watchFlag := flag.Bool("w", false, "Watch the script and replay it on every change")
	delayFlag := flag.Duration("d", 300*time.Millisecond, "Debounce delay before replaying a changed script")
	traceFlag := flag.Bool("t", false, "Print the display after every key")
	pollFlag := flag.Bool("p", false, "Poll the script for changes instead of using file system events")
	verboseFlag := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var err error
	switch {
	case *watchFlag:
		err = watch(*scriptFlag, *delayFlag, *pollFlag, logger)
	case *scriptFlag != "":
		err = runScript(*scriptFlag, os.Stdout, *traceFlag)
	default:
		if display.IsTerminal(os.Stdin) {
			fmt.Println("Type keys separated by spaces, e.g. 12.5 + 3 =  (C clears, DEL erases, ± negates). Ctrl+D quits.")
		}
		err = runInteractive(os.Stdin, os.Stdout, *traceFlag)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// watch replays the script on every change until interrupted
func watch(path string, delay time.Duration, poll bool, logger *slog.Logger) error {
	if path == "" {
		return errors.New("watch mode needs a script (-f)")
	}

	renderer := display.New(os.Stdout)
	defer renderer.Close()

	var opts []watcher.Option
	if poll {
		opts = append(opts, watcher.WithPolling())
	}
	scriptWatcher, err := watcher.NewScriptWatcher(path, renderer, logger, opts...)
	if err != nil {
		return fmt.Errorf("error creating script watcher: %w", err)
	}
	defer scriptWatcher.Close()
	scriptWatcher.SetDebounceDelay(delay)

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching for script changes. Press Ctrl+C to exit.")
	if err := scriptWatcher.Watch(ctx); err != nil {
		return err
	}
	fmt.Println("\nShutting down...")
	return nil
}
