package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bond-kaneko/go-calc/calc"
	"github.com/bond-kaneko/go-calc/display"
	"github.com/bond-kaneko/go-calc/filenotify"
	"github.com/bond-kaneko/go-calc/script"
	"github.com/fsnotify/fsnotify"
)

// ScriptWatcher replays a keystroke script every time the file changes
type ScriptWatcher struct {
	path          string
	debounceDelay time.Duration
	watcher       filenotify.FileWatcher
	renderer      display.Renderer
	logger        *slog.Logger

	// mu serializes replays; debounced replays run on timer goroutines
	mu      sync.Mutex
	replays int
}

// Option configures a ScriptWatcher
type Option func(*ScriptWatcher)

// WithFileWatcher replaces the default file watcher
func WithFileWatcher(fw filenotify.FileWatcher) Option {
	return func(sw *ScriptWatcher) {
		sw.watcher = fw
	}
}

// WithPolling makes the watcher poll the file instead of using fs events
func WithPolling() Option {
	return func(sw *ScriptWatcher) {
		sw.watcher = filenotify.New(true)
	}
}

// NewScriptWatcher creates a watcher for the script at path
func NewScriptWatcher(path string, renderer display.Renderer, logger *slog.Logger, opts ...Option) (*ScriptWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve script path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("failed to find script: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	sw := &ScriptWatcher{
		path:          abs,
		debounceDelay: 300 * time.Millisecond,
		renderer:      renderer,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(sw)
	}
	if sw.watcher == nil {
		sw.watcher = filenotify.New(false)
	}

	return sw, nil
}

// SetDebounceDelay sets the delay between the last change and the replay
func (sw *ScriptWatcher) SetDebounceDelay(delay time.Duration) {
	sw.debounceDelay = delay
}

// Path returns the absolute path of the watched script
func (sw *ScriptWatcher) Path() string {
	return sw.path
}

// Replay runs the script on a fresh engine, renders the display after each
// script line and returns the final display
func (sw *ScriptWatcher) Replay() (string, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.replays++
	header := fmt.Sprintf("%s (run %d)", filepath.Base(sw.path), sw.replays)

	s, err := script.Load(sw.path)
	if err != nil {
		if rerr := sw.renderer.Render(header + "\nerror: " + err.Error()); rerr != nil {
			sw.logger.Error("render failed", "error", rerr)
		}
		return "", err
	}

	e := calc.New()
	var report strings.Builder
	report.WriteString(header)
	for _, st := range s.Lines(e) {
		fmt.Fprintf(&report, "\n%4d  %s", st.Line, st.Display)
	}

	if err := sw.renderer.Render(report.String()); err != nil {
		return e.Display(), fmt.Errorf("failed to render: %w", err)
	}
	return e.Display(), nil
}

// Watch replays the script once, then again after every change, until ctx
// is done or the file watcher stops
func (sw *ScriptWatcher) Watch(ctx context.Context) error {
	if err := sw.watcher.Add(sw.path); err != nil {
		return fmt.Errorf("error setting up script watch: %w", err)
	}
	sw.logger.Info("watching script", "path", sw.path, "debounce", sw.debounceDelay)

	sw.replay()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			sw.logger.Debug("watch cancelled", "path", sw.path)
			return nil

		case event, ok := <-sw.watcher.Events():
			if !ok {
				return nil
			}
			sw.logger.Debug("script event", "op", event.Op.String(), "name", event.Name)

			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				sw.logger.Warn("script went away, waiting for it to return", "path", sw.path)
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			// Debounce so an editor's burst of writes replays once
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(sw.debounceDelay, sw.replay)

		case err, ok := <-sw.watcher.Errors():
			if !ok {
				return nil
			}
			sw.logger.Error("watch error", "error", err)
		}
	}
}

// Close stops watching the script
func (sw *ScriptWatcher) Close() error {
	return sw.watcher.Close()
}

// replay runs Replay and logs the outcome
func (sw *ScriptWatcher) replay() {
	final, err := sw.Replay()
	if err != nil {
		sw.logger.Warn("replay failed", "path", sw.path, "error", err)
		return
	}
	sw.logger.Debug("replayed script", "path", sw.path, "display", final)
}
