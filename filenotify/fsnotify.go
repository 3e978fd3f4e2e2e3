package filenotify

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// EventWatcher is an implementation of FileWatcher using fsnotify.
// It watches the directory holding each file, so a file replaced by an
// editor's rename-on-save keeps being reported.
type EventWatcher struct {
	watcher *fsnotify.Watcher
	events  chan fsnotify.Event
	errors  chan error
	done    chan struct{}

	mu sync.Mutex
	// files holds the cleaned paths being watched
	files map[string]bool
	// dirs counts watched files per parent directory
	dirs map[string]int

	closeOnce sync.Once
	stopped   chan struct{}
}

// NewEventWatcher returns a new EventWatcher
func NewEventWatcher() (*EventWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &EventWatcher{
		watcher: watcher,
		events:  make(chan fsnotify.Event),
		errors:  make(chan error),
		done:    make(chan struct{}),
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		stopped: make(chan struct{}),
	}

	go w.watch()

	return w, nil
}

// Events returns the event channel
func (w *EventWatcher) Events() <-chan fsnotify.Event {
	return w.events
}

// Errors returns the error channel
func (w *EventWatcher) Errors() <-chan error {
	return w.errors
}

// Add starts watching the file at name
func (w *EventWatcher) Add(name string) error {
	name = filepath.Clean(name)
	dir := filepath.Dir(name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[name] {
		return nil
	}
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[name] = true
	return nil
}

// Remove stops watching the file at name
func (w *EventWatcher) Remove(name string) error {
	name = filepath.Clean(name)
	dir := filepath.Dir(name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[name] {
		return errors.New("file is not being watched")
	}
	delete(w.files, name)

	w.dirs[dir]--
	if w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	return w.watcher.Remove(dir)
}

// Close closes the watcher. It is safe to call more than once.
func (w *EventWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		// Wait for the forwarder before closing its channels
		<-w.stopped
		close(w.events)
		close(w.errors)
	})
	return err
}

func (w *EventWatcher) watching(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(name)]
}

// watch forwards events for watched files
func (w *EventWatcher) watch() {
	defer close(w.stopped)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.watching(event.Name) {
				continue
			}
			select {
			case w.events <- event:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}
