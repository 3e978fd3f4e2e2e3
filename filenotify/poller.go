package filenotify

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// PollingWatcher is an implementation of FileWatcher based on polling
type PollingWatcher struct {
	// interval is the time between polling for file changes
	interval time.Duration
	// files is the list of files being watched
	files map[string]fileInfo
	// events is the channel where events are reported
	events chan fsnotify.Event
	// errors is the channel where errors are reported
	errors chan error
	// stop is closed to stop the polling
	stop chan struct{}
	// mutex guards access to files map
	mutex sync.Mutex
	// done is closed when polling has stopped
	done      chan struct{}
	closeOnce sync.Once
}

type fileInfo struct {
	ModTime time.Time
	Size    int64
	// Missing is set while the file does not exist
	Missing bool
}

// NewPollingWatcher returns a new polling watcher with the default interval of 200ms
func NewPollingWatcher() *PollingWatcher {
	return NewPollingWatcherWithInterval(200 * time.Millisecond)
}

// NewPollingWatcherWithInterval returns a new polling watcher with the specified interval
func NewPollingWatcherWithInterval(interval time.Duration) *PollingWatcher {
	watcher := &PollingWatcher{
		interval: interval,
		files:    make(map[string]fileInfo),
		events:   make(chan fsnotify.Event),
		errors:   make(chan error),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go watcher.poll()
	return watcher
}

// Add adds a file to the watch list
func (w *PollingWatcher) Add(name string) error {
	name = filepath.Clean(name)

	f, err := os.Stat(name)
	if err != nil {
		return err
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.files[name] = fileInfo{
		ModTime: f.ModTime(),
		Size:    f.Size(),
	}
	return nil
}

// Remove removes a file from the watch list
func (w *PollingWatcher) Remove(name string) error {
	name = filepath.Clean(name)

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, exists := w.files[name]; !exists {
		return errors.New("file is not being watched")
	}

	delete(w.files, name)
	return nil
}

// Events returns the event channel
func (w *PollingWatcher) Events() <-chan fsnotify.Event {
	return w.events
}

// Errors returns the error channel
func (w *PollingWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the polling watcher. It is safe to call more than once.
func (w *PollingWatcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.stop)
		<-w.done
		close(w.events)
		close(w.errors)
	})
	return nil
}

// poll checks for changes to the watched files at the specified interval
func (w *PollingWatcher) poll() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !w.checkFiles() {
				return
			}
		case <-w.stop:
			return
		}
	}
}

// checkFiles compares every watched file with its last known state.
// It returns false if the watcher was closed while reporting.
func (w *PollingWatcher) checkFiles() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for name, old := range w.files {
		stat, err := os.Stat(name)
		if err != nil {
			if !os.IsNotExist(err) {
				if !w.send(nil, err) {
					return false
				}
				continue
			}
			// Report a removal once and keep waiting for the file to come back
			if !old.Missing {
				w.files[name] = fileInfo{Missing: true}
				if !w.send(&fsnotify.Event{Name: name, Op: fsnotify.Remove}, nil) {
					return false
				}
			}
			continue
		}

		current := fileInfo{
			ModTime: stat.ModTime(),
			Size:    stat.Size(),
		}

		var op fsnotify.Op
		switch {
		case old.Missing:
			op = fsnotify.Create
		case current.ModTime != old.ModTime || current.Size != old.Size:
			op = fsnotify.Write
		default:
			continue
		}

		w.files[name] = current
		if !w.send(&fsnotify.Event{Name: name, Op: op}, nil) {
			return false
		}
	}
	return true
}

// send reports an event or an error unless the watcher is stopping
func (w *PollingWatcher) send(event *fsnotify.Event, err error) bool {
	if event != nil {
		select {
		case w.events <- *event:
			return true
		case <-w.stop:
			return false
		}
	}
	select {
	case w.errors <- err:
		return true
	case <-w.stop:
		return false
	}
}
