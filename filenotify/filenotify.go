// Package filenotify watches keystroke script files for changes.
// It abstracts fsnotify, and provides a poll-based notifier for file systems
// where fsnotify does not work (network mounts, some containers).
// Both are wrapped up in a common interface so either can be used
// interchangeably.
package filenotify

import (
	"github.com/fsnotify/fsnotify"
)

// FileWatcher is an interface for implementing file notification watchers
type FileWatcher interface {
	// Events returns the channel for watching events
	Events() <-chan fsnotify.Event
	// Errors returns the channel for watching errors
	Errors() <-chan error
	// Add starts watching the named file
	Add(name string) error
	// Remove stops watching the named file
	Remove(name string) error
	// Close stops watching and closes the channels
	Close() error
}

// New returns an fs-event watcher, falling back to the poller if one cannot
// be created. forcePoll skips fsnotify entirely.
func New(forcePoll bool) FileWatcher {
	if forcePoll {
		return NewPollingWatcher()
	}
	watcher, err := NewEventWatcher()
	if err != nil {
		return NewPollingWatcher()
	}
	return watcher
}
