package filenotify

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	. "github.com/onsi/gomega"
)

// nextEvent waits for an event on w that matches op
func nextEvent(t *testing.T, w FileWatcher, op fsnotify.Op) fsnotify.Event {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-w.Events():
			if !ok {
				t.Fatal("event channel closed")
			}
			if event.Has(op) {
				return event
			}
		case err := <-w.Errors():
			t.Fatalf("watch error: %v", err)
		case <-timeout:
			t.Fatalf("no %v event within timeout", op)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestPollingWatcherReportsChanges(t *testing.T) {
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "sum.keys")
	writeFile(t, path, "1 + 2 =\n")

	w := NewPollingWatcherWithInterval(10 * time.Millisecond)
	defer w.Close()
	g.Expect(w.Add(path)).To(Succeed())

	writeFile(t, path, "1 + 2 = = =\n")
	g.Expect(nextEvent(t, w, fsnotify.Write).Name).To(Equal(path))

	g.Expect(os.Remove(path)).To(Succeed())
	g.Expect(nextEvent(t, w, fsnotify.Remove).Name).To(Equal(path))

	writeFile(t, path, "3 * 3 =\n")
	g.Expect(nextEvent(t, w, fsnotify.Create).Name).To(Equal(path))
}

func TestPollingWatcherAddRemove(t *testing.T) {
	g := NewWithT(t)

	w := NewPollingWatcher()
	defer w.Close()

	g.Expect(w.Add(filepath.Join(t.TempDir(), "missing.keys"))).NotTo(Succeed())
	g.Expect(w.Remove("never-added.keys")).NotTo(Succeed())
}

func TestPollingWatcherCloseTwice(t *testing.T) {
	g := NewWithT(t)

	w := NewPollingWatcherWithInterval(time.Millisecond)
	g.Expect(w.Close()).To(Succeed())
	g.Expect(w.Close()).To(Succeed())

	_, ok := <-w.Events()
	g.Expect(ok).To(BeFalse())
}

func TestEventWatcherFiltersOtherFiles(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "sum.keys")
	writeFile(t, path, "1 + 2 =\n")

	w, err := NewEventWatcher()
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()
	g.Expect(w.Add(path)).To(Succeed())

	// Noise next to the script must not be reported
	writeFile(t, filepath.Join(dir, "other.txt"), "noise")
	writeFile(t, path, "1 + 2 = =\n")

	event := nextEvent(t, w, fsnotify.Write)
	g.Expect(event.Name).To(Equal(path))

	g.Expect(w.Remove(path)).To(Succeed())
	g.Expect(w.Remove(path)).NotTo(Succeed())
}

func TestEventWatcherSeesRenameOnSave(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "sum.keys")
	writeFile(t, path, "1 + 2 =\n")

	w, err := NewEventWatcher()
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()
	g.Expect(w.Add(path)).To(Succeed())

	tmp := filepath.Join(dir, ".sum.keys.swp")
	writeFile(t, tmp, "4 * 4 =\n")
	g.Expect(os.Rename(tmp, path)).To(Succeed())

	g.Expect(nextEvent(t, w, fsnotify.Create).Name).To(Equal(path))
}

func TestNewForcePoll(t *testing.T) {
	g := NewWithT(t)

	w := New(true)
	defer w.Close()

	g.Expect(w).To(BeAssignableToTypeOf(&PollingWatcher{}))
}
