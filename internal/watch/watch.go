// Package watch reports edits to a catalog table on disk.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // File written or replaced
	ChangeRemoved                    // File deleted or renamed away
)

func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// Change is a debounced change to the watched file.
type Change struct {
	Kind ChangeKind
	File string
}

// Watcher monitors a single file for changes. It watches the parent
// directory so editors that save by rename are still seen.
type Watcher struct {
	File     string
	Debounce time.Duration
	Changes  <-chan Change // Read-only external channel

	changes chan Change
	done    chan struct{}
	running bool
	watcher *fsnotify.Watcher
}

// New creates a watcher for file. A non-positive debounce uses 100ms.
func New(file string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	ch := make(chan Change, 16)
	return &Watcher{
		File:     abs,
		Debounce: debounce,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching. If it fails the underlying watcher is already
// released and Stop need not be called.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		w.watcher.Close()
		return fmt.Errorf("watch: %s: %w", filepath.Dir(w.File), err)
	}
	w.running = true
	go w.loop()
	return nil
}

// Stop closes the watcher, waits for the loop to exit if Start succeeded
// and closes Changes. Start and Stop must not be called concurrently.
func (w *Watcher) Stop() {
	w.watcher.Close()
	if w.running {
		<-w.done
		w.running = false
	}
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.Debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.File {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.Debounce {
				w.emit()
				pending = time.Time{}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

func (w *Watcher) emit() {
	kind := ChangeModified
	if _, err := os.Stat(w.File); err != nil {
		kind = ChangeRemoved
	}
	select {
	case w.changes <- Change{Kind: kind, File: w.File}:
	default:
		// A change is already queued; the consumer will re-read the file.
	}
}
