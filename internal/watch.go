package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce coalesces the bursts of write events editors produce for one save.
const debounce = 100 * time.Millisecond

// Watcher re-lexes files as they change on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	matches  func(path string) bool
	handle   func(path string)
	watching bool
	done     chan struct{}
}

// NewWatcher creates a watcher that calls handle for every changed file
// accepted by matches.
func NewWatcher(logger *zap.Logger, matches func(string) bool, handle func(string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher: fw,
		logger:  logger,
		matches: matches,
		handle:  handle,
		done:    make(chan struct{}),
	}, nil
}

// Add registers a file, or a directory tree recursively, with the watcher.
func (w *Watcher) Add(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(root)
	}
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// Start runs the event loop until Stop is called.
func (w *Watcher) Start() error {
	if w.watching {
		return fmt.Errorf("already watching")
	}
	w.watching = true
	go w.loop()
	return nil
}

func (w *Watcher) Stop() error {
	if !w.watching {
		return nil
	}
	w.watching = false
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if !w.matches(event.Name) {
		return
	}
	time.Sleep(debounce)
	w.handle(event.Name)
}
