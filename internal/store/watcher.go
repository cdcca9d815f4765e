package store

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// StateWatcher watches a storage file and calls back when another writer
// changes it.
type StateWatcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	logger   *slog.Logger
	onChange func()
	done     chan struct{}
	mu       sync.Mutex
	running  bool
	closed   bool
}

// NewStateWatcher creates a watcher for filePath. onChange runs on the
// watcher goroutine.
func NewStateWatcher(filePath string, onChange func(), logger *slog.Logger) (*StateWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StateWatcher{
		watcher:  watcher,
		filePath: filePath,
		logger:   logger,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. Calling Start on a running or stopped watcher is a no-op.
func (sw *StateWatcher) Start() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.running || sw.closed {
		return nil
	}

	// Watch the directory: atomic writes replace the file via rename.
	dir := filepath.Dir(sw.filePath)
	if err := sw.watcher.Add(dir); err != nil {
		return err
	}

	sw.running = true
	go sw.watch()
	sw.logger.Debug("state watcher started", "path", sw.filePath)
	return nil
}

func (sw *StateWatcher) watch() {
	filename := filepath.Base(sw.filePath)

	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				sw.logger.Debug("state file changed", "file", sw.filePath, "op", event.Op.String())
				if sw.onChange != nil {
					sw.onChange()
				}
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("state watcher error", "error", err)

		case <-sw.done:
			return
		}
	}
}

// Stop stops the watcher. It is safe to call more than once.
func (sw *StateWatcher) Stop() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.closed {
		return nil
	}
	sw.closed = true

	if sw.running {
		sw.running = false
		close(sw.done)
	}
	return sw.watcher.Close()
}
