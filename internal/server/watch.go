package server

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// watcher calls onChange once a burst of writes to a file has settled.
type watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	logger   *slog.Logger
	onChange func()

	done chan struct{}
	wg   sync.WaitGroup

	mu    sync.Mutex
	timer *time.Timer
}

// newWatcher watches the directory holding path, so editors that replace the
// file by rename are still seen.
func newWatcher(path string, logger *slog.Logger, onChange func()) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	addErr := fsw.Add(filepath.Dir(path))
	if addErr != nil {
		fsw.Close()

		return nil, fmt.Errorf("watch directory: %w", addErr)
	}

	w := &watcher{
		fsw:      fsw,
		path:     filepath.Clean(path),
		logger:   logger,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)

	go w.loop()

	return w, nil
}

func (w *watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.logger.Debug("dataset changed", "path", event.Name, "op", event.Op.String())
			w.schedule()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (w *watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(debounceDelay, w.onChange)
}

// Close stops watching and cancels a pending reload.
func (w *watcher) Close() error {
	close(w.done)

	err := w.fsw.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	if err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}

	return nil
}
