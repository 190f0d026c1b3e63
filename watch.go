package dncheck

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchHandler receives the fresh verdict for a re-checked file.
type WatchHandler func(result FileResult)

// Watcher re-checks proof files as they change on disk.
type Watcher struct {
	engine   *Engine
	logger   *zap.Logger
	notify   *fsnotify.Watcher
	handler  WatchHandler
	debounce time.Duration
	started  bool
	done     chan struct{}
}

// NewWatcher wires a Watcher around engine. handler runs on the watch
// goroutine after every re-check.
func NewWatcher(engine *Engine, logger *zap.Logger, handler WatchHandler) (*Watcher, error) {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	return &Watcher{
		engine:   engine,
		logger:   logger,
		notify:   notify,
		handler:  handler,
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}, nil
}

// Watch registers the given roots and starts the watch loop. A
// directory root is walked so every subdirectory is covered; a file
// root watches its parent directory. Watch returns immediately; Close
// stops the loop.
func (w *Watcher) Watch(roots ...string) error {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("accessing %s: %w", root, err)
		}

		if !info.IsDir() {
			if err := w.notify.Add(filepath.Dir(root)); err != nil {
				return fmt.Errorf("adding %s to watcher: %w", root, err)
			}
			continue
		}

		err = filepath.Walk(root, func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fileInfo.IsDir() {
				return w.notify.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("adding %s to watcher: %w", root, err)
		}
	}

	w.started = true
	go w.loop()
	return nil
}

// Close stops the watch loop and waits for it to drain.
func (w *Watcher) Close() error {
	err := w.notify.Close()
	if w.started {
		<-w.done
	}
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.notify.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.notify.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !w.engine.IsProofFile(event.Name) {
		return
	}

	// editors fire bursts of writes; coalesce them into one re-check
	time.Sleep(w.debounce)

	verdict, err := w.engine.CheckFile(event.Name)
	if err != nil {
		w.logger.Error("re-checking file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	w.handler(FileResult{Path: event.Name, Verdict: verdict})
}
