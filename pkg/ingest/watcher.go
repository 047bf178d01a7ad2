package ingest

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nikhilkoche/Home-Assignment/pkg/logger"
)

// debounceDelay lets a PDF finish writing before it is indexed. Editors
// and uploads emit several WRITE events for one file.
const debounceDelay = 500 * time.Millisecond

// Watcher re-indexes PDF files dropped into a directory.
type Watcher struct {
	pipeline *Pipeline
	watcher  *fsnotify.Watcher
	log      *logger.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewWatcher(pipeline *Pipeline) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		pipeline: pipeline,
		watcher:  fsw,
		log:      logger.Get().With("component", "watcher"),
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Watch monitors dir until ctx is cancelled. It blocks, so run it in
// its own goroutine.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.log.InfoWith("Watching documents directory", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}
			w.schedule(ctx, event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.ErrorWithErr("File watcher error", err)
		}
	}
}

// schedule (re)arms the debounce timer for path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		if _, err := w.pipeline.IngestFile(ctx, path); err != nil {
			w.log.ErrorWithErr("Failed to ingest watched file", err, "path", path)
		}
	})
}
