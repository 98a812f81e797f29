// Package watch observes a drop directory and ingests files that
// appear in it. It is a driving adapter: file system events drive the
// Ingestor port the same way CLI commands do.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docstash/docstash/internal/core/domain"
	"github.com/docstash/docstash/internal/core/ports/driving"
	"github.com/docstash/docstash/internal/extractors"
	"github.com/docstash/docstash/internal/logger"
)

// settleDelay is how long a file must stay quiet after its last write
// event before it is read. Copies into the drop directory arrive as a
// create followed by a burst of writes.
const settleDelay = 200 * time.Millisecond

// Watcher ingests files appearing in a directory.
type Watcher struct {
	ingestor driving.Ingestor
	dir      string

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for dir.
func New(ingestor driving.Ingestor, dir string) *Watcher {
	return &Watcher{
		ingestor: ingestor,
		dir:      dir,
		pending:  make(map[string]*time.Timer),
	}
}

// Run watches the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("Watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.schedule(ctx, event.Name)
			}

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// schedule (re)arms the settle timer for a path. The file is ingested
// once no further events arrive within settleDelay.
func (w *Watcher) schedule(ctx context.Context, path string) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return // editors and copy tools drop temp files here
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(settleDelay)
		return
	}
	w.pending[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.ingestFile(ctx, path)
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) ingestFile(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Reading %s failed: %v", path, err)
		return
	}

	artifact := &domain.Artifact{
		FileName: filepath.Base(path),
		MIMEType: extractors.DetectMIMEType(path),
		Content:  content,
	}

	result, err := w.ingestor.Ingest(ctx, artifact)
	if err != nil {
		logger.Warn("Ingesting %s failed: %v", path, err)
		return
	}
	logger.Info("Ingested %s as %s", path, result.ID)
}
