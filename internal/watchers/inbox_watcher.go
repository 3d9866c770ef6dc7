package watchers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"serverlog-analyser/internal/ingestors"
	"serverlog-analyser/internal/shared/loggers"

	"github.com/fsnotify/fsnotify"
)

const defaultSettleDelay = 500 * time.Millisecond

// InboxWatcher submits every log file dropped into a directory for analysis.
//
// A file is picked up once no create or write event was seen for it during the
// settle delay, so copies that are still in progress are not read half-written.
// Hidden files are ignored: writers can stage under ".name" and rename into place.
// The inbox copy is removed once the upload has been stored.
type InboxWatcher struct {
	dir         string
	ingestion   ingestors.UploadIngestionService
	fsw         *fsnotify.Watcher
	settleDelay time.Duration
	logger      loggers.Logger

	pending map[string]time.Time

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewInboxWatcher(dir string, ingestion ingestors.UploadIngestionService, logger loggers.Logger) (*InboxWatcher, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve inbox dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create inbox dir: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	if err := fsw.Add(absDir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch inbox dir: %w", err)
	}

	return &InboxWatcher{
		dir:         absDir,
		ingestion:   ingestion,
		fsw:         fsw,
		settleDelay: defaultSettleDelay,
		logger:      logger,
		pending:     make(map[string]time.Time),
		stopCh:      make(chan struct{}),
	}, nil
}

// Start sweeps files already in the inbox, then follows directory events until ctx ends or Stop.
func (w *InboxWatcher) Start(ctx context.Context) {
	ctx = w.logger.With().Str(loggers.FieldInboxPath, w.dir).Logger().WithContext(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.fsw.Close()

		w.sweep(ctx)
		w.run(ctx)
	}()
}

// Stop ends the watch loop and waits for an ingestion in progress.
func (w *InboxWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
}

func (w *InboxWatcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.settleDelay / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 && w.accepts(event.Name) {
				w.pending[event.Name] = time.Now()
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				delete(w.pending, event.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			loggers.Ctx(ctx).Warn().Err(err).Msg("inbox watcher error")
		case now := <-ticker.C:
			w.flushSettled(ctx, now)
		}
	}
}

func (w *InboxWatcher) sweep(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Msg("failed to list inbox")
		return
	}
	for _, entry := range entries {
		path := filepath.Join(w.dir, entry.Name())
		if entry.Type().IsRegular() && w.accepts(path) {
			w.ingest(ctx, path)
		}
	}
}

func (w *InboxWatcher) flushSettled(ctx context.Context, now time.Time) {
	for path, seen := range w.pending {
		if now.Sub(seen) < w.settleDelay {
			continue
		}
		delete(w.pending, path)

		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		w.ingest(ctx, path)
	}
}

func (w *InboxWatcher) accepts(path string) bool {
	name := filepath.Base(path)
	return !strings.HasPrefix(name, ".") && !strings.HasSuffix(name, ".tmp")
}

func (w *InboxWatcher) ingest(ctx context.Context, path string) {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldFilename, filepath.Base(path)).Logger()

	file, err := os.Open(path)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to open inbox file")
		metricInboxFilesTotal.WithLabelValues(resultFailed).Inc()
		return
	}
	result, err := w.ingestion.IngestUpload(logger.WithContext(ctx), ingestors.SourceInbox, filepath.Base(path), file)
	_ = file.Close()
	if err != nil {
		logger.Error().Err(err).Msg("failed to ingest inbox file, leaving it in place")
		metricInboxFilesTotal.WithLabelValues(resultFailed).Inc()
		return
	}

	if err := os.Remove(path); err != nil {
		logger.Warn().Err(err).Msg("failed to remove ingested inbox file")
	}
	logger.Info().Str(loggers.FieldJobID, result.JobID).Msg("inbox file submitted")
	metricInboxFilesTotal.WithLabelValues(resultIngested).Inc()
}
