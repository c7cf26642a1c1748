package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher signals when a catalog file changes so consumers can re-run their query.
// Rapid bursts of writes collapse into one signal.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

func NewWatcher(path string, debounce time.Duration, logger *zap.Logger) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{path: filepath.Clean(path), debounce: debounce, logger: logger}
}

// Watch starts watching and returns the change channel. The channel is closed once ctx
// is done. The parent directory is watched because editors often replace files by rename.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	out := make(chan struct{}, 1)
	go w.run(ctx, fw, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, out chan<- struct{}) {
	defer close(out)
	defer func() {
		if err := fw.Close(); err != nil {
			w.logger.Warn("close catalog watcher", zap.Error(err))
		}
	}()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			w.logger.Debug("catalog file event", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			pending = time.After(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}
