package preset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/cwbudde/algo-ott/dsp/ott"
)

// Watch reloads the preset at path into store whenever the file is written
// or replaced, until ctx is done. The containing directory is watched so
// that editors replacing the file by rename are picked up. Parse errors are
// logged and leave the store unchanged.
func Watch(ctx context.Context, path string, store *ott.AtomicParameters, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("preset: watch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("preset: watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("preset: watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching preset", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p, err := Load(abs)
			if err != nil {
				logger.Warn("preset reload failed", "path", abs, "err", err)
				continue
			}
			p.Apply(store)
			logger.Info("preset reloaded", "path", abs, "params", len(p))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("preset watcher error", "err", err)
		}
	}
}
