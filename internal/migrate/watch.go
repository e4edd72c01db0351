package migrate

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

// defaultDebounce is the quiet period after the last event before changed
// files are re-migrated.
const defaultDebounce = 500 * time.Millisecond

// Watch migrates dir once, then re-migrates files as they change until the
// context is cancelled. Events are debounced and files whose content hash
// has not moved are skipped.
func (s *Service) Watch(ctx context.Context, dir string, opts Options) error {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer watcher.Close()

	if err := addDirectories(watcher, dir, opts.Recursive); err != nil {
		return err
	}

	if _, err := s.MigrateDir(ctx, dir, opts); err != nil {
		return err
	}
	// Seed the hash cache so the first change detection has a baseline.
	if files, err := s.discover(dir, opts); err == nil {
		for _, f := range files {
			s.changed(f)
		}
	}

	s.logger.Info("watching for changes",
		zap.String("dir", dir),
		zap.Duration("debounce", debounce))

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 && opts.Recursive {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addDirectories(watcher, event.Name, true); err != nil {
						s.logger.Warn("cannot watch new directory",
							zap.String("dir", event.Name), zap.Error(err))
					}
					continue
				}
			}
			if !relevantEvent(event) {
				continue
			}
			pending[event.Name] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			batch := pending
			pending = make(map[string]bool)
			s.migrateChanged(ctx, batch, opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

// migrateChanged re-migrates the files in the batch whose content actually
// moved since the last run.
func (s *Service) migrateChanged(ctx context.Context, batch map[string]bool, opts Options) {
	for path := range batch {
		if !s.changed(path) {
			s.logger.Debug("content unchanged", zap.String("file", path))
			continue
		}
		if _, err := s.MigrateFile(ctx, path, opts); err != nil {
			s.logger.Warn("re-migration failed", zap.String("file", path), zap.Error(err))
		}
	}
}

// relevantEvent keeps write/create/rename events for supported source
// files.
func relevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	_, err := lang.FromPath(event.Name)
	return err == nil
}

// addDirectories registers dir, and its subdirectories when recursive, with
// the watcher. Unreadable subdirectories are skipped.
func addDirectories(watcher *fsnotify.Watcher, dir string, recursive bool) error {
	if !recursive {
		return errors.Wrapf(watcher.Add(dir), "watching %s", dir)
	}
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		// Unwatchable subdirectories are skipped rather than failing the run.
		_ = watcher.Add(path)
		return nil
	})
}
