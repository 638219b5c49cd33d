package importer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch runs Import once, then again each time .csv files under dir are
// created or written. Subdirectories are watched too, including ones created
// later, with the same hidden-directory rule as Import. Bursts of events
// within debounce trigger a single run.
// It returns when ctx is cancelled. onRun, if non-nil, receives each run's stats.
func (imp *Importer) Watch(ctx context.Context, dir string, debounce time.Duration, onRun func(*Stats)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, dir); err != nil {
		return err
	}
	imp.log.Info("watching for exports", "dir", dir, "debounce", debounce)

	run := func() {
		stats, err := imp.Import(ctx, dir)
		if err != nil {
			imp.log.Error("import run failed", "error", err)
		}
		if onRun != nil && stats != nil {
			onRun(stats)
		}
	}
	run()

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if event.Has(fsnotify.Create) && isWatchableDir(event.Name) {
				if err := watchTree(watcher, event.Name); err != nil {
					imp.log.Warn("watching new directory failed", "dir", event.Name, "error", err)
				}
				// Files may have landed before the directory was added.
				timer.Reset(debounce)
				continue
			}
			if !isExport(event.Name) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			imp.log.Error("watcher error", "error", err)
		case <-timer.C:
			run()
		}
	}
}

// watchTree adds root and its non-hidden subdirectories to w.
func watchTree(w *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skipDir(root, path, d) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}
	return nil
}

func isWatchableDir(path string) bool {
	if isHidden(path) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
