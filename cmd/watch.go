package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/MobRulesGames/fsnotify"
	"github.com/MobRulesGames/isomap/logging"
)

// watchMap calls reload each time the file at path is written or replaced,
// until stop is closed. The directory is watched rather than the file so that
// editors which save by renaming are still seen.
func watchMap(path string, stop <-chan struct{}, reload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("couldn't start watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	dir := filepath.Dir(target)
	if err := watcher.Watch(dir); err != nil {
		return fmt.Errorf("couldn't watch %q: %w", dir, err)
	}
	logging.Info("watching map file", "path", target)

	for {
		select {
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.IsModify() || ev.IsCreate() || ev.IsRename() {
				logging.Info("map file changed", "path", target)
				reload()
			}
		case err := <-watcher.Error:
			logging.Warn("watch error", "err", err)
		case <-stop:
			return nil
		}
	}
}
