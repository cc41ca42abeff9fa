package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/shamanec/GADS-emulator-manager/logger"
)

// WatchSettingsFile calls onChange whenever the settings file of store is
// changed by someone other than the store, until ctx is done.
// The folder is watched instead of the file so editors that replace it by rename are noticed.
func WatchSettingsFile(ctx context.Context, store *FileStore, log *logger.CustomLogger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create settings watcher: %w", err)
	}

	dir := filepath.Dir(store.SettingsPath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("could not watch `%s`: %w", dir, err)
	}

	target := filepath.Clean(store.SettingsPath())
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				data, err := os.ReadFile(target)
				if err != nil || store.writtenByStore(data) {
					continue
				}
				log.LogInfo("settings_watcher", fmt.Sprintf("Settings file `%s` changed externally, reloading", target))
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.LogWarn("settings_watcher", fmt.Sprintf("Settings watcher error - %s", err))
			}
		}
	}()
	return nil
}
