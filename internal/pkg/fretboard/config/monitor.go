package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/kitara-midi/kitara/internal/pkg/logger"
)

var log = logger.GetLogger()

// WatchMapping reports on-disk changes of given mapping file.
// Running mapping is never reloaded, the change is only announced.
// Returned channel is closed when context is done or watching is not possible.
func WatchMapping(ctx context.Context, path string) <-chan string {
	var change = make(chan string)

	abs, err := filepath.Abs(path)
	if err != nil {
		close(change)
		return change
	}

	go func() {
		defer close(change)
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Info(fmt.Sprintf("cannot watch mapping file: %v", err), logger.Debug)
			return
		}

		go func() {
			<-ctx.Done()
			err := watcher.Close()
			if err != nil {
				log.Info(fmt.Sprintf("closing watcher failed: %v", err), logger.Debug)
			}
		}()

		go func() {
			for err := range watcher.Errors {
				log.Info(fmt.Sprintf("watcher error: %v", err), logger.Debug)
			}
		}()

		// editors tend to replace files, watching the directory covers that
		err = watcher.Add(filepath.Dir(abs))
		if err != nil {
			log.Info(fmt.Sprintf("cannot watch mapping directory: %v", err), logger.Debug)
			return
		}

		for event := range watcher.Events {
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			select {
			case change <- event.Name:
			case <-ctx.Done():
				return
			}
		}
	}()

	return change
}
