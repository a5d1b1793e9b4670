package tui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// StartWatcher watches the save file and sends FileChangedMsg after it settles.
// The parent directory is watched because saves are replaced by rename.
func StartWatcher(savePath string, program *tea.Program) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(savePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(savePath)
	done := make(chan struct{})

	go func() {
		var debounceTimer *time.Timer

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isSaveEvent(event, target) {
					continue
				}

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(watchDebounce, func() {
					program.Send(FileChangedMsg{})
				})

			case <-watcher.Errors:
				// Ignore watcher errors silently

			case <-done:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return
			}
		}
	}()

	cleanup := func() {
		close(done)
		watcher.Close()
	}

	return cleanup, nil
}

func isSaveEvent(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
