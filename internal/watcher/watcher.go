package watcher

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/tracewell/tracewell/internal/core/model"
	"github.com/tracewell/tracewell/internal/util"
)

// FileWatcher emits an event whenever a log file under the watched root
// changes, so watch mode can re-run the scan. Events are advisory: a missed
// event only delays the next rescan.
type FileWatcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
	events     chan model.FileEvent
}

// NewFileWatcher watches root (a file or a directory tree) for changes to
// files matching the extension allow-list.
func NewFileWatcher(root string, extensions []string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher:    watcher,
		extensions: extensions,
		events:     make(chan model.FileEvent, 100),
	}

	if err := fw.addPath(root); err != nil {
		watcher.Close()
		return nil, err
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) addPath(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fw.watcher.Add(filepath.Dir(root))
	}
	// Watch every directory below the root; fsnotify is not recursive.
	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return fw.watcher.Add(p)
		}
		return nil
	})
}

func (fw *FileWatcher) processEvents() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if fw.matchExtension(event.Name) {
				select {
				case fw.events <- model.FileEvent{Path: event.Name, Operation: event.Op.String()}:
				default:
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) matchExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range fw.extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// Events returns the change notification channel.
func (fw *FileWatcher) Events() <-chan model.FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
