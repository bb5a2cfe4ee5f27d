// Package watcher reports changes to lineup files.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-lineup-timeline/internal/data/scanner"
	"github.com/penwyp/go-lineup-timeline/internal/util"
)

// FileEvent is a change to a single lineup file.
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher watches directories recursively and single files through
// their parent directory.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	dirs    map[string]bool
	events  chan FileEvent
	done    chan struct{}
}

func NewFileWatcher(paths []string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		events:  make(chan FileEvent, 100),
		done:    make(chan struct{}),
	}

	for _, path := range paths {
		if err := fw.addPath(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		fw.files[filepath.Clean(path)] = true
		// Editors replace files on save, so the parent directory is watched.
		return fw.watcher.Add(filepath.Dir(path))
	}

	// Recursively add directories
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			fw.dirs[filepath.Clean(p)] = true
			return fw.watcher.Add(p)
		}
		return nil
	})
}

// relevant reports whether an event on path concerns a watched lineup.
func (fw *FileWatcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if fw.files[path] {
		return true
	}
	return fw.dirs[filepath.Dir(path)] && scanner.IsLineupFile(path)
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.addPath(event.Name); err != nil {
						util.LogWarn("File monitoring: cannot watch new directory " + event.Name + ": " + err.Error())
					}
					continue
				}
			}

			if !fw.relevant(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}

			select {
			case fw.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	select {
	case <-fw.done:
		return nil
	default:
		close(fw.done)
	}
	return fw.watcher.Close()
}

// Debounce groups events arriving within wait of each other and emits the
// distinct changed paths, sorted. The output closes when ctx ends or events
// closes.
func Debounce(ctx context.Context, events <-chan FileEvent, wait time.Duration) <-chan []string {
	out := make(chan []string)

	go func() {
		defer close(out)

		pending := make(map[string]bool)
		timer := time.NewTimer(wait)
		if !timer.Stop() {
			<-timer.C
		}

		flush := func() bool {
			if len(pending) == 0 {
				return true
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]bool)

			select {
			case out <- paths:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					timer.Stop()
					flush()
					return
				}
				pending[event.Path] = true
				timer.Reset(wait)
			case <-timer.C:
				if !flush() {
					return
				}
			}
		}
	}()

	return out
}
