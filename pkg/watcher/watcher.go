// Package watcher re-runs a conversion whenever its input files change,
// with debouncing so editors that write in bursts trigger one rebuild.
package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Rebuild is called with the changed file after the debounce window closes.
// A returned error is reported and watching continues.
type Rebuild func(path string) error

// FileWatcher watches input files and triggers a rebuild callback
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu        sync.Mutex
	callbacks map[string]Rebuild
	timers    map[string]*time.Timer
}

// New creates a file watcher with the given debounce window
func New(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &FileWatcher{
		watcher:   watcher,
		debounce:  debounce,
		callbacks: make(map[string]Rebuild),
		timers:    make(map[string]*time.Timer),
	}, nil
}

// Watch registers files to watch; callback runs after each debounced change
func (fw *FileWatcher) Watch(files []string, callback Rebuild) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if err := fw.watcher.Add(absPath); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}
		fw.callbacks[absPath] = callback
	}
	return nil
}

// Start begins dispatching change events in a background goroutine
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
					fw.schedule(event.Name)
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("watcher error: %v", err)
			}
		}
	}()
}

// schedule arms (or re-arms) the debounce timer for one file
func (fw *FileWatcher) schedule(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.callbacks[path]
	if !exists {
		return
	}
	if timer, ok := fw.timers[path]; ok {
		timer.Stop()
	}
	fw.timers[path] = time.AfterFunc(fw.debounce, func() {
		if err := callback(path); err != nil {
			log.Printf("rebuild of %s failed: %v", path, err)
		}
	})
}

// Close stops the watcher and its event loop
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
