package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce drops repeated events for the same file. Editors usually write a file in several steps.
const debounce = 100 * time.Millisecond

// Watcher reloads a configuration file whenever it changes on disk.
// Every successful reload is delivered on Changes; decode or validation failures are delivered on Errors.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	options []LoadOption

	Changes chan Config
	Errors  chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the directory holding path. The directory is watched instead of the file so that
// editors replacing the file through a rename keep being observed.
//
// Parameters:
//   - path: the configuration file
//   - options: the load options used for every reload
//
// Returns:
//   - *Watcher: the running watcher
//   - error: an error if the watcher cannot be created
func NewWatcher(path string, options ...LoadOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		options: options,
		Changes: make(chan Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes Changes and Errors. It is safe to call more than once.
//
// Returns:
//   - error: an error from the underlying file watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < debounce {
				continue
			}
			last = now

			cfg, err := Load(w.path, w.options...)
			if err != nil {
				w.sendError(err)
				continue
			}
			w.sendChange(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-w.closeCh:
			return
		}
	}
}

// sendChange replaces an undelivered configuration with the newer one.
func (w *Watcher) sendChange(cfg Config) {
	for {
		select {
		case w.Changes <- cfg:
			return
		case <-w.closeCh:
			return
		default:
		}
		select {
		case <-w.Changes:
		default:
		}
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
