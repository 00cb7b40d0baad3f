package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	onChange func(*Config)
	onError  func(error)

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Watch starts watching path. onChange receives every successfully reloaded
// config with the command-line overrides applied again; onError receives
// parse and watcher errors and may be nil. Both run on the watcher
// goroutine.
//
// The parent directory is watched rather than the file itself so editors
// that save by renaming a temp file over the original are still seen.
func Watch(path string, onChange func(*Config), onError func(error)) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("config: no file to watch")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, fmt.Errorf("watching %s: %w", abs, err)
	}

	w := &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		onChange: onChange,
		onError:  onError,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			w.report(err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFile(w.path)
	if err != nil {
		w.report(err)
		return
	}
	cliFlags.Apply(cfg)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsnotify.Close()
		w.wg.Wait()
	})
	return err
}
