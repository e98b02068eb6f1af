package library

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const watchDebounce = 2 * time.Second

// Watcher monitors the library source directories and requests a rescan
// when files change. Events are debounced so a bulk copy triggers a single
// rescan once the filesystem settles.
type Watcher struct {
	fsw    *fsnotify.Watcher
	log    zerolog.Logger
	rescan chan struct{}
	done   chan struct{}
}

// Watch starts watching the given source trees. The returned watcher's
// Rescan channel receives a value after changes have settled.
func Watch(sources []string, log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:    fsw,
		log:    log,
		rescan: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	for _, src := range sources {
		_ = filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				if werr := fsw.Add(path); werr != nil {
					log.Warn().Err(werr).Str("path", path).Msg("watch failed")
				}
			}
			return nil
		})
	}

	go w.loop()
	return w, nil
}

// Rescan signals that the watched sources changed.
func (w *Watcher) Rescan() <-chan struct{} {
	return w.rescan
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// New directories must be added to the watch set.
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.fsw.Add(ev.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watcher error")
		case <-fire:
			fire = nil
			select {
			case w.rescan <- struct{}{}:
			default:
			}
		}
	}
}
