package session

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of events a single save produces.
const debounceDelay = 250 * time.Millisecond

// Watcher reports when a watched file is rewritten on disk, so the viewer
// can offer to reload it. The file's directory is watched rather than the
// file itself: editors and exporters typically replace files by rename,
// which would otherwise silently drop the watch.
type Watcher struct {
	fw      *fsnotify.Watcher
	changes chan string
}

// Watch starts watching the file at path.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		fw:      fw,
		changes: make(chan string, 1),
	}
	go w.loop(abs, filepath.Base(abs))
	return w, nil
}

// Changes delivers the watched path once per detected rewrite, after the
// event burst has settled. The channel is closed when the watcher is.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) loop(path, base string) {
	defer close(w.changes)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				fire = timer.C
			} else {
				timer.Reset(debounceDelay)
			}
		case <-fire:
			timer = nil
			fire = nil
			select {
			case w.changes <- path:
			default:
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}
