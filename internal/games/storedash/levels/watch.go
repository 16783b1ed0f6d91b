package levels

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is the minimum gap between two reported changes to one file.
const Debounce = 100 * time.Millisecond

// Watcher reports changes to level files. Editors often write a file in
// several steps, so bursts of events for one path are collapsed.
//
// The watcher watches directories rather than files: a save that replaces
// the file (rename over) would otherwise drop the watch.
type Watcher struct {
	watcher *fsnotify.Watcher
	only    map[string]bool // when non-empty, the paths to report
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches level files in dirs.
func NewWatcher(dirs ...string) (*Watcher, error) {
	return newWatcher(dirs, nil)
}

// WatchFile watches a single level file.
func WatchFile(file string) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	return newWatcher([]string{filepath.Dir(abs)}, map[string]bool{abs: true})
}

func newWatcher(dirs []string, only map[string]bool) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher: fw,
		only:    only,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Events and Errors are closed once the watch
// loop has exited.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.wants(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < Debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) wants(name string) bool {
	if !IsLevelFile(name) {
		return false
	}
	if len(w.only) == 0 {
		return true
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return w.only[abs]
}
