package engines

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is how long a file must stay quiet before it is reported.
const Debounce = 100 * time.Millisecond

// Watcher reports edits to catalog, config and script files. Paths may be
// directories, watched whole, or single files, for which the containing
// directory is watched and only that file and its sibling scripts are
// reported.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once

	dirs  map[string]bool
	files map[string]bool
}

func NewWatcher(paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		dirs:    map[string]bool{},
		files:   map[string]bool{},
	}

	added := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		dir := abs
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			watcher.dirs[abs] = true
		} else {
			dir = filepath.Dir(abs)
			watcher.files[abs] = true
		}
		if added[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
		added[dir] = true
	}

	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	// trailing edge: a file is reported once it has been quiet for Debounce
	fire := make(chan firing)
	d := newDebouncer(Debounce)
	defer d.stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !w.wants(event.Name) {
				continue
			}
			d.touch(event.Name, fire, w.closeCh)
		case f := <-fire:
			if !d.settle(f) {
				continue
			}
			select {
			case w.Events <- f.name:
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

type firing struct {
	name string
	seq  uint64
}

type pendingFire struct {
	seq   uint64
	timer *time.Timer
}

// debouncer tracks one timer per file. Every touch supersedes the
// previous one, so a timer that fired before it was stopped is ignored.
type debouncer struct {
	delay   time.Duration
	seq     uint64
	pending map[string]pendingFire
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, pending: map[string]pendingFire{}}
}

// touch (re)starts the quiet period for name. When it ends, a firing is
// sent on fire unless done is closed first.
func (d *debouncer) touch(name string, fire chan<- firing, done <-chan struct{}) {
	if p, ok := d.pending[name]; ok {
		p.timer.Stop()
	}
	d.seq++
	f := firing{name: name, seq: d.seq}
	d.pending[name] = pendingFire{seq: f.seq, timer: time.AfterFunc(d.delay, func() {
		select {
		case fire <- f:
		case <-done:
		}
	})}
}

// settle reports whether f is the latest firing for its file, and if so
// forgets the file.
func (d *debouncer) settle(f firing) bool {
	p, ok := d.pending[f.name]
	if !ok || p.seq != f.seq {
		return false
	}
	delete(d.pending, f.name)
	return true
}

func (d *debouncer) stop() {
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

func (w *Watcher) wants(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if w.files[abs] {
		return true
	}
	if isScriptFile(abs) {
		return true
	}
	return w.dirs[filepath.Dir(abs)] && isSpecFile(abs)
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
