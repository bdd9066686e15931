// Package watch re-runs work when a fixed set of files changes on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/conduit-lang/eggmath/internal/logging"
)

// DefaultDelay is how long a burst of writes must settle before onChange runs
const DefaultDelay = 100 * time.Millisecond

// FileWatcher reports changes to specific files. It watches their parent
// directories so editors that save by rename-and-replace are still seen.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	files     map[string]struct{}
	logger    *zap.Logger
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewFileWatcher creates a watcher for paths. onChange receives the changed
// paths, sorted and in the form they were given.
func NewFileWatcher(paths []string, delay time.Duration, logger *zap.Logger, onChange func([]string)) (*FileWatcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	files := make(map[string]struct{}, len(paths))
	given := make(map[string]string, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		files[abs] = struct{}{}
		given[abs] = p
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(delay),
		files:     files,
		logger:    logging.Or(logger),
		stopChan:  make(chan struct{}),
	}
	fw.debouncer.SetCallback(func(changed []string) {
		out := make([]string, len(changed))
		for i, abs := range changed {
			out[i] = given[abs]
		}
		sort.Strings(out)
		onChange(out)
	})
	return fw, nil
}

// Start begins watching. Every parent directory must exist.
func (fw *FileWatcher) Start() error {
	for _, dir := range fw.directories() {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		fw.logger.Debug("watching directory", zap.String("dir", dir))
	}

	fw.wg.Add(1)
	go fw.watch()
	return nil
}

// Stop ends the watch. Pending changes are dropped. Safe to call twice.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		close(fw.stopChan)
		err = fw.watcher.Close()
		fw.wg.Wait()
		fw.debouncer.Stop()
	})
	return err
}

func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(event.Name)
			if _, tracked := fw.files[path]; !tracked {
				continue
			}
			fw.logger.Debug("file changed", zap.String("path", path), zap.String("op", event.Op.String()))
			fw.debouncer.Add(path)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", zap.Error(err))

		case <-fw.stopChan:
			return
		}
	}
}

func (fw *FileWatcher) directories() []string {
	seen := make(map[string]struct{})
	var dirs []string
	for path := range fw.files {
		dir := filepath.Dir(path)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Debouncer collects keys and hands them to a callback once no new key has
// arrived for the configured duration
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	pending  map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
	stopped  bool
}

// NewDebouncer creates a debouncer that waits duration after the last Add
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		pending:  make(map[string]struct{}),
	}
}

// SetCallback sets the function that receives each batch
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Add records key and restarts the quiet period. It is a no-op after Stop.
func (d *Debouncer) Add(key string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}
	d.pending[key] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

// flush runs the callback outside the lock so it may call Add
func (d *Debouncer) flush() {
	d.mutex.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mutex.Unlock()
		return
	}
	batch := make([]string, 0, len(d.pending))
	for key := range d.pending {
		batch = append(batch, key)
	}
	d.pending = make(map[string]struct{})
	callback := d.callback
	d.mutex.Unlock()

	sort.Strings(batch)
	if callback != nil {
		callback(batch)
	}
}

// Stop cancels any pending batch
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
