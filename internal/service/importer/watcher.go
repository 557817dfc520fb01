package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

const settleDelay = 300 * time.Millisecond

// Adder submits one draft through the dashboard's Add intent.
type Adder interface {
	Add(ctx context.Context, input models.FoodInput) (models.Food, error)
}

// Result summarizes one imported file.
type Result struct {
	File   string
	Added  int
	Failed int
}

// Watcher monitors the import directory and feeds new CSV files to the Adder.
type Watcher struct {
	dir     string
	adder   Adder
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	notify  func(Result, error)

	mu   sync.Mutex
	seen map[string]fileStamp
}

type fileStamp struct {
	size    int64
	modTime time.Time
}

// NewWatcher starts watching dir. Call Run to process events and Close when done.
func NewWatcher(dir string, adder Adder, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:     dir,
		adder:   adder,
		watcher: w,
		logger:  logger,
		notify:  func(Result, error) {},
		seen:    make(map[string]fileStamp),
	}, nil
}

// SetNotifier registers a callback invoked after every imported file. Call before Run.
func (fw *Watcher) SetNotifier(fn func(Result, error)) {
	if fn != nil {
		fw.notify = fn
	}
}

// Run processes watcher events until ctx is cancelled or the watcher is closed.
// Files are imported once their writes have settled.
func (fw *Watcher) Run(ctx context.Context) {
	d := newDebouncer(settleDelay)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !isCSV(event.Name) {
				continue
			}
			d.touch(event.Name)
		case s := <-d.ready:
			if !d.settle(s) {
				continue
			}
			res, err := fw.ImportFile(ctx, s.path)
			if err != nil {
				fw.logger.Error("failed to import file", zap.String("file", s.path), zap.Error(err))
			}
			if err != nil || res.Added+res.Failed > 0 {
				fw.notify(res, err)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

type settled struct {
	path string
	gen  uint64
}

type pendingFile struct {
	timer *time.Timer
	gen   uint64
}

// debouncer emits a path on ready once no touch happened for delay. Only the
// latest timer of a path counts: a timer that fired before a newer touch is
// rejected by settle. Not safe for concurrent use; Run owns it.
type debouncer struct {
	delay   time.Duration
	ready   chan settled
	done    chan struct{}
	pending map[string]*pendingFile
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		ready:   make(chan settled),
		done:    make(chan struct{}),
		pending: make(map[string]*pendingFile),
	}
}

func (d *debouncer) touch(path string) {
	p, ok := d.pending[path]
	if ok {
		p.timer.Stop()
		p.gen++
	} else {
		p = &pendingFile{}
		d.pending[path] = p
	}

	s := settled{path: path, gen: p.gen}
	p.timer = time.AfterFunc(d.delay, func() {
		select {
		case d.ready <- s:
		case <-d.done:
		}
	})
}

// settle reports whether s is the current timer of its path and forgets the path if so.
func (d *debouncer) settle(s settled) bool {
	p, ok := d.pending[s.path]
	if !ok || p.gen != s.gen {
		return false
	}
	delete(d.pending, s.path)
	return true
}

func (d *debouncer) stop() {
	close(d.done)
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

// ImportFile adds every draft in the file, in order. A file whose size and
// modification time are unchanged since its last import is skipped.
func (fw *Watcher) ImportFile(ctx context.Context, path string) (Result, error) {
	res := Result{File: filepath.Base(path)}

	info, err := os.Stat(path)
	if err != nil {
		return res, fmt.Errorf("stat import file: %w", err)
	}
	stamp := fileStamp{size: info.Size(), modTime: info.ModTime()}

	fw.mu.Lock()
	prev, done := fw.seen[path]
	fw.mu.Unlock()
	if done && prev.size == stamp.size && prev.modTime.Equal(stamp.modTime) {
		return res, nil
	}

	drafts, err := ParseFile(path)
	if err != nil {
		return res, err
	}

	for _, draft := range drafts {
		if _, err := fw.adder.Add(ctx, draft); err != nil {
			res.Failed++
			fw.logger.Warn("import row rejected", zap.String("file", res.File), zap.String("name", draft.Name), zap.Error(err))
			continue
		}
		res.Added++
	}

	fw.mu.Lock()
	fw.seen[path] = stamp
	fw.mu.Unlock()

	fw.logger.Info("import file processed", zap.String("file", res.File), zap.Int("added", res.Added), zap.Int("failed", res.Failed))
	return res, nil
}

// Close stops watching the directory.
func (fw *Watcher) Close() error {
	return fw.watcher.Close()
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
