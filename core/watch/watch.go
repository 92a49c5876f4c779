// Package watch re-runs the checker when watched source files change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/juju/ratelimit"
)

// Options configure a Watcher.
type Options struct {
	// Roots are the directories watched recursively.
	Roots []string

	// Include patterns select the files whose changes trigger a run.
	Include []string

	// Ignore patterns exclude paths from watching entirely.
	Ignore []string

	// Debounce is the quiet window used to coalesce event bursts.
	Debounce time.Duration

	// RunsPerMinute caps how often onRun fires.
	RunsPerMinute int
}

// Watcher triggers a callback when relevant files change.
type Watcher struct {
	opts      Options
	fsWatcher *fsnotify.Watcher
	bucket    *ratelimit.Bucket
	onRun     func(ctx context.Context)
}

// New builds a Watcher that invokes onRun after each debounced batch of
// matching file events.
func New(opts Options, onRun func(ctx context.Context)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if len(opts.Roots) == 0 {
		opts.Roots = []string{"."}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	if opts.RunsPerMinute <= 0 {
		opts.RunsPerMinute = 30
	}

	w := &Watcher{
		opts:      opts,
		fsWatcher: fsWatcher,
		bucket:    ratelimit.NewBucketWithRate(float64(opts.RunsPerMinute)/60, 1),
		onRun:     onRun,
	}

	for _, root := range opts.Roots {
		if err := w.addRecursive(root); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}

	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && w.ignored(path) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

// Run watches until ctx is done. The callback runs once up front, then
// after every debounced batch of matching events, paced by the run rate
// limit.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsWatcher.Close()

	w.runOnce(ctx)

	debounce := time.NewTimer(w.opts.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}

			// New directories need to be picked up by the watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.ignored(event.Name) {
					w.addRecursive(event.Name)
				}
			}

			if !w.matches(event.Name) {
				continue
			}
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(w.opts.Debounce)

		case <-debounce.C:
			w.runOnce(ctx)

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	// Block until the rate limit allows another run.
	wait := w.bucket.Take(1)
	if wait > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}

	w.onRun(ctx)
}

// rel maps an event path to a root-relative slash path for pattern
// matching.
func (w *Watcher) rel(path string) string {
	path = filepath.Clean(path)
	for _, root := range w.opts.Roots {
		if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
			return filepath.ToSlash(r)
		}
	}
	return filepath.ToSlash(path)
}

// matches reports whether a changed path should trigger a run.
func (w *Watcher) matches(path string) bool {
	if w.ignored(path) {
		return false
	}

	slashed := w.rel(path)
	for _, pattern := range w.opts.Include {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) ignored(path string) bool {
	slashed := w.rel(path)
	base := filepath.Base(slashed)
	if strings.HasPrefix(base, ".") && base != "." {
		return true
	}

	for _, pattern := range w.opts.Ignore {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}
