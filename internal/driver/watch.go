package driver

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"lunar/internal/trace"
)

// DefaultDebounce: пауза после последнего события перед повторным разбором.
const DefaultDebounce = 100 * time.Millisecond

// Watch blocks until ctx is done, calling onChange for every *.lr file under
// target (a file or a directory) that was written, created or renamed.
// Bursts of events for one path within debounce collapse into one call.
func Watch(ctx context.Context, target string, debounce time.Duration, onChange func(path string)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("watch %s: %w", target, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	match := func(path string) bool { return strings.HasSuffix(path, SourceExt) }
	if info.IsDir() {
		err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return w.Add(path)
			}
			return nil
		})
	} else {
		// редакторы часто пишут через rename, поэтому следим за каталогом
		abs := filepath.Clean(target)
		match = func(path string) bool { return filepath.Clean(path) == abs }
		err = w.Add(filepath.Dir(target))
	}
	if err != nil {
		return fmt.Errorf("watch %s: %w", target, err)
	}

	tracer := trace.FromContext(ctx)
	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !match(ev.Name) {
				continue
			}
			trace.Point(tracer, trace.ScopeDriver, "watch-event", ev.Op.String()+" "+ev.Name, 0)
			pending[ev.Name] = struct{}{}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		case <-timer.C:
			for _, path := range slices.Sorted(maps.Keys(pending)) {
				if _, err := os.Stat(path); err != nil {
					continue
				}
				onChange(path)
			}
			clear(pending)
		}
	}
}
