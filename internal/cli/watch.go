package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/bracketgen/pkg/pipeline"
)

// watchDebounce batches the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watchRender renders once, then again after every change to the input
// file, until ctx is cancelled. Render failures are reported and watching
// continues.
func (c *CLI) watchRender(ctx context.Context, runner *pipeline.Runner, opts renderOpts) error {
	input, err := filepath.Abs(opts.inputPath())
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(input), err)
	}

	render := func() {
		if _, err := c.renderOnce(ctx, runner, opts); err != nil {
			c.Logger.Error("render failed", "error", err)
		}
	}
	render()
	c.ui().note("Watching %s (ctrl+c to stop)", opts.inputPath())

	return watchLoop(ctx, watcher, input, watchDebounce, render)
}

// watchLoop calls fn once per debounced burst of changes to path.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, path string, debounce time.Duration, fn func()) error {
	logger := log.FromContext(ctx)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("input changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			fn()
		}
	}
}
