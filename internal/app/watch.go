package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/uitest/internal/config"
	"github.com/giantswarm/uitest/internal/report"
	"github.com/giantswarm/uitest/pkg/logging"
)

// DefaultDebounceInterval is how long Watch waits for further changes to the
// configuration file before starting a new run.
const DefaultDebounceInterval = 300 * time.Millisecond

// RunResult is reported by Watch after every run.
type RunResult struct {
	Summary report.Summary
	Err     error
}

// Watch runs the suite, then reloads the configuration and runs it again
// every time the configuration file changes, until ctx is done. A run still
// in progress when the file changes is finished first. Configuration errors
// are reported through onRun and do not stop watching.
func Watch(ctx context.Context, cfg *Config, debounce time.Duration, onRun func(RunResult)) error {
	if debounce <= 0 {
		debounce = DefaultDebounceInterval
	}

	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultConfigFile
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors replace the file on save, so the directory is watched.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	logging.Info("Watch", "Watching %s for configuration changes", path)

	changes := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename) {
					continue
				}
				logging.Debug("Watch", "Configuration changed: %s", event)
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logging.Error("Watch", err, "Filesystem watcher error")
			}
		}
	})

	g.Go(func() error {
		for {
			onRun(runOnce(gctx, cfg))

			select {
			case <-gctx.Done():
				return nil
			case <-changes:
			}

			timer := time.NewTimer(debounce)
			select {
			case <-gctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}
			select {
			case <-changes:
			default:
			}
			logging.Info("Watch", "Configuration changed, running UI tests again")
		}
	})

	return g.Wait()
}

func runOnce(ctx context.Context, cfg *Config) RunResult {
	application, err := NewApplication(cfg)
	if err != nil {
		return RunResult{Err: err}
	}
	summary, err := application.Run(ctx)
	return RunResult{Summary: summary, Err: err}
}
