package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/telemetry/logging"
)

// Watcher re-runs the batch whenever one of the input datasets changes.
// Events are debounced so a bulk copy triggers a single run.
type Watcher struct {
	cfg      config.DataConfig
	debounce time.Duration
	log      *logging.Logger
	run      func(context.Context)
}

// NewWatcher creates a watcher invoking run after each debounced change
// to the clients, transactions, or transfers file.
func NewWatcher(cfg config.DataConfig, debounce time.Duration, log *logging.Logger, run func(context.Context)) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{cfg: cfg, debounce: debounce, log: log, run: run}
}

// Watch blocks until the context is canceled, re-running the batch on
// input changes. Directories are watched rather than files so atomic
// replace-by-rename is seen.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	watched := map[string]bool{}
	inputs := map[string]bool{}
	for _, path := range []string{w.cfg.ClientsPath, w.cfg.TransactionsPath, w.cfg.TransfersPath} {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		inputs[abs] = true
		dir := filepath.Dir(abs)
		if !watched[dir] {
			if err := fsw.Add(dir); err != nil {
				return err
			}
			watched[dir] = true
		}
	}

	w.log.Info("watching input datasets", "debounce", w.debounce)

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !inputs[abs] {
				continue
			}
			w.log.Debug("input changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				// Drain a fired-but-unread timer before Reset so a
				// stale tick cannot trigger an extra run.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.run(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)
		}
	}
}
