package tutor

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ppiankov/edututor/internal/intent"
	"github.com/ppiankov/edututor/internal/policy"
)

// Reloader watches the rules and policy files and hot-reloads the Tutor
// when they change.
type Reloader struct {
	watcher    *fsnotify.Watcher
	tutor      *Tutor
	rulesPath  string
	policyPath string
}

// NewReloader creates a file watcher for the given config paths. Paths
// that are empty or missing are skipped.
func NewReloader(t *Tutor, rulesPath, policyPath string) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	watched := 0
	for _, p := range []string{rulesPath, policyPath} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := watcher.Add(p); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %q: %w", p, err)
		}
		watched++
	}
	if watched == 0 {
		watcher.Close()
		return nil, fmt.Errorf("no config files to watch")
	}

	return &Reloader{
		watcher:    watcher,
		tutor:      t,
		rulesPath:  rulesPath,
		policyPath: policyPath,
	}, nil
}

// Run watches for file changes and reloads configuration. Blocks until
// ctx is cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	// Debounce: wait 500ms after last write before reloading
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, r.reload)
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "file watcher error: %v\n", err)
		}
	}
}

func (r *Reloader) reload() {
	intentCfg, err := intent.LoadConfig(r.rulesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hot-reload failed: %v\n", err)
		return
	}
	policyCfg, err := policy.LoadConfig(r.policyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hot-reload failed: %v\n", err)
		return
	}
	if err := r.tutor.Reload(intentCfg, policyCfg); err != nil {
		fmt.Fprintf(os.Stderr, "hot-reload failed: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "hot-reload: configuration reloaded\n")
}
