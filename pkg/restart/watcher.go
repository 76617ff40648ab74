package restart

import (
	"context"
	"time"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/fsutil"
)

// Watcher sets a Signal once the watched file has changed and then stayed
// unchanged for the settle period. It covers hosts that reload dependencies
// in place instead of restarting the console.
type Watcher struct {
	Path     string
	Interval time.Duration
	Settle   time.Duration
	Signal   *Signal

	hash func(string) (string, error)
	now  func() time.Time
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, interval, settle time.Duration, signal *Signal) *Watcher {
	return &Watcher{
		Path:     path,
		Interval: interval,
		Settle:   settle,
		Signal:   signal,
		hash:     fsutil.FileHash,
		now:      time.Now,
	}
}

// Run polls until the signal is set or ctx is done. A missing file hashes as
// empty, so deleting and recreating the manifest counts as a change.
func (w *Watcher) Run(ctx context.Context) {
	if w.Signal.Restarted() {
		return
	}
	interval := w.Interval
	if interval <= 0 {
		interval = time.Second
	}

	baseline := w.sum()
	current := baseline
	var changedAt time.Time

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		sum := w.sum()
		if sum != current {
			current = sum
			changedAt = w.now()
			logger.Debug("Manifest changed", logger.Fields{"path": w.Path})
		}
		if current == baseline || changedAt.IsZero() {
			continue
		}
		if w.now().Sub(changedAt) >= w.Settle {
			w.Signal.Set()
			logger.Info("Dependency change settled, treating console as restarted", logger.Fields{"path": w.Path})
			return
		}
	}
}

func (w *Watcher) sum() string {
	sum, err := w.hash(w.Path)
	if err != nil {
		return ""
	}
	return sum
}
