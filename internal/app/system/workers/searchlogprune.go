// internal/app/system/workers/searchlogprune.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pruner deletes records older than a cutoff. *searchlog.Store satisfies it.
type Pruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SearchLogPrune is a background worker that drops search log entries older
// than the retention period.
type SearchLogPrune struct {
	store     Pruner
	log       *zap.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewSearchLogPrune creates a new prune worker.
//
// Parameters:
//   - store: the search log store
//   - logger: zap logger for logging
//   - interval: how often to prune (e.g., 1 hour)
//   - retention: how long entries are kept (e.g., 90 days)
func NewSearchLogPrune(store Pruner, logger *zap.Logger, interval, retention time.Duration) *SearchLogPrune {
	return &SearchLogPrune{
		store:     store,
		log:       logger,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start runs one prune immediately, then one per interval.
func (w *SearchLogPrune) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("search log prune worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once.
func (w *SearchLogPrune) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("search log prune worker stopped")
	})
}

func (w *SearchLogPrune) run() {
	defer w.wg.Done()

	w.prune()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.prune()
		}
	}
}

func (w *SearchLogPrune) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := w.now().UTC().Add(-w.retention)
	count, err := w.store.PruneBefore(ctx, cutoff)
	if err != nil {
		w.log.Error("failed to prune search log", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("pruned search log", zap.Int64("count", count), zap.Time("cutoff", cutoff))
	}
}
