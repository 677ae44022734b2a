package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Saver queues a snapshot save.
type Saver interface {
	RequestSave()
}

// AutosaveWorker requests a snapshot save on a fixed interval, whether or not
// anything changed. It is owned by the process lifecycle and independent of
// the command-handling path, so tests can shrink the interval freely.
type AutosaveWorker struct {
	saver    Saver
	interval time.Duration
	logger   *zap.Logger
}

// NewAutosaveWorker constructs the worker.
func NewAutosaveWorker(saver Saver, interval time.Duration, logger *zap.Logger) *AutosaveWorker {
	return &AutosaveWorker{saver: saver, interval: interval, logger: logger}
}

// Run ticks until the context is cancelled. Returns immediately when the
// interval is non-positive (autosave disabled).
func (w *AutosaveWorker) Run(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info("autosave disabled")
		return
	}

	w.logger.Info("autosave enabled", zap.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.saver.RequestSave()
		}
	}
}
