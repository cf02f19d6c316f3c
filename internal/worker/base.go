package worker

import (
	"context"
	"sync"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/osse101/RouletteHouse_Go/internal/logger"
)

// BaseWorker provides common functionality for background workers that manage timers
type BaseWorker struct {
	mu       sync.Mutex
	timers   map[uuid.UUID]*quartz.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
}

func (w *BaseWorker) init() {
	if w.timers == nil {
		w.timers = make(map[uuid.UUID]*quartz.Timer)
	}
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

func (w *BaseWorker) stopTimer(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.timers[id]; ok {
		timer.Stop()
		delete(w.timers, id)
	}
}

func (w *BaseWorker) registerTimer(id uuid.UUID, timer *quartz.Timer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timers[id] = timer
}

func (w *BaseWorker) stopAllTimers(ctx context.Context, workerName string) {
	log := logger.FromContext(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	for id, timer := range w.timers {
		timer.Stop()
		log.Info("Cancelled pending "+workerName+" timer", "id", id)
	}
	w.timers = make(map[uuid.UUID]*quartz.Timer)
}

func (w *BaseWorker) isShutdown() bool {
	select {
	case <-w.shutdown:
		return true
	default:
		return false
	}
}

// waitIdle waits for tracked work to finish or ctx to end
func (w *BaseWorker) waitIdle(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(workerName + " shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn(workerName + " shutdown timeout")
		return ctx.Err()
	}
}
