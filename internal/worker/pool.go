package worker

import (
	"context"
	"sync"

	"github.com/osse101/RouletteHouse_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Pool represents a worker pool
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker is the worker loop
func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		// Prefer quitting over picking up more work
		select {
		case <-p.quit:
			return
		default:
		}

		select {
		case job := <-p.jobQueue:
			ctx := context.Background()
			if err := job.Process(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
			}
		case <-p.quit:
			return
		}
	}
}

// Enqueue adds a job to the queue, blocking until there is room or ctx is
// done
func (p *Pool) Enqueue(ctx context.Context, job Job) error {
	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryEnqueue adds a job without blocking. It reports false when the queue is
// full.
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// Queued returns the number of jobs waiting for a worker
func (p *Pool) Queued() int {
	return len(p.jobQueue)
}

// Stop stops the workers and waits for in-flight jobs to finish. Jobs still
// queued are returned unprocessed.
func (p *Pool) Stop() []Job {
	var left []Job
	p.stopOnce.Do(func() {
		close(p.quit)
		p.wg.Wait()
		for {
			select {
			case job := <-p.jobQueue:
				left = append(left, job)
			default:
				return
			}
		}
	})
	return left
}
