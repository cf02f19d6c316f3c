package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
	"github.com/osse101/RouletteHouse_Go/internal/metrics"
	"github.com/osse101/RouletteHouse_Go/internal/oracle"
)

// OracleWorker dispatches randomness requests to a signer on a bounded pool
// and delivers each answer to its callback exactly once. A request that is
// not answered within its budget is delivered as a failure.
type OracleWorker struct {
	BaseWorker
	client  oracle.Client
	clock   quartz.Clock
	pool   *Pool

	// jobsMu guards jobs and stopped, and orders wg.Add before Shutdown's wait
	jobsMu  sync.Mutex
	jobs    map[uuid.UUID]*oracleJob
	stopped bool
}

// NewOracleWorker creates a worker with the given number of concurrent
// signer calls and queue capacity
func NewOracleWorker(client oracle.Client, clock quartz.Clock, workers, queueSize int) *OracleWorker {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if workers <= 0 {
		workers = DefaultOracleWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultOracleQueueSize
	}
	w := &OracleWorker{
		client: client,
		clock:  clock,
		pool:   NewPool(workers, queueSize),
		jobs:   make(map[uuid.UUID]*oracleJob),
	}
	w.init()
	return w
}

// Start starts the signer workers
func (w *OracleWorker) Start() {
	w.pool.Start()
}

// RequestRandomness queues a sign request for settlement id. A non-nil error
// means nothing was queued and cb will not be called.
func (w *OracleWorker) RequestRandomness(ctx context.Context, id uuid.UUID, req oracle.SignRequest, budget time.Duration, cb oracle.Callback) error {
	log := logger.FromContext(ctx)

	base := context.WithoutCancel(ctx)
	signCtx, cancel := context.WithCancel(base)
	job := &oracleJob{
		worker:  w,
		id:      id,
		req:     req,
		budget:  budget,
		cb:      cb,
		base:    base,
		signCtx: signCtx,
		cancel:  cancel,
	}

	if !w.admit(job) {
		cancel()
		metrics.OracleRefused.WithLabelValues(metrics.ReasonStopped).Inc()
		return domain.ErrOracleStopped
	}

	w.registerTimer(id, w.clock.AfterFunc(budget, job.expire, "oracle", "budget"))

	if !w.pool.TryEnqueue(job) {
		job.drop()
		metrics.OracleRefused.WithLabelValues(metrics.ReasonQueueFull).Inc()
		log.Warn(LogMsgOracleRequestRefused, "settlement_id", id, "queued", w.pool.Queued())
		return domain.ErrOracleQueueFull
	}

	metrics.OracleQueueDepth.Set(float64(w.pool.Queued()))
	log.Debug(LogMsgOracleRequestQueued, "settlement_id", id, "budget", budget)
	return nil
}

// InFlight returns the number of requests whose callback has not run yet
func (w *OracleWorker) InFlight() int {
	w.jobsMu.Lock()
	defer w.jobsMu.Unlock()
	return len(w.jobs)
}

// CheckHealth reports whether new requests are still accepted
func (w *OracleWorker) CheckHealth(_ context.Context) error {
	if w.isShutdown() {
		return domain.ErrOracleStopped
	}
	return nil
}

// Shutdown stops accepting requests and waits for queued and in-flight ones
// to be delivered. Requests still outstanding when ctx ends are abandoned
// without calling their callbacks; their settlements stay pending.
func (w *OracleWorker) Shutdown(ctx context.Context) error {
	w.jobsMu.Lock()
	if w.stopped {
		w.jobsMu.Unlock()
		return nil
	}
	w.stopped = true
	w.jobsMu.Unlock()

	logger.FromContext(ctx).Info(LogMsgOracleShuttingDown, "in_flight", w.InFlight())
	close(w.shutdown)

	err := w.waitIdle(ctx, oracleWorkerName)
	if err != nil {
		w.jobsMu.Lock()
		outstanding := make([]*oracleJob, 0, len(w.jobs))
		for _, job := range w.jobs {
			outstanding = append(outstanding, job)
		}
		w.jobsMu.Unlock()
		for _, job := range outstanding {
			logger.FromContext(job.base).Warn(LogMsgOracleRequestAbandoned, "settlement_id", job.id)
			job.drop()
		}
	}

	w.pool.Stop()
	w.stopAllTimers(ctx, oracleWorkerName)
	return err
}

// admit tracks job unless the worker has stopped
func (w *OracleWorker) admit(job *oracleJob) bool {
	w.jobsMu.Lock()
	defer w.jobsMu.Unlock()
	if w.stopped {
		return false
	}
	w.wg.Add(1)
	w.jobs[job.id] = job
	return true
}

func (w *OracleWorker) forget(id uuid.UUID) {
	w.jobsMu.Lock()
	defer w.jobsMu.Unlock()
	delete(w.jobs, id)
}

// oracleJob is one randomness request
type oracleJob struct {
	worker  *OracleWorker
	id      uuid.UUID
	req     oracle.SignRequest
	budget  time.Duration
	cb      oracle.Callback
	base    context.Context
	signCtx context.Context
	cancel  context.CancelFunc
	once    sync.Once
}

// Process calls the signer and delivers the answer
func (j *oracleJob) Process(_ context.Context) error {
	w := j.worker
	metrics.OracleQueueDepth.Set(float64(w.pool.Queued()))

	start := w.clock.Now()
	resp, err := w.client.Sign(j.signCtx, j.req)
	elapsed := w.clock.Since(start)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		logger.FromContext(j.base).Warn(LogMsgOracleSignFailed, "settlement_id", j.id, "error", err)
	}
	metrics.OracleRequestDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	j.deliver(resp, err)
	return nil
}

// expire runs when the budget elapses first
func (j *oracleJob) expire() {
	logger.FromContext(j.base).Warn(LogMsgOracleBudgetExceeded, "settlement_id", j.id, "budget", j.budget)
	metrics.OracleRequestDuration.WithLabelValues(metrics.OutcomeTimeout).Observe(j.budget.Seconds())
	j.deliver(nil, fmt.Errorf("%w: %w after %s", domain.ErrOracleFailed, domain.ErrBudgetExceeded, j.budget))
}

// deliver runs the callback the first time it is called
func (j *oracleJob) deliver(resp *oracle.SignatureResponse, err error) {
	j.once.Do(func() {
		w := j.worker
		defer w.wg.Done()

		w.stopTimer(j.id)
		w.forget(j.id)
		j.cancel()

		ctx, cancel := context.WithTimeout(j.base, j.budget)
		defer cancel()
		j.cb(ctx, resp, err)
	})
}

// drop releases the request without calling back
func (j *oracleJob) drop() {
	j.once.Do(func() {
		w := j.worker
		defer w.wg.Done()

		w.stopTimer(j.id)
		w.forget(j.id)
		j.cancel()
	})
}
