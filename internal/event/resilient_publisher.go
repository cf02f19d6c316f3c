package event

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/osse101/RouletteHouse_Go/internal/logger"
)

// PublisherConfig tunes a ResilientPublisher. Zero fields take the defaults.
type PublisherConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	MaxRetryDelay  time.Duration
	QueueSize      int
	DeadLetterPath string
	Clock          quartz.Clock
}

func (c PublisherConfig) withDefaults() PublisherConfig {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.MaxRetryDelay <= 0 {
		c.MaxRetryDelay = DefaultMaxRetryDelay
	}
	if c.QueueSize <= 0 {
		c.QueueSize = RetryQueueBufferSize
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	return c
}

type retryEntry struct {
	event     Event
	attempt   int
	nextRetry time.Time
	lastErr   error
}

// ResilientPublisher wraps a Bus with a background retry queue. Events that
// still fail after MaxRetries retries, or that arrive while the queue is
// full, are appended to the dead-letter file.
type ResilientPublisher struct {
	bus        Bus
	cfg        PublisherConfig
	retryQueue chan retryEntry
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher opens the dead-letter file and starts the retry worker
func NewResilientPublisher(bus Bus, cfg PublisherConfig) (*ResilientPublisher, error) {
	cfg = cfg.withDefaults()

	var dl *DeadLetterWriter
	if cfg.DeadLetterPath != "" {
		var err error
		if dl, err = NewDeadLetterWriter(cfg.DeadLetterPath, cfg.Clock); err != nil {
			return nil, err
		}
	}

	rp := &ResilientPublisher{
		bus:        bus,
		cfg:        cfg,
		retryQueue: make(chan retryEntry, cfg.QueueSize),
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// Config returns the effective settings after defaults
func (rp *ResilientPublisher) Config() PublisherConfig {
	return rp.cfg
}

// PublishWithRetry publishes synchronously once and queues the event for
// background retries on failure. It never returns an error to the caller.
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := rp.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	rp.enqueue(retryEntry{
		event:     evt,
		attempt:   1,
		nextRetry: rp.cfg.Clock.Now().Add(rp.delay(1)),
		lastErr:   err,
	})
}

// Publish lets the publisher stand in for a Bus
func (rp *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	rp.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the inner bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

func (rp *ResilientPublisher) delay(attempt int) time.Duration {
	return RetryDelay(rp.cfg.RetryDelay, rp.cfg.MaxRetryDelay, attempt)
}

func (rp *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case <-rp.shutdown:
		logger.Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
		rp.writeDeadLetter(entry)
		return
	default:
	}

	select {
	case rp.retryQueue <- entry:
	default:
		logger.Error(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case <-rp.shutdown:
			rp.drain()
			return
		case entry := <-rp.retryQueue:
			if !rp.waitUntil(entry.nextRetry) {
				rp.finalAttempt(entry)
				rp.drain()
				return
			}
			rp.retry(entry)
		}
	}
}

// waitUntil sleeps until t and reports false if shutdown interrupted it
func (rp *ResilientPublisher) waitUntil(t time.Time) bool {
	d := rp.cfg.Clock.Until(t)
	if d <= 0 {
		return true
	}
	timer := rp.cfg.Clock.NewTimer(d, "event", "retry")
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-rp.shutdown:
		return false
	}
}

func (rp *ResilientPublisher) retry(entry retryEntry) {
	err := rp.bus.Publish(context.Background(), entry.event)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}

	entry.lastErr = err
	if entry.attempt >= rp.cfg.MaxRetries {
		logger.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt)
		rp.writeDeadLetter(entry)
		return
	}

	entry.attempt++
	entry.nextRetry = rp.cfg.Clock.Now().Add(rp.delay(entry.attempt))
	logger.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	rp.enqueue(entry)
}

// finalAttempt publishes once more without requeueing
func (rp *ResilientPublisher) finalAttempt(entry retryEntry) {
	if err := rp.bus.Publish(context.Background(), entry.event); err != nil {
		entry.lastErr = err
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-rp.retryQueue:
			rp.finalAttempt(entry)
			drained++
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (rp *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if rp.deadLetter == nil {
		return
	}
	if err := rp.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown gives queued events one last attempt, dead-letters the failures
// and closes the dead-letter file
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.closeOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	if rp.deadLetter != nil {
		return rp.deadLetter.Close()
	}
	return nil
}
