package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/infrastructure/logger"
	"github.com/bnema/vidlingo/internal/port"
	"github.com/bnema/vidlingo/internal/ratelimit"
)

const (
	dispatchLimiterKey = "dispatch"
	maxErrorBackoff    = 30 * time.Second
)

// JobRunner executes one job end to end.
type JobRunner interface {
	Run(ctx context.Context, desc domain.JobDescriptor) error
}

type DispatcherConfig struct {
	Workers       int
	RateLimit     int
	RateWindow    time.Duration
	Retry         domain.RetryPolicy
	MaxBackoff    time.Duration
	Retention     domain.RetentionPolicy
	PruneInterval time.Duration
	PollInterval  time.Duration
	ErrorInterval time.Duration
	// Lease must match the queue's lease. Running jobs renew it every
	// quarter lease and expired entries are recovered every half lease.
	Lease time.Duration
}

func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Workers:       2,
		RateLimit:     5,
		RateWindow:    60 * time.Second,
		Retry:         domain.DefaultRetryPolicy(),
		MaxBackoff:    5 * time.Minute,
		Retention:     domain.DefaultRetentionPolicy(),
		PruneInterval: 10 * time.Minute,
		PollInterval:  500 * time.Millisecond,
		ErrorInterval: 2 * time.Second,
		Lease:         domain.DefaultLease,
	}
}

// Dispatcher pulls descriptors from the work queue and runs them on a fixed
// pool of workers, throttled by a rolling start-rate window.
type Dispatcher struct {
	queue   port.WorkQueue
	runner  JobRunner
	cfg     DispatcherConfig
	limiter *ratelimit.WindowLimiter
	backoff *ratelimit.Backoff
	wg      sync.WaitGroup
}

func NewDispatcher(queue port.WorkQueue, runner JobRunner, cfg DispatcherConfig) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.ErrorInterval <= 0 {
		cfg.ErrorInterval = 2 * time.Second
	}
	if cfg.Lease <= 0 {
		cfg.Lease = domain.DefaultLease
	}

	return &Dispatcher{
		queue:   queue,
		runner:  runner,
		cfg:     cfg,
		limiter: ratelimit.NewWindowLimiter(cfg.RateLimit, cfg.RateWindow),
		backoff: ratelimit.NewExactBackoff(cfg.Retry.BaseDelay, cfg.MaxBackoff, cfg.Retry.Multiplier),
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	// Take back entries whose worker stopped renewing them
	d.recover(ctx)

	for i := range d.cfg.Workers {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.runWorker(ctx, i)
		}()
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.recoverLoop(ctx)
	}()

	if d.cfg.PruneInterval > 0 {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.pruneLoop(ctx)
		}()
	}

	logger.Info.Printf("started %d workers (rate %d per %s, %d attempts, lease %s)",
		d.cfg.Workers, d.cfg.RateLimit, d.cfg.RateWindow, d.cfg.Retry.MaxAttempts, d.cfg.Lease)
}

// Wait blocks until every worker has returned after ctx ends.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	// Consecutive dequeue failures back off with jitter so workers do not
	// retry a down backend in lockstep.
	errBackoff := ratelimit.NewBackoff(d.cfg.ErrorInterval, maxErrorBackoff, 2)
	failures := 0

	for {
		select {
		case <-ctx.Done():
			logger.Info.Printf("worker %d shutting down", id)
			return
		default:
		}

		// Claim only once a start slot is free so no entry is held while
		// the window is full.
		if err := d.limiter.Wait(ctx, dispatchLimiterKey); err != nil {
			continue
		}

		delivery, err := d.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			failures++
			wait := errBackoff.Duration(failures)
			logger.Error.Printf("worker %d: failed to dequeue (retry in %s): %v", id, wait.Round(time.Millisecond), err)
			sleep(ctx, wait)
			continue
		}
		failures = 0

		if delivery == nil {
			// Nothing ready, wait before polling again
			sleep(ctx, d.cfg.PollInterval)
			continue
		}

		if allowed, wait := d.limiter.Check(dispatchLimiterKey); !allowed {
			// Another worker took the slot first.
			d.release(delivery, wait)
			continue
		}

		logger.Info.Printf("worker %d: running job %s (attempt %d/%d)",
			id, delivery.Descriptor.JobID, delivery.Attempt, d.cfg.Retry.MaxAttempts)
		d.process(ctx, delivery)
	}
}

// process runs a claimed delivery to its outcome. A started job is not
// interrupted by shutdown, only by losing its lease to another worker.
func (d *Dispatcher) process(ctx context.Context, delivery *domain.Delivery) {
	ctx = context.WithoutCancel(ctx)
	jobID := delivery.Descriptor.JobID

	runCtx, cancel := context.WithCancel(withRetryAllowed(ctx, delivery.Attempt < d.cfg.Retry.MaxAttempts))
	defer cancel()
	var lost atomic.Bool
	stop := d.keepLease(runCtx, delivery, func() {
		lost.Store(true)
		cancel()
	})
	err := d.runner.Run(runCtx, delivery.Descriptor)
	stop()

	if lost.Load() {
		// The new owner settles the entry.
		logger.Warn.Printf("job %s: lease lost during attempt %d, leaving the entry to its new worker", jobID, delivery.Attempt)
		return
	}

	if err == nil {
		if err := d.queue.Ack(ctx, delivery); err != nil {
			logger.Error.Printf("failed to ack job %s: %v", jobID, err)
		}
		return
	}

	if domain.IsRetryable(err) && delivery.Attempt < d.cfg.Retry.MaxAttempts {
		delay := d.RetryDelay(delivery.Attempt)
		logger.L().Warn("job attempt failed, retrying",
			zap.String("job_id", jobID),
			zap.Int("attempt", delivery.Attempt),
			zap.Duration("delay", delay),
			zap.String("cause", logger.SanitizeForLog(err.Error())))
		if err := d.queue.Retry(ctx, delivery, delay); err != nil {
			logger.Error.Printf("failed to schedule retry for job %s: %v", jobID, err)
		}
		return
	}

	logger.L().Error("job gave up",
		zap.String("job_id", jobID),
		zap.Int("attempts", delivery.Attempt),
		zap.String("cause", logger.SanitizeForLog(err.Error())))
	if err := d.queue.Fail(ctx, delivery, err.Error()); err != nil {
		logger.Error.Printf("failed to mark job %s failed in queue: %v", jobID, err)
	}
}

type retryAllowedKey struct{}

// withRetryAllowed tells the runner whether a retryable failure will be
// attempted again.
func withRetryAllowed(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, retryAllowedKey{}, ok)
}

func retryAllowed(ctx context.Context) bool {
	ok, _ := ctx.Value(retryAllowedKey{}).(bool)
	return ok
}

// RetryDelay is the wait before the attempt following attempt.
func (d *Dispatcher) RetryDelay(attempt int) time.Duration {
	return d.backoff.Duration(attempt)
}

// release hands a claimed entry back without counting the attempt.
func (d *Dispatcher) release(delivery *domain.Delivery, delay time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	released := *delivery
	released.Attempt--
	if err := d.queue.Retry(ctx, &released, delay); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error.Printf("failed to release job %s: %v", delivery.Descriptor.JobID, err)
	}
}

// keepLease renews the delivery's lease until the returned stop func is
// called. onLost runs once if the queue reports the entry taken over.
func (d *Dispatcher) keepLease(ctx context.Context, delivery *domain.Delivery, onLost func()) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(d.cfg.Lease / 4)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				err := d.queue.Extend(ctx, delivery)
				if err == nil {
					continue
				}
				if errors.Is(err, domain.ErrLeaseLost) {
					onLost()
					return
				}
				logger.Warn.Printf("failed to renew lease for job %s: %v", delivery.Descriptor.JobID, err)
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

func (d *Dispatcher) recover(ctx context.Context) {
	if err := d.queue.Recover(ctx); err != nil && ctx.Err() == nil {
		logger.Error.Printf("failed to recover expired queue entries: %v", err)
	}
}

func (d *Dispatcher) recoverLoop(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.Lease / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.recover(ctx)
		}
	}
}

func (d *Dispatcher) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := d.queue.Prune(ctx, d.cfg.Retention)
			if err != nil {
				logger.Error.Printf("failed to prune queue: %v", err)
				continue
			}
			if removed > 0 {
				logger.Info.Printf("pruned %d finished queue entries", removed)
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
