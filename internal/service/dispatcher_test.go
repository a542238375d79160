package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queuedEntry struct {
	desc     domain.JobDescriptor
	attempts int
	readyAt  time.Time
}

// memQueue is a minimal in-memory WorkQueue.
type memQueue struct {
	mu        sync.Mutex
	pending   []queuedEntry
	acked     []string
	failed    map[string]string
	delays    []time.Duration
	recovered int
	prunes    int
	outages   int
	extends   int
	leaseLost bool
}

func newMemQueue(descs ...domain.JobDescriptor) *memQueue {
	q := &memQueue{failed: make(map[string]string)}
	for _, d := range descs {
		q.pending = append(q.pending, queuedEntry{desc: d})
	}
	return q
}

func (q *memQueue) Enqueue(_ context.Context, desc domain.JobDescriptor) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, queuedEntry{desc: desc})
	return nil
}

func (q *memQueue) Dequeue(_ context.Context) (*domain.Delivery, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.outages > 0 {
		q.outages--
		return nil, errors.New("queue unavailable")
	}
	now := time.Now()
	for i, e := range q.pending {
		if e.readyAt.After(now) {
			continue
		}
		q.pending = append(q.pending[:i], q.pending[i+1:]...)
		return &domain.Delivery{ID: e.desc.JobID, Descriptor: e.desc, Attempt: e.attempts + 1}, nil
	}
	return nil, nil
}

func (q *memQueue) Ack(_ context.Context, d *domain.Delivery) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked = append(q.acked, d.ID)
	return nil
}

func (q *memQueue) Retry(_ context.Context, d *domain.Delivery, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delays = append(q.delays, delay)
	q.pending = append(q.pending, queuedEntry{desc: d.Descriptor, attempts: d.Attempt, readyAt: time.Now().Add(delay)})
	return nil
}

func (q *memQueue) Fail(_ context.Context, d *domain.Delivery, reason string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.failed[d.ID] = reason
	return nil
}

func (q *memQueue) Extend(context.Context, *domain.Delivery) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.extends++
	if q.leaseLost {
		return domain.ErrLeaseLost
	}
	return nil
}

func (q *memQueue) Recover(context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.recovered++
	return nil
}

func (q *memQueue) Prune(context.Context, domain.RetentionPolicy) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.prunes++
	return 0, nil
}

func (q *memQueue) Stats(context.Context) (domain.QueueStats, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return domain.QueueStats{Pending: len(q.pending), Completed: len(q.acked), Failed: len(q.failed)}, nil
}

func (q *memQueue) snapshot() (acked int, failed map[string]string, delays []time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()
	f := make(map[string]string, len(q.failed))
	for k, v := range q.failed {
		f[k] = v
	}
	return len(q.acked), f, append([]time.Duration(nil), q.delays...)
}

type runnerFunc func(ctx context.Context, desc domain.JobDescriptor) error

func (f runnerFunc) Run(ctx context.Context, desc domain.JobDescriptor) error {
	return f(ctx, desc)
}

func testDispatcherConfig() DispatcherConfig {
	cfg := DefaultDispatcherConfig()
	cfg.RateLimit = 0
	cfg.Retry.BaseDelay = time.Millisecond
	cfg.PollInterval = 2 * time.Millisecond
	cfg.ErrorInterval = 2 * time.Millisecond
	cfg.PruneInterval = 0
	return cfg
}

func descriptor(id string) domain.JobDescriptor {
	return domain.JobDescriptor{JobID: id, SourceURL: "https://youtu.be/" + id, TargetLang: "vi"}
}

func startDispatcher(t *testing.T, d *Dispatcher) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	t.Cleanup(func() {
		cancel()
		d.Wait()
	})
	return cancel
}

func TestDispatcher_AcksSuccessfulJobs(t *testing.T) {
	q := newMemQueue(descriptor("a"), descriptor("b"))
	var ran atomic.Int32
	d := NewDispatcher(q, runnerFunc(func(context.Context, domain.JobDescriptor) error {
		ran.Add(1)
		return nil
	}), testDispatcherConfig())

	startDispatcher(t, d)

	require.Eventually(t, func() bool {
		acked, _, _ := q.snapshot()
		return acked == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), ran.Load())
	assert.Equal(t, 1, q.recovered)
}

func TestDispatcher_RetriesThenGivesUp(t *testing.T) {
	q := newMemQueue(descriptor("flaky"))
	var attempts []int
	var retryAhead []bool
	var mu sync.Mutex
	d := NewDispatcher(q, runnerFunc(func(ctx context.Context, _ domain.JobDescriptor) error {
		mu.Lock()
		attempts = append(attempts, len(attempts)+1)
		retryAhead = append(retryAhead, retryAllowed(ctx))
		mu.Unlock()
		return domain.NewStageError(domain.StageIngest, domain.ErrIngest, errors.New("video unavailable"))
	}), testDispatcherConfig())

	startDispatcher(t, d)

	require.Eventually(t, func() bool {
		_, failed, _ := q.snapshot()
		return len(failed) == 1
	}, time.Second, 5*time.Millisecond)

	_, failed, delays := q.snapshot()
	assert.Equal(t, "ingest: video unavailable", failed["flaky"])
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, delays)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, attempts, 3)
	assert.Equal(t, []bool{true, true, false}, retryAhead, "only the last attempt is final")
}

func TestDispatcher_NoRetryOnConfigurationFailure(t *testing.T) {
	q := newMemQueue(descriptor("nokey"))
	var runs atomic.Int32
	d := NewDispatcher(q, runnerFunc(func(context.Context, domain.JobDescriptor) error {
		runs.Add(1)
		return domain.NewStageError(domain.StagePreflight, domain.ErrConfiguration, errors.New("AZURE_TTS_KEY is not set"))
	}), testDispatcherConfig())

	startDispatcher(t, d)

	require.Eventually(t, func() bool {
		_, failed, _ := q.snapshot()
		return len(failed) == 1
	}, time.Second, 5*time.Millisecond)

	_, _, delays := q.snapshot()
	assert.Empty(t, delays)
	assert.Equal(t, int32(1), runs.Load())
}

func TestDispatcher_ConcurrencyCeiling(t *testing.T) {
	q := newMemQueue(descriptor("1"), descriptor("2"), descriptor("3"), descriptor("4"), descriptor("5"))
	var current, peak atomic.Int32
	d := NewDispatcher(q, runnerFunc(func(context.Context, domain.JobDescriptor) error {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		current.Add(-1)
		return nil
	}), testDispatcherConfig())

	startDispatcher(t, d)

	require.Eventually(t, func() bool {
		acked, _, _ := q.snapshot()
		return acked == 5
	}, 2*time.Second, 5*time.Millisecond)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Equal(t, int32(2), peak.Load())
}

func TestDispatcher_RateCeiling(t *testing.T) {
	q := newMemQueue(descriptor("1"), descriptor("2"), descriptor("3"))
	cfg := testDispatcherConfig()
	cfg.Workers = 3
	cfg.RateLimit = 2
	cfg.RateWindow = time.Hour

	var starts atomic.Int32
	d := NewDispatcher(q, runnerFunc(func(context.Context, domain.JobDescriptor) error {
		starts.Add(1)
		return nil
	}), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	require.Eventually(t, func() bool { return starts.Load() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2), starts.Load(), "third start waits for the window")

	cancel()
	d.Wait()

	q.mu.Lock()
	defer q.mu.Unlock()
	require.Len(t, q.pending, 1, "throttled entry is handed back")
	assert.Equal(t, 0, q.pending[0].attempts)
}

func TestDispatcher_PruneLoop(t *testing.T) {
	q := newMemQueue()
	cfg := testDispatcherConfig()
	cfg.PruneInterval = 5 * time.Millisecond

	d := NewDispatcher(q, runnerFunc(func(context.Context, domain.JobDescriptor) error { return nil }), cfg)
	startDispatcher(t, d)

	require.Eventually(t, func() bool {
		q.mu.Lock()
		defer q.mu.Unlock()
		return q.prunes >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestDispatcher_RetryDelaySchedule(t *testing.T) {
	d := NewDispatcher(newMemQueue(), nil, DefaultDispatcherConfig())

	assert.Equal(t, 2*time.Second, d.RetryDelay(1))
	assert.Equal(t, 4*time.Second, d.RetryDelay(2))
	assert.Equal(t, 8*time.Second, d.RetryDelay(3))
	assert.Equal(t, 5*time.Minute, d.RetryDelay(20))
}

func TestDispatcher_RecoversFromDequeueErrors(t *testing.T) {
	q := newMemQueue(descriptor("a"), descriptor("b"))
	q.outages = 4
	cfg := testDispatcherConfig()
	cfg.Workers = 1
	d := NewDispatcher(q, runnerFunc(func(context.Context, domain.JobDescriptor) error { return nil }), cfg)

	startDispatcher(t, d)

	require.Eventually(t, func() bool {
		acked, _, _ := q.snapshot()
		return acked == 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDispatcher_RenewsLeaseWhileRunning(t *testing.T) {
	q := newMemQueue(descriptor("long"))
	cfg := testDispatcherConfig()
	cfg.Lease = 20 * time.Millisecond
	d := NewDispatcher(q, runnerFunc(func(context.Context, domain.JobDescriptor) error {
		time.Sleep(60 * time.Millisecond)
		return nil
	}), cfg)

	startDispatcher(t, d)

	require.Eventually(t, func() bool {
		acked, _, _ := q.snapshot()
		return acked == 1
	}, time.Second, 5*time.Millisecond)
	q.mu.Lock()
	defer q.mu.Unlock()
	assert.GreaterOrEqual(t, q.extends, 2)
	assert.GreaterOrEqual(t, q.recovered, 2, "expired entries are recovered periodically")
}

func TestDispatcher_LostLeaseCancelsRunWithoutSettling(t *testing.T) {
	q := newMemQueue(descriptor("taken"))
	q.leaseLost = true
	cfg := testDispatcherConfig()
	cfg.Lease = 20 * time.Millisecond

	cancelled := make(chan struct{})
	d := NewDispatcher(q, runnerFunc(func(ctx context.Context, _ domain.JobDescriptor) error {
		select {
		case <-ctx.Done():
			close(cancelled)
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}), cfg)

	startDispatcher(t, d)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("run was not cancelled after the lease was lost")
	}
	time.Sleep(20 * time.Millisecond)

	acked, failed, delays := q.snapshot()
	assert.Zero(t, acked)
	assert.Empty(t, failed)
	assert.Empty(t, delays)
}
