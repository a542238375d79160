// Package redisq is a work queue on Redis lists. Entries move from pending
// to active with BRPOPLPUSH; delayed retries wait in a sorted set scored by
// their ready time. Active entries hold a lease in a second sorted set,
// scored by its deadline.
package redisq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/infrastructure/logger"
	"github.com/bnema/vidlingo/internal/port"
	"github.com/redis/go-redis/v9"
)

const DefaultBlockTimeout = time.Second

type entry struct {
	Descriptor domain.JobDescriptor `json:"descriptor"`
	Attempts   int                  `json:"attempts"`
	Error      string               `json:"error,omitempty"`
	EnqueuedAt int64                `json:"enqueued_at"`
	FinishedAt int64                `json:"finished_at,omitempty"`
}

type keys struct {
	pending, active, delayed, leases, completed, failed string
}

type Queue struct {
	client       redis.UniversalClient
	keys         keys
	blockTimeout time.Duration
	lease        time.Duration
	now          func() time.Time
}

// extendScript renews a lease only while the entry still holds one.
var extendScript = redis.NewScript(`
if redis.call('ZSCORE', KEYS[1], ARGV[1]) then
	redis.call('ZADD', KEYS[1], ARGV[2], ARGV[1])
	return 1
end
return 0
`)

// recoverScript returns one active entry to pending once its lease is over.
// An active entry without a lease was claimed by a worker that has not
// written it yet, so it gets a fresh one instead.
//
// KEYS: active, leases, pending. ARGV: entry, now, fresh deadline, requeued entry.
var recoverScript = redis.NewScript(`
local score = redis.call('ZSCORE', KEYS[2], ARGV[1])
if not score then
	if redis.call('LREM', KEYS[1], 1, ARGV[1]) == 1 then
		redis.call('RPUSH', KEYS[1], ARGV[1])
		redis.call('ZADD', KEYS[2], ARGV[3], ARGV[1])
	end
	return 0
end
if tonumber(score) >= tonumber(ARGV[2]) then
	return 0
end
redis.call('ZREM', KEYS[2], ARGV[1])
if redis.call('LREM', KEYS[1], 1, ARGV[1]) == 0 then
	return 0
end
redis.call('RPUSH', KEYS[3], ARGV[4])
return 1
`)

type Option func(*Queue)

// WithBlockTimeout bounds how long Dequeue waits on an empty queue.
func WithBlockTimeout(d time.Duration) Option {
	return func(q *Queue) {
		q.blockTimeout = d
	}
}

// WithLease sets how long a claim stays valid without renewal.
func WithLease(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.lease = d
		}
	}
}

func New(client redis.UniversalClient, name string, opts ...Option) *Queue {
	q := &Queue{
		client: client,
		keys: keys{
			pending:   name + ":pending",
			active:    name + ":active",
			delayed:   name + ":delayed",
			leases:    name + ":leases",
			completed: name + ":completed",
			failed:    name + ":failed",
		},
		blockTimeout: DefaultBlockTimeout,
		lease:        domain.DefaultLease,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Connect parses a redis:// URL and checks the server is reachable.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (q *Queue) Enqueue(ctx context.Context, desc domain.JobDescriptor) error {
	raw, err := json.Marshal(entry{Descriptor: desc, EnqueuedAt: q.now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	if err := q.client.LPush(ctx, q.keys.pending, raw).Err(); err != nil {
		return fmt.Errorf("enqueue job %s: %w", desc.JobID, err)
	}
	return nil
}

func (q *Queue) Dequeue(ctx context.Context) (*domain.Delivery, error) {
	if err := q.promoteDue(ctx); err != nil {
		return nil, err
	}

	raw, err := q.client.BRPopLPush(ctx, q.keys.pending, q.keys.active, q.blockTimeout).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("claim entry: %w", err)
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		// Malformed entries are parked in the failed list.
		pipe := q.client.TxPipeline()
		pipe.LRem(ctx, q.keys.active, 1, raw)
		pipe.LPush(ctx, q.keys.failed, raw)
		_, _ = pipe.Exec(ctx)
		return nil, fmt.Errorf("decode entry: %w", err)
	}

	if err := q.client.ZAdd(ctx, q.keys.leases, redis.Z{Score: float64(q.deadline()), Member: raw}).Err(); err != nil {
		return nil, fmt.Errorf("lease job %s: %w", e.Descriptor.JobID, err)
	}

	return &domain.Delivery{
		ID:         e.Descriptor.JobID,
		Descriptor: e.Descriptor,
		Attempt:    e.Attempts + 1,
		Receipt:    raw,
	}, nil
}

// promoteDue moves delayed entries whose ready time has passed onto pending.
func (q *Queue) promoteDue(ctx context.Context) error {
	now := strconv.FormatInt(q.now().UnixMilli(), 10)
	due, err := q.client.ZRangeByScore(ctx, q.keys.delayed, &redis.ZRangeBy{Min: "-inf", Max: now}).Result()
	if err != nil {
		return fmt.Errorf("read delayed entries: %w", err)
	}
	for _, raw := range due {
		// ZREM wins the race when several workers see the same entry.
		removed, err := q.client.ZRem(ctx, q.keys.delayed, raw).Result()
		if err != nil {
			return fmt.Errorf("promote delayed entry: %w", err)
		}
		if removed == 0 {
			continue
		}
		if err := q.client.RPush(ctx, q.keys.pending, raw).Err(); err != nil {
			return fmt.Errorf("promote delayed entry: %w", err)
		}
	}
	return nil
}

func (q *Queue) Ack(ctx context.Context, d *domain.Delivery) error {
	return q.finish(ctx, d, q.keys.completed, "")
}

func (q *Queue) Fail(ctx context.Context, d *domain.Delivery, reason string) error {
	return q.finish(ctx, d, q.keys.failed, reason)
}

func (q *Queue) finish(ctx context.Context, d *domain.Delivery, list, reason string) error {
	raw, err := json.Marshal(entry{
		Descriptor: d.Descriptor,
		Attempts:   d.Attempt,
		Error:      reason,
		FinishedAt: q.now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	pipe := q.client.TxPipeline()
	pipe.LRem(ctx, q.keys.active, 1, d.Receipt)
	pipe.ZRem(ctx, q.keys.leases, d.Receipt)
	pipe.LPush(ctx, list, raw)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("finish job %s: %w", d.ID, err)
	}
	return nil
}

func (q *Queue) Retry(ctx context.Context, d *domain.Delivery, delay time.Duration) error {
	raw, err := json.Marshal(entry{
		Descriptor: d.Descriptor,
		Attempts:   d.Attempt,
		EnqueuedAt: q.now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	pipe := q.client.TxPipeline()
	pipe.LRem(ctx, q.keys.active, 1, d.Receipt)
	pipe.ZRem(ctx, q.keys.leases, d.Receipt)
	if delay <= 0 {
		pipe.RPush(ctx, q.keys.pending, raw)
	} else {
		readyAt := q.now().Add(delay).UnixMilli()
		pipe.ZAdd(ctx, q.keys.delayed, redis.Z{Score: float64(readyAt), Member: raw})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("retry job %s: %w", d.ID, err)
	}
	return nil
}

func (q *Queue) deadline() int64 {
	return q.now().Add(q.lease).UnixMilli()
}

// Extend renews the lease on a claimed entry. The receipt is the exact
// entry bytes, so an entry that was recovered no longer matches it.
func (q *Queue) Extend(ctx context.Context, d *domain.Delivery) error {
	held, err := extendScript.Run(ctx, q.client, []string{q.keys.leases}, d.Receipt, q.deadline()).Int()
	if err != nil {
		return fmt.Errorf("extend lease of job %s: %w", d.ID, err)
	}
	if held == 0 {
		return fmt.Errorf("job %s attempt %d: %w", d.ID, d.Attempt, domain.ErrLeaseLost)
	}
	return nil
}

// Recover moves active entries whose lease ran out back to pending. The
// interrupted attempt stays counted.
func (q *Queue) Recover(ctx context.Context) error {
	stranded, err := q.client.LRange(ctx, q.keys.active, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("list active entries: %w", err)
	}
	now := q.now().UnixMilli()
	recovered := 0
	for _, raw := range stranded {
		var e entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue
		}
		e.Attempts++
		updated, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode entry: %w", err)
		}
		moved, err := recoverScript.Run(ctx, q.client,
			[]string{q.keys.active, q.keys.leases, q.keys.pending},
			raw, now, q.deadline(), updated).Int()
		if err != nil {
			return fmt.Errorf("recover job %s: %w", e.Descriptor.JobID, err)
		}
		recovered += moved
	}
	if recovered > 0 {
		logger.Warn.Printf("recovered %d queue entries with expired leases", recovered)
	}
	return nil
}

// Prune trims the finished lists. Both are newest first, so retention keeps
// the head.
func (q *Queue) Prune(ctx context.Context, policy domain.RetentionPolicy) (int, error) {
	removed := 0

	n, err := q.trim(ctx, q.keys.completed, policy.KeepCompleted)
	if err != nil {
		return removed, err
	}
	removed += n

	if policy.KeepCompletedAge > 0 {
		cutoff := q.now().Add(-policy.KeepCompletedAge).UnixMilli()
		items, err := q.client.LRange(ctx, q.keys.completed, 0, -1).Result()
		if err != nil {
			return removed, fmt.Errorf("list completed entries: %w", err)
		}
		keep := len(items)
		for keep > 0 {
			var e entry
			if err := json.Unmarshal([]byte(items[keep-1]), &e); err == nil && e.FinishedAt >= cutoff {
				break
			}
			keep--
		}
		n, err := q.trim(ctx, q.keys.completed, keep)
		if err != nil {
			return removed, err
		}
		removed += n
	}

	n, err = q.trim(ctx, q.keys.failed, policy.KeepFailed)
	if err != nil {
		return removed, err
	}
	return removed + n, nil
}

func (q *Queue) trim(ctx context.Context, key string, keep int) (int, error) {
	if keep < 0 {
		return 0, nil
	}
	before, err := q.client.LLen(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("length of %s: %w", key, err)
	}
	if before <= int64(keep) {
		return 0, nil
	}
	if keep == 0 {
		err = q.client.Del(ctx, key).Err()
	} else {
		err = q.client.LTrim(ctx, key, 0, int64(keep-1)).Err()
	}
	if err != nil {
		return 0, fmt.Errorf("trim %s: %w", key, err)
	}
	return int(before) - keep, nil
}

func (q *Queue) Stats(ctx context.Context) (domain.QueueStats, error) {
	pipe := q.client.Pipeline()
	pending := pipe.LLen(ctx, q.keys.pending)
	delayed := pipe.ZCard(ctx, q.keys.delayed)
	active := pipe.LLen(ctx, q.keys.active)
	completed := pipe.LLen(ctx, q.keys.completed)
	failed := pipe.LLen(ctx, q.keys.failed)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.QueueStats{}, fmt.Errorf("queue stats: %w", err)
	}
	return domain.QueueStats{
		Pending:   int(pending.Val() + delayed.Val()),
		Active:    int(active.Val()),
		Completed: int(completed.Val()),
		Failed:    int(failed.Val()),
	}, nil
}

var _ port.WorkQueue = (*Queue)(nil)
