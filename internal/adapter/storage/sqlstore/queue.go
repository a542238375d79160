package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/infrastructure/logger"
	"github.com/bnema/vidlingo/internal/port"
)

// Queue is the queue_entries table viewed as a port.WorkQueue. Timestamps
// are unix milliseconds so both dialects compare them the same way.
//
// A claimed entry carries a lease_until deadline. Workers renew it with
// Extend while they run the job, and Recover only takes back entries whose
// deadline has passed, so several processes can share one table.
type Queue struct {
	store *Store
	lease time.Duration
	now   func() time.Time
}

type QueueOption func(*Queue)

// WithLease sets how long a claim stays valid without renewal.
func WithLease(d time.Duration) QueueOption {
	return func(q *Queue) {
		if d > 0 {
			q.lease = d
		}
	}
}

func NewQueue(store *Store, opts ...QueueOption) *Queue {
	q := &Queue{store: store, lease: domain.DefaultLease, now: time.Now}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *Queue) millis() int64 {
	return q.now().UnixMilli()
}

func (q *Queue) Enqueue(ctx context.Context, desc domain.JobDescriptor) error {
	payload, err := json.Marshal(desc)
	if err != nil {
		return fmt.Errorf("encode descriptor: %w", err)
	}
	now := q.millis()
	_, err = q.store.exec(ctx, `INSERT INTO queue_entries
		(job_id, payload, state, attempts, available_at, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?, ?)`,
		desc.JobID, string(payload), string(domain.EntryPending), now, now, now)
	if err != nil {
		return fmt.Errorf("enqueue job %s: %w", desc.JobID, err)
	}
	return nil
}

func (q *Queue) Dequeue(ctx context.Context) (*domain.Delivery, error) {
	lock := ""
	if q.store.dialect == DialectPostgres {
		lock = " FOR UPDATE SKIP LOCKED"
	}
	now := q.millis()

	var (
		id       int64
		payload  string
		attempts int
	)
	err := q.store.queryRow(ctx, `UPDATE queue_entries
		SET state = ?, attempts = attempts + 1, lease_until = ?, updated_at = ?
		WHERE id = (
			SELECT id FROM queue_entries
			WHERE state = ? AND available_at <= ?
			ORDER BY available_at, id
			LIMIT 1`+lock+`
		)
		RETURNING id, payload, attempts`,
		string(domain.EntryActive), now+q.lease.Milliseconds(), now, string(domain.EntryPending), now,
	).Scan(&id, &payload, &attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("claim queue entry: %w", err)
	}

	var desc domain.JobDescriptor
	if err := json.Unmarshal([]byte(payload), &desc); err != nil {
		// A payload we cannot read will never succeed.
		_, _ = q.store.exec(ctx, `UPDATE queue_entries SET state = ?, error_message = ?, updated_at = ? WHERE id = ?`,
			string(domain.EntryFailed), "malformed payload", now, id)
		return nil, fmt.Errorf("decode queue entry %d: %w", id, err)
	}

	return &domain.Delivery{
		ID:         desc.JobID,
		Descriptor: desc,
		Attempt:    attempts,
		Receipt:    strconv.FormatInt(id, 10),
	}, nil
}

func (q *Queue) Ack(ctx context.Context, d *domain.Delivery) error {
	return q.transition(ctx, d, domain.EntryCompleted, "")
}

func (q *Queue) Fail(ctx context.Context, d *domain.Delivery, reason string) error {
	return q.transition(ctx, d, domain.EntryFailed, reason)
}

func (q *Queue) transition(ctx context.Context, d *domain.Delivery, state domain.EntryState, reason string) error {
	id, err := receipt(d)
	if err != nil {
		return err
	}
	_, err = q.store.exec(ctx, `UPDATE queue_entries SET state = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		string(state), reason, q.millis(), id)
	if err != nil {
		return fmt.Errorf("mark entry %d %s: %w", id, state, err)
	}
	return nil
}

func (q *Queue) Retry(ctx context.Context, d *domain.Delivery, delay time.Duration) error {
	id, err := receipt(d)
	if err != nil {
		return err
	}
	now := q.now()
	_, err = q.store.exec(ctx, `UPDATE queue_entries
		SET state = ?, attempts = ?, available_at = ?, updated_at = ?
		WHERE id = ?`,
		string(domain.EntryPending), d.Attempt, now.Add(delay).UnixMilli(), now.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("retry entry %d: %w", id, err)
	}
	return nil
}

// Extend pushes the lease of a claimed entry forward. The entry must still
// be active on the same attempt; otherwise it was recovered and claimed again.
func (q *Queue) Extend(ctx context.Context, d *domain.Delivery) error {
	id, err := receipt(d)
	if err != nil {
		return err
	}
	now := q.millis()
	res, err := q.store.exec(ctx, `UPDATE queue_entries SET lease_until = ?, updated_at = ?
		WHERE id = ? AND state = ? AND attempts = ?`,
		now+q.lease.Milliseconds(), now, id, string(domain.EntryActive), d.Attempt)
	if err != nil {
		return fmt.Errorf("extend lease of entry %d: %w", id, err)
	}
	if affected(res) == 0 {
		return fmt.Errorf("entry %d attempt %d: %w", id, d.Attempt, domain.ErrLeaseLost)
	}
	return nil
}

// Recover hands entries whose lease ran out back to pending. The
// interrupted attempt stays counted.
func (q *Queue) Recover(ctx context.Context) error {
	now := q.millis()
	res, err := q.store.exec(ctx, `UPDATE queue_entries SET state = ?, lease_until = 0, updated_at = ?
		WHERE state = ? AND lease_until < ?`,
		string(domain.EntryPending), now, string(domain.EntryActive), now)
	if err != nil {
		return fmt.Errorf("recover expired entries: %w", err)
	}
	if n := affected(res); n > 0 {
		logger.Warn.Printf("recovered %d queue entries with expired leases", n)
	}
	return nil
}

func (q *Queue) Prune(ctx context.Context, policy domain.RetentionPolicy) (int, error) {
	var removed int64

	if policy.KeepCompletedAge > 0 {
		cutoff := q.now().Add(-policy.KeepCompletedAge).UnixMilli()
		res, err := q.store.exec(ctx, `DELETE FROM queue_entries WHERE state = ? AND updated_at < ?`,
			string(domain.EntryCompleted), cutoff)
		if err != nil {
			return 0, fmt.Errorf("prune aged entries: %w", err)
		}
		removed += affected(res)
	}

	caps := []struct {
		state domain.EntryState
		keep  int
	}{
		{domain.EntryCompleted, policy.KeepCompleted},
		{domain.EntryFailed, policy.KeepFailed},
	}
	for _, c := range caps {
		if c.keep < 0 {
			continue
		}
		res, err := q.store.exec(ctx, `DELETE FROM queue_entries
			WHERE state = ? AND id NOT IN (
				SELECT id FROM queue_entries WHERE state = ?
				ORDER BY updated_at DESC, id DESC LIMIT ?
			)`,
			string(c.state), string(c.state), c.keep)
		if err != nil {
			return int(removed), fmt.Errorf("prune %s entries: %w", c.state, err)
		}
		removed += affected(res)
	}
	return int(removed), nil
}

func (q *Queue) Stats(ctx context.Context) (domain.QueueStats, error) {
	rows, err := q.store.query(ctx, `SELECT state, COUNT(1) FROM queue_entries GROUP BY state`)
	if err != nil {
		return domain.QueueStats{}, fmt.Errorf("queue stats: %w", err)
	}
	defer rows.Close()

	var stats domain.QueueStats
	for rows.Next() {
		var (
			state string
			count int
		)
		if err := rows.Scan(&state, &count); err != nil {
			return domain.QueueStats{}, err
		}
		switch domain.EntryState(state) {
		case domain.EntryPending:
			stats.Pending = count
		case domain.EntryActive:
			stats.Active = count
		case domain.EntryCompleted:
			stats.Completed = count
		case domain.EntryFailed:
			stats.Failed = count
		}
	}
	return stats, rows.Err()
}

func receipt(d *domain.Delivery) (int64, error) {
	id, err := strconv.ParseInt(d.Receipt, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid receipt %q: %w", d.Receipt, err)
	}
	return id, nil
}

func affected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

var _ port.WorkQueue = (*Queue)(nil)
