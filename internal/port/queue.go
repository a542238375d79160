package port

import (
	"context"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
)

// WorkQueue is a durable FIFO of job descriptors with at-least-once delivery.
type WorkQueue interface {
	Enqueue(ctx context.Context, desc domain.JobDescriptor) error
	// Dequeue claims the next ready entry. It returns nil, nil when none is
	// ready.
	Dequeue(ctx context.Context) (*domain.Delivery, error)
	Ack(ctx context.Context, d *domain.Delivery) error
	// Retry returns the entry to pending after delay. d.Attempt is stored as
	// the number of attempts consumed; the next claim is d.Attempt+1.
	Retry(ctx context.Context, d *domain.Delivery, delay time.Duration) error
	Fail(ctx context.Context, d *domain.Delivery, reason string) error
	// Extend renews the lease on a claimed entry. It returns
	// domain.ErrLeaseLost when the entry is no longer held by d.
	Extend(ctx context.Context, d *domain.Delivery) error
	// Recover returns active entries whose lease has expired to pending.
	Recover(ctx context.Context) error
	Prune(ctx context.Context, policy domain.RetentionPolicy) (int, error)
	Stats(ctx context.Context) (domain.QueueStats, error)
}
