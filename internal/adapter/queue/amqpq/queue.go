// Package amqpq is a work queue on a RabbitMQ broker.
//
// Jobs wait on a durable queue named after the queue. A delayed retry is
// published to "<name>.retry" with a per-message TTL; that queue has no
// consumers and dead-letters expired messages back onto the main queue.
// Entries that exhaust their attempts are parked on "<name>.failed".
package amqpq

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/port"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	headerAttempts = "x-attempts"
	headerError    = "x-error"
)

// Channel is the subset of *amqp.Channel the queue uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueDeclarePassive(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Get(queue string, autoAck bool) (amqp.Delivery, bool, error)
	Ack(tag uint64, multiple bool) error
	Nack(tag uint64, multiple, requeue bool) error
	IsClosed() bool
	Close() error
}

type Queue struct {
	ch     Channel
	conn   *amqp.Connection
	main   string
	retry  string
	failed string

	mu        sync.Mutex
	inFlight  map[uint64]struct{}
	completed int
}

// Dial connects to the broker and declares the queue topology.
func Dial(url, name string) (*Queue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	q, err := New(ch, name)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	q.conn = conn
	return q, nil
}

func New(ch Channel, name string) (*Queue, error) {
	q := &Queue{
		ch:       ch,
		main:     name,
		retry:    name + ".retry",
		failed:   name + ".failed",
		inFlight: make(map[uint64]struct{}),
	}
	if _, err := ch.QueueDeclare(q.main, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", q.main, err)
	}
	if _, err := ch.QueueDeclare(q.retry, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": q.main,
	}); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", q.retry, err)
	}
	if _, err := ch.QueueDeclare(q.failed, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", q.failed, err)
	}
	return q, nil
}

func (q *Queue) Close() error {
	err := q.ch.Close()
	if q.conn != nil {
		if cerr := q.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (q *Queue) publish(ctx context.Context, queue string, desc domain.JobDescriptor, headers amqp.Table, expiration string) error {
	body, err := json.Marshal(desc)
	if err != nil {
		return fmt.Errorf("encode descriptor: %w", err)
	}
	return q.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    desc.JobID,
		Headers:      headers,
		Expiration:   expiration,
		Body:         body,
	})
}

func (q *Queue) Enqueue(ctx context.Context, desc domain.JobDescriptor) error {
	if err := q.publish(ctx, q.main, desc, amqp.Table{headerAttempts: int32(0)}, ""); err != nil {
		return fmt.Errorf("enqueue job %s: %w", desc.JobID, err)
	}
	return nil
}

func (q *Queue) Dequeue(ctx context.Context) (*domain.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	msg, ok, err := q.ch.Get(q.main, false)
	if err != nil {
		return nil, fmt.Errorf("get from %s: %w", q.main, err)
	}
	if !ok {
		return nil, nil
	}

	var desc domain.JobDescriptor
	if err := json.Unmarshal(msg.Body, &desc); err != nil {
		// Dead on arrival; do not requeue.
		_ = q.ch.Nack(msg.DeliveryTag, false, false)
		return nil, fmt.Errorf("decode message %d: %w", msg.DeliveryTag, err)
	}

	q.mu.Lock()
	q.inFlight[msg.DeliveryTag] = struct{}{}
	q.mu.Unlock()

	return &domain.Delivery{
		ID:         desc.JobID,
		Descriptor: desc,
		Attempt:    attempts(msg.Headers) + 1,
		Receipt:    strconv.FormatUint(msg.DeliveryTag, 10),
	}, nil
}

func (q *Queue) Ack(_ context.Context, d *domain.Delivery) error {
	if err := q.settle(d); err != nil {
		return err
	}
	q.mu.Lock()
	q.completed++
	q.mu.Unlock()
	return nil
}

// Retry republishes the entry, then acks the original so a crash in between
// duplicates rather than loses it.
func (q *Queue) Retry(ctx context.Context, d *domain.Delivery, delay time.Duration) error {
	headers := amqp.Table{headerAttempts: int32(d.Attempt)}
	target, expiration := q.main, ""
	if delay > 0 {
		target = q.retry
		expiration = strconv.FormatInt(delay.Milliseconds(), 10)
	}
	if err := q.publish(ctx, target, d.Descriptor, headers, expiration); err != nil {
		return fmt.Errorf("retry job %s: %w", d.ID, err)
	}
	return q.settle(d)
}

func (q *Queue) Fail(ctx context.Context, d *domain.Delivery, reason string) error {
	headers := amqp.Table{headerAttempts: int32(d.Attempt), headerError: reason}
	if err := q.publish(ctx, q.failed, d.Descriptor, headers, ""); err != nil {
		return fmt.Errorf("park job %s: %w", d.ID, err)
	}
	return q.settle(d)
}

func (q *Queue) settle(d *domain.Delivery) error {
	tag, err := strconv.ParseUint(d.Receipt, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid receipt %q: %w", d.Receipt, err)
	}
	if err := q.ch.Ack(tag, false); err != nil {
		return fmt.Errorf("ack message %d: %w", tag, err)
	}
	q.mu.Lock()
	delete(q.inFlight, tag)
	q.mu.Unlock()
	return nil
}

// Extend only checks the channel. The broker holds an unacknowledged message
// for as long as the channel that received it stays open.
func (q *Queue) Extend(_ context.Context, d *domain.Delivery) error {
	if q.ch.IsClosed() {
		return fmt.Errorf("job %s: channel closed: %w", d.ID, domain.ErrLeaseLost)
	}
	return nil
}

// Recover is a no-op: the broker requeues unacknowledged messages when the
// channel that received them closes.
func (q *Queue) Recover(context.Context) error {
	return nil
}

// Prune drops the oldest parked failures beyond KeepFailed. Acked messages
// are already gone from the broker.
func (q *Queue) Prune(ctx context.Context, policy domain.RetentionPolicy) (int, error) {
	if policy.KeepFailed < 0 {
		return 0, nil
	}
	info, err := q.ch.QueueDeclarePassive(q.failed, true, false, false, false, nil)
	if err != nil {
		return 0, fmt.Errorf("inspect %s: %w", q.failed, err)
	}

	removed := 0
	for excess := info.Messages - policy.KeepFailed; excess > 0; excess-- {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		msg, ok, err := q.ch.Get(q.failed, false)
		if err != nil {
			return removed, fmt.Errorf("get from %s: %w", q.failed, err)
		}
		if !ok {
			break
		}
		if err := q.ch.Ack(msg.DeliveryTag, false); err != nil {
			return removed, fmt.Errorf("drop parked message: %w", err)
		}
		removed++
	}
	return removed, nil
}

func (q *Queue) Stats(context.Context) (domain.QueueStats, error) {
	var stats domain.QueueStats
	for _, name := range []string{q.main, q.retry} {
		var args amqp.Table
		if name == q.retry {
			args = amqp.Table{"x-dead-letter-exchange": "", "x-dead-letter-routing-key": q.main}
		}
		info, err := q.ch.QueueDeclarePassive(name, true, false, false, false, args)
		if err != nil {
			return stats, fmt.Errorf("inspect %s: %w", name, err)
		}
		stats.Pending += info.Messages
	}
	info, err := q.ch.QueueDeclarePassive(q.failed, true, false, false, false, nil)
	if err != nil {
		return stats, fmt.Errorf("inspect %s: %w", q.failed, err)
	}
	stats.Failed = info.Messages

	q.mu.Lock()
	stats.Active = len(q.inFlight)
	stats.Completed = q.completed
	q.mu.Unlock()
	return stats, nil
}

func attempts(headers amqp.Table) int {
	switch v := headers[headerAttempts].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return 0
}

var (
	_ port.WorkQueue = (*Queue)(nil)
	_ Channel        = (*amqp.Channel)(nil)
)
