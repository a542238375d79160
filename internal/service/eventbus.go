package service

import (
	"sync"

	"github.com/bnema/vidlingo/internal/domain"
)

const (
	EventTypeProgress = "progress"
	EventTypeStatus   = "status"
)

// subscriberBuffer is how many events a slow reader may fall behind before
// newer ones are dropped for it.
const subscriberBuffer = 16

// EventPublisher receives job progress from the Orchestrator.
type EventPublisher interface {
	Publish(jobID string, event Event)
}

// Event is one progress or status change of a job, as streamed to clients.
type Event struct {
	Type     string `json:"type"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Message  string `json:"message,omitempty"`
}

// Terminal reports whether the event closes the job's stream.
func (e Event) Terminal() bool {
	return e.Type == EventTypeStatus && domain.JobStatus(e.Status).IsTerminal()
}

// EventBus fans job events out to in-process listeners keyed by job id.
// Publishing never blocks on a listener.
type EventBus struct {
	lock      sync.RWMutex
	listeners map[string]map[chan Event]struct{}
	total     int
}

func NewEventBus() *EventBus {
	return &EventBus{listeners: make(map[string]map[chan Event]struct{})}
}

func (b *EventBus) Subscribe(jobID string) chan Event {
	ch := make(chan Event, subscriberBuffer)

	b.lock.Lock()
	set, ok := b.listeners[jobID]
	if !ok {
		set = make(map[chan Event]struct{})
		b.listeners[jobID] = set
	}
	set[ch] = struct{}{}
	b.total++
	b.lock.Unlock()

	return ch
}

// Unsubscribe removes and closes ch. Unknown channels are ignored.
func (b *EventBus) Unsubscribe(jobID string, ch chan Event) {
	b.lock.Lock()
	defer b.lock.Unlock()

	set := b.listeners[jobID]
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	b.total--
	close(ch)
	if len(set) == 0 {
		delete(b.listeners, jobID)
	}
}

func (b *EventBus) Publish(jobID string, event Event) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	for ch := range b.listeners[jobID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of open subscriptions across all jobs.
func (b *EventBus) SubscriberCount() int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.total
}
