package domain

import "time"

type EntryState string

const (
	EntryPending   EntryState = "pending"
	EntryActive    EntryState = "active"
	EntryCompleted EntryState = "completed"
	EntryFailed    EntryState = "failed"
)

// Delivery is one claimed queue entry. Attempt is 1-based. Receipt is an
// opaque backend handle used to ack or retry the entry.
type Delivery struct {
	ID         string
	Descriptor JobDescriptor
	Attempt    int
	Receipt    string
}

// DefaultLease is how long a claimed entry stays with its worker without a
// heartbeat. Recover only takes back entries whose lease has run out.
const DefaultLease = 2 * time.Minute

// RetryPolicy bounds whole-job retries.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		Multiplier:  2,
	}
}

// RetentionPolicy bounds how many finished entries a queue keeps.
type RetentionPolicy struct {
	KeepCompleted    int
	KeepCompletedAge time.Duration
	KeepFailed       int
}

func DefaultRetentionPolicy() RetentionPolicy {
	return RetentionPolicy{
		KeepCompleted:    100,
		KeepCompletedAge: 24 * time.Hour,
		KeepFailed:       50,
	}
}

type QueueStats struct {
	Pending   int
	Active    int
	Completed int
	Failed    int
}
