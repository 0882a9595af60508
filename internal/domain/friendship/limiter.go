package friendship

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WindowCounter reports a sender's recent requests
type WindowCounter interface {
	SentSince(ctx context.Context, senderID uuid.UUID, since time.Time) (count int, oldest time.Time, err error)
}

// Decision is the outcome of a rate limit check
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter allows at most limit requests per sender within a sliding window.
// The window is recomputed from stored requests on every call, so every
// instance sharing the database sees the same count.
type Limiter struct {
	counter WindowCounter
	limit   int
	window  time.Duration
}

// NewLimiter creates a friend request limiter
func NewLimiter(counter WindowCounter, limit int, window time.Duration) *Limiter {
	return &Limiter{counter: counter, limit: limit, window: window}
}

// Allow checks whether senderID may send another request at now.
// The window's lower bound is inclusive.
func (l *Limiter) Allow(ctx context.Context, senderID uuid.UUID, now time.Time) (Decision, error) {
	count, oldest, err := l.counter.SentSince(ctx, senderID, now.Add(-l.window))
	if err != nil {
		return Decision{}, err
	}

	if count < l.limit {
		return Decision{Allowed: true}, nil
	}

	retryAfter := oldest.Add(l.window).Sub(now)
	if retryAfter <= 0 {
		retryAfter = time.Second
	}
	return Decision{Allowed: false, RetryAfter: retryAfter}, nil
}
