package connectors

import (
	"sync"
	"time"

	"financequest/src/apperr"
	"financequest/src/metrics"
)

// QuotaGuard is the in-process rate insurance in front of the price provider: at most
// limit calls per window. The window starts with the first call and resets once it has
// fully elapsed.
type QuotaGuard struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	used        int
	windowStart time.Time
	now         func() time.Time
}

func NewQuotaGuard(limit int, window time.Duration) *QuotaGuard {
	return &QuotaGuard{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Acquire reserves one call. It fails with a RateLimitedError, without counting,
// when the window is exhausted.
func (q *QuotaGuard) Acquire() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.rollLocked()
	if q.used >= q.limit {
		return &apperr.RateLimitedError{Limit: q.limit, ResetAt: q.windowStart.Add(q.window)}
	}
	if q.used == 0 {
		q.windowStart = q.now()
	}
	q.used++
	metrics.LocalQuotaUsed.Set(float64(q.used))
	return nil
}

// Remaining returns how many calls are left in the current window.
func (q *QuotaGuard) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.rollLocked()
	return q.limit - q.used
}

func (q *QuotaGuard) Limit() int {
	return q.limit
}

// ResetAt returns when the current window expires, or the zero time if no call was made yet.
func (q *QuotaGuard) ResetAt() time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.rollLocked()
	if q.used == 0 {
		return time.Time{}
	}
	return q.windowStart.Add(q.window)
}

func (q *QuotaGuard) rollLocked() {
	if q.used > 0 && !q.now().Before(q.windowStart.Add(q.window)) {
		q.used = 0
		q.windowStart = time.Time{}
		metrics.LocalQuotaUsed.Set(0)
	}
}
