package ratelimit

import (
	"sync"
	"time"
)

// Window is a sliding time-window counter keyed by adapter name. A call is
// rejected when the count of calls recorded in the trailing period has
// reached the limit; otherwise it is recorded and accepted. Safe for
// concurrent use from independent sessions.
type Window struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	enabled bool
	calls   map[string][]time.Time
	now     func() time.Time
}

// NewWindow builds a limiter allowing limit calls per key per period.
// A disabled limiter accepts everything.
func NewWindow(limit int, period time.Duration, enabled bool) *Window {
	return &Window{
		limit:   limit,
		period:  period,
		enabled: enabled,
		calls:   make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow reports whether a call for key fits in the current window and
// records it when it does.
func (w *Window) Allow(key string) bool {
	if !w.enabled {
		return true
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	windowStart := now.Add(-w.period)

	kept := w.calls[key][:0]
	for _, t := range w.calls[key] {
		if t.After(windowStart) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= w.limit {
		w.calls[key] = kept
		return false
	}

	w.calls[key] = append(kept, now)
	return true
}
