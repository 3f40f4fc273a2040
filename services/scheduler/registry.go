package scheduler

import (
	"sync"
	"time"
)

// Registry is an in-process table of live timers, one per key. Arming a key
// that already holds a timer is a no-op, which makes start requests re-entrant
// without duplicate schedules. Cancellation is synchronous: once Cancel
// returns, the timer's callback will not run again.
type Registry struct {
	mu     sync.Mutex
	timers map[string]*timer
}

type timer struct {
	stopc chan struct{}
}

func NewRegistry() *Registry {
	return &Registry{timers: make(map[string]*timer)}
}

// Interval arms a recurring timer under key. Returns false when the key is
// already armed.
func (r *Registry) Interval(key string, every time.Duration, fn func()) bool {
	t, ok := r.arm(key)
	if !ok {
		return false
	}

	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-t.stopc:
				return
			case <-ticker.C:
				// A cancel racing the tick wins.
				select {
				case <-t.stopc:
					return
				default:
				}
				fn()
			}
		}
	}()
	return true
}

// Timeout arms a one-shot timer under key. The timer removes itself from the
// registry right before running its callback, so the key can be re-armed from
// inside fn. Returns false when the key is already armed.
func (r *Registry) Timeout(key string, after time.Duration, fn func()) bool {
	t, ok := r.arm(key)
	if !ok {
		return false
	}

	go func() {
		tm := time.NewTimer(after)
		defer tm.Stop()
		select {
		case <-t.stopc:
			return
		case <-tm.C:
			// Only run if we still own the key: a concurrent Cancel that got
			// there first wins and suppresses the fire.
			if r.disarm(key, t) {
				fn()
			}
		}
	}()
	return true
}

// Cancel disarms the timer under key. Returns false when no timer was armed.
func (r *Registry) Cancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.timers[key]
	if !ok {
		return false
	}
	delete(r.timers, key)
	close(t.stopc)
	return true
}

// Exists reports whether a timer is currently armed under key.
func (r *Registry) Exists(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.timers[key]
	return ok
}

func (r *Registry) arm(key string) (*timer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.timers[key]; ok {
		return nil, false
	}
	t := &timer{stopc: make(chan struct{})}
	r.timers[key] = t
	return t, true
}

// disarm removes key only if it still maps to t, and reports whether it did.
func (r *Registry) disarm(key string, t *timer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.timers[key]
	if !ok || cur != t {
		return false
	}
	delete(r.timers, key)
	close(t.stopc)
	return true
}
