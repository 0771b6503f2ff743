package ratelimit

import (
	"sync"
	"time"
)

// Limiter - rate limiter на юзера (sliding window).
type Limiter struct {
	mu       sync.Mutex
	requests map[int64][]time.Time
	limit    int
	window   time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

type Config struct {
	RequestsPerMinute int
}

func New(cfg Config) *Limiter {
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 10
	}

	l := &Limiter{
		requests: make(map[int64][]time.Time),
		limit:    limit,
		window:   time.Minute,
		stopChan: make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *Limiter) Allow(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	fresh := l.trim(userID, now)

	if len(fresh) >= l.limit {
		l.requests[userID] = fresh
		return false
	}

	l.requests[userID] = append(fresh, now)
	return true
}

// ResetTime - когда освободится слот для юзера (приблизительно).
func (l *Limiter) ResetTime(userID int64) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.requests[userID]
	if len(ts) == 0 {
		return time.Now()
	}

	oldest := ts[0]
	for _, t := range ts[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}
	return oldest.Add(l.window)
}

func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// trim выкидывает записи старше окна; вызывать под мьютексом
func (l *Limiter) trim(userID int64, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	old := l.requests[userID]
	fresh := old[:0]
	for _, t := range old {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}
	return fresh
}

func (l *Limiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.mu.Lock()
			now := time.Now()
			for uid := range l.requests {
				if fresh := l.trim(uid, now); len(fresh) == 0 {
					delete(l.requests, uid)
				} else {
					l.requests[uid] = fresh
				}
			}
			l.mu.Unlock()
		}
	}
}
