// Package ratelimit implements a per-key fixed-window request counter.
//
// Each key (normally the client IP) owns a counter and the start of its
// current window. The first request of a window resets the counter to one;
// later requests increment it and are admitted while it stays at or below
// the configured ceiling. Keys are spread over independently locked shards
// so that distinct origins never contend on the same mutex.
//
//	lim := ratelimit.New(ratelimit.Config{MaxRequests: 100, Window: 15 * time.Minute})
//	defer lim.Close()
//	if d := lim.Allow(ip); !d.Allowed { ... }
package ratelimit

import (
	"hash/fnv"
	"sync"
	"time"
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the key's current window ends.
	ResetAt time.Time
	// RetryAfter is set on rejections: the wait until ResetAt rounded up
	// to whole seconds.
	RetryAfter time.Duration
}

func retryAfter(reset, now time.Time) time.Duration {
	wait := reset.Sub(now)
	if wait <= 0 {
		return 0
	}
	return (wait + time.Second - 1).Truncate(time.Second)
}

type entry struct {
	count       int
	windowStart time.Time
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// Limiter counts requests per key. It is safe for concurrent use.
type Limiter struct {
	limit  int
	window time.Duration
	shards []*shard
	now    func() time.Time

	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
	done            chan struct{}
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithoutJanitor disables the background cleanup goroutine. Sweep can
// still be called directly.
func WithoutJanitor() Option {
	return func(l *Limiter) { l.cleanupInterval = 0 }
}

// New creates a Limiter and starts its janitor. Call Close to stop it.
func New(cfg Config, opts ...Option) *Limiter {
	cfg.ApplyDefaults()

	l := &Limiter{
		limit:           cfg.MaxRequests,
		window:          cfg.Window,
		shards:          make([]*shard, cfg.Shards),
		now:             time.Now,
		cleanupInterval: cfg.CleanupInterval,
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
	}
	for i := range l.shards {
		l.shards[i] = &shard{entries: make(map[string]*entry)}
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.cleanupInterval > 0 {
		go l.janitor()
	} else {
		close(l.done)
	}
	return l
}

// Limit returns the per-window ceiling.
func (l *Limiter) Limit() int { return l.limit }

// Window returns the window length.
func (l *Limiter) Window() time.Duration { return l.window }

// Allow records one request for key and reports whether it is admitted.
// A rejected request still counts toward the window.
func (l *Limiter) Allow(key string) Decision {
	now := l.now()
	s := l.shardFor(key)

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok || !now.Before(e.windowStart.Add(l.window)) {
		e = &entry{windowStart: now}
		s.entries[key] = e
	}
	e.count++
	count, start := e.count, e.windowStart
	s.mu.Unlock()

	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	d := Decision{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   start.Add(l.window),
	}
	if !d.Allowed {
		d.RetryAfter = retryAfter(d.ResetAt, now)
	}
	return d
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	n := 0
	for _, s := range l.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Sweep drops every entry whose window has elapsed and returns how many
// were removed.
func (l *Limiter) Sweep() int {
	now := l.now()
	removed := 0
	for _, s := range l.shards {
		s.mu.Lock()
		for key, e := range s.entries {
			if !now.Before(e.windowStart.Add(l.window)) {
				delete(s.entries, key)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// Close stops the janitor and waits for it to exit. Safe to call twice.
func (l *Limiter) Close() error {
	l.stopOnce.Do(func() { close(l.stop) })
	<-l.done
	return nil
}

func (l *Limiter) janitor() {
	defer close(l.done)
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return l.shards[h.Sum32()%uint32(len(l.shards))]
}
