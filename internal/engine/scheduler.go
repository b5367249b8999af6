package engine

import (
	"sync"
	"time"
)

// Timer is a handle on a scheduled callback. Stop is idempotent.
type Timer interface {
	Stop()
}

// Scheduler abstracts timers so the animator and the clock can be driven
// deterministically in tests.
type Scheduler interface {
	// Every calls fn repeatedly, every d, until the timer is stopped.
	Every(d time.Duration, fn func()) Timer
	// After calls fn once after d unless the timer is stopped first.
	After(d time.Duration, fn func()) Timer
}

// RealScheduler runs callbacks on their own goroutines using the time package.
type RealScheduler struct{}

// Every starts a ticker goroutine.
func (RealScheduler) Every(d time.Duration, fn func()) Timer {
	t := &tickerTimer{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				fn()
			}
		}
	}()
	return t
}

// After wraps time.AfterFunc.
func (RealScheduler) After(d time.Duration, fn func()) Timer {
	return afterTimer{time.AfterFunc(d, fn)}
}

type tickerTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTimer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

type afterTimer struct {
	timer *time.Timer
}

func (t afterTimer) Stop() {
	t.timer.Stop()
}

// ManualScheduler is a virtual-time scheduler. Nothing fires until Advance is called,
// and callbacks run synchronously on the goroutine calling Advance.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	sched  *ManualScheduler
	id     int
	due    time.Duration
	period time.Duration // zero for one-shot timers
	fn     func()
}

// NewManualScheduler returns a scheduler whose virtual clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every schedules a repeating timer. d must be positive.
func (s *ManualScheduler) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		panic("engine: non-positive interval for ManualScheduler.Every")
	}
	return s.add(d, d, fn)
}

// After schedules a one-shot timer.
func (s *ManualScheduler) After(d time.Duration, fn func()) Timer {
	return s.add(d, 0, fn)
}

func (s *ManualScheduler) add(d, period time.Duration, fn func()) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{sched: s, id: s.seq, due: s.now + d, period: period, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves virtual time forward by d, firing every due timer in time order.
// Timers due at the same instant fire in creation order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.period > 0 {
			t.due += t.period
		} else {
			s.remove(t)
		}
		fn := t.fn
		s.mu.Unlock()
		fn()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

// Elapsed returns the virtual time since the scheduler was created.
func (s *ManualScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of live timers.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *ManualScheduler) nextDue(limit time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range s.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

// remove must be called with s.mu held.
func (s *ManualScheduler) remove(t *manualTimer) {
	for i, other := range s.timers {
		if other == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	t.sched.remove(t)
}
