package engine

import (
	"log/slog"
	"sync"

	"github.com/tartampluch/go-birthday-card/internal/config"
)

// CandleEvent is an input to the candle state machine.
type CandleEvent int

const (
	// EventBlow extinguishes the next lit candle.
	EventBlow CandleEvent = iota
	// EventReset relights every candle.
	EventReset
)

// CandleState is the whole candle collection, derived from a single counter.
// Slot i is extinguished iff i < Blown.
type CandleState struct {
	Blown int
}

// Remaining returns how many candles are still lit.
func (s CandleState) Remaining() int {
	return config.TotalCandles - s.Blown
}

// Lit reports whether the candle slot at index i is still burning.
func (s CandleState) Lit(i int) bool {
	return i >= s.Blown
}

// Complete reports whether every candle has been blown out.
func (s CandleState) Complete() bool {
	return s.Blown == config.TotalCandles
}

// Progress returns the blown ratio in [0, 1].
func (s CandleState) Progress() float64 {
	return float64(s.Blown) / float64(config.TotalCandles)
}

// Transition is the pure candle state machine.
// celebrate is true only on the blow that extinguishes the last candle.
func Transition(s CandleState, ev CandleEvent) (next CandleState, celebrate bool) {
	switch ev {
	case EventBlow:
		if s.Blown >= config.TotalCandles {
			return s, false
		}
		s.Blown++
		return s, s.Blown == config.TotalCandles
	case EventReset:
		return CandleState{}, false
	default:
		return s, false
	}
}

// CandleTracker owns the candle counter and notifies listeners of changes.
// Callbacks are invoked outside the internal lock, on the caller's goroutine.
type CandleTracker struct {
	mu    sync.Mutex
	state CandleState

	// OnChange is called after every transition that changed the state.
	OnChange func(CandleState)

	// OnCelebrate is called once when the last candle goes out.
	OnCelebrate func()
}

// NewCandleTracker returns a tracker with every candle lit.
func NewCandleTracker() *CandleTracker {
	return &CandleTracker{}
}

// State returns the current candle state.
func (t *CandleTracker) State() CandleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Blow extinguishes one candle. It returns false when all candles were already out.
func (t *CandleTracker) Blow() bool {
	t.mu.Lock()
	prev := t.state
	next, celebrate := Transition(prev, EventBlow)
	t.state = next
	t.mu.Unlock()

	if next == prev {
		return false
	}

	slog.Debug(config.MsgCandleBlown,
		config.LogKeyComponent, config.CompCandles,
		config.LogKeyBlown, next.Blown,
		config.LogKeyRemaining, next.Remaining())

	if t.OnChange != nil {
		t.OnChange(next)
	}
	if celebrate {
		slog.Info(config.MsgCelebration, config.LogKeyComponent, config.CompCandles)
		if t.OnCelebrate != nil {
			t.OnCelebrate()
		}
	}
	return true
}

// Reset relights every candle. It is safe at any count.
func (t *CandleTracker) Reset() {
	t.mu.Lock()
	prev := t.state
	next, _ := Transition(prev, EventReset)
	t.state = next
	t.mu.Unlock()

	slog.Debug(config.MsgCandlesReset,
		config.LogKeyComponent, config.CompCandles,
		config.LogKeyBlown, prev.Blown)

	if next != prev && t.OnChange != nil {
		t.OnChange(next)
	}
}
