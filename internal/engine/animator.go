package engine

import (
	"log/slog"
	"sync"

	"github.com/tartampluch/go-birthday-card/internal/config"
)

// AnimatorState is the confetti run state.
type AnimatorState int

const (
	AnimatorIdle AnimatorState = iota
	AnimatorRunning
)

func (s AnimatorState) String() string {
	switch s {
	case AnimatorRunning:
		return "running"
	default:
		return "idle"
	}
}

// Animator runs one confetti celebration at a time.
//
// While Running it owns two timers: a repeating tick that advances the
// particles and a one-shot expiry that ends the run. Both are cancelled on
// every exit from Running (expiry, Stop, or a restart).
type Animator struct {
	mu        sync.Mutex
	sched     Scheduler
	rng       RandSource
	viewport  Viewport
	state     AnimatorState
	pending   bool
	particles []Particle
	tick      Timer
	expiry    Timer

	// run identifies the current celebration; callbacks from older runs are ignored.
	run uint64

	// seq numbers frames under mu. Delivery is serialised by emitMu and a
	// frame older than the last delivered one is dropped, so the final
	// delivered frame always matches the final state.
	seq       uint64
	emitMu    sync.Mutex
	delivered uint64

	// OnFrame receives a copy of the particle set after every change.
	// It is called outside mu, possibly from a timer goroutine, and must not
	// call back into the Animator.
	OnFrame func([]Particle)
}

// frame is a particle snapshot tagged with its position in the frame order.
type frame struct {
	seq       uint64
	particles []Particle
}

// NewAnimator returns an idle animator.
func NewAnimator(sched Scheduler, rng RandSource) *Animator {
	return &Animator{
		sched: sched,
		rng:   rng,
	}
}

// State returns the current run state.
func (a *Animator) State() AnimatorState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Pending reports whether a start is waiting for the viewport to be measured.
func (a *Animator) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

// Particles returns a copy of the live particle set.
func (a *Animator) Particles() []Particle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Viewport returns the last measured drawing area.
func (a *Animator) Viewport() Viewport {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.viewport
}

// SetViewport records the drawing area. A start deferred for lack of
// dimensions begins as soon as both are non-zero. A running celebration is
// not restarted; later ticks use the new height.
func (a *Animator) SetViewport(width, height float64) {
	a.mu.Lock()
	a.viewport = Viewport{Width: width, Height: height}
	if !a.pending || !a.viewport.Known() {
		a.mu.Unlock()
		return
	}
	a.pending = false
	a.startLocked()
	f := a.frameLocked()
	a.mu.Unlock()

	a.emit(f)
}

// Start begins a celebration, restarting any run in progress.
// Without a measured viewport the start is deferred until SetViewport.
func (a *Animator) Start() {
	a.mu.Lock()
	if !a.viewport.Known() {
		a.pending = true
		a.mu.Unlock()
		slog.Debug(config.MsgConfettiDeferred, config.LogKeyComponent, config.CompConfetti)
		return
	}
	a.startLocked()
	f := a.frameLocked()
	a.mu.Unlock()

	a.emit(f)
}

// Stop cancels both timers, clears the particles and drops a pending start.
// It is the teardown path and is safe in any state.
func (a *Animator) Stop() {
	a.mu.Lock()
	wasRunning := a.state == AnimatorRunning
	a.pending = false
	a.cancelLocked()
	a.run++
	a.particles = nil
	a.state = AnimatorIdle
	f := a.frameLocked()
	a.mu.Unlock()

	if wasRunning {
		slog.Debug(config.MsgConfettiStopped, config.LogKeyComponent, config.CompConfetti)
		a.emit(f)
	}
}

// startLocked must be called with a.mu held.
func (a *Animator) startLocked() {
	a.cancelLocked()
	a.run++
	run := a.run

	a.particles = Spawn(a.rng, a.viewport)
	a.state = AnimatorRunning
	a.tick = a.sched.Every(config.ConfettiTickInterval, func() { a.onTick(run) })
	a.expiry = a.sched.After(config.ConfettiDuration, func() { a.onExpiry(run) })

	slog.Debug(config.MsgConfettiStart,
		config.LogKeyComponent, config.CompConfetti,
		config.LogKeyCount, len(a.particles),
		config.LogKeyWidth, a.viewport.Width,
		config.LogKeyHeight, a.viewport.Height)
}

// cancelLocked must be called with a.mu held.
func (a *Animator) cancelLocked() {
	if a.tick != nil {
		a.tick.Stop()
		a.tick = nil
	}
	if a.expiry != nil {
		a.expiry.Stop()
		a.expiry = nil
	}
}

func (a *Animator) onTick(run uint64) {
	a.mu.Lock()
	if run != a.run || a.state != AnimatorRunning {
		a.mu.Unlock()
		return
	}
	a.particles = Step(a.particles, a.viewport.Height)
	f := a.frameLocked()
	a.mu.Unlock()

	a.emit(f)
}

func (a *Animator) onExpiry(run uint64) {
	a.mu.Lock()
	if run != a.run {
		a.mu.Unlock()
		return
	}
	a.cancelLocked()
	a.particles = nil
	a.state = AnimatorIdle
	f := a.frameLocked()
	a.mu.Unlock()

	slog.Debug(config.MsgConfettiExpired, config.LogKeyComponent, config.CompConfetti)
	a.emit(f)
}

func (a *Animator) snapshotLocked() []Particle {
	if len(a.particles) == 0 {
		return nil
	}
	out := make([]Particle, len(a.particles))
	copy(out, a.particles)
	return out
}

// frameLocked must be called with a.mu held.
func (a *Animator) frameLocked() frame {
	a.seq++
	return frame{seq: a.seq, particles: a.snapshotLocked()}
}

// emit hands f to OnFrame unless a newer frame already went out.
func (a *Animator) emit(f frame) {
	a.emitMu.Lock()
	defer a.emitMu.Unlock()

	if f.seq <= a.delivered {
		return
	}
	a.delivered = f.seq
	if a.OnFrame != nil {
		a.OnFrame(f.particles)
	}
}
