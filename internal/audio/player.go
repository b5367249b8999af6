package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/tartampluch/go-birthday-card/internal/config"
)

// Player mixes chimes onto the system speaker. Until Init succeeds, and
// whenever sound is disabled, every call is a no-op.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	enabled     bool
	initialized bool
}

// NewPlayer returns an enabled player that has not opened the speaker yet.
func NewPlayer() *Player {
	return &Player{
		mixer:   &beep.Mixer{},
		enabled: true,
	}
}

// Init opens the speaker. A machine without audio output returns an error;
// callers log it and keep a silent player.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(config.AudioBufferDuration)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSpeakerInit, err)
	}
	speaker.Play(p.mixer)
	p.initialized = true

	slog.Debug(config.MsgSpeakerReady, config.LogKeyComponent, config.CompAudio)
	return nil
}

// SetEnabled toggles sound output.
func (p *Player) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Enabled reports whether chimes will be played.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Puff plays the candle puff.
func (p *Player) Puff() {
	p.play(NewPuff())
}

// Fanfare plays the celebration arpeggio.
func (p *Player) Fanfare() {
	p.play(NewFanfare())
}

// Close silences everything queued on the mixer.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
