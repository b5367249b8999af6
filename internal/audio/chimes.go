// Package audio synthesizes the card's chimes with beep.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/tartampluch/go-birthday-card/internal/config"
)

// SampleRate is the rate every chime is rendered at.
const SampleRate = beep.SampleRate(config.AudioSampleRate)

// NewPuff returns the short breath of noise played when a candle goes out.
func NewPuff() beep.Streamer {
	noise := newVoice(0, config.PuffDuration)
	shaped := newEnvelope(noise, config.PuffDuration, config.PuffAttack, config.PuffDuration-config.PuffAttack)
	return withVolume(shaped, config.PuffVolume)
}

// NewFanfare returns the rising arpeggio played when the celebration starts.
func NewFanfare() beep.Streamer {
	notes := make([]beep.Streamer, 0, len(config.FanfareNotes))
	for _, freq := range config.FanfareNotes {
		tone := newVoice(freq, config.FanfareNoteDuration)
		notes = append(notes, newEnvelope(tone, config.FanfareNoteDuration, config.FanfareAttack, config.FanfareRelease))
	}
	return withVolume(beep.Seq(notes...), config.FanfareVolume)
}

// voice is a sine oscillator, or white noise when freq is zero.
type voice struct {
	freq     float64
	phase    float64
	position int
	length   int
}

func newVoice(freq float64, d time.Duration) *voice {
	return &voice{freq: freq, length: SampleRate.N(d)}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.position >= v.length {
			return i, i > 0
		}

		var val float64
		if v.freq == 0 {
			val = rand.Float64()*2 - 1
		} else {
			val = math.Sin(2 * math.Pi * v.phase)
			v.phase += v.freq / float64(SampleRate)
			v.phase -= math.Floor(v.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		v.position++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	total        int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration) *envelope {
	total := SampleRate.N(duration)
	return &envelope{
		streamer:     s,
		attack:       SampleRate.N(attack),
		releaseStart: max(total-SampleRate.N(release), 0),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		switch {
		case e.position < e.attack:
			gain = float64(e.position) / float64(e.attack)
		case e.position >= e.releaseStart && e.total > e.releaseStart:
			gain = float64(e.total-e.position) / float64(e.total-e.releaseStart)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly; log2(0) is -Inf, so zero means silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
