// Package audio synthesizes the game's sound effects and plays them through the speaker.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally sliding its pitch.
type oscillator struct {
	freq     float64
	slide    float64 // Frequency change per sample
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator whose frequency moves linearly from one pitch to another.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	var slide float64
	if samples > 0 {
		slide = (to - from) / float64(samples)
	}
	return &oscillator{
		freq:     from,
		slide:    slide,
		duration: samples,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.freq = max(o.freq+o.slide, 0)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope around s.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear volume control.
// math.Log2(0) is -Inf, so 0 volume is mapped to silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is an enveloped oscillator note.
func tone(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(from, to, d, wave, rate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, rate)
}

// Sound effect generators

// CreateLaserSound is the player's shot: a fast falling square chirp.
func CreateLaserSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(1400, 500, 90*time.Millisecond, WaveSquare, rate), 0.25)
}

// CreateEnemyLaserSound is an enemy shot: a lower saw chirp.
func CreateEnemyLaserSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(600, 250, 110*time.Millisecond, WaveSaw, rate), 0.2)
}

// CreateExplosionSound is a noise burst mixed with a falling rumble.
func CreateExplosionSound(rate beep.SampleRate) beep.Streamer {
	d := 350 * time.Millisecond
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 2*time.Millisecond, 300*time.Millisecond, rate)
	rumble := tone(120, 40, d, WaveSine, rate)
	return newVolume(beep.Mix(newVolume(noise, 0.6), newVolume(rumble, 0.6)), 0.5)
}

// CreateHitSound is the player taking damage: a short low buzz.
func CreateHitSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(180, 120, 120*time.Millisecond, WaveSaw, rate), 0.35)
}

// CreateLifeLostSound is a long descending sweep.
func CreateLifeLostSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(660, 110, 600*time.Millisecond, WaveSquare, rate), 0.3)
}

// CreatePowerUpSound is a two-note rising chime.
func CreatePowerUpSound(rate beep.SampleRate) beep.Streamer {
	n1 := tone(987.77, 987.77, 80*time.Millisecond, WaveSquare, rate)
	n2 := tone(1318.51, 1318.51, 160*time.Millisecond, WaveSquare, rate)
	return newVolume(beep.Seq(n1, n2), 0.25)
}

// CreateLevelUpSound is a rising major arpeggio.
func CreateLevelUpSound(rate beep.SampleRate) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	seq := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		seq[i] = tone(f, f, 90*time.Millisecond, WaveSine, rate)
	}
	return newVolume(beep.Seq(seq...), 0.35)
}

// CreateGameOverSound is a falling minor arpeggio.
func CreateGameOverSound(rate beep.SampleRate) beep.Streamer {
	notes := []float64{440, 349.23, 293.66, 220}
	seq := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		seq[i] = tone(f, f*0.98, 200*time.Millisecond, WaveSaw, rate)
	}
	return newVolume(beep.Seq(seq...), 0.3)
}

// GetSoundEffect returns the streamer for the given sound, or nil for SoundNone.
func GetSoundEffect(st SoundType, rate beep.SampleRate) beep.Streamer {
	switch st {
	case SoundLaser:
		return CreateLaserSound(rate)
	case SoundEnemyLaser:
		return CreateEnemyLaserSound(rate)
	case SoundExplosion:
		return CreateExplosionSound(rate)
	case SoundHit:
		return CreateHitSound(rate)
	case SoundLifeLost:
		return CreateLifeLostSound(rate)
	case SoundPowerUp:
		return CreatePowerUpSound(rate)
	case SoundLevelUp:
		return CreateLevelUpSound(rate)
	case SoundGameOver:
		return CreateGameOverSound(rate)
	default:
		return nil
	}
}
