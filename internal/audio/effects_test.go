package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/galactic/internal/loop"
)

// drain streams s to completion and returns the number of samples produced.
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		total += n
		for j := 0; j < n; j++ {
			if buf[j][0] < -1.0001 || buf[j][0] > 1.0001 {
				t.Fatalf("sample %d out of range: %f", total-n+j, buf[j][0])
			}
		}
		if !ok {
			return total
		}
	}
	t.Fatal("stream never finished")
	return total
}

func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)

	if got, want := drain(t, osc), rate.N(100*time.Millisecond); got != want {
		t.Errorf("oscillator produced %d samples, want %d", got, want)
	}
	if osc.Err() != nil {
		t.Errorf("unexpected error: %v", osc.Err())
	}
}

func TestOscillatorSquare(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, rate)

	samples := make([][2]float64, 50)
	n, ok := osc.Stream(samples)
	if !ok || n != 50 {
		t.Fatalf("Stream() = %d, %v; want 50, true", n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] != 1.0 && samples[i][0] != -1.0 {
			t.Errorf("square sample %d = %f, want ±1", i, samples[i][0])
		}
	}
}

func TestSweepReachesTarget(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewSweep(100, 300, time.Second, WaveSine, rate).(*oscillator)

	buf := make([][2]float64, rate.N(time.Second))
	s.Stream(buf)
	if s.freq < 299 || s.freq > 301 {
		t.Errorf("final frequency = %f, want ~300", s.freq)
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	osc := NewOscillator(0, d, WaveSquare, rate) // Constant +1 at phase 0
	env := NewEnvelope(osc, d, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("streamed %d samples, want 100", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 (attack start)", buf[0][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("sustain sample = %f, want 1", buf[50][0])
	}
	if buf[95][0] >= buf[90][0] {
		t.Errorf("release not decreasing: %f then %f", buf[90][0], buf[95][0])
	}
}

func TestNewVolumeZero(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := newVolume(NewOscillator(440, 10*time.Millisecond, WaveSquare, rate), 0)

	buf := make([][2]float64, 64)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 || buf[i][1] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, buf[i])
		}
	}
}

func TestGetSoundEffect(t *testing.T) {
	rate := beep.SampleRate(22050)
	for st := SoundLaser; st < soundCount; st++ {
		s := GetSoundEffect(st, rate)
		if s == nil {
			t.Errorf("sound %d has no effect", st)
			continue
		}
		if n := drain(t, s); n == 0 {
			t.Errorf("sound %d produced no samples", st)
		}
	}
	if GetSoundEffect(SoundNone, rate) != nil {
		t.Error("SoundNone should have no effect")
	}
}

func TestFrameSoundsDeduplicates(t *testing.T) {
	events := []loop.Event{
		{Type: loop.EventBulletImpact},
		{Type: loop.EventEnemyDestroyed},
		{Type: loop.EventAsteroidDestroyed},
		{Type: loop.EventShotFired},
		{Type: loop.EventEnemyDestroyed},
	}
	got := FrameSounds(events)
	want := []SoundType{SoundExplosion, SoundLaser}
	if len(got) != len(want) {
		t.Fatalf("FrameSounds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FrameSounds()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPlayBeforeInitialize(t *testing.T) {
	sm := NewSoundManager(1)
	if sm.Play(SoundLaser) {
		t.Error("Play before Initialize should be a no-op")
	}
	sm.Observe([]loop.Event{{Type: loop.EventGameOver}})
	if sm.Played() != 0 {
		t.Errorf("Played() = %d, want 0", sm.Played())
	}
	sm.Cleanup() // Safe without Initialize
}
