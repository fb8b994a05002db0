package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/galactic/internal/loop"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundType identifies a sound effect.
type SoundType int

const (
	SoundNone SoundType = iota
	SoundLaser
	SoundEnemyLaser
	SoundExplosion
	SoundHit
	SoundLifeLost
	SoundPowerUp
	SoundLevelUp
	SoundGameOver
	soundCount
)

// SoundFor maps a game event to its sound effect. Events without a sound map to SoundNone.
func SoundFor(t loop.EventType) SoundType {
	switch t {
	case loop.EventShotFired:
		return SoundLaser
	case loop.EventEnemyFired:
		return SoundEnemyLaser
	case loop.EventEnemyDestroyed, loop.EventAsteroidDestroyed:
		return SoundExplosion
	case loop.EventPlayerHit:
		return SoundHit
	case loop.EventLifeLost:
		return SoundLifeLost
	case loop.EventPowerUpCollected:
		return SoundPowerUp
	case loop.EventLevelUp:
		return SoundLevelUp
	case loop.EventGameOver:
		return SoundGameOver
	default:
		return SoundNone
	}
}

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      uint64
}

// NewSoundManager creates a sound manager with the given master volume in [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(newVolume(sm.mixer, sm.volume))
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	sm.initialized = false
}

// Play starts a sound effect. It is a no-op before Initialize.
func (sm *SoundManager) Play(st SoundType) bool {
	s := GetSoundEffect(st, sampleRate)
	if s == nil {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return false
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played++
	return true
}

// Played returns the number of effects started so far.
func (sm *SoundManager) Played() uint64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// Observe plays the sounds for one frame's events, each sound at most once per frame.
func (sm *SoundManager) Observe(events []loop.Event) {
	for _, st := range FrameSounds(events) {
		sm.Play(st)
	}
}

// FrameSounds returns the distinct sounds for one frame's events, in event order.
func FrameSounds(events []loop.Event) []SoundType {
	var seen [soundCount]bool
	var out []SoundType
	for _, ev := range events {
		st := SoundFor(ev.Type)
		if st == SoundNone || seen[st] {
			continue
		}
		seen[st] = true
		out = append(out, st)
	}
	return out
}

var _ loop.EventObserver = (*SoundManager)(nil)
