package loop

import "github.com/tomz197/galactic/internal/object"

// HUD carries the values shown in the heads-up display.
type HUD struct {
	Health int // 0..100
	Lives  int // 0..5
	Score  int
	Level  int // 1..10
	Power  int // 1..3
}

// HealthFraction returns health as a fraction of the maximum, for the health bar.
func (h HUD) HealthFraction() float64 {
	f := float64(h.Health) / float64(object.MaxHealth)
	return min(max(f, 0), 1)
}

// Frame is a read-only view of the session handed to a Presenter.
// The slices alias session state and are only valid until the next Step.
type Frame struct {
	State        GameState
	Screen       object.Screen
	Player       *object.Player // nil once the player has been removed
	Bullets      []*object.Bullet
	EnemyBullets []*object.Bullet
	Enemies      []object.Hostile
	PowerUps     []*object.PowerUp
	Particles    *object.ParticleSystem
	HUD          HUD
}

// Presenter turns a frame into output: terminal cells, a window, a test recorder.
type Presenter interface {
	Present(f Frame) error
}

// Frame builds the presentation view of the current state.
func (s *Session) Frame() Frame {
	f := Frame{
		State:        s.GameState,
		Screen:       s.Screen,
		Bullets:      s.Bullets,
		EnemyBullets: s.EnemyBullets,
		Enemies:      s.Enemies,
		PowerUps:     s.PowerUps,
		Particles:    s.Particles,
		HUD: HUD{
			Health: s.Player.Health,
			Lives:  s.Player.Lives,
			Score:  s.Player.Score,
			Level:  s.Level,
			Power:  s.Player.PowerLevel,
		},
	}
	if s.playerActive {
		f.Player = s.Player
	}
	return f
}
