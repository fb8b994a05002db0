// Package loop runs a game session: the per-frame update pipeline,
// spawning, combat resolution and the playing/game-over lifecycle.
package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/physics"
)

// GameState represents the current session phase.
type GameState int

const (
	StatePlaying  GameState = iota // Active gameplay
	StateGameOver                  // No lives left, waiting for restart
)

func (g GameState) String() string {
	if g == StateGameOver {
		return "game_over"
	}
	return "playing"
}

// bulletGridCellSize must cover the largest center distance at which a player
// bullet can still overlap an enemy: (80 + 15) / 2 rounded well up.
const bulletGridCellSize = 128.0

// Options configures a new session. Zero values select the defaults.
type Options struct {
	Screen object.Screen // Playfield; defaults to config.PlayfieldWidth × PlayfieldHeight
	Rand   object.Rand   // Random source; defaults to math/rand seeded from Seed
	Seed   int64         // Seed for the default random source; 0 uses the clock
	Logger *log.Logger   // Lifecycle logging; defaults to a discarding logger
}

// Session holds the complete state of one game. It is owned by a single frame
// loop and must not be shared between goroutines.
type Session struct {
	GameState    GameState
	Player       *object.Player // Stats survive removal so the HUD can show the final score
	Bullets      []*object.Bullet
	EnemyBullets []*object.Bullet
	Enemies      []object.Hostile // Enemy ships and asteroids in spawn order
	PowerUps     []*object.PowerUp
	Particles    *object.ParticleSystem
	Level        int
	Screen       object.Screen

	spawner      *object.EnemySpawner
	rand         object.Rand
	logger       *log.Logger
	toSpawn      []object.Object // Objects to add after the current phase
	events       []Event
	playerActive bool
	quit         bool
	frame        uint64

	// Reused each frame by the bullet/enemy broad phase
	bulletGrid *physics.SpatialGrid
	hitBuf     []int
}

// NewSession creates a session in the playing state with a fresh player
// and empty entity collections.
func NewSession(opts Options) *Session {
	screen := opts.Screen
	if screen.Width <= 0 || screen.Height <= 0 {
		screen = object.NewScreen(config.PlayfieldWidth, config.PlayfieldHeight)
	}

	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		GameState:    StatePlaying,
		Player:       object.NewPlayer(screen),
		Particles:    object.NewParticleSystem(rng),
		Level:        1,
		Screen:       screen,
		spawner:      object.NewEnemySpawner(),
		rand:         rng,
		logger:       logger,
		playerActive: true,
		bulletGrid:   physics.NewSpatialGrid(float64(screen.Width), float64(screen.Height), bulletGridCellSize),
	}
	return s
}

// Spawn queues an object to be added after the current phase.
// Implements object.Spawner.
func (s *Session) Spawn(obj object.Object) {
	s.toSpawn = append(s.toSpawn, obj)
}

// flushSpawned moves all queued objects into their collections and clears the queue.
func (s *Session) flushSpawned() {
	for _, obj := range s.toSpawn {
		switch o := obj.(type) {
		case *object.Bullet:
			if o.Side == object.SideEnemy {
				s.EnemyBullets = append(s.EnemyBullets, o)
			} else {
				s.Bullets = append(s.Bullets, o)
			}
		case *object.PowerUp:
			s.PowerUps = append(s.PowerUps, o)
		case object.Hostile:
			s.Enemies = append(s.Enemies, o)
		}
	}
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// compact drops every entity marked destroyed from every collection.
func (s *Session) compact() {
	s.Bullets = object.Compact(s.Bullets)
	s.EnemyBullets = object.Compact(s.EnemyBullets)
	s.Enemies = object.Compact(s.Enemies)
	s.PowerUps = object.Compact(s.PowerUps)
}

// Entities returns every active entity: the player (while in play) followed by
// bullets, enemy bullets, enemies and power-ups. The index is derived from the
// category collections, so the two can never disagree.
func (s *Session) Entities() []object.Object {
	all := make([]object.Object, 0, 1+len(s.Bullets)+len(s.EnemyBullets)+len(s.Enemies)+len(s.PowerUps))
	if s.playerActive {
		all = append(all, s.Player)
	}
	for _, b := range s.Bullets {
		all = append(all, b)
	}
	for _, b := range s.EnemyBullets {
		all = append(all, b)
	}
	for _, e := range s.Enemies {
		all = append(all, e)
	}
	for _, p := range s.PowerUps {
		all = append(all, p)
	}
	return all
}

// PlayerActive reports whether the player entity is in play.
func (s *Session) PlayerActive() bool {
	return s.playerActive
}

// Quit reports whether a quit intent has been received.
func (s *Session) Quit() bool {
	return s.quit
}

// Events returns the events produced by the last Step.
// The slice is only valid until the next Step.
func (s *Session) Events() []Event {
	return s.events
}

// FrameCount returns the number of steps taken so far.
func (s *Session) FrameCount() uint64 {
	return s.frame
}

// SpawnTimer returns the frames elapsed since the last enemy wave.
func (s *Session) SpawnTimer() int {
	return s.spawner.Timer()
}

// Restart resets the session after a game over: fresh player stats and
// position, empty collections and particles, spawn timer and level back to start.
// Ignored while still playing.
func (s *Session) Restart() {
	if s.GameState != StateGameOver {
		return
	}

	s.Player.Reset(s.Screen)
	s.playerActive = true

	clear(s.Bullets)
	s.Bullets = s.Bullets[:0]
	clear(s.EnemyBullets)
	s.EnemyBullets = s.EnemyBullets[:0]
	clear(s.Enemies)
	s.Enemies = s.Enemies[:0]
	clear(s.PowerUps)
	s.PowerUps = s.PowerUps[:0]
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
	s.Particles.Clear()

	s.spawner.Reset()
	s.Level = 1
	s.GameState = StatePlaying

	s.emit(Event{Type: EventRestarted})
	s.logger.Info("game restarted", "frame", s.frame)
}

// updateContext builds the object update context for this frame.
func (s *Session) updateContext(in object.Input) object.UpdateContext {
	return object.UpdateContext{
		Input:   in,
		Screen:  s.Screen,
		Spawner: s,
		Rand:    s.rand,
	}
}

func (s *Session) emit(ev Event) {
	s.events = append(s.events, ev)
}
