package object

import (
	"sync"

	"github.com/tomz197/galactic/internal/input"
	"github.com/tomz197/galactic/internal/physics"
)

// Category tags every entity with the collection it belongs to.
type Category int

const (
	CategoryPlayer Category = iota
	CategoryBullet
	CategoryEnemyShip
	CategoryAsteroid
	CategoryPowerUp
)

func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryBullet:
		return "bullet"
	case CategoryEnemyShip:
		return "enemy_ship"
	case CategoryAsteroid:
		return "asteroid"
	case CategoryPowerUp:
		return "power_up"
	default:
		return "unknown"
	}
}

// Rand is the random source shared by everything in a session.
// *math/rand.Rand satisfies it; tests substitute scripted sequences.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// randRange returns a uniform float in [lo, hi).
func randRange(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// randInt returns a uniform integer in [lo, hi] (inclusive on both ends).
func randInt(r Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// Screen represents the playfield dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen returns a Screen of the given size with its center filled in.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Input   Input
	Screen  Screen
	Spawner Spawner
	Rand    Rand
}

// Object is an updatable game entity.
type Object interface {
	// Base returns the shared entity record.
	Base() *Entity

	// Update advances the object by one frame. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)
}

// Hostile is an object the player can shoot and collide with: enemy ships and asteroids.
type Hostile interface {
	Object
	// ScoreValue is the number of points awarded for destroying it.
	ScoreValue() int
}

// Entity is the geometric and health record shared by all game objects.
type Entity struct {
	X, Y   float64 // Position (center)
	W, H   float64 // Bounding box size
	Health int
	Kind   Category

	mask      *physics.Mask
	destroyed bool
}

func newEntity(kind Category, x, y float64, w, h, health int) Entity {
	return Entity{
		X:      x,
		Y:      y,
		W:      float64(w),
		H:      float64(h),
		Health: health,
		Kind:   kind,
		mask:   maskFor(w, h),
	}
}

// Base returns the entity itself (implements Object for embedders).
func (e *Entity) Base() *Entity {
	return e
}

// Rect returns the entity's bounding box.
func (e *Entity) Rect() physics.Rect {
	return physics.RectFromCenter(e.X, e.Y, e.W, e.H)
}

// Mask returns the entity's collision mask.
func (e *Entity) Mask() *physics.Mask {
	return e.mask
}

// Damage subtracts n from health, clamping at zero. Returns true when the entity is dead.
func (e *Entity) Damage(n int) bool {
	e.Health -= n
	if e.Health <= 0 {
		e.Health = 0
		return true
	}
	return false
}

// IsDead reports whether health has run out.
func (e *Entity) IsDead() bool {
	return e.Health <= 0
}

// MarkDestroyed marks the entity for removal at the end of the current frame.
func (e *Entity) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the entity is marked for removal.
func (e *Entity) IsDestroyed() bool {
	return e.destroyed
}

// revive clears the removal mark (used when the player re-enters play).
func (e *Entity) revive() {
	e.destroyed = false
}

// Masks are immutable once built, so one per size is shared by every entity
// and every session in the process.
var (
	maskMu    sync.Mutex
	maskCache = map[[2]int]*physics.Mask{}
)

// maskFor returns the solid-rectangle mask for a w×h entity.
func maskFor(w, h int) *physics.Mask {
	maskMu.Lock()
	defer maskMu.Unlock()

	key := [2]int{w, h}
	if m, ok := maskCache[key]; ok {
		return m
	}
	m := physics.NewFilledMask(w, h)
	maskCache[key] = m
	return m
}

// Compact removes destroyed objects from s in place and returns the shortened slice.
// The tail of the backing array is cleared so removed objects can be collected.
func Compact[T Object](s []T) []T {
	kept := s[:0]
	for _, obj := range s {
		if !obj.Base().IsDestroyed() {
			kept = append(kept, obj)
		}
	}
	clear(s[len(kept):])
	return kept
}
