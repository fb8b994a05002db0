package object

import (
	"image/color"
	"math"
)

// Asteroid size range (pixels). Health equals size.
const (
	AsteroidMinSize        = 40
	AsteroidMaxSize        = 80
	asteroidMinSpeed       = 1.0
	asteroidMaxSpeed       = 3.0
	asteroidMaxRotateSpeed = 3.0 // Degrees per frame, either direction
	asteroidScore          = 50
)

var asteroidShades = []color.NRGBA{
	{R: 150, G: 150, B: 150, A: 255},
	{R: 120, G: 120, B: 120, A: 255},
	{R: 100, G: 100, B: 100, A: 255},
}

// Asteroid is a destructible space rock drifting down the screen.
type Asteroid struct {
	Entity

	Size          int         // Edge length in pixels
	Speed         float64     // Descent in pixels per frame
	Rotation      float64     // Degrees, cosmetic only
	RotationSpeed float64     // Degrees per frame
	Shade         color.NRGBA // Drawing color
}

// NewAsteroid creates an asteroid of the given size centered at (x, y).
func NewAsteroid(x, y float64, size int, r Rand) *Asteroid {
	shade := asteroidShades[r.Intn(len(asteroidShades))]
	return &Asteroid{
		Entity:        newEntity(CategoryAsteroid, x, y, size, size, size),
		Size:          size,
		Speed:         randRange(r, asteroidMinSpeed, asteroidMaxSpeed),
		RotationSpeed: randRange(r, -asteroidMaxRotateSpeed, asteroidMaxRotateSpeed),
		Shade:         shade,
	}
}

// Update moves and spins the asteroid.
// It is removed once its top edge passes the bottom of the screen.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	a.Y += a.Speed
	a.Rotation = math.Mod(a.Rotation+a.RotationSpeed, 360)
	if a.Rotation < 0 {
		a.Rotation += 360
	}
	return a.Rect().Top() > float64(ctx.Screen.Height)
}

// ScoreValue implements Hostile.
func (a *Asteroid) ScoreValue() int {
	return asteroidScore
}
