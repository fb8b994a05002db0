package object

import "math"

// Side identifies who fired a bullet, which decides what it can hit.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// Bullet sizes and speeds. Negative speed travels up the screen.
const (
	PlayerBulletWidth  = 10
	PlayerBulletHeight = 15
	PlayerBulletSpeed  = -15.0

	EnemyBulletWidth  = 8
	EnemyBulletHeight = 20
	EnemyBulletSpeed  = 5.0
)

// Bullet is a projectile fired by the player or an enemy ship.
type Bullet struct {
	Entity

	VX, VY float64 // Velocity (pixels per frame)
	Side   Side
}

// NewBullet creates a bullet centered at (x, y). The angle is in degrees,
// 0 travels straight along the speed's sign on the vertical axis.
func NewBullet(x, y float64, w, h int, speed, angleDeg float64, side Side) *Bullet {
	rad := angleDeg * math.Pi / 180
	return &Bullet{
		Entity: newEntity(CategoryBullet, x, y, w, h, 1),
		VX:     math.Sin(rad) * speed,
		VY:     math.Cos(rad) * speed,
		Side:   side,
	}
}

// NewPlayerBullet creates an upward player bullet.
func NewPlayerBullet(x, y, angleDeg float64) *Bullet {
	return NewBullet(x, y, PlayerBulletWidth, PlayerBulletHeight, PlayerBulletSpeed, angleDeg, SidePlayer)
}

// NewEnemyBullet creates a downward enemy bullet.
func NewEnemyBullet(x, y float64) *Bullet {
	return NewBullet(x, y, EnemyBulletWidth, EnemyBulletHeight, EnemyBulletSpeed, 0, SideEnemy)
}

// Update moves the bullet. It is removed once fully outside the screen.
func (b *Bullet) Update(ctx UpdateContext) bool {
	b.X += b.VX
	b.Y += b.VY
	return b.Rect().Outside(float64(ctx.Screen.Width), float64(ctx.Screen.Height))
}
