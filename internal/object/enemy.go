package object

// Enemy ship tuning.
const (
	EnemySize         = 60
	EnemyHealth       = 30
	enemyMinSpeed     = 1.0
	enemyMaxSpeed     = 3.0
	enemyFirstShotMin = 30 // Frames before the first shot may happen
	enemyFirstShotMax = 180
	enemyReloadMin    = 60
	enemyReloadMax    = 180
	enemyScore        = 100
)

// EnemyShip descends the screen and fires at the player.
type EnemyShip struct {
	Entity

	Speed      float64 // Descent in pixels per frame
	ShootTimer int     // Frames until the ship may fire again
}

// NewEnemyShip creates an enemy ship centered at (x, y).
func NewEnemyShip(x, y float64, r Rand) *EnemyShip {
	return &EnemyShip{
		Entity:     newEntity(CategoryEnemyShip, x, y, EnemySize, EnemySize, EnemyHealth),
		Speed:      randRange(r, enemyMinSpeed, enemyMaxSpeed),
		ShootTimer: randInt(r, enemyFirstShotMin, enemyFirstShotMax),
	}
}

// Update moves the ship down and counts down its shot timer.
// The ship is removed once its top edge passes the bottom of the screen.
func (e *EnemyShip) Update(ctx UpdateContext) bool {
	e.Y += e.Speed
	e.ShootTimer--
	return e.Rect().Top() > float64(ctx.Screen.Height)
}

// Shoot fires one bullet from the ship's nose if the timer has elapsed.
// Returns true if a bullet was spawned.
func (e *EnemyShip) Shoot(ctx UpdateContext) bool {
	if e.ShootTimer > 0 || ctx.Spawner == nil {
		return false
	}
	ctx.Spawner.Spawn(NewEnemyBullet(e.X, e.Rect().Bottom()))
	e.ShootTimer = randInt(ctx.Rand, enemyReloadMin, enemyReloadMax)
	return true
}

// ScoreValue implements Hostile.
func (e *EnemyShip) ScoreValue() int {
	return enemyScore
}
