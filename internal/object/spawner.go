package object

// Spawn policy tuning.
const (
	baseSpawnInterval  = 60 // Frames between waves at level 0
	spawnIntervalStep  = 2  // Frames removed per level
	enemyShipChance    = 0.7
	powerUpChance      = 0.005
	enemyFireChance    = 0.02
	spawnMargin        = 50 // Horizontal distance kept from the screen edges
	enemySpawnY        = -50
	powerUpSpawnY      = -30
	pointsPerLevel     = 2000
	MaxLevel           = 10
	minimumLevelNumber = 1
)

// LevelForScore returns the difficulty level for a score: 1 + score/2000, capped at 10.
func LevelForScore(score int) int {
	if score < 0 {
		score = 0
	}
	return min(minimumLevelNumber+score/pointsPerLevel, MaxLevel)
}

// SpawnInterval returns the number of frames between waves at the given level.
// Never drops below one frame.
func SpawnInterval(level int) int {
	return max(baseSpawnInterval-level*spawnIntervalStep, 1)
}

// EnemySpawner creates enemies, asteroids and power-ups over time and
// decides when enemy ships fire.
type EnemySpawner struct {
	timer int // Frames since the last wave
}

// NewEnemySpawner creates a spawner with its wave timer at zero.
func NewEnemySpawner() *EnemySpawner {
	return &EnemySpawner{}
}

// Reset zeroes the wave timer.
func (s *EnemySpawner) Reset() {
	s.timer = 0
}

// Timer returns the frames elapsed since the last wave.
func (s *EnemySpawner) Timer() int {
	return s.timer
}

// Update runs one frame of the spawn policy: the timed wave, enemy fire,
// then the random power-up drop. Returns the number of enemy shots fired.
func (s *EnemySpawner) Update(ctx UpdateContext, level int, enemies []Hostile) int {
	if ctx.Spawner == nil {
		return 0
	}

	s.timer++
	if s.timer >= SpawnInterval(level) {
		s.timer = 0
		ctx.Spawner.Spawn(s.newWaveEnemy(ctx))
	}

	shots := 0
	for _, h := range enemies {
		ship, ok := h.(*EnemyShip)
		if !ok || ship.IsDestroyed() {
			continue
		}
		if ctx.Rand.Float64() < enemyFireChance && ship.Shoot(ctx) {
			shots++
		}
	}

	if ctx.Rand.Float64() < powerUpChance {
		kind := WeaponUpgrade
		if ctx.Rand.Intn(2) == 1 {
			kind = ExtraLife
		}
		ctx.Spawner.Spawn(NewPowerUp(s.randomX(ctx), powerUpSpawnY, kind))
	}

	return shots
}

// newWaveEnemy picks an enemy ship (70%) or an asteroid of random size (30%)
// just above the top edge.
func (s *EnemySpawner) newWaveEnemy(ctx UpdateContext) Hostile {
	if ctx.Rand.Float64() < enemyShipChance {
		return NewEnemyShip(s.randomX(ctx), enemySpawnY, ctx.Rand)
	}
	size := randInt(ctx.Rand, AsteroidMinSize, AsteroidMaxSize)
	return NewAsteroid(s.randomX(ctx), float64(-size), size, ctx.Rand)
}

// randomX returns a horizontal spawn position inside the screen margins.
func (s *EnemySpawner) randomX(ctx UpdateContext) float64 {
	hi := ctx.Screen.Width - spawnMargin
	if hi < spawnMargin {
		return float64(ctx.Screen.CenterX)
	}
	return float64(randInt(ctx.Rand, spawnMargin, hi))
}
