package object

// Player tuning.
const (
	PlayerSize         = 60
	PlayerSpeed        = 8.0
	PlayerBottomMargin = 100 // Spawn distance of the center above the bottom edge
	MaxHealth          = 100
	InitialLives       = 3
	MaxLives           = 5
	MinPowerLevel      = 1
	MaxPowerLevel      = 3
	baseShootCooldown  = 15 // Frames between shots, minus the power level
)

// Player is the ship controlled by the user.
type Player struct {
	Entity

	Speed         float64 // Pixels per frame on each axis
	ShootCooldown int     // Frames until the next shot is allowed
	Lives         int     // 0..MaxLives
	Score         int     // Never decreases during play
	PowerLevel    int     // MinPowerLevel..MaxPowerLevel
}

// NewPlayer creates a ship at the bottom-center of the screen.
func NewPlayer(screen Screen) *Player {
	p := &Player{
		Entity: newEntity(CategoryPlayer, 0, 0, PlayerSize, PlayerSize, MaxHealth),
		Speed:  PlayerSpeed,
	}
	p.Reset(screen)
	return p
}

// Reset restores the starting stats and position.
func (p *Player) Reset(screen Screen) {
	p.X = float64(screen.Width / 2)
	p.Y = float64(screen.Height - PlayerBottomMargin)
	p.Health = MaxHealth
	p.ShootCooldown = 0
	p.Lives = InitialLives
	p.Score = 0
	p.PowerLevel = MinPowerLevel
	p.revive()
}

// Update moves the ship from the held directions, each axis independently,
// keeps it inside the screen and counts down the shot cooldown.
func (p *Player) Update(ctx UpdateContext) bool {
	if ctx.Input.Left {
		p.X -= p.Speed
	}
	if ctx.Input.Right {
		p.X += p.Speed
	}
	if ctx.Input.Up {
		p.Y -= p.Speed
	}
	if ctx.Input.Down {
		p.Y += p.Speed
	}
	p.clampTo(ctx.Screen)

	if p.ShootCooldown > 0 {
		p.ShootCooldown--
	}
	return false
}

// clampTo keeps the bounding box inside the screen.
func (p *Player) clampTo(screen Screen) {
	halfW, halfH := p.W/2, p.H/2
	p.X = min(max(p.X, halfW), float64(screen.Width)-halfW)
	p.Y = min(max(p.Y, halfH), float64(screen.Height)-halfH)
}

// Shoot fires the weapon fan for the current power level if the cooldown has elapsed.
// Returns the number of bullets spawned (0 while cooling down).
func (p *Player) Shoot(spawner Spawner) int {
	if p.ShootCooldown > 0 || spawner == nil {
		return 0
	}

	r := p.Rect()
	cx, top := p.X, r.Top()

	var bullets []*Bullet
	switch {
	case p.PowerLevel <= 1:
		bullets = append(bullets, NewPlayerBullet(cx, top, 0))
	default:
		bullets = append(bullets,
			NewPlayerBullet(cx-20, top, 0),
			NewPlayerBullet(cx+20, top, 0),
		)
		if p.PowerLevel >= 3 {
			bullets = append(bullets,
				NewPlayerBullet(cx-10, top, -15),
				NewPlayerBullet(cx+10, top, 15),
			)
		}
	}
	for _, b := range bullets {
		spawner.Spawn(b)
	}

	p.ShootCooldown = baseShootCooldown - p.PowerLevel
	return len(bullets)
}

// AddScore awards points. Negative amounts are ignored.
func (p *Player) AddScore(points int) {
	if points > 0 {
		p.Score += points
	}
}

// UpgradeWeapon raises the power level by one, up to MaxPowerLevel.
func (p *Player) UpgradeWeapon() {
	p.PowerLevel = min(p.PowerLevel+1, MaxPowerLevel)
}

// AddLife grants an extra life, up to MaxLives.
func (p *Player) AddLife() {
	p.Lives = min(p.Lives+1, MaxLives)
}

// LoseLife takes one life and refills health. Returns true when no lives remain.
func (p *Player) LoseLife() bool {
	p.Lives = max(p.Lives-1, 0)
	p.Health = MaxHealth
	return p.Lives == 0
}
