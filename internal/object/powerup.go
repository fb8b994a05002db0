package object

// PowerUpKind is the effect granted on pickup.
type PowerUpKind int

const (
	WeaponUpgrade PowerUpKind = iota
	ExtraLife
)

func (k PowerUpKind) String() string {
	if k == ExtraLife {
		return "extra_life"
	}
	return "weapon_upgrade"
}

// Power-up tuning.
const (
	PowerUpSize  = 30
	powerUpSpeed = 2.0
)

// PowerUp is a pickup drifting down the screen.
type PowerUp struct {
	Entity

	Kind  PowerUpKind
	Speed float64
}

// NewPowerUp creates a power-up centered at (x, y).
func NewPowerUp(x, y float64, kind PowerUpKind) *PowerUp {
	return &PowerUp{
		Entity: newEntity(CategoryPowerUp, x, y, PowerUpSize, PowerUpSize, 1),
		Kind:   kind,
		Speed:  powerUpSpeed,
	}
}

// Update moves the power-up down. It is removed once it falls off the bottom.
func (p *PowerUp) Update(ctx UpdateContext) bool {
	p.Y += p.Speed
	return p.Rect().Top() > float64(ctx.Screen.Height)
}
