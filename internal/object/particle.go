package object

import (
	"image/color"
	"math"
)

// Particle is a short-lived visual effect. It has no collision mask.
type Particle struct {
	X, Y    float64 // Position
	VX, VY  float64 // Velocity (pixels per frame)
	Life    int     // Frames remaining
	MaxLife int     // Initial life (for fade calculation)
	Color   color.NRGBA
	Radius  float64
}

// Alpha returns the fade-out alpha channel: 255 × life/maxLife, truncated.
func (p *Particle) Alpha() uint8 {
	if p.MaxLife <= 0 || p.Life <= 0 {
		return 0
	}
	return uint8(255 * p.Life / p.MaxLife)
}

// ParticleSink receives particles during rendering.
type ParticleSink interface {
	DrawParticle(x, y, radius float64, c color.NRGBA)
}

// ParticleSystem owns every live particle of a session.
type ParticleSystem struct {
	particles []Particle
	rand      Rand
}

// NewParticleSystem creates an empty particle system drawing angles from r.
func NewParticleSystem(r Rand) *ParticleSystem {
	return &ParticleSystem{
		particles: make([]Particle, 0, 256),
		rand:      r,
	}
}

// Emit creates count particles at (x, y), each moving at the given speed
// in a uniformly random direction.
func (ps *ParticleSystem) Emit(x, y float64, c color.NRGBA, count int, speed float64, life int, radius float64) {
	for i := 0; i < count; i++ {
		angle := ps.rand.Float64() * 2 * math.Pi
		ps.particles = append(ps.particles, Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Life:    life,
			MaxLife: life,
			Color:   c,
			Radius:  radius,
		})
	}
}

// Default burst parameters, used for bullet impacts.
const (
	DefaultBurstCount  = 10
	DefaultBurstSpeed  = 2.0
	DefaultBurstLife   = 30
	DefaultBurstRadius = 3.0
)

// EmitDefault emits the small default burst.
func (ps *ParticleSystem) EmitDefault(x, y float64, c color.NRGBA) {
	ps.Emit(x, y, c, DefaultBurstCount, DefaultBurstSpeed, DefaultBurstLife, DefaultBurstRadius)
}

// Advance moves every particle one frame and drops the ones whose life ran out.
func (ps *ParticleSystem) Advance() {
	alive := 0
	for i := range ps.particles {
		p := &ps.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		if p.Life <= 0 {
			continue
		}
		ps.particles[alive] = *p
		alive++
	}
	ps.particles = ps.particles[:alive]
}

// Render hands every particle to the sink with its faded color.
func (ps *ParticleSystem) Render(sink ParticleSink) {
	for i := range ps.particles {
		p := &ps.particles[i]
		c := p.Color
		c.A = p.Alpha()
		sink.DrawParticle(p.X, p.Y, p.Radius, c)
	}
}

// Particles returns the live particles. The slice is only valid until the next Emit or Advance.
func (ps *ParticleSystem) Particles() []Particle {
	return ps.particles
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Clear removes every particle.
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}
