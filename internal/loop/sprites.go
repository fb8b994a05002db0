package loop

import (
	"image/color"
	"math"

	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/physics"
)

// Layer orders sprites relative to the particle pass.
type Layer int

const (
	LayerBody    Layer = iota // Drawn before particles
	LayerOverlay              // Drawn after particles (enemy fire)
)

// Sprite is the drawable shape of one entity.
type Sprite struct {
	Rect     physics.Rect
	Color    color.NRGBA
	Rotation float64 // Degrees around the rect center; only asteroids spin
	Layer    Layer
}

// Corners returns the four corners of the sprite after rotation, clockwise from top-left.
func (sp Sprite) Corners() [4][2]float64 {
	cx, cy := sp.Rect.Center()
	hw, hh := sp.Rect.W/2, sp.Rect.H/2
	rad := sp.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)

	offsets := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4][2]float64
	for i, o := range offsets {
		out[i] = [2]float64{cx + o[0]*cos - o[1]*sin, cy + o[0]*sin + o[1]*cos}
	}
	return out
}

// AppendSprites appends the frame's sprites to buf in draw order:
// player, player bullets, enemies, power-ups, then enemy bullets.
func (f Frame) AppendSprites(buf []Sprite) []Sprite {
	if f.Player != nil {
		buf = append(buf, Sprite{Rect: f.Player.Rect(), Color: config.ColorBlue})
	}
	for _, b := range f.Bullets {
		buf = append(buf, Sprite{Rect: b.Rect(), Color: config.ColorYellow})
	}
	for _, e := range f.Enemies {
		switch e := e.(type) {
		case *object.Asteroid:
			buf = append(buf, Sprite{Rect: e.Rect(), Color: e.Shade, Rotation: e.Rotation})
		default:
			buf = append(buf, Sprite{Rect: e.Base().Rect(), Color: config.ColorRed})
		}
	}
	for _, p := range f.PowerUps {
		c := config.ColorGreen
		if p.Kind == object.ExtraLife {
			c = config.ColorYellow
		}
		buf = append(buf, Sprite{Rect: p.Rect(), Color: c})
	}
	for _, b := range f.EnemyBullets {
		buf = append(buf, Sprite{Rect: b.Rect(), Color: config.ColorPurple, Layer: LayerOverlay})
	}
	return buf
}

// PowerText is the power gauge label, e.g. "Power: III".
func (h HUD) PowerText() string {
	s := "Power: "
	for range h.Power {
		s += "I"
	}
	return s
}
