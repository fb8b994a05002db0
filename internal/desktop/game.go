// Package desktop runs a game session in an ebiten window.
package desktop

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/galactic/internal/loop"
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
)

// Window title.
const Title = "Galactic Shooter"

// Key bindings.
var (
	keysLeft  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	keysRight = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	keysUp    = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	keysDown  = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
)

// whitePixel is the source image for untextured triangles, created on first draw.
var whitePixel *ebiten.Image

func whiteSource() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// Game adapts a session to ebiten's Update/Draw/Layout cycle.
// ebiten's fixed 60 TPS paces the session.
type Game struct {
	session   *loop.Session
	observers []loop.EventObserver
	poll      func() object.Input
	sprites   []loop.Sprite
	stars     *rand.Rand
	vertices  []ebiten.Vertex
}

// NewGame wraps a session for the desktop.
func NewGame(s *loop.Session, observers ...loop.EventObserver) *Game {
	return &Game{
		session:   s,
		observers: observers,
		poll:      PollKeys,
		stars:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PollKeys reads the keyboard: directions are held, fire/restart/quit trigger once per press.
func PollKeys() object.Input {
	return object.Input{
		Left:    anyPressed(keysLeft),
		Right:   anyPressed(keysRight),
		Up:      anyPressed(keysUp),
		Down:    anyPressed(keysDown),
		Fire:    inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Quit:    inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// Update advances the session by one frame.
func (g *Game) Update() error {
	g.session.Step(g.poll())
	if events := g.session.Events(); len(events) > 0 {
		for _, o := range g.observers {
			o.Observe(events)
		}
	}
	if g.session.Quit() {
		return ebiten.Termination
	}
	return nil
}

// Layout keeps the logical screen at the playfield size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.session.Screen.Width, g.session.Screen.Height
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	f := g.session.Frame()
	screen.Fill(color.Black)

	for range config.StarCount {
		x := float32(g.stars.Intn(f.Screen.Width + 1))
		y := float32(g.stars.Intn(f.Screen.Height + 1))
		vector.DrawFilledCircle(screen, x, y, config.StarRadius, config.ColorWhite, false)
	}

	g.sprites = f.AppendSprites(g.sprites[:0])
	g.drawSprites(screen, loop.LayerBody)
	f.Particles.Render(particleSink{screen})
	g.drawSprites(screen, loop.LayerOverlay)

	drawHUD(screen, f)
	if f.State == loop.StateGameOver {
		drawGameOver(screen, f)
	}
}

func (g *Game) drawSprites(screen *ebiten.Image, layer loop.Layer) {
	for _, sp := range g.sprites {
		if sp.Layer != layer {
			continue
		}
		if sp.Rotation == 0 {
			r := sp.Rect
			vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), sp.Color, false)
			continue
		}
		g.fillQuad(screen, sp)
	}
}

// fillQuad draws a rotated sprite as two triangles.
func (g *Game) fillQuad(screen *ebiten.Image, sp loop.Sprite) {
	cr := float32(sp.Color.R) / 255
	cg := float32(sp.Color.G) / 255
	cb := float32(sp.Color.B) / 255
	ca := float32(sp.Color.A) / 255

	g.vertices = g.vertices[:0]
	for _, p := range sp.Corners() {
		g.vertices = append(g.vertices, ebiten.Vertex{
			DstX: float32(p[0]), DstY: float32(p[1]),
			SrcX: 1, SrcY: 1,
			ColorR: cr * ca, ColorG: cg * ca, ColorB: cb * ca, ColorA: ca,
		})
	}
	screen.DrawTriangles(g.vertices, []uint16{0, 1, 2, 0, 2, 3}, whiteSource(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// particleSink draws particles as translucent circles.
type particleSink struct {
	screen *ebiten.Image
}

func (s particleSink) DrawParticle(x, y, radius float64, c color.NRGBA) {
	vector.DrawFilledCircle(s.screen, float32(x), float32(y), float32(radius), c, true)
}

func drawHUD(screen *ebiten.Image, f loop.Frame) {
	h := f.HUD
	w := float64(f.Screen.Width)

	vector.DrawFilledRect(screen, config.HealthBarX, config.HealthBarY, config.HealthBarWidth, config.HealthBarHeight, config.ColorRed, false)
	if fill := float32(config.HealthBarWidth * h.HealthFraction()); fill > 0 {
		vector.DrawFilledRect(screen, config.HealthBarX, config.HealthBarY, fill, config.HealthBarHeight, config.ColorGreen, false)
	}
	drawText(screen, fmt.Sprintf("HP: %d", h.Health), config.HealthBarX+config.HealthBarWidth/2, config.HealthBarY, 1.5, config.ColorWhite)

	for i := range h.Lives {
		x := float32(config.LifeIconX + i*config.LifeIconSpacing)
		vector.DrawFilledCircle(screen, x, config.LifeIconY, config.LifeIconRadius, config.ColorBlue, true)
	}

	drawText(screen, fmt.Sprintf("Score: %d", h.Score), w/2, 10, 2, config.ColorWhite)
	drawText(screen, fmt.Sprintf("Level: %d", h.Level), w-100, 10, 2, config.ColorWhite)
	drawText(screen, h.PowerText(), w-100, 50, 1.5, config.ColorWhite)
}

func drawGameOver(screen *ebiten.Image, f loop.Frame) {
	w := float64(f.Screen.Width)
	h := float64(f.Screen.Height)
	drawText(screen, "GAME OVER", w/2, h/2-100, 4.5, config.ColorRed)
	drawText(screen, fmt.Sprintf("Final Score: %d", f.HUD.Score), w/2, h/2, 3, config.ColorWhite)
	drawText(screen, "Press R to Restart", w/2, h/2+80, 2, config.ColorYellow)
}

// drawText draws s scaled from the 7x13 bitmap face, horizontally centered on x
// with its top edge at y.
func drawText(screen *ebiten.Image, s string, x, y, scale float64, c color.NRGBA) {
	face := basicfont.Face7x13
	bounds := text.BoundString(face, s)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(bounds.Dx())/2, float64(face.Ascent))
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.DrawWithOptions(screen, s, face, op)
}
