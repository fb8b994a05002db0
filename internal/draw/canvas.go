// Package draw renders colored shapes to a terminal using half-block characters.
package draw

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"strings"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
// Only cells that changed since the previous Render are written.
type Canvas struct {
	termWidth      int           // Actual terminal columns
	termHeight     int           // Actual terminal rows
	subPixelHeight int           // termHeight * 2
	pixels         []color.NRGBA // Flat slice: [y * termWidth + x]; A == 0 means empty
	prev           []cell        // What the terminal currently shows, per cell
	forceRedraw    bool

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when the terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       bytes.Buffer
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// cell is the rendered state of one terminal cell.
type cell struct {
	top, bottom color.NRGBA
	valid       bool
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the game.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]color.NRGBA, subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render write every cell, e.g. after the screen was cleared.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
// Translucent colors are blended over what is already there.
func (c *Canvas) setPixel(x, y int, col color.NRGBA) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight || col.A == 0 {
		return
	}
	i := y*c.termWidth + x
	if col.A == 255 {
		c.pixels[i] = col
		return
	}
	c.pixels[i] = blend(c.pixels[i], col)
}

// blend composites src over dst, treating an empty dst as black.
func blend(dst, src color.NRGBA) color.NRGBA {
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	return color.NRGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}

// FillRect fills an axis-aligned rectangle given in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// FillCircle fills a circle given in logical coordinates. Circles smaller than
// a terminal pixel still light their center pixel.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	rx := r * c.scaleX
	ry := r * c.scaleY
	pcx := cx * c.scaleX
	pcy := cy * c.scaleY
	if rx < 0.75 && ry < 0.75 {
		c.setPixel(int(math.Round(pcx)), int(math.Round(pcy)), col)
		return
	}
	for py := int(math.Floor(pcy - ry)); py <= int(math.Ceil(pcy+ry)); py++ {
		for px := int(math.Floor(pcx - rx)); px <= int(math.Ceil(pcx+rx)); px++ {
			dx := (float64(px) + 0.5 - pcx) / rx
			dy := (float64(py) + 0.5 - pcy) / ry
			if dx*dx+dy*dy <= 1 {
				c.setPixel(px, py, col)
			}
		}
	}
}

// FillPolygon fills a polygon given in logical coordinates.
func (c *Canvas) FillPolygon(points []Point, col color.NRGBA) {
	if len(points) < 3 {
		return
	}
	c.fillPolygon(points, col)
}

// fillPolygon fills a polygon using scanline algorithm in pixel space.
func (c *Canvas) fillPolygon(points []Point, col color.NRGBA) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// Render writes the changed cells to w using colored half-block characters.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			next := cell{
				top:    c.pixels[topOffset+col],
				bottom: c.pixels[bottomOffset+col],
				valid:  true,
			}
			idx := row*c.termWidth + col
			if !c.forceRedraw && c.prev[idx] == next {
				continue
			}
			c.prev[idx] = next

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			writeCell(&c.renderBuf, next.top, next.bottom)
		}
	}
	c.forceRedraw = false

	return writeChunks(w, c.renderBuf.Bytes())
}

// writeCell writes one terminal cell made of a top and a bottom sub-pixel.
func writeCell(b *bytes.Buffer, top, bottom color.NRGBA) {
	switch {
	case top.A == 0 && bottom.A == 0:
		b.WriteString("\033[0m ")
	case top == bottom:
		fmt.Fprintf(b, "\033[0;38;2;%d;%d;%dm%c", top.R, top.G, top.B, BlockFull)
	case bottom.A == 0:
		fmt.Fprintf(b, "\033[0;38;2;%d;%d;%dm%c", top.R, top.G, top.B, BlockUpperHalf)
	case top.A == 0:
		fmt.Fprintf(b, "\033[0;38;2;%d;%d;%dm%c", bottom.R, bottom.G, bottom.B, BlockLowerHalf)
	default:
		fmt.Fprintf(b, "\033[0;38;2;%d;%d;%d;48;2;%d;%d;%dm%c",
			top.R, top.G, top.B, bottom.R, bottom.G, bottom.B, BlockUpperHalf)
	}
	b.WriteString("\033[0m")
}

// RenderBorder frames the render area with box-drawing characters on every
// side where the terminal leaves room for it.
func (c *Canvas) RenderBorder(w io.Writer) error {
	left, right := c.offsetCol, c.offsetCol+c.termWidth+1
	top, bottom := c.offsetRow, c.offsetRow+c.termHeight+1
	sides := left >= 1
	caps := top >= 1
	if !sides && !caps {
		return nil
	}

	var buf bytes.Buffer
	if caps {
		line := strings.Repeat("─", c.termWidth)
		tl, tr, bl, br := "┌", "┐", "└", "┘"
		col := left
		if !sides {
			tl, tr, bl, br = "", "", "", ""
			col = left + 1
		}
		fmt.Fprintf(&buf, "\033[%d;%dH%s%s%s", top, col, tl, line, tr)
		fmt.Fprintf(&buf, "\033[%d;%dH%s%s%s", bottom, col, bl, line, br)
	}
	if sides {
		for row := top + 1; row < bottom; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	return writeChunks(w, buf.Bytes())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// PixelAt returns the color at terminal sub-pixel (x, y); A == 0 means empty.
func (c *Canvas) PixelAt(x, y int) color.NRGBA {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.NRGBA{}
	}
	return c.pixels[y*c.termWidth+x]
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

// DrawParticle draws one fading particle; it lets the canvas serve as a particle sink.
func (c *Canvas) DrawParticle(x, y, radius float64, col color.NRGBA) {
	c.FillCircle(x, y, radius, col)
}
