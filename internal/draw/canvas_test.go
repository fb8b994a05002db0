package draw

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// newUnitCanvas maps one logical unit to one sub-pixel.
func newUnitCanvas() *Canvas {
	return NewScaledCanvas(10, 5, 10, 10)
}

func TestFillRect(t *testing.T) {
	c := newUnitCanvas()
	c.FillRect(2, 2, 3, 3, red)

	for y := range 10 {
		for x := range 10 {
			inside := x >= 2 && x < 5 && y >= 2 && y < 5
			got := c.PixelAt(x, y)
			if inside && got != red {
				t.Errorf("PixelAt(%d, %d) = %v, want red", x, y, got)
			}
			if !inside && got.A != 0 {
				t.Errorf("PixelAt(%d, %d) = %v, want empty", x, y, got)
			}
		}
	}
}

func TestDrawingClipsToCanvas(t *testing.T) {
	c := newUnitCanvas()
	c.FillRect(-5, -5, 100, 100, red)
	c.FillCircle(-20, -20, 3, red)

	if c.PixelAt(0, 0) != red || c.PixelAt(9, 9) != red {
		t.Error("rect covering the canvas left corners empty")
	}
	if got := c.PixelAt(10, 0); got.A != 0 {
		t.Errorf("PixelAt outside = %v, want empty", got)
	}
}

func TestTinyCircleLightsCenter(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillCircle(50, 50, 1, blue)
	if c.PixelAt(5, 5) != blue {
		t.Errorf("PixelAt(5, 5) = %v, want blue", c.PixelAt(5, 5))
	}
}

func TestBlendOverEmpty(t *testing.T) {
	c := newUnitCanvas()
	c.DrawParticle(5, 5, 0.1, color.NRGBA{R: 255, A: 127})

	got := c.PixelAt(5, 5)
	if got.A != 255 || got.R != 127 || got.G != 0 {
		t.Errorf("blended pixel = %v, want half red over black", got)
	}
}

func TestFilledPolygon(t *testing.T) {
	c := newUnitCanvas()
	c.FillPolygon([]Point{{1, 1}, {8, 1}, {8, 8}, {1, 8}}, red)

	if c.PixelAt(4, 4) != red {
		t.Error("polygon interior not filled")
	}
	if c.PixelAt(0, 0).A != 0 {
		t.Error("polygon spilled outside its edges")
	}
}

func TestRenderWritesOnlyChangedCells(t *testing.T) {
	c := newUnitCanvas()
	var out bytes.Buffer

	c.Render(&out)
	if got := strings.Count(out.String(), "H"); got != 50 {
		t.Fatalf("first render moved the cursor %d times, want 50", got)
	}

	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Fatalf("unchanged render wrote %q", out.String())
	}

	c.FillRect(0, 0, 1, 1, red)
	out.Reset()
	c.Render(&out)
	want := "\033[1;1H\033[0;38;2;255;0;0m" + string(BlockUpperHalf) + "\033[0m"
	if out.String() != want {
		t.Errorf("render = %q, want %q", out.String(), want)
	}

	c.ForceRedraw()
	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), "H"); got != 50 {
		t.Errorf("forced render moved the cursor %d times, want 50", got)
	}
}

func TestWriteCell(t *testing.T) {
	empty := color.NRGBA{}
	tests := []struct {
		name        string
		top, bottom color.NRGBA
		want        string
	}{
		{"empty", empty, empty, "\033[0m \033[0m"},
		{"full", red, red, "\033[0;38;2;255;0;0m█\033[0m"},
		{"upper", red, empty, "\033[0;38;2;255;0;0m▀\033[0m"},
		{"lower", empty, blue, "\033[0;38;2;0;0;255m▄\033[0m"},
		{"split", red, blue, "\033[0;38;2;255;0;0;48;2;0;0;255m▀\033[0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			writeCell(&b, tt.top, tt.bottom)
			if b.String() != tt.want {
				t.Errorf("writeCell = %q, want %q", b.String(), tt.want)
			}
		})
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(100, 50, 1000, 1000)
	col, row := c.LogicalToTerminal(500, 500)
	if col != 51 || row != 26 {
		t.Errorf("LogicalToTerminal(500, 500) = (%d, %d), want (51, 26)", col, row)
	}
}

func TestChunkWriterOffsetAndColor(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	cw.WriteColored(5, 2, "go", red)

	if out.Len() != 0 {
		t.Fatal("ChunkWriter wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "\033[4;3Hhi\033[5;7H" + Foreground(red) + "go" + ResetStyle
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRenderBorderOnlyWithOffset(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	var out bytes.Buffer
	c.RenderBorder(&out)
	if out.Len() != 0 {
		t.Fatalf("border drawn without offset: %q", out.String())
	}

	c.SetOffset(1, 1)
	c.RenderBorder(&out)
	if s := out.String(); !strings.Contains(s, "┌────┐") || !strings.Contains(s, "└────┘") {
		t.Errorf("border = %q", s)
	}
}
