package client

import (
	"fmt"
	"image/color"
	"time"

	"github.com/tomz197/galactic/internal/draw"
	"github.com/tomz197/galactic/internal/loop"
	"github.com/tomz197/galactic/internal/loop/config"
)

var (
	_ loop.Presenter     = (*Client)(nil)
	_ loop.InputSource   = (*Client)(nil)
	_ loop.EventObserver = (*Client)(nil)
)

// Present draws one frame to the terminal.
func (c *Client) Present(f loop.Frame) error {
	c.updateScreen()

	// On game state or overlay transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := f.State != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	shutdownChanged := c.state.shuttingDown != c.state.wasShutdown
	if stateChanged || inactiveChanged || shutdownChanged {
		c.chunkWriter.ClearScreen()
		c.canvas.ForceRedraw()
		c.state.prevGameState = f.State
		c.state.wasInactive = c.state.isInactive
		c.state.wasShutdown = c.state.shuttingDown
	}

	c.canvas.Clear()
	c.drawStars(f)

	c.sprites = f.AppendSprites(c.sprites[:0])
	c.drawSprites(loop.LayerBody)
	f.Particles.Render(c.canvas)
	c.drawSprites(loop.LayerOverlay)
	c.drawGauges(f.HUD)

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI(f)

	return c.chunkWriter.Flush()
}

// drawStars scatters the flickering background stars.
func (c *Client) drawStars(f loop.Frame) {
	for range config.StarCount {
		x := float64(c.stars.Intn(f.Screen.Width + 1))
		y := float64(c.stars.Intn(f.Screen.Height + 1))
		c.canvas.FillCircle(x, y, config.StarRadius, config.ColorWhite)
	}
}

// drawSprites draws every sprite of one layer.
func (c *Client) drawSprites(layer loop.Layer) {
	for _, sp := range c.sprites {
		if sp.Layer != layer {
			continue
		}
		if sp.Rotation == 0 {
			c.canvas.FillRect(sp.Rect.X, sp.Rect.Y, sp.Rect.W, sp.Rect.H, sp.Color)
			continue
		}
		corners := sp.Corners()
		points := c.canvas.BorrowPoints(len(corners))
		for i, p := range corners {
			points[i] = draw.Point{X: p[0], Y: p[1]}
		}
		c.canvas.FillPolygon(points, sp.Color)
	}
}

// drawGauges draws the health bar and the life icons onto the canvas.
func (c *Client) drawGauges(h loop.HUD) {
	c.canvas.FillRect(config.HealthBarX, config.HealthBarY, config.HealthBarWidth, config.HealthBarHeight, config.ColorRed)
	if w := config.HealthBarWidth * h.HealthFraction(); w > 0 {
		c.canvas.FillRect(config.HealthBarX, config.HealthBarY, w, config.HealthBarHeight, config.ColorGreen)
	}
	for i := range h.Lives {
		x := float64(config.LifeIconX + i*config.LifeIconSpacing)
		c.canvas.FillCircle(x, config.LifeIconY, config.LifeIconRadius, config.ColorBlue)
	}
}

// drawUI draws the text overlay.
func (c *Client) drawUI(f loop.Frame) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.shuttingDown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawHUD(f, termWidth, termHeight)
	if f.State == loop.StateGameOver {
		c.drawGameOverScreen(f)
	}
}

// drawHUD draws the in-game text.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen (the canvas only repaints changed cells).
func (c *Client) drawHUD(f loop.Frame, termWidth, termHeight int) {
	w := float64(f.Screen.Width)
	h := f.HUD

	c.writeCentered(config.HealthBarX+config.HealthBarWidth/2, config.HealthBarY, fmt.Sprintf("HP: %-3d", h.Health), config.ColorWhite)
	c.writeCentered(w/2, 10, fmt.Sprintf("Score: %-8d", h.Score), config.ColorWhite)
	c.writeCentered(w-100, 10, fmt.Sprintf("Level: %-2d", h.Level), config.ColorWhite)
	c.writeCentered(w-100, 50, fmt.Sprintf("%-10s", h.PowerText()), config.ColorWhite)

	if c.hub != nil {
		players := fmt.Sprintf("Players: %-4d", c.hub.Players())
		c.chunkWriter.WriteAt(max(termWidth-len(players)-1, 1), termHeight, players)
	}
}

// drawGameOverScreen draws the final score and the restart prompt.
func (c *Client) drawGameOverScreen(f loop.Frame) {
	w := float64(f.Screen.Width)
	h := float64(f.Screen.Height)

	c.writeCentered(w/2, h/2-100, "GAME OVER", config.ColorRed)
	c.writeCentered(w/2, h/2, fmt.Sprintf("Final Score: %d", f.HUD.Score), config.ColorWhite)

	if c.hub != nil && c.state.highScore > 0 {
		best := fmt.Sprintf("High Score: %d", c.state.highScore)
		if c.state.highScorer != "" {
			best += " by " + c.state.highScorer
		}
		c.writeCentered(w/2, h/2+40, best, config.ColorWhite)
	}

	c.writeCentered(w/2, h/2+80, "Press R to Restart", config.ColorYellow)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteColored(centerX-len(title)/2, centerY-2, title, config.ColorYellow)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteColored(centerX-len(title)/2, centerY-3, title, config.ColorRed)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(max(c.state.shutdownTimer, 0)) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}

// writeCentered writes s horizontally centered on a playfield position,
// with its top row at that position.
func (c *Client) writeCentered(x, y float64, s string, col color.NRGBA) {
	tc, tr := c.canvas.LogicalToTerminal(x, y)
	tc = max(tc-len(s)/2, 1)
	if tr < 1 || tr > c.canvas.TerminalHeight() {
		return
	}
	c.chunkWriter.WriteColored(tc, tr, s, col)
}
