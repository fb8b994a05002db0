// Package client runs one game session on a terminal: it reads keys from a
// byte stream and draws frames as colored half-block characters.
package client

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/galactic/internal/draw"
	"github.com/tomz197/galactic/internal/input"
	"github.com/tomz197/galactic/internal/loop"
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/loop/server"
	"github.com/tomz197/galactic/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	hub          *server.Hub // nil when playing locally
	handle       *server.ClientHandle
	session      *loop.Session
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	observers    []loop.EventObserver
	stars        *rand.Rand
	sprites      []loop.Sprite // Reused every frame
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Hub          *server.Hub // Optional; registers the client and shares high scores
	Seed         int64       // Game seed; 0 uses the clock
	Logger       *log.Logger
	Observers    []loop.EventObserver // Extra event consumers (sound, logging)
}

// NewClient creates a client with a fresh game session.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var handle *server.ClientHandle
	if opts.Hub != nil {
		handle = opts.Hub.RegisterClient(opts.Username)
		logger = logger.With("client", handle.ID, "session", handle.SessionID)
	}

	session := loop.NewSession(loop.Options{Seed: opts.Seed, Logger: logger})
	state := NewClientState()
	if opts.Hub != nil {
		state.highScore, state.highScorer = opts.Hub.HighScore()
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.PlayfieldWidth, config.PlayfieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		hub:          opts.Hub,
		handle:       handle,
		session:      session,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		logger:       logger,
		observers:    opts.Observers,
		stars:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Session returns the game session driven by this client.
func (c *Client) Session() *loop.Session {
	return c.session
}

// Run starts the client loop. Blocks until the player quits, the client
// disconnects, or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	defer c.inputStream.Close()
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	if c.hub != nil {
		defer c.hub.UnregisterClient(c.handle.ID)
	}

	observers := append([]loop.EventObserver{c}, c.observers...)
	err := loop.Run(ctx, c.session, c, c, loop.NewSleepPacer(), observers...)

	c.logger.Info("client finished", "score", c.session.Player.Score, "best", c.state.bestScore, "frames", c.session.FrameCount())
	draw.ClearScreen(c.writer)
	return err
}

// Poll reads the pending keys and folds in connection state: inactivity,
// hub events and shutdown all end in a quit intent.
func (c *Client) Poll() object.Input {
	now := time.Now()
	delta := now.Sub(c.state.lastPoll)
	c.state.lastPoll = now

	in := input.ReadInput(c.inputStream)
	c.processHubEvents()

	idle := now.Sub(c.lastInput).Seconds()
	switch {
	case len(in.Pressed) > 0:
		c.lastInput = now
		c.state.isInactive = false
	case idle > config.InactivityDisconnectUser:
		c.logger.Info("disconnecting inactive client")
		in.Quit = true
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}

	if c.inputStream.Closed() || c.state.disconnected {
		in.Quit = true
	}

	if c.state.shuttingDown {
		c.state.shutdownTimer -= delta.Seconds()
		return object.Input{Quit: in.Quit || c.state.shutdownTimer <= 0}
	}

	if in.Restart && c.session.GameState == loop.StateGameOver {
		input.ResetKeyInput(c.inputStream)
	}
	return in
}

// Observe reports finished games to the hub.
func (c *Client) Observe(events []loop.Event) {
	for _, ev := range events {
		if ev.Type != loop.EventGameOver {
			continue
		}
		c.state.bestScore = max(c.state.bestScore, ev.Points)
		if c.hub != nil && c.hub.ReportScore(c.handle.ID, ev.Points) {
			c.logger.Info("new high score", "score", ev.Points)
		}
	}
}

// processHubEvents handles events from the hub.
func (c *Client) processHubEvents() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Hub closed the channel
				c.state.disconnected = true
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				if !c.state.shuttingDown {
					c.state.shuttingDown = true
					c.state.shutdownTimer = config.ShutdownDisplaySeconds
				}
			case server.EventHighScore:
				c.state.highScore = event.HighScore
				c.state.highScorer = event.Username
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.ClearScreen()
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
