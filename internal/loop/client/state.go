package client

import (
	"time"

	"github.com/tomz197/galactic/internal/loop"
)

// ClientState holds the per-connection state that lives outside the game session.
type ClientState struct {
	lastPoll      time.Time      // Time of the previous Poll, for the frame delta
	prevGameState loop.GameState // Game state drawn last frame
	wasInactive   bool           // Inactivity warning shown last frame
	isInactive    bool           // Whether the client is in inactive warning state
	wasShutdown   bool           // Shutdown screen shown last frame
	shuttingDown  bool           // Server announced shutdown
	shutdownTimer float64        // Countdown before auto-disconnect on shutdown
	disconnected  bool           // Hub dropped this client
	bestScore     int            // Best game this connection has finished
	highScore     int            // Best score announced by the hub
	highScorer    string
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		lastPoll:      time.Now(),
		prevGameState: loop.StatePlaying,
	}
}
