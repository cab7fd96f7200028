package client

import (
	"time"

	"github.com/tomz197/brainrots/internal/loop/session"
	"github.com/tomz197/brainrots/internal/object"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Health ran out, show summary and restart prompt
	GameStateShutdown                  // Host is shutting down
)

// ClientState holds per-connection UI state. Game state lives in the session.
type ClientState struct {
	Input         object.Input
	GameState     GameState
	prevGameState GameState
	Snapshot      session.Snapshot // Last frame's snapshot
	Running       bool
	delta         time.Duration
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
	}
}
