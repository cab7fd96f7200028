// Package client hosts one game session on a terminal: it reads key input,
// advances the session each frame and renders the result with half blocks.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/brainrots/internal/draw"
	"github.com/tomz197/brainrots/internal/input"
	"github.com/tomz197/brainrots/internal/loop/config"
	"github.com/tomz197/brainrots/internal/loop/session"
	"github.com/tomz197/brainrots/internal/object"
)

// Client handles rendering and input for a single terminal connection.
type Client struct {
	session      *session.Session
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	frameTime    time.Duration
	log          *zap.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Bounds       object.Bounds // Zero means the default world size
	Rand         object.Rand   // Nil means time-seeded
	Logger       *zap.Logger
	TargetFPS    int // Zero means config.ClientTargetFPS
}

// NewClient creates a client with its own session reading keys from r and
// drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	bounds := opts.Bounds
	if bounds.Width <= 0 || bounds.Height <= 0 {
		bounds = object.Bounds{Width: config.WorldWidth, Height: config.WorldHeight}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Username != "" {
		log = log.With(zap.String("user", opts.Username))
	}
	frameTime := config.ClientTargetFrameTime
	if opts.TargetFPS > 0 {
		frameTime = time.Second / time.Duration(opts.TargetFPS)
	}

	sessOpts := []session.Option{session.WithLogger(log)}
	if opts.Rand != nil {
		sessOpts = append(sessOpts, session.WithRand(opts.Rand))
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, bounds.Width, bounds.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		session:      session.New(bounds, sessOpts...),
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		frameTime:    frameTime,
		log:          log,
	}
}

// Run starts the client loop. Blocks until the player quits, goes inactive
// for too long, or the shutdown countdown after ctx is cancelled runs out.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	c.log.Info("client started")
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.checkShutdown(ctx)
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateGameOver:
			c.updateGameOverState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < c.frameTime {
			time.Sleep(c.frameTime - elapsed)
		}
	}

	c.log.Info("client stopped",
		zap.Int("score", c.session.Score()),
		zap.Int("collected", c.session.Collected()),
	)
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads the keys pressed since the last frame and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.log.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// checkShutdown switches to the shutdown screen once ctx is cancelled.
func (c *Client) checkShutdown(ctx context.Context) {
	if c.state.GameState == GameStateShutdown {
		return
	}
	select {
	case <-ctx.Done():
		c.state.GameState = GameStateShutdown
		c.state.shutdownTimer = config.ShutdownDisplaySeconds
	default:
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
		draw.ClearScreen(c.writer)
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

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	c.state.Snapshot = c.session.Snapshot()
	if c.state.Input.Confirm {
		c.startGame()
	}
}

// updatePlayingState advances the session by the frame's elapsed time.
func (c *Client) updatePlayingState() {
	deltaMs := float64(c.state.delta) / float64(time.Millisecond)
	c.state.Snapshot = c.session.Tick(deltaMs, c.state.Input)
	if c.state.Snapshot.GameOver {
		c.state.GameState = GameStateGameOver
	}
}

// updateGameOverState waits for the player to restart.
func (c *Client) updateGameOverState() {
	if c.state.Input.Confirm {
		c.startGame()
	}
}

// startGame starts or restarts the game with a fresh session state.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	if c.state.GameState == GameStateGameOver {
		c.session.Reset()
		c.log.Debug("session restarted")
	}
	c.state.Snapshot = c.session.Snapshot()
	c.state.GameState = GameStatePlaying
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
