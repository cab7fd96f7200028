package client

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tomz197/brainrots/internal/loop/config"
	"github.com/tomz197/brainrots/internal/object"
)

var (
	hudScoreColor  = mustHex("#ffd700")
	hudHealthColor = mustHex("#00ff88")
	hudLowColor    = mustHex("#ff4444")
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateGameOver {
		drawSnapshot(c.canvas, &c.state.Snapshot)
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)
	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateGameOver:
		c.drawPlayingHUD(termWidth, termHeight)
		c.drawGameOverScreen(centerX, centerY)
	}
}

// writeCentered writes s centered on column centerX and marks the cells so the
// canvas repaints them once the text is gone.
func (c *Client) writeCentered(centerX, row int, s string) {
	col := c.chunkWriter.WriteCentered(centerX, row, s)
	c.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, msg)
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		` ___ ___    _   ___ _  _ ___  ___ _____ ___  `,
		`| _ ) _ \  /_\ |_ _| \| | _ \/ _ \_   _/ __| `,
		`| _ \   / / _ \ | || .' |   / (_) || | \__ \ `,
		`|___/_|_\/_/ \_\___|_|\_|_|_\\___/ |_| |___/ `,
		`                                             `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := c.chunkWriter
	titleStartY := centerY - 9
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	c.writeCentered(centerX, titleStartY+len(titleArt)+1, "~ Collect the brainrots, dodge the enemies ~")

	// Rarity legend in tier colors
	legendY := titleStartY + len(titleArt) + 3
	c.writeCentered(centerX, legendY, "Rarities")
	for i, r := range object.Rarities() {
		info := r.Info()
		line := fmt.Sprintf("%-10s %4d pts", info.Name, info.Points)
		cw.WriteColoredAt(centerX-len(line)/2, legendY+1+i, info.Color, line)
	}

	controlsY := legendY + len(object.Rarities()) + 2
	c.writeCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"W A S D / arrows  . Move",
		"SPACE / ENTER  . . Start",
		"Q  . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line)
	}

	// Blinking start prompt
	promptY := controlsY + len(controlLines) + 2
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, promptY, ">>  Press SPACE to Start  <<")
	} else {
		c.writeCentered(centerX, promptY, "                            ")
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	snap := &c.state.Snapshot
	cw := c.chunkWriter

	scoreText := fmt.Sprintf("Score: %-8d", snap.Score)
	cw.WriteColoredAt(2, 1, hudScoreColor, scoreText)
	c.canvas.MarkTextDirty(2, 1, len(scoreText))

	healthColor := hudHealthColor
	if snap.Health <= config.MaxHealth/4 {
		healthColor = hudLowColor
	}
	healthText := fmt.Sprintf("Health: %-3d %s", snap.Health, healthBar(snap.Health, 10))
	col := termWidth - len([]rune(healthText)) - 1
	cw.WriteColoredAt(col, 1, healthColor, healthText)
	c.canvas.MarkTextDirty(col, 1, len([]rune(healthText)))

	collectedText := fmt.Sprintf("Collected: %-6d", snap.Collected)
	cw.WriteAt(2, termHeight, collectedText)
	c.canvas.MarkTextDirty(2, termHeight, len(collectedText))
}

// healthBar renders health as a fixed-width bar of full and light blocks.
func healthBar(health, width int) string {
	filled := health * width / config.MaxHealth
	filled = max(0, min(width, filled))
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}

// drawGameOverScreen draws the final summary and restart prompt.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
		`                                              `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	titleStartY := centerY - 6
	for i, line := range titleArt {
		c.chunkWriter.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
		c.canvas.MarkTextDirty(centerX-titleWidth/2, titleStartY+i, titleWidth)
	}

	snap := &c.state.Snapshot
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, fmt.Sprintf("Final Score: %d", snap.Score))
	c.writeCentered(centerX, titleStartY+len(titleArt)+2, fmt.Sprintf("Brainrots Collected: %d", snap.Collected))

	prompt := ">>  Press SPACE to Restart  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = "                              "
	}
	c.writeCentered(centerX, titleStartY+len(titleArt)+4, prompt)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
