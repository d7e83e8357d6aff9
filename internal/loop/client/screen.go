package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/loop/config"
	"github.com/tomz197/snake/internal/loop/server"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	snap := c.game.Snapshot()

	// On screen transitions, do a full terminal clear so UI elements from
	// the previous screen don't persist.
	screen := c.state.screenFor(snap.Phase, c.layout.Fits())
	if screen != c.state.prevScreen {
		c.output.Clear()
		c.canvas.ForceRedraw()
		c.state.borderDirty = true
		c.state.prevScreen = screen
	}

	if screen == ScreenTooSmall {
		c.drawTooSmall()
		return c.output.Flush()
	}

	draw.DrawBoard(c.canvas, c.layout, snap)
	c.canvas.Render(c.output)
	if c.state.borderDirty {
		c.canvas.RenderBorder(c.output)
		c.state.borderDirty = false
	}

	c.drawHUD(snap)
	c.drawFooter(c.server.GetSnapshot())

	switch screen {
	case ScreenStart:
		c.drawStartScreen(now)
	case ScreenPaused:
		c.drawPausedScreen()
	case ScreenGameOver:
		c.drawGameOverScreen(snap, now)
	case ScreenInactive:
		c.drawInactivityScreen(now)
	case ScreenShutdown:
		c.drawShutdownScreen()
	}

	return c.output.Flush()
}

// text writes s at the 1-based board position (col, row) and marks the
// covered cells so the canvas repaints them once the text goes away.
func (c *Client) text(col, row int, style, s string) {
	col = max(col, 1-c.layout.OffsetCol)
	row = max(row, 1-c.layout.OffsetRow)
	n := len([]rune(s))
	if c.layout.Fits() && row >= 0 && row <= c.layout.Height+1 && (col < 1 || col+n-1 > c.layout.Width) {
		// Overwrites part of the border.
		c.state.borderDirty = true
	}
	if style != "" {
		s = style + s + draw.ColorReset
	}
	c.output.Text(col, row, s)
	c.canvas.MarkTextDirty(col, row, n)
}

// centered writes s centered horizontally on the board.
func (c *Client) centered(row int, style, s string) {
	c.text(c.layout.Width/2+1-len([]rune(s))/2, row, style, s)
}

// blinkOn toggles every 600ms for prompts.
func blinkOn(now time.Time) bool {
	return now.UnixMilli()/600%2 == 0
}

// fit pads or truncates s to exactly n runes. Fixed-width fields keep
// shrinking values from leaving residual characters on screen.
func fit(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s + strings.Repeat(" ", n-len(r))
}

// hudWidth is the room from the left border to the terminal's right edge.
func (c *Client) hudWidth() int {
	return c.layout.TermWidth - c.layout.OffsetCol
}

// drawHUD draws the score line above the board.
func (c *Client) drawHUD(snap game.Snapshot) {
	hud := fmt.Sprintf("Score %-5d High %-5d Level %-2d Speed %.1fx Length %d",
		snap.Score, snap.HighScore, snap.Level, snap.Speed, snap.Length())
	c.text(0, -1, draw.ColorBold, fit(hud, c.hudWidth()))
}

// drawFooter draws the player count and the best scores of live sessions
// below the board.
func (c *Client) drawFooter(snapshot *server.Snapshot) {
	line := fmt.Sprintf("Players %-3d", snapshot.Players)
	if len(snapshot.TopScores) > 0 {
		parts := make([]string, len(snapshot.TopScores))
		for i, e := range snapshot.TopScores {
			parts[i] = fmt.Sprintf("%s %d", e.Username, e.Score)
		}
		line += " Top " + strings.Join(parts, ", ")
	}
	c.text(0, c.layout.Height+2, draw.ColorDim, fit(line, c.hudWidth()))
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(now time.Time) {
	titleArt, controls := draw.TitleArt, draw.Controls
	compact := c.layout.Height < len(titleArt)+len(controls)+6 || c.layout.Width < len(titleArt[0])+2
	row := c.layout.Height/2 - 5
	if compact {
		row = c.layout.Height/2 - 1
		c.centered(row, draw.ColorBold+draw.ColorGreen, "SNAKE")
	} else {
		for i, line := range titleArt {
			c.centered(row+i, draw.ColorGreen, line)
		}
		row += len(titleArt)
		for i, line := range controls {
			c.centered(row+1+i, "", line)
		}
		row += len(controls) + 1
	}

	// Blinking start prompt
	if blinkOn(now) {
		c.centered(row+2, draw.ColorBrightCyan, ">> Press SPACE to Start <<")
	}
}

// drawPausedScreen draws the pause overlay.
func (c *Client) drawPausedScreen() {
	center := c.layout.Height / 2
	c.centered(center, draw.ColorBold+draw.ColorYellow, " PAUSED ")
	c.centered(center+2, "", "Press SPACE to resume")
}

// drawGameOverScreen draws the final score and the restart prompt.
func (c *Client) drawGameOverScreen(snap game.Snapshot, now time.Time) {
	gameOverArt := draw.GameOverArt
	row := c.layout.Height/2 - 4
	if c.layout.Width >= len(gameOverArt[0])+2 && c.layout.Height >= len(gameOverArt)+8 {
		for i, line := range gameOverArt {
			c.centered(row+i, draw.ColorMagenta, line)
		}
		row += len(gameOverArt) + 1
	} else {
		c.centered(row, draw.ColorBold+draw.ColorMagenta, "GAME OVER")
		row += 2
	}

	c.centered(row, draw.ColorBold, fmt.Sprintf("Score: %d", snap.Score))
	if snap.NewHighScore {
		c.centered(row+1, draw.ColorYellow, "NEW HIGH SCORE!")
	}
	c.centered(row+2, "", fmt.Sprintf("Level %d  Length %d", snap.Level, snap.Length()))

	if blinkOn(now) {
		c.centered(row+4, draw.ColorBrightCyan, ">> Press ENTER to Restart <<")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(now time.Time) {
	center := c.layout.Height / 2
	remaining := int(config.InactivityDisconnectUser - now.Sub(c.lastInput).Seconds())
	c.centered(center-2, draw.ColorBold+draw.ColorYellow, "INACTIVITY WARNING")
	c.centered(center, "", fmt.Sprintf("Disconnecting in %d seconds", max(remaining, 0)))
	c.centered(center+2, "", "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen() {
	center := c.layout.Height / 2
	c.centered(center-3, draw.ColorBold+draw.ColorYellow, "SERVER SHUTTING DOWN")
	c.centered(center-1, "", "Please reconnect in a moment.")
	remaining := int(c.state.shutdownTimer) + 1
	c.centered(center+1, "", fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.centered(center+3, draw.ColorDim, "Press Q to disconnect now")
}

// drawTooSmall asks for a bigger terminal. The layout has no offset here,
// so positions are terminal positions.
func (c *Client) drawTooSmall() {
	g := c.game.Grid()
	lines := []string{
		"Terminal too small",
		fmt.Sprintf("Need %dx%d", g.Width+2, (g.Height+1)/2+4),
		"Q to quit",
	}
	row := c.layout.TermHeight/2 - 1
	for i, line := range lines {
		col := c.layout.TermWidth/2 - len(line)/2 + 1
		c.text(col, row+i, "", line)
	}
}
