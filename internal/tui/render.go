package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
)

var (
	styleText   = tcell.StyleDefault
	styleBold   = tcell.StyleDefault.Bold(true)
	styleDim    = tcell.StyleDefault.Dim(true)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePrompt = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleWarn   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleOver   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
)

// tcellColor converts a palette color; ColorNone is the terminal default.
func tcellColor(c draw.Color) tcell.Color {
	r, g, b, ok := draw.RGB(c)
	if !ok {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// draw renders one frame.
func (a *App) draw(now time.Time) {
	a.screen.Clear()
	defer a.screen.Show()

	if !a.layout.Fits() {
		a.drawTooSmall()
		return
	}

	snap := a.game.Snapshot()
	draw.DrawBoard(a.canvas, a.layout, snap)
	a.drawCanvas()
	a.drawBorder()
	a.drawHUD(snap)

	switch snap.Phase {
	case game.PhaseStart:
		a.drawStart(now)
	case game.PhasePaused:
		a.center(a.layout.Height/2, styleWarn, " PAUSED ")
		a.center(a.layout.Height/2+2, styleText, "Press SPACE to resume")
	case game.PhaseGameOver:
		a.drawGameOver(snap, now)
	}
}

// drawCanvas copies the canvas pixels to the screen, two pixels per cell.
func (a *App) drawCanvas() {
	l := a.layout
	for row := 0; row < l.Height; row++ {
		for col := 0; col < l.Width; col++ {
			top := a.canvas.At(col, row*2)
			bottom := a.canvas.At(col, row*2+1)
			x, y := l.OffsetCol+col, l.OffsetRow+row

			switch {
			case top == draw.ColorNone && bottom == draw.ColorNone:
				continue
			case top == bottom:
				a.screen.SetContent(x, y, draw.BlockFull, nil, styleText.Foreground(tcellColor(top)))
			case top == draw.ColorNone:
				a.screen.SetContent(x, y, draw.BlockLowerHalf, nil, styleText.Foreground(tcellColor(bottom)))
			default:
				st := styleText.Foreground(tcellColor(top)).Background(tcellColor(bottom))
				a.screen.SetContent(x, y, draw.BlockUpperHalf, nil, st)
			}
		}
	}
}

// drawBorder boxes the board.
func (a *App) drawBorder() {
	l := a.layout
	left, right := l.OffsetCol-1, l.OffsetCol+l.Width
	top, bottom := l.OffsetRow-1, l.OffsetRow+l.Height
	for x := left + 1; x < right; x++ {
		a.screen.SetContent(x, top, '─', nil, styleText)
		a.screen.SetContent(x, bottom, '─', nil, styleText)
	}
	for y := top + 1; y < bottom; y++ {
		a.screen.SetContent(left, y, '│', nil, styleText)
		a.screen.SetContent(right, y, '│', nil, styleText)
	}
	a.screen.SetContent(left, top, '┌', nil, styleText)
	a.screen.SetContent(right, top, '┐', nil, styleText)
	a.screen.SetContent(left, bottom, '└', nil, styleText)
	a.screen.SetContent(right, bottom, '┘', nil, styleText)
}

// drawHUD draws the score line above the board and the hint line below it.
func (a *App) drawHUD(snap game.Snapshot) {
	l := a.layout
	hud := fmt.Sprintf("Score %d  High %d  Level %d  Speed %.1fx  Length %d",
		snap.Score, snap.HighScore, snap.Level, snap.Speed, snap.Length())
	a.put(l.OffsetCol-1, l.OffsetRow-2, styleBold, hud)
	a.put(l.OffsetCol-1, l.OffsetRow+l.Height+1, styleDim, "SPACE pause  ENTER restart  Q quit")
}

func (a *App) drawStart(now time.Time) {
	l := a.layout
	row := l.Height/2 - 5
	if l.Height < len(draw.TitleArt)+len(draw.Controls)+6 || l.Width < len(draw.TitleArt[0])+2 {
		row = l.Height/2 - 1
		a.center(row, styleTitle.Bold(true), "SNAKE")
	} else {
		for i, line := range draw.TitleArt {
			a.center(row+i, styleTitle, line)
		}
		row += len(draw.TitleArt)
		for i, line := range draw.Controls {
			a.center(row+1+i, styleText, line)
		}
		row += len(draw.Controls) + 1
	}
	if blinkOn(now) {
		a.center(row+2, stylePrompt, ">> Press SPACE to Start <<")
	}
}

func (a *App) drawGameOver(snap game.Snapshot, now time.Time) {
	l := a.layout
	row := l.Height/2 - 4
	if l.Width >= len(draw.GameOverArt[0])+2 && l.Height >= len(draw.GameOverArt)+8 {
		for i, line := range draw.GameOverArt {
			a.center(row+i, styleOver, line)
		}
		row += len(draw.GameOverArt) + 1
	} else {
		a.center(row, styleOver.Bold(true), "GAME OVER")
		row += 2
	}
	a.center(row, styleBold, fmt.Sprintf("Score: %d", snap.Score))
	if snap.NewHighScore {
		a.center(row+1, styleWarn, "NEW HIGH SCORE!")
	}
	a.center(row+2, styleText, fmt.Sprintf("Level %d  Length %d", snap.Level, snap.Length()))
	if blinkOn(now) {
		a.center(row+4, stylePrompt, ">> Press ENTER to Restart <<")
	}
}

func (a *App) drawTooSmall() {
	w, h := a.screen.Size()
	g := a.game.Grid()
	lines := []string{
		"Terminal too small",
		fmt.Sprintf("Need %dx%d", g.Width+2, (g.Height+1)/2+4),
		"Q to quit",
	}
	for i, line := range lines {
		a.put(w/2-len(line)/2, h/2-1+i, styleText, line)
	}
}

// center writes s centered on the board, row counted from the board's top.
func (a *App) center(row int, st tcell.Style, s string) {
	l := a.layout
	a.put(l.OffsetCol+l.Width/2-len([]rune(s))/2, l.OffsetRow+row, st, s)
}

// put writes s at the 0-based screen position (x, y).
func (a *App) put(x, y int, st tcell.Style, s string) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

// blinkOn toggles every 600ms for prompts.
func blinkOn(now time.Time) bool {
	return now.UnixMilli()/600%2 == 0
}
