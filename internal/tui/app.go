// internal/tui/app.go
//
// Terminal client for one word-search board.
//
// Layout (screen columns/rows):
//   - grid at (gridX, gridY), two columns per cell
//   - word list to the right of the grid, struck through once found
//   - timer and key help below the grid
//   - completion overlay centered over the grid
//
// Input: mouse button 1 press starts a selection, dragging extends it,
// releasing evaluates it. r/Enter restarts with a fresh layout, q/Esc quits.

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/grid"
)

const (
	gridX     = 2
	gridY     = 2
	cellWidth = 2
	wordsX    = gridX + grid.Size*cellWidth + 4
	footerY   = gridY + grid.Size + 1
)

var (
	styleDefault   = tcell.StyleDefault
	styleTitle     = tcell.StyleDefault.Bold(true)
	styleSelecting = tcell.StyleDefault.Reverse(true)
	styleHelp      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOverlay   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite).Bold(true)
)

// App drives a Board from terminal input.
type App struct {
	screen tcell.Screen
	board  *game.Board
	build  game.Builder
	sound  Sounder

	dragging bool
	last     game.Result // outcome of the latest released selection
}

// New builds the first grid for words and returns an App drawing to screen.
// screen must already be initialized. A nil sound plays nothing.
func New(screen tcell.Screen, words []string, build game.Builder, sound Sounder) (*App, error) {
	g, err := build(words)
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	b, err := game.NewBoard(g, words)
	if err != nil {
		return nil, err
	}
	if sound == nil {
		sound = Silent{}
	}
	screen.EnableMouse()
	return &App{screen: screen, board: b, build: build, sound: sound}, nil
}

// Board exposes the underlying board (read-only use).
func (a *App) Board() *game.Board { return a.board }

// Run processes events and timer ticks until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil { // screen finalized
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !a.handle(ev) {
				return nil
			}
		case <-ticker.C:
			a.board.Tick()
		}
		a.Draw()
	}
}

// handle dispatches one event; false means quit.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.key(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.mouse(x, y, ev.Buttons()&tcell.Button1 != 0)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// key handles a key press; false means quit.
func (a *App) key(k tcell.Key, r rune) bool {
	switch {
	case k == tcell.KeyEscape || k == tcell.KeyCtrlC:
		return false
	case k == tcell.KeyRune && (r == 'q' || r == 'Q'):
		return false
	case k == tcell.KeyEnter, k == tcell.KeyRune && (r == 'r' || r == 'R'):
		a.restart()
	}
	return true
}

// mouse feeds pointer state into the board. down is button 1 held.
func (a *App) mouse(x, y int, down bool) {
	c, onGrid := cellAt(x, y)
	switch {
	case down && !a.dragging:
		if !onGrid {
			return
		}
		if err := a.board.Press(c); err != nil {
			return // completed boards ignore input
		}
		a.dragging = true
	case down && a.dragging:
		if onGrid {
			_ = a.board.Enter(c)
		}
	case !down && a.dragging:
		a.dragging = false
		res, err := a.board.Release()
		if err != nil {
			log.Debug().Err(err).Msg("release")
			return
		}
		a.last = res
		switch {
		case res.Completed:
			a.sound.Completed()
		case res.NewlyFound:
			a.sound.Found()
		}
	}
}

// restart lays out the same words again and resets the board.
func (a *App) restart() {
	g, err := a.build(a.board.Words())
	if err != nil {
		log.Warn().Err(err).Msg("regenerate grid")
		g = nil // keep the current layout
	}
	if err := a.board.Restart(g); err != nil {
		log.Warn().Err(err).Msg("restart")
		_ = a.board.Restart(nil)
	}
	a.dragging = false
	a.last = game.Result{}
}

// cellAt maps a screen position to a grid cell.
func cellAt(x, y int) (grid.Cell, bool) {
	if x < gridX || y < gridY {
		return grid.Cell{}, false
	}
	c := grid.Cell{Row: y - gridY, Col: (x - gridX) / cellWidth}
	return c, c.InBounds()
}

// screenPos is the screen column/row of a cell's letter.
func screenPos(c grid.Cell) (x, y int) {
	return gridX + c.Col*cellWidth, gridY + c.Row
}

// ------------------------------- drawing ----------------------------------

// Draw renders the whole board.
func (a *App) Draw() {
	a.screen.Clear()
	snap := a.board.Snapshot()

	drawText(a.screen, gridX, 0, styleTitle, "WORD SEARCH")

	// cell colors: found words first, then the live selection on top
	styles := make(map[grid.Cell]tcell.Style)
	for word, f := range snap.Found {
		st := foundCellStyle(snap.Colors[word])
		for _, c := range f.Path {
			styles[c] = st
		}
	}
	for _, c := range snap.Selection {
		styles[c] = styleSelecting
	}

	for r := 0; r < grid.Size; r++ {
		for c := 0; c < grid.Size; c++ {
			cell := grid.Cell{Row: r, Col: c}
			st, ok := styles[cell]
			if !ok {
				st = styleDefault
			}
			x, y := screenPos(cell)
			a.screen.SetContent(x, y, rune(snap.Grid.At(r, c)), nil, st)
		}
	}

	drawText(a.screen, wordsX, gridY-1, styleTitle, "Find:")
	for i, w := range snap.Words {
		st := styleDefault
		if _, ok := snap.Found[w]; ok {
			st = foundWordStyle(snap.Colors[w])
		}
		drawText(a.screen, wordsX, gridY+i, st, w)
	}

	drawText(a.screen, gridX, footerY, styleDefault,
		fmt.Sprintf("Time: %ds   Found: %d/%d", snap.Elapsed, len(snap.Found), len(snap.Words)))
	if a.last.Word != "" && !a.last.Matched {
		drawText(a.screen, gridX, footerY+1, styleHelp, "no word: "+a.last.Word)
	}
	drawText(a.screen, gridX, footerY+2, styleHelp, "drag to select   r restart   q quit")

	if snap.Completed {
		a.drawOverlay(snap.Elapsed)
	}
	a.screen.Show()
}

func (a *App) drawOverlay(elapsed int) {
	lines := []string{
		"",
		"  Puzzle complete!  ",
		fmt.Sprintf("  Time: %ds", elapsed),
		"  r: play again  q: quit  ",
		"",
	}
	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	x0 := gridX + (grid.Size*cellWidth-width)/2
	if x0 < 0 {
		x0 = 0
	}
	y0 := gridY + (grid.Size-len(lines))/2
	for i, l := range lines {
		for j := 0; j < width; j++ {
			ch := ' '
			if j < len(l) {
				ch = rune(l[j])
			}
			a.screen.SetContent(x0+j, y0+i, ch, nil, styleOverlay)
		}
	}
}

func drawText(s tcell.Screen, x, y int, st tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, st)
	}
}

func foundCellStyle(hex string) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.GetColor(hex))
}

func foundWordStyle(hex string) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.GetColor(hex)).StrikeThrough(true)
}
