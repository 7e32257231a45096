package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/grid"
)

var classic = []string{"RUST", "GAME", "SEARCH", "CODE"}

// countingSound records cues instead of playing them.
type countingSound struct{ found, completed int }

func (c *countingSound) Found()     { c.found++ }
func (c *countingSound) Completed() { c.completed++ }

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, *countingSound) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	gen := grid.New(&grid.Options{Seed: 7})
	snd := &countingSound{}
	app, err := New(screen, classic, gen.Generate, snd)
	if err != nil {
		t.Fatal(err)
	}
	return app, screen, snd
}

// drag presses on the first cell of word, drags over the rest and releases.
func drag(t *testing.T, a *App, word string) {
	t.Helper()
	p, ok := a.board.Grid().Find(word)
	if !ok {
		t.Fatalf("%s not in grid", word)
	}
	for _, c := range p.Cells(len(word)) {
		x, y := screenPos(c)
		a.mouse(x, y, true)
	}
	a.mouse(0, 0, false)
}

func TestCellAt(t *testing.T) {
	for _, tc := range []struct {
		x, y int
		want grid.Cell
		ok   bool
	}{
		{gridX, gridY, grid.Cell{Row: 0, Col: 0}, true},
		{gridX + 1, gridY, grid.Cell{Row: 0, Col: 0}, true},
		{gridX + 2, gridY + 3, grid.Cell{Row: 3, Col: 1}, true},
		{gridX + 2*grid.Size - 1, gridY + grid.Size - 1, grid.Cell{Row: 9, Col: 9}, true},
		{gridX - 1, gridY, grid.Cell{}, false},
		{gridX, gridY + grid.Size, grid.Cell{}, false},
		{gridX + 2*grid.Size, gridY, grid.Cell{}, false},
	} {
		got, ok := cellAt(tc.x, tc.y)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("cellAt(%d,%d) = %v,%v want %v,%v", tc.x, tc.y, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDragFindsWord(t *testing.T) {
	a, screen, snd := newTestApp(t)
	drag(t, a, "RUST")

	if _, ok := a.board.IsFound("RUST"); !ok {
		t.Fatal("RUST should be found")
	}
	if snd.found != 1 || snd.completed != 0 {
		t.Fatalf("cues: %+v", snd)
	}

	a.Draw()
	// Word list entry is struck through in its palette color.
	ch, _, st, _ := screen.GetContent(wordsX, gridY)
	if ch != 'R' || st != foundWordStyle(game.ColorFor(0)) {
		t.Fatalf("RUST list entry not marked found: %q %v", ch, st)
	}
	// Grid cells of the word carry the found background.
	p, _ := a.board.Grid().Find("RUST")
	x, y := screenPos(p.Cells(4)[2])
	if ch, _, st, _ := screen.GetContent(x, y); ch != 'S' || st != foundCellStyle(game.ColorFor(0)) {
		t.Fatalf("found cell not colored: %q %v", ch, st)
	}
}

func TestDragOutsideGridIsIgnored(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.mouse(0, 0, true)
	if a.dragging || a.board.Phase() != game.PhaseIdle {
		t.Fatal("press outside the grid should not start a selection")
	}
	a.mouse(0, 0, false)
	if a.board.FoundCount() != 0 {
		t.Fatal("nothing should be found")
	}
}

func TestSelectionHighlight(t *testing.T) {
	a, screen, _ := newTestApp(t)
	x, y := screenPos(grid.Cell{Row: 4, Col: 4})
	a.mouse(x, y, true)
	a.Draw()
	if _, _, st, _ := screen.GetContent(x, y); st != styleSelecting {
		t.Fatalf("selected cell style = %v", st)
	}
	a.mouse(x, y, false)
	if a.board.Phase() != game.PhaseIdle || len(a.board.Selection()) != 0 {
		t.Fatal("release should clear the selection")
	}
}

func TestCompletionAndRestart(t *testing.T) {
	a, screen, snd := newTestApp(t)
	a.board.Tick()
	for _, w := range classic {
		drag(t, a, w)
	}
	if !a.board.Completed() || snd.completed != 1 || snd.found != 3 {
		t.Fatalf("completed=%v cues=%+v", a.board.Completed(), snd)
	}

	a.Draw()
	if !screenContains(screen, "Puzzle complete!") {
		t.Fatal("overlay not drawn")
	}

	// Input is ignored once complete.
	x, y := screenPos(grid.Cell{})
	a.mouse(x, y, true)
	if a.dragging {
		t.Fatal("completed board should ignore presses")
	}

	if !a.key(tcell.KeyRune, 'r') {
		t.Fatal("r should not quit")
	}
	if a.board.Completed() || a.board.FoundCount() != 0 || a.board.Elapsed() != 0 {
		t.Fatal("restart should reset the board")
	}
	for _, w := range classic {
		if _, ok := a.board.Grid().Find(w); !ok {
			t.Fatalf("%s missing after restart", w)
		}
	}
}

func TestRestartKeepsLayoutWhenBuildFails(t *testing.T) {
	a, _, _ := newTestApp(t)
	before := a.board.Grid().String()
	a.build = func([]string) (*grid.Grid, error) { return nil, errors.New("boom") }
	a.key(tcell.KeyEnter, 0)
	if a.board.Grid().String() != before {
		t.Fatal("failed regeneration should keep the layout")
	}
}

func TestQuitKeys(t *testing.T) {
	a, _, _ := newTestApp(t)
	for _, tc := range []struct {
		k tcell.Key
		r rune
	}{
		{tcell.KeyEscape, 0},
		{tcell.KeyCtrlC, 0},
		{tcell.KeyRune, 'q'},
	} {
		if a.key(tc.k, tc.r) {
			t.Errorf("key %v %q should quit", tc.k, tc.r)
		}
	}
}

func TestTimerFooter(t *testing.T) {
	a, screen, _ := newTestApp(t)
	for i := 0; i < 3; i++ {
		a.board.Tick()
	}
	a.Draw()
	if !screenContains(screen, "Time: 3s") {
		t.Fatal("timer not drawn")
	}
}

// screenContains reports whether any screen row contains s.
func screenContains(screen tcell.Screen, s string) bool {
	w, h := screen.Size()
	for y := 0; y < h; y++ {
		line := make([]rune, w)
		for x := 0; x < w; x++ {
			line[x], _, _, _ = screen.GetContent(x, y)
		}
		if strings.Contains(string(line), s) {
			return true
		}
	}
	return false
}
