package game

import (
	"errors"
	"testing"

	"github.com/robalobadob/wordsearch/internal/grid"
)

var classic = []string{"RUST", "GAME", "SEARCH", "CODE"}

func fixedGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows([]string{
		"RUSTXXXXXX",
		"XXXXXXXXXG",
		"XXXXXCXXXA",
		"XXXXXOXXXM",
		"XXXXXDXXXE",
		"XXXXXEXXXX",
		"SEARCHXXXX",
		"XXXXXXXXXX",
		"DOGXXXXXXX",
		"XXXXXXXXXX",
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard(fixedGrid(t), classic)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func pathOf(t *testing.T, g *grid.Grid, word string) []grid.Cell {
	t.Helper()
	p, ok := g.Find(word)
	if !ok {
		t.Fatalf("%q not in grid", word)
	}
	return p.Cells(len(word))
}

func TestSubmitMarksWordFoundOnce(t *testing.T) {
	b := newTestBoard(t)
	path := pathOf(t, b.Grid(), "RUST")

	res, err := b.Submit(path)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || !res.NewlyFound || res.Completed || res.Word != "RUST" {
		t.Fatalf("first submit: %+v", res)
	}
	res, err = b.Submit(path)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.NewlyFound {
		t.Fatalf("second submit should match without re-finding: %+v", res)
	}
	if b.FoundCount() != 1 {
		t.Fatalf("want 1 found word, got %d", b.FoundCount())
	}
	if color, ok := b.IsFound("RUST"); !ok || color != Palette[0] {
		t.Fatalf("RUST color = %q, %v", color, ok)
	}
	if b.Phase() != PhaseIdle {
		t.Fatalf("want idle after release, got %s", b.Phase())
	}
}

func TestSubmitUnlistedWord(t *testing.T) {
	b := newTestBoard(t)
	res, err := b.Submit(pathOf(t, b.Grid(), "DOG"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Word != "DOG" || res.Matched || res.NewlyFound {
		t.Fatalf("unexpected result: %+v", res)
	}
	if b.FoundCount() != 0 {
		t.Fatal("found set should be unchanged")
	}
}

func TestCompletionTriggersOnce(t *testing.T) {
	b := newTestBoard(t)
	completions := 0
	for i, w := range classic {
		res, err := b.Submit(pathOf(t, b.Grid(), w))
		if err != nil {
			t.Fatal(err)
		}
		if res.Completed {
			completions++
			if i != len(classic)-1 {
				t.Fatalf("completed early on %q", w)
			}
		}
	}
	if completions != 1 || !b.Completed() || b.Phase() != PhaseCompleted {
		t.Fatalf("completions=%d phase=%s", completions, b.Phase())
	}

	if _, err := b.Submit(pathOf(t, b.Grid(), "RUST")); !errors.Is(err, ErrCompleted) {
		t.Fatalf("want ErrCompleted after completion, got %v", err)
	}
	if res, err := b.Release(); err != nil || res != (Result{}) {
		t.Fatalf("stray release after completion: %+v %v", res, err)
	}
}

func TestDragGesture(t *testing.T) {
	b := newTestBoard(t)

	if err := b.Enter(grid.Cell{Row: 0, Col: 1}); err != nil {
		t.Fatal(err)
	}
	if b.Phase() != PhaseIdle || len(b.Selection()) != 0 {
		t.Fatal("enter without press should be ignored")
	}

	steps := []grid.Cell{{Row: 0, Col: 1}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 2}, {Row: 0, Col: 3}}
	if err := b.Press(grid.Cell{Row: 0, Col: 0}); err != nil {
		t.Fatal(err)
	}
	for _, c := range steps {
		if err := b.Enter(c); err != nil {
			t.Fatal(err)
		}
	}
	if b.Phase() != PhaseSelecting || len(b.Selection()) != 4 {
		t.Fatalf("phase=%s selection=%v", b.Phase(), b.Selection())
	}
	res, err := b.Release()
	if err != nil {
		t.Fatal(err)
	}
	if res.Word != "RUST" || !res.NewlyFound {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(b.Selection()) != 0 {
		t.Fatal("selection should clear after release")
	}
}

func TestPressRestartsSelection(t *testing.T) {
	b := newTestBoard(t)
	_ = b.Press(grid.Cell{Row: 5, Col: 5})
	_ = b.Enter(grid.Cell{Row: 5, Col: 6})
	_ = b.Press(grid.Cell{Row: 0, Col: 0})
	if sel := b.Selection(); len(sel) != 1 || sel[0] != (grid.Cell{Row: 0, Col: 0}) {
		t.Fatalf("press should start a new path, got %v", sel)
	}
}

func TestOutOfBounds(t *testing.T) {
	b := newTestBoard(t)
	if err := b.Press(grid.Cell{Row: -1, Col: 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("press: %v", err)
	}
	_, err := b.Submit([]grid.Cell{{Row: 0, Col: 0}, {Row: 0, Col: grid.Size}})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("submit: %v", err)
	}
	if b.Phase() != PhaseIdle {
		t.Fatalf("bad cell should cancel the gesture, phase=%s", b.Phase())
	}
}

func TestTick(t *testing.T) {
	b := newTestBoard(t)
	for i := 0; i < 3; i++ {
		b.Tick()
	}
	if b.Elapsed() != 3 {
		t.Fatalf("want 3s, got %d", b.Elapsed())
	}
	for _, w := range classic {
		if _, err := b.Submit(pathOf(t, b.Grid(), w)); err != nil {
			t.Fatal(err)
		}
	}
	b.Tick()
	if b.Elapsed() != 3 {
		t.Fatalf("timer should stop on completion, got %d", b.Elapsed())
	}
}

func TestRestart(t *testing.T) {
	b := newTestBoard(t)
	for _, w := range classic {
		_, _ = b.Submit(pathOf(t, b.Grid(), w))
	}
	b.Tick()
	before := b.Grid()

	if err := b.Restart(nil); err != nil {
		t.Fatal(err)
	}
	if b.Grid() != before {
		t.Fatal("restart(nil) should keep the layout")
	}
	if b.Phase() != PhaseIdle || b.FoundCount() != 0 || b.Elapsed() != 0 {
		t.Fatalf("state not reset: phase=%s found=%d elapsed=%d", b.Phase(), b.FoundCount(), b.Elapsed())
	}

	fresh, err := grid.New(&grid.Options{Seed: 11}).Generate(classic)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Restart(fresh); err != nil {
		t.Fatal(err)
	}
	if b.Grid() != fresh {
		t.Fatal("restart should install the new grid")
	}

	other, err := grid.New(&grid.Options{Seed: 11}).Generate([]string{"ZEBRA"})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Restart(other); !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("grid without the words should be rejected, got %v", err)
	}
}

func TestNewBoardRejectsMissingWord(t *testing.T) {
	if _, err := NewBoard(fixedGrid(t), []string{"RUST", "GOPHER"}); !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("want ErrUnknownWord, got %v", err)
	}
	if _, err := NewBoard(fixedGrid(t), nil); !errors.Is(err, grid.ErrNoWords) {
		t.Fatalf("want ErrNoWords, got %v", err)
	}
}

func TestColorsRepeat(t *testing.T) {
	words := []string{"RUST", "GAME", "SEARCH", "CODE", "DOG"}
	b, err := NewBoard(fixedGrid(t), words)
	if err != nil {
		t.Fatal(err)
	}
	snap := b.Snapshot()
	if snap.Colors["DOG"] != Palette[0] || snap.Colors["GAME"] != Palette[1] {
		t.Fatalf("unexpected colors: %v", snap.Colors)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	b := newTestBoard(t)
	_, _ = b.Submit(pathOf(t, b.Grid(), "CODE"))
	snap := b.Snapshot()
	snap.Words[0] = "MUTATED"
	snap.Found["CODE"].Path[0] = grid.Cell{Row: 9, Col: 9}
	delete(snap.Found, "CODE")

	again := b.Snapshot()
	if again.Words[0] != "RUST" {
		t.Fatal("words leaked")
	}
	f, ok := again.Found["CODE"]
	if !ok || f.Path[0] != (grid.Cell{Row: 2, Col: 5}) {
		t.Fatalf("found map leaked: %+v", again.Found)
	}
	if f.Color != Palette[3] {
		t.Fatalf("CODE color = %q", f.Color)
	}
}
