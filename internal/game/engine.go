// internal/game/engine.go
//
// Board engine for a single word-search puzzle.
// Responsibilities:
//   - Track one drag gesture at a time (press → enter* → release).
//   - On release, spell the selected cells and match against the word list.
//   - Record each word once, with its palette color.
//   - Advance the timer while unsolved; flag completion exactly once.
//
// Transitions:
//   idle/selecting --Press--> selecting
//   selecting --Enter--> selecting
//   selecting --Release--> evaluating --> idle | completed
//   any --Restart--> idle
//
// A Board is not safe for concurrent use; see Session.

package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordsearch/internal/grid"
)

var (
	ErrCompleted   = errors.New("game: puzzle already completed")
	ErrOutOfBounds = errors.New("game: cell out of bounds")
	ErrUnknownWord = errors.New("game: word not present in grid")
)

// Board holds the mutable state of one puzzle.
type Board struct {
	grid  *grid.Grid
	words []string
	index map[string]int // word -> list position

	phase   Phase
	path    []grid.Cell
	inPath  map[grid.Cell]struct{}
	found   map[string]Found
	elapsed int
}

// NewBoard checks that every word is spelled somewhere in g and returns an
// idle board.
func NewBoard(g *grid.Grid, words []string) (*Board, error) {
	if err := grid.ValidateWords(words); err != nil {
		return nil, err
	}
	if err := checkPlaced(g, words); err != nil {
		return nil, err
	}
	b := &Board{
		grid:  g,
		words: append([]string(nil), words...),
		index: make(map[string]int, len(words)),
	}
	for i, w := range b.words {
		b.index[w] = i
	}
	b.reset()
	return b, nil
}

func checkPlaced(g *grid.Grid, words []string) error {
	for _, w := range words {
		if _, ok := g.Find(w); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownWord, w)
		}
	}
	return nil
}

func (b *Board) reset() {
	b.phase = PhaseIdle
	b.path = nil
	b.inPath = nil
	b.found = make(map[string]Found, len(b.words))
	b.elapsed = 0
}

// Press starts a new selection at c, discarding any unfinished one.
func (b *Board) Press(c grid.Cell) error {
	if b.phase == PhaseCompleted {
		return ErrCompleted
	}
	if !c.InBounds() {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	b.phase = PhaseSelecting
	b.path = []grid.Cell{c}
	b.inPath = map[grid.Cell]struct{}{c: {}}
	return nil
}

// Enter extends the current selection with c. Without an active selection
// the call is a no-op; cells already selected are skipped.
func (b *Board) Enter(c grid.Cell) error {
	if b.phase != PhaseSelecting {
		return nil
	}
	if !c.InBounds() {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if _, dup := b.inPath[c]; dup {
		return nil
	}
	b.path = append(b.path, c)
	b.inPath[c] = struct{}{}
	return nil
}

// Release ends the selection and evaluates it.
// Without an active selection it returns a zero Result.
func (b *Board) Release() (Result, error) {
	if b.phase != PhaseSelecting {
		return Result{}, nil
	}
	b.phase = PhaseEvaluating
	path := b.path
	b.path, b.inPath = nil, nil

	word, err := b.grid.Word(path)
	if err != nil {
		b.phase = PhaseIdle
		return Result{}, err
	}
	res := Result{Word: word}
	if i, ok := b.index[word]; ok {
		res.Matched = true
		if _, seen := b.found[word]; !seen {
			b.found[word] = Found{Color: ColorFor(i), Path: path}
			res.NewlyFound = true
		}
	}

	if res.NewlyFound && len(b.found) == len(b.words) {
		b.phase = PhaseCompleted
		res.Completed = true
		return res, nil
	}
	b.phase = PhaseIdle
	return res, nil
}

// Submit runs a whole gesture: press on the first cell, enter the rest,
// release. An invalid cell cancels the gesture.
func (b *Board) Submit(path []grid.Cell) (Result, error) {
	if len(path) == 0 {
		return Result{}, nil
	}
	if err := b.Press(path[0]); err != nil {
		return Result{}, err
	}
	for _, c := range path[1:] {
		if err := b.Enter(c); err != nil {
			b.cancel()
			return Result{}, err
		}
	}
	return b.Release()
}

func (b *Board) cancel() {
	if b.phase == PhaseSelecting {
		b.phase = PhaseIdle
		b.path, b.inPath = nil, nil
	}
}

// Tick advances the timer by one second unless the puzzle is solved.
func (b *Board) Tick() {
	if b.phase != PhaseCompleted {
		b.elapsed++
	}
}

// Restart clears selection, found words, timer and completion.
// A nil g keeps the current layout; otherwise g replaces it and must contain
// every word.
func (b *Board) Restart(g *grid.Grid) error {
	if g != nil {
		if err := checkPlaced(g, b.words); err != nil {
			return err
		}
		b.grid = g
	}
	b.reset()
	return nil
}

func (b *Board) Phase() Phase { return b.phase }
func (b *Board) Elapsed() int { return b.elapsed }
func (b *Board) Grid() *grid.Grid { return b.grid }
func (b *Board) Words() []string { return append([]string(nil), b.words...) }
func (b *Board) FoundCount() int { return len(b.found) }
func (b *Board) Completed() bool { return b.phase == PhaseCompleted }
func (b *Board) Selection() []grid.Cell { return append([]grid.Cell(nil), b.path...) }

// IsFound reports whether w has been found, and its color.
func (b *Board) IsFound(w string) (string, bool) {
	f, ok := b.found[w]
	return f.Color, ok
}

// Snapshot copies the current state.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Phase:     b.phase,
		Grid:      b.grid,
		Words:     b.Words(),
		Colors:    make(map[string]string, len(b.words)),
		Found:     make(map[string]Found, len(b.found)),
		Selection: b.Selection(),
		Elapsed:   b.elapsed,
		Completed: b.phase == PhaseCompleted,
	}
	for i, w := range b.words {
		s.Colors[w] = ColorFor(i)
	}
	for w, f := range b.found {
		s.Found[w] = Found{Color: f.Color, Path: append([]grid.Cell(nil), f.Path...)}
	}
	return s
}
