// internal/grid/grid.go
//
// Letter matrix for a word-search puzzle.
// Defines:
//   - Grid: fixed Size x Size matrix of uppercase letters.
//   - Cell: a (row, col) coordinate, JSON-encoded as [row, col].
//   - Direction / Placement: where a word runs inside the grid.
//
// Notes:
//   - Cells hold Empty only while a Generator is building the grid.
//   - A finished grid is read-only; callers never get a mutable handle.

package grid

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// Size is the row and column count of every grid.
	Size = 10

	// Empty marks a cell no word or filler letter has claimed yet.
	Empty byte = ' '
)

// Direction is the axis a word is written along.
type Direction int

const (
	Horizontal Direction = iota // left to right
	Vertical                    // top to bottom
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// step returns the row/col delta for one letter along d.
func (d Direction) step() (dr, dc int) {
	if d == Vertical {
		return 1, 0
	}
	return 0, 1
}

// Cell is a coordinate inside the grid.
type Cell struct {
	Row int
	Col int
}

// InBounds reports whether c addresses a cell of a Size x Size grid.
func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

func (c Cell) String() string { return fmt.Sprintf("%d-%d", c.Row, c.Col) }

// MarshalJSON encodes the cell as a two-element array.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a [row, col] array.
func (c *Cell) UnmarshalJSON(b []byte) error {
	var rc []int
	if err := json.Unmarshal(b, &rc); err != nil {
		return err
	}
	if len(rc) != 2 {
		return fmt.Errorf("grid: cell must be [row, col], got %d values", len(rc))
	}
	c.Row, c.Col = rc[0], rc[1]
	return nil
}

// Placement is the start cell and direction of one word.
type Placement struct {
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Direction Direction `json:"direction"`
}

// Cells lists the n cells covered by a word of length n at p.
func (p Placement) Cells(n int) []Cell {
	dr, dc := p.Direction.step()
	out := make([]Cell, n)
	for i := range out {
		out[i] = Cell{Row: p.Row + i*dr, Col: p.Col + i*dc}
	}
	return out
}

// Grid is a Size x Size letter matrix.
type Grid struct {
	cells [Size][Size]byte
}

// blank returns a grid with every cell set to Empty.
func blank() *Grid {
	g := &Grid{}
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = Empty
		}
	}
	return g
}

// FromRows builds a finished grid from Size strings of Size uppercase letters.
func FromRows(rows []string) (*Grid, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("grid: want %d rows, got %d", Size, len(rows))
	}
	g := &Grid{}
	for r, row := range rows {
		if len(row) != Size {
			return nil, fmt.Errorf("grid: row %d: want %d letters, got %d", r, Size, len(row))
		}
		for c := 0; c < Size; c++ {
			if !isUpper(row[c]) {
				return nil, fmt.Errorf("grid: row %d col %d: %w", r, c, ErrMalformedWord)
			}
			g.cells[r][c] = row[c]
		}
	}
	return g, nil
}

// At returns the letter at (row, col).
func (g *Grid) At(row, col int) byte { return g.cells[row][col] }

// Rows returns the grid as Size strings, top to bottom.
func (g *Grid) Rows() []string {
	out := make([]string, Size)
	for r := range g.cells {
		out[r] = string(g.cells[r][:])
	}
	return out
}

func (g *Grid) String() string {
	var b strings.Builder
	for r := range g.cells {
		for c, ch := range g.cells[r] {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// MarshalJSON encodes the grid as rows of one-letter strings.
func (g *Grid) MarshalJSON() ([]byte, error) {
	out := make([][]string, Size)
	for r := range g.cells {
		out[r] = make([]string, Size)
		for c, ch := range g.cells[r] {
			out[r][c] = string(ch)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the MarshalJSON form.
func (g *Grid) UnmarshalJSON(b []byte) error {
	var in [][]string
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	rows := make([]string, len(in))
	for i, r := range in {
		rows[i] = strings.Join(r, "")
	}
	parsed, err := FromRows(rows)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

// Word concatenates the letters under path, in path order.
func (g *Grid) Word(path []Cell) (string, error) {
	b := make([]byte, 0, len(path))
	for _, c := range path {
		if !c.InBounds() {
			return "", fmt.Errorf("grid: cell %s: %w", c, ErrOutOfBounds)
		}
		b = append(b, g.cells[c.Row][c.Col])
	}
	return string(b), nil
}

// Find locates word along a horizontal or vertical run.
// Horizontal runs are searched first, row by row.
func (g *Grid) Find(word string) (Placement, bool) {
	if word == "" || len(word) > Size {
		return Placement{}, false
	}
	for _, d := range []Direction{Horizontal, Vertical} {
		for r := 0; r < Size; r++ {
			for c := 0; c < Size; c++ {
				p := Placement{Row: r, Col: c, Direction: d}
				if g.matches(word, p) {
					return p, true
				}
			}
		}
	}
	return Placement{}, false
}

// matches reports whether word is spelled exactly at p.
func (g *Grid) matches(word string, p Placement) bool {
	if !fits(len(word), p) {
		return false
	}
	for i, c := range p.Cells(len(word)) {
		if g.cells[c.Row][c.Col] != word[i] {
			return false
		}
	}
	return true
}

// canPlace reports whether word can be written at p: every target cell is
// Empty or already holds the same letter.
func (g *Grid) canPlace(word string, p Placement) bool {
	if !fits(len(word), p) {
		return false
	}
	for i, c := range p.Cells(len(word)) {
		if ch := g.cells[c.Row][c.Col]; ch != Empty && ch != word[i] {
			return false
		}
	}
	return true
}

func (g *Grid) place(word string, p Placement) {
	for i, c := range p.Cells(len(word)) {
		g.cells[c.Row][c.Col] = word[i]
	}
}

// fits reports whether n letters starting at p stay inside the grid.
func fits(n int, p Placement) bool {
	if p.Row < 0 || p.Col < 0 || p.Row >= Size || p.Col >= Size {
		return false
	}
	if p.Direction == Vertical {
		return p.Row+n <= Size
	}
	return p.Col+n <= Size
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
