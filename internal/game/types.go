// internal/game/types.go
//
// Core type definitions for the word-search board.
// Defines:
//   - Phase: where the board is in a selection gesture (idle/selecting/evaluating/completed).
//   - Found: color and cells recorded for a found word.
//   - Result: outcome of releasing one selection.
//   - Snapshot: read-only copy of board state handed to renderers.

package game

import "github.com/robalobadob/wordsearch/internal/grid"

// Phase is the board's state. The selection path only exists in PhaseSelecting,
// and PhaseCompleted is terminal until Restart.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSelecting  Phase = "selecting"
	PhaseEvaluating Phase = "evaluating"
	PhaseCompleted  Phase = "completed"
)

// Palette holds the word highlight colors, assigned by word-list position.
var Palette = []string{
	"#4ade80", // green
	"#60a5fa", // blue
	"#f87171", // red
	"#facc15", // yellow
}

// ColorFor returns the palette color for the i-th word, repeating.
func ColorFor(i int) string { return Palette[i%len(Palette)] }

// Found records how a word was found.
type Found struct {
	Color string      `json:"color"`
	Path  []grid.Cell `json:"path"`
}

// Result is the outcome of one released selection.
type Result struct {
	Word       string `json:"word"`       // letters under the selection, in order
	Matched    bool   `json:"matched"`    // Word is on the word list
	NewlyFound bool   `json:"newlyFound"` // first time Word was matched
	Completed  bool   `json:"completed"`  // this selection found the last word
}

// Snapshot is a copy of board state; mutating it never touches the board.
type Snapshot struct {
	Phase     Phase             `json:"phase"`
	Grid      *grid.Grid        `json:"grid"`
	Words     []string          `json:"words"`
	Colors    map[string]string `json:"colors"`
	Found     map[string]Found  `json:"found"`
	Selection []grid.Cell       `json:"selection"`
	Elapsed   int               `json:"elapsed"` // seconds
	Completed bool              `json:"completed"`
}
