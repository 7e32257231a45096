// internal/grid/generator.go
//
// Randomized word placement.
// For each word, in input order:
//   1. pick horizontal or vertical with equal odds,
//   2. sample random start cells until the word fits (boundary + letter
//      agreement with anything already placed), up to MaxAttempts,
//   3. write the word.
// Remaining Empty cells are then filled with random letters A-Z.

package grid

import (
	"math/rand"
	"time"
)

const (
	DefaultMaxAttempts = 1000
	alphabet           = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Options configures a Generator.
type Options struct {
	Seed        int64 // Seed for reproducible grids (0 = time seeded)
	MaxAttempts int   // Start cells sampled per word before giving up (0 = DefaultMaxAttempts)
}

// DefaultOptions returns time-seeded options with the default retry budget.
func DefaultOptions() *Options {
	return &Options{MaxAttempts: DefaultMaxAttempts}
}

// Generator builds grids. It is not safe for concurrent use.
type Generator struct {
	options *Options
	rng     *rand.Rand
}

// New creates a generator seeded from options.Seed.
func New(options *Options) *Generator {
	if options == nil {
		options = DefaultOptions()
	}
	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewWithRand(rand.New(rand.NewSource(seed)), options)
}

// NewWithRand creates a generator drawing from rng.
func NewWithRand(rng *rand.Rand, options *Options) *Generator {
	if options == nil {
		options = DefaultOptions()
	}
	return &Generator{options: options, rng: rng}
}

// Rand exposes the generator's random source so callers picking words for a
// puzzle draw from the same sequence.
func (g *Generator) Rand() *rand.Rand { return g.rng }

func (g *Generator) maxAttempts() int {
	if g.options.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return g.options.MaxAttempts
}

// Generate places every word and fills the rest of the grid.
// Returns an *UnplaceableWordError when a word exhausts its retry budget.
func (g *Generator) Generate(words []string) (*Grid, error) {
	if err := ValidateWords(words); err != nil {
		return nil, err
	}
	out := blank()
	for _, w := range words {
		if err := g.placeWord(out, w); err != nil {
			return nil, err
		}
	}
	g.fill(out)
	return out, nil
}

func (g *Generator) placeWord(out *Grid, word string) error {
	dir := Direction(g.rng.Intn(2))
	attempts := g.maxAttempts()
	for i := 0; i < attempts; i++ {
		p := Placement{Row: g.rng.Intn(Size), Col: g.rng.Intn(Size), Direction: dir}
		if out.canPlace(word, p) {
			out.place(word, p)
			return nil
		}
	}
	return &UnplaceableWordError{Word: word, Attempts: attempts}
}

func (g *Generator) fill(out *Grid) {
	for r := range out.cells {
		for c := range out.cells[r] {
			if out.cells[r][c] == Empty {
				out.cells[r][c] = alphabet[g.rng.Intn(len(alphabet))]
			}
		}
	}
}
