// internal/words/words.go
//
// Word list management for puzzle generation.
//
// Responsibilities:
//   - Load the vocabulary from WORDS_FILE or fall back to the embedded list.
//   - Normalize entries (trim, upper-case) and drop anything a grid cannot hold.
//   - Pick a random set of distinct words for one puzzle.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt   one word per line, '#' comments allowed
//
// Constraints:
//   • Words must be 1..10 letters A–Z (grid.ValidateWord).
//   • Init runs once (sync.Once); Default returns the loaded list.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/grid"
)

const (
	DefaultCount = 4 // words per puzzle
	MaxCount     = 8 // more than this saturates a 10x10 grid
)

// Classic is the original four-word puzzle.
var Classic = []string{"RUST", "GAME", "SEARCH", "CODE"}

var (
	ErrEmptyList      = errors.New("words: list is empty")
	ErrNotEnoughWords = errors.New("words: not enough words in list")
	ErrTooManyWords   = errors.New("words: too many words for one puzzle")
)

// List is an immutable, de-duplicated vocabulary.
type List struct {
	words []string
	set   map[string]struct{}
}

// NewList normalizes ws, keeping the first copy of each valid word.
func NewList(ws []string) (*List, error) {
	l := &List{set: make(map[string]struct{}, len(ws))}
	for _, w := range ws {
		w = Normalize(w)
		if grid.ValidateWord(w) != nil {
			continue
		}
		if _, dup := l.set[w]; dup {
			continue
		}
		l.set[w] = struct{}{}
		l.words = append(l.words, w)
	}
	if len(l.words) == 0 {
		return nil, ErrEmptyList
	}
	return l, nil
}

// Normalize trims and upper-cases w.
func Normalize(w string) string { return strings.ToUpper(strings.TrimSpace(w)) }

// Parse reads one word per line, skipping blanks and '#' comments.
func Parse(r io.Reader) (*List, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewList(out)
}

// ReadFile loads a list from path.
func ReadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("words: %s: %w", path, err)
	}
	return l, nil
}

// Embedded returns the list compiled into the binary.
func Embedded() (*List, error) {
	ws, err := assets.WordList()
	if err != nil {
		return nil, err
	}
	return NewList(ws)
}

// Load reads path, or the embedded list when path is empty.
func Load(path string) (*List, error) {
	if path != "" {
		return ReadFile(path)
	}
	return Embedded()
}

// Words returns a copy of the list in file order.
func (l *List) Words() []string { return append([]string(nil), l.words...) }

// Len returns the number of words.
func (l *List) Len() int { return len(l.words) }

// Contains reports whether w (any case) is on the list.
func (l *List) Contains(w string) bool {
	_, ok := l.set[Normalize(w)]
	return ok
}

// Pick draws n distinct words using rng. n <= 0 means DefaultCount.
func (l *List) Pick(rng *rand.Rand, n int) ([]string, error) {
	if n <= 0 {
		n = DefaultCount
	}
	if n > MaxCount {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyWords, n, MaxCount)
	}
	if n > len(l.words) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughWords, n, len(l.words))
	}
	out := make([]string, n)
	for i, j := range rng.Perm(len(l.words))[:n] {
		out[i] = l.words[j]
	}
	return out, nil
}

// --- process-wide default list ---

var (
	initOnce   sync.Once
	defaultL   *List
	initialErr error
)

// Init loads the default list exactly once, from WORDS_FILE if set.
func Init() error {
	initOnce.Do(func() {
		defaultL, initialErr = Load(os.Getenv("WORDS_FILE"))
	})
	return initialErr
}

// Default returns the list loaded by Init, or the classic words if Init
// failed or has not run.
func Default() *List {
	if defaultL != nil {
		return defaultL
	}
	l, _ := NewList(Classic)
	return l
}
