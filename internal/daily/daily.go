package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives a non-zero generator seed from HMAC(salt, YYYY-MM-DD).
func Seed(date time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes, clear the sign bit
	n := int64(binary.BigEndian.Uint64(sum[:8]) >> 1)
	if n == 0 {
		n = 1
	}
	return n
}

// Puzzle picks n words from list and lays them out, both from the date's
// seed, so the same date and salt always give the same puzzle.
func Puzzle(date time.Time, salt string, list *words.List, n, maxAttempts int) ([]string, *grid.Grid, error) {
	gen := grid.New(&grid.Options{Seed: Seed(date, salt), MaxAttempts: maxAttempts})
	picked, err := list.Pick(gen.Rand(), n)
	if err != nil {
		return nil, nil, err
	}
	g, err := gen.Generate(picked)
	if err != nil {
		return nil, nil, err
	}
	return picked, g, nil
}

// Builder returns a grid builder that always reproduces the date's layout.
func Builder(date time.Time, salt string, list *words.List, n, maxAttempts int) func([]string) (*grid.Grid, error) {
	return func([]string) (*grid.Grid, error) {
		_, g, err := Puzzle(date, salt, list, n, maxAttempts)
		return g, err
	}
}
