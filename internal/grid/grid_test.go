package grid

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func mustGenerate(t *testing.T, seed int64, words []string) *Grid {
	t.Helper()
	g, err := New(&Options{Seed: seed}).Generate(words)
	if err != nil {
		t.Fatalf("generate %v: %v", words, err)
	}
	return g
}

func TestGenerateFillsEveryCell(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g := mustGenerate(t, seed, []string{"RUST", "GAME", "SEARCH", "CODE"})
		rows := g.Rows()
		if len(rows) != Size {
			t.Fatalf("seed %d: want %d rows, got %d", seed, Size, len(rows))
		}
		for r, row := range rows {
			if len(row) != Size {
				t.Fatalf("seed %d: row %d has %d cells", seed, r, len(row))
			}
			for c := 0; c < Size; c++ {
				if row[c] < 'A' || row[c] > 'Z' {
					t.Fatalf("seed %d: cell %d-%d = %q", seed, r, c, row[c])
				}
			}
		}
	}
}

func TestGeneratePlacesEveryWord(t *testing.T) {
	lists := [][]string{
		{"CAT"},
		{"RUST", "GAME", "SEARCH", "CODE"},
		{"GOPHER", "CHANNEL", "SELECT", "DEFER", "PANIC", "MUTEX"},
		{"ABCDEFGHIJ"},
	}
	for _, words := range lists {
		for seed := int64(1); seed <= 30; seed++ {
			g := mustGenerate(t, seed, words)
			for _, w := range words {
				if _, ok := g.Find(w); !ok {
					t.Errorf("seed %d: %q not found in\n%s", seed, w, g)
				}
			}
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	words := []string{"RUST", "GAME", "SEARCH", "CODE"}
	a := mustGenerate(t, 42, words)
	b := mustGenerate(t, 42, words)
	if a.String() != b.String() {
		t.Fatalf("same seed gave different grids:\n%s\n%s", a, b)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  error
	}{
		{"nil", nil, ErrNoWords},
		{"empty word", []string{"CAT", ""}, ErrEmptyWord},
		{"lowercase", []string{"cat"}, ErrMalformedWord},
		{"digit", []string{"C4T"}, ErrMalformedWord},
		{"too long", []string{"ABCDEFGHIJK"}, ErrWordTooLong},
		{"duplicate", []string{"CAT", "DOG", "CAT"}, ErrDuplicateWord},
		{"over capacity", overCapacity(), ErrOverCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&Options{Seed: 1}).Generate(tt.words)
			if !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
		})
	}
}

func overCapacity() []string {
	var out []string
	for i := 0; i < 11; i++ {
		// ten distinct ten-letter words plus one more: 110 letters
		out = append(out, strings.Repeat(string(rune('A'+i)), Size))
	}
	return out
}

func TestGenerateUnplaceableWord(t *testing.T) {
	// Two full-width words of different letters only fit side by side; when
	// the second picks the crossing direction it can never be placed.
	words := []string{"AAAAAAAAAA", "BBBBBBBBBB"}
	failures := 0
	for seed := int64(1); seed <= 50; seed++ {
		g, err := New(&Options{Seed: seed, MaxAttempts: 200}).Generate(words)
		if err != nil {
			if !errors.Is(err, ErrUnplaceable) {
				t.Fatalf("seed %d: want ErrUnplaceable, got %v", seed, err)
			}
			failures++
			continue
		}
		for _, w := range words {
			if _, ok := g.Find(w); !ok {
				t.Fatalf("seed %d: %q missing", seed, w)
			}
		}
	}
	if failures == 0 {
		t.Fatal("expected at least one seed to exhaust the retry budget")
	}
}

func TestPlaceWordBudgetExhausted(t *testing.T) {
	g, err := FromRows([]string{
		"AAAAAAAAAA", "AAAAAAAAAA", "AAAAAAAAAA", "AAAAAAAAAA", "AAAAAAAAAA",
		"AAAAAAAAAA", "AAAAAAAAAA", "AAAAAAAAAA", "AAAAAAAAAA", "AAAAAAAAAA",
	})
	if err != nil {
		t.Fatal(err)
	}
	gen := New(&Options{Seed: 3, MaxAttempts: 25})
	err = gen.placeWord(g, "ZEBRA")
	var uw *UnplaceableWordError
	if !errors.As(err, &uw) {
		t.Fatalf("want *UnplaceableWordError, got %v", err)
	}
	if uw.Word != "ZEBRA" || uw.Attempts != 25 {
		t.Fatalf("unexpected error fields: %+v", uw)
	}
	if !errors.Is(err, ErrUnplaceable) {
		t.Fatal("UnplaceableWordError should match ErrUnplaceable")
	}
}

func TestCanPlaceAllowsMatchingOverlap(t *testing.T) {
	g := blank()
	g.place("CAT", Placement{Row: 0, Col: 0, Direction: Horizontal})

	if !g.canPlace("ANT", Placement{Row: 0, Col: 1, Direction: Vertical}) {
		t.Error("crossing on a shared letter should be allowed")
	}
	if g.canPlace("DOG", Placement{Row: 0, Col: 1, Direction: Vertical}) {
		t.Error("crossing on a different letter should be rejected")
	}
	if g.canPlace("HORSE", Placement{Row: 0, Col: 6, Direction: Horizontal}) {
		t.Error("word past the right edge should be rejected")
	}
	if g.canPlace("HORSE", Placement{Row: 6, Col: 0, Direction: Vertical}) {
		t.Error("word past the bottom edge should be rejected")
	}
	if !g.canPlace("HORSE", Placement{Row: 5, Col: 9, Direction: Vertical}) {
		t.Error("word touching the bottom edge should fit")
	}
}

func TestFind(t *testing.T) {
	g, err := FromRows([]string{
		"CATXXXXXXX",
		"XXXXXXXXXD",
		"XXXXXXXXXO",
		"XXXXXXXXXG",
		"XXXXXXXXXX",
		"XXXXXXXXXX",
		"XXXXXXXXXX",
		"XXXXXXXXXX",
		"XXXXXXXXXX",
		"XXXXXXXXXX",
	})
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := g.Find("CAT"); !ok || p != (Placement{Row: 0, Col: 0, Direction: Horizontal}) {
		t.Errorf("CAT: got %+v %v", p, ok)
	}
	if p, ok := g.Find("DOG"); !ok || p != (Placement{Row: 1, Col: 9, Direction: Vertical}) {
		t.Errorf("DOG: got %+v %v", p, ok)
	}
	if _, ok := g.Find("TAC"); ok {
		t.Error("reversed words are never placed and should not be found")
	}
}

func TestWord(t *testing.T) {
	g := mustGenerate(t, 9, []string{"GOPHER"})
	p, ok := g.Find("GOPHER")
	if !ok {
		t.Fatal("GOPHER missing")
	}
	got, err := g.Word(p.Cells(len("GOPHER")))
	if err != nil || got != "GOPHER" {
		t.Fatalf("want GOPHER, got %q (%v)", got, err)
	}
	if _, err := g.Word([]Cell{{Row: 0, Col: Size}}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("want out of bounds, got %v", err)
	}
}

func TestJSON(t *testing.T) {
	g := mustGenerate(t, 5, []string{"CAT"})
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	var rows [][]string
	if err := json.Unmarshal(b, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != Size || len(rows[0]) != Size || rows[3][4] != string(g.At(3, 4)) {
		t.Fatalf("unexpected JSON grid: %s", b)
	}
	var back Grid
	if err := json.Unmarshal(b, &back); err != nil || back.String() != g.String() {
		t.Fatalf("grid decode: %v", err)
	}

	var c Cell
	if err := json.Unmarshal([]byte(`[3,7]`), &c); err != nil || c != (Cell{Row: 3, Col: 7}) {
		t.Fatalf("cell decode: %+v %v", c, err)
	}
	if err := json.Unmarshal([]byte(`[3]`), &c); err == nil {
		t.Fatal("short cell should fail")
	}
}
