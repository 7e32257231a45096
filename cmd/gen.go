package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/words"
)

var (
	genWords     string
	genWordsFile string
	genCount     int
	genSeed      int64
	genNumber    int
	genSolution  bool
	genOutput    string
	genAttempts  int
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate word-search grids",
		Long: `Generate one or more 10x10 word-search grids.

Without --words, each grid draws --count words from the word list.

Examples:
  wordsearch gen
  wordsearch gen --words rust,game,search,code --solution
  wordsearch gen -n 5 --count 6 --seed 42 --output puzzles.html`,
		RunE: runGen,
	}

	genCmd.Flags().StringVarP(&genWords, "words", "w", "", "Comma separated words to place")
	genCmd.Flags().StringVar(&genWordsFile, "words-file", "", "Word list file to draw from")
	genCmd.Flags().IntVarP(&genCount, "count", "c", words.DefaultCount, fmt.Sprintf("Words per grid when drawing from the list (max %d)", words.MaxCount))
	genCmd.Flags().Int64Var(&genSeed, "seed", 0, "Random seed (0 = time based)")
	genCmd.Flags().IntVarP(&genNumber, "number", "n", 1, "Number of grids to generate")
	genCmd.Flags().BoolVar(&genSolution, "solution", false, "Also print the solution")
	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file (e.g., puzzles.html)")
	genCmd.Flags().IntVar(&genAttempts, "attempts", 0, "Placement attempts per word (default: PLACEMENT_ATTEMPTS or 1000)")

	rootCmd.AddCommand(genCmd)
}

// puzzle is one generated grid and its words.
type puzzle struct {
	Words []string
	Grid  *grid.Grid
}

func runGen(cmd *cobra.Command, args []string) error {
	if genNumber < 1 {
		return fmt.Errorf("number of grids must be at least 1, got %d", genNumber)
	}
	if genAttempts <= 0 {
		genAttempts = envInt("PLACEMENT_ATTEMPTS", grid.DefaultMaxAttempts)
	}
	fixed := splitWords(genWords)

	var list *words.List
	if len(fixed) == 0 {
		var err error
		if list, err = loadWords(genWordsFile); err != nil {
			return err
		}
	}

	gen := grid.New(&grid.Options{Seed: genSeed, MaxAttempts: genAttempts})
	puzzles, err := generatePuzzles(gen, list, fixed, genCount, genNumber)
	if err != nil {
		return err
	}

	if genOutput == "" {
		return printPuzzles(cmd.OutOrStdout(), puzzles, genSolution)
	}

	filename := genOutput
	if filepath.Ext(filename) != ".html" {
		filename = filename + ".html"
	}
	if err := writeHTMLFile(filename, puzzles, genSolution); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d grid(s) in %s\n", len(puzzles), filename)
	return nil
}

// generatePuzzles lays out n grids from one generator, so a seed reproduces
// the whole batch. fixed words are used for every grid; otherwise count
// words are drawn from list per grid.
func generatePuzzles(gen *grid.Generator, list *words.List, fixed []string, count, n int) ([]puzzle, error) {
	out := make([]puzzle, 0, n)
	for i := 0; i < n; i++ {
		ws := fixed
		if len(ws) == 0 {
			var err error
			if ws, err = list.Pick(gen.Rand(), count); err != nil {
				return nil, err
			}
		}
		g, err := gen.Generate(ws)
		if err != nil {
			return nil, fmt.Errorf("grid #%d: %w", i+1, err)
		}
		out = append(out, puzzle{Words: ws, Grid: g})
	}
	return out, nil
}

// solutionRows blanks every cell that is not part of a placed word.
func solutionRows(g *grid.Grid, ws []string) []string {
	keep := make(map[grid.Cell]bool)
	for _, w := range ws {
		if p, ok := g.Find(w); ok {
			for _, c := range p.Cells(len(w)) {
				keep[c] = true
			}
		}
	}
	rows := make([]string, grid.Size)
	for r := 0; r < grid.Size; r++ {
		var b strings.Builder
		for c := 0; c < grid.Size; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			if keep[grid.Cell{Row: r, Col: c}] {
				b.WriteByte(g.At(r, c))
			} else {
				b.WriteByte('.')
			}
		}
		rows[r] = b.String()
	}
	return rows
}

func printPuzzles(w io.Writer, puzzles []puzzle, solution bool) error {
	for i, p := range puzzles {
		if _, err := fmt.Fprintf(w, "Grid #%d (%s):\n%s", i+1, strings.Join(p.Words, ", "), p.Grid); err != nil {
			return err
		}
		if solution {
			fmt.Fprintf(w, "\nSolution:\n%s\n", strings.Join(solutionRows(p.Grid, p.Words), "\n"))
		}
		fmt.Fprintln(w)
	}
	return nil
}

func writeHTMLFile(filename string, puzzles []puzzle, solution bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer file.Close()
	return writeHTML(file, puzzles, solution)
}

// writeHTML renders one printable page per grid.
func writeHTML(w io.Writer, puzzles []puzzle, solution bool) error {
	_, err := fmt.Fprint(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Word Search Puzzles</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
        .page { page-break-after: always; background-color: white; padding: 40px; margin-bottom: 20px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .page:last-child { page-break-after: auto; }
        h1 { color: #333; text-align: center; }
        h2 { color: #666; font-size: 1.2em; }
        table { border-collapse: collapse; margin: 20px auto; font-family: 'Courier New', monospace; font-size: 24px; }
        td { width: 40px; height: 40px; text-align: center; vertical-align: middle; border: 1px solid #333; }
        td.blank { color: #ccc; }
        ul.words { columns: 2; font-size: 1.2em; }
        @media print { body { background-color: white; } .page { margin-bottom: 0; box-shadow: none; } }
    </style>
</head>
<body>
`)
	if err != nil {
		return err
	}

	for i, p := range puzzles {
		var sb strings.Builder
		fmt.Fprintf(&sb, "    <div class=\"page\">\n        <h1>Word Search #%d</h1>\n", i+1)
		sb.WriteString(rowsToHTML(p.Grid.Rows()))
		sb.WriteString("        <ul class=\"words\">")
		for _, word := range p.Words {
			fmt.Fprintf(&sb, "<li>%s</li>", word)
		}
		sb.WriteString("</ul>\n")
		if solution {
			sb.WriteString("        <h2>Solution</h2>\n")
			sol := solutionRows(p.Grid, p.Words)
			for r := range sol {
				sol[r] = strings.ReplaceAll(sol[r], " ", "")
			}
			sb.WriteString(rowsToHTML(sol))
		}
		sb.WriteString("    </div>\n")
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}

	_, err = fmt.Fprint(w, "</body>\n</html>\n")
	return err
}

// rowsToHTML converts letter rows to an HTML table; '.' cells render blank.
func rowsToHTML(rows []string) string {
	var sb strings.Builder
	sb.WriteString("        <table>")
	for _, row := range rows {
		sb.WriteString("<tr>")
		for i := 0; i < len(row); i++ {
			if row[i] == '.' {
				sb.WriteString(`<td class="blank">·</td>`)
				continue
			}
			fmt.Fprintf(&sb, "<td>%c</td>", row[i])
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table>\n")
	return sb.String()
}
