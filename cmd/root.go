// cmd/root.go
//
// Command tree for the wordsearch binary:
//   - serve: HTTP service (page, JSON API, websocket timer, daily puzzle, auth)
//   - gen:   print or export generated grids
//   - play:  terminal client
//
// Flags override environment defaults, which Execute loads from .env.

package cmd

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/words"
)

var rootCmd = &cobra.Command{
	Use:   "wordsearch",
	Short: "10x10 word-search puzzles",
	Long: `Generate and play 10x10 word-search puzzles.

Examples:
  wordsearch serve --port 8080
  wordsearch gen --words rust,game,search,code --solution
  wordsearch play --count 6`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute loads .env, configures logging and runs the root command.
func Execute() error {
	_ = godotenv.Load()
	setupLogging()
	return rootCmd.Execute()
}

// setupLogging applies LOG_LEVEL and, when LOG_PRETTY is set, switches the
// global logger to the console writer.
func setupLogging() {
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if getEnv("LOG_PRETTY", "") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadWords returns the list at path, or the process default (WORDS_FILE or
// the embedded list) when path is empty.
func loadWords(path string) (*words.List, error) {
	if path != "" {
		return words.Load(path)
	}
	if err := words.Init(); err != nil {
		return nil, err
	}
	return words.Default(), nil
}

// splitWords parses a comma separated --words value.
func splitWords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = words.Normalize(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return d
	}
	return def
}
