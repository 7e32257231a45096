package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/tui"
	"github.com/robalobadob/wordsearch/internal/words"
)

var (
	playWords     string
	playWordsFile string
	playCount     int
	playSeed      int64
	playDaily     bool
	playSound     bool
)

func init() {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play a puzzle in the terminal",
		Long: `Play a word-search puzzle in the terminal with the mouse.

Drag across letters to select a word, release to check it.
r or Enter restarts, q or Esc quits.`,
		RunE: runPlay,
	}

	playCmd.Flags().StringVarP(&playWords, "words", "w", "", "Comma separated words to place")
	playCmd.Flags().StringVar(&playWordsFile, "words-file", "", "Word list file to draw from")
	playCmd.Flags().IntVarP(&playCount, "count", "c", words.DefaultCount, "Words to draw when --words is not given")
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "Random seed (0 = time based)")
	playCmd.Flags().BoolVar(&playDaily, "daily", false, "Play today's daily puzzle")
	playCmd.Flags().BoolVar(&playSound, "sound", false, "Play sound cues")

	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ws, build, err := playPuzzle()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	// Log lines would tear the terminal UI.
	prev := log.Logger
	log.Logger = zerolog.Nop()
	defer func() { log.Logger = prev }()

	var sound tui.Sounder = tui.Silent{}
	if playSound {
		if sp, err := tui.NewSpeaker(); err == nil {
			defer sp.Close()
			sound = sp
		}
	}

	app, err := tui.New(screen, ws, build, sound)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// playPuzzle resolves the words and grid builder from the play flags.
func playPuzzle() ([]string, game.Builder, error) {
	attempts := envInt("PLACEMENT_ATTEMPTS", grid.DefaultMaxAttempts)

	if playDaily {
		list, err := loadWords(playWordsFile)
		if err != nil {
			return nil, nil, err
		}
		now, salt := time.Now(), getEnv("DAILY_SALT", "local_dev_salt")
		ws, _, err := daily.Puzzle(now, salt, list, words.DefaultCount, attempts)
		if err != nil {
			return nil, nil, err
		}
		return ws, daily.Builder(now, salt, list, words.DefaultCount, attempts), nil
	}

	gen := grid.New(&grid.Options{Seed: playSeed, MaxAttempts: attempts})
	ws := splitWords(playWords)
	if len(ws) == 0 {
		list, err := loadWords(playWordsFile)
		if err != nil {
			return nil, nil, err
		}
		if ws, err = list.Pick(gen.Rand(), playCount); err != nil {
			return nil, nil, err
		}
	} else if err := grid.ValidateWords(ws); err != nil {
		return nil, nil, err
	}
	return ws, gen.Generate, nil
}
