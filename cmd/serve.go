package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/db"
	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/httpserver"
	"github.com/robalobadob/wordsearch/internal/store"
)

var (
	servePort      string
	serveDB        string
	serveWordsFile string
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Serve the puzzle page, JSON API, websocket timer feed, daily puzzle
and account endpoints.

Environment: PORT, DATABASE_PATH, WORDS_FILE, DAILY_SALT, SESSION_TTL,
PLACEMENT_ATTEMPTS, JWT_SECRET, JWT_EXPIRES_DAYS, COOKIE_NAME, CLIENT_ORIGIN.`,
		RunE: runServe,
	}

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (default: PORT or 8080)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (default: DATABASE_PATH or ./data/wordsearch.db)")
	serveCmd.Flags().StringVar(&serveWordsFile, "words-file", "", "Word list file (default: WORDS_FILE or embedded list)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// .env is loaded after flag registration, so env defaults resolve here.
	if servePort == "" {
		servePort = getEnv("PORT", "8080")
	}
	if serveDB == "" {
		serveDB = getEnv("DATABASE_PATH", "./data/wordsearch.db")
	}

	list, err := loadWords(serveWordsFile)
	if err != nil {
		return err
	}

	sqldb, err := db.OpenAndMigrate(serveDB)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	srv := httpserver.New(store.NewMemoryStore(), sqldb, httpserver.Options{
		Words:             list,
		DailySalt:         getEnv("DAILY_SALT", "local_dev_salt"),
		SessionTTL:        envDuration("SESSION_TTL", 2*time.Hour),
		PlacementAttempts: envInt("PLACEMENT_ATTEMPTS", grid.DefaultMaxAttempts),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("port", servePort).Str("db", serveDB).Int("words", list.Len()).Msg("starting wordsearch server")
	if err := srv.Start(ctx, ":"+servePort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
