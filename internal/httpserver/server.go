// internal/httpserver/server.go
//
// HTTP server wiring for the word-search backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, CORS, timeouts).
//   - Public endpoints: "/" (page), "/health", "/debug/words".
//   - Game endpoints (optional auth): /game/new, /game/{id}, /game/{id}/select,
//     /game/{id}/restart, /game/{id}/ws.
//   - Daily puzzle endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//   - Server ticker: advances every live puzzle timer once per second and
//     drops sessions idle longer than SessionTTL.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - The websocket route sits outside the handler timeout.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

// Options tunes a Server. Zero values fall back to defaults.
type Options struct {
	Words             *words.List   // vocabulary for random puzzles
	DailySalt         string        // HMAC salt for the daily puzzle
	SessionTTL        time.Duration // idle time before a session is dropped
	PlacementAttempts int           // grid.Options.MaxAttempts
	PushInterval      time.Duration // websocket snapshot period
}

func (o *Options) withDefaults() {
	if o.Words == nil {
		o.Words = words.Default()
	}
	if o.DailySalt == "" {
		o.DailySalt = "local_dev_salt"
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = 2 * time.Hour
	}
	if o.PlacementAttempts <= 0 {
		o.PlacementAttempts = grid.DefaultMaxAttempts
	}
	if o.PushInterval <= 0 {
		o.PushInterval = time.Second
	}
}

// Server bundles router, in-memory session store, and DB handle.
type Server struct {
	r        *chi.Mux
	store    store.Store
	db       *sql.DB
	daily    *dailyServer
	opts     Options
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, opts Options) *Server {
	opts.withDefaults()
	s := &Server{r: chi.NewRouter(), store: st, db: db, opts: opts}
	s.upgrader = websocket.Upgrader{CheckOrigin: checkOrigin}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger)) // request-scoped logger
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(corsFromEnv)     // credentials-friendly CORS

	// Live timer feed; long-lived, so no handler timeout.
	s.r.With(s.withOptionalAuth()).Get("/game/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

		// Pages
		r.With(s.withOptionalAuth()).Get("/", s.handlePage)
		r.With(s.withOptionalAuth()).Get("/daily", s.handleDailyPage)

		r.Group(func(r chi.Router) {
			r.Use(jsonContentType)

			r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"ok":true}`))
			})
			r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]int{"words": s.opts.Words.Len()})
			})

			// Game endpoints: OPTIONAL AUTH (guests can play)
			r.Group(func(r chi.Router) {
				r.Use(s.withOptionalAuth())
				r.Post("/game/new", s.handleNewGame)
				r.Get("/game/{id}", s.handleGetGame)
				r.Post("/game/{id}/select", s.handleSelect)
				r.Post("/game/{id}/restart", s.handleRestart)
			})

			// Daily puzzle: OPTIONAL AUTH (guests can play; results recorded on completion)
			s.mountDaily(r.With(s.withOptionalAuth()))

			// Auth + profile/stats
			s.mountAuthRoutes(r)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start serves HTTP on addr and runs the session ticker until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go s.tickLoop(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// tickLoop advances all sessions once per second.
func (s *Server) tickLoop(ctx context.Context) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.Tick(ctx, now)
		}
	}
}

// Tick advances every live session's timer and expires idle ones.
func (s *Server) Tick(ctx context.Context, now time.Time) {
	expired := 0
	s.store.Range(ctx, func(sess *game.Session) bool {
		if sess.IdleSince(now) > s.opts.SessionTTL {
			_ = s.store.Delete(ctx, sess.ID)
			if sess.Daily != "" {
				s.daily.forget(sess.Owner, sess.Daily, sess.ID)
			}
			expired++
			return true
		}
		sess.Tick()
		return true
	})
	if expired > 0 {
		log.Debug().Int("expired", expired).Int("live", s.store.Len()).Msg("sessions expired")
	}
}

// ----------------------------- middleware ----------------------------------

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("req_id", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// clientOrigin is the browser origin allowed by CORS and the websocket check.
func clientOrigin() string { return getEnv("CLIENT_ORIGIN", "http://localhost:5173") }

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := clientOrigin()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkOrigin accepts same-host pages, the configured client, and non-browser clients.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == clientOrigin() {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

// jsonError writes {"error": msg} with status code.
func jsonError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
