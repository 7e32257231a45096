// internal/httpserver/routes_game.go
//
// Free-play puzzle endpoints.
//   - POST /game/new            → build a board (given or random words)
//   - GET  /game/{id}           → current snapshot
//   - POST /game/{id}/select    → submit one released drag path
//   - POST /game/{id}/restart   → reset timer/found words, new layout by default
//
// Boards live in the session store only. The games table gets a row when a
// board is created and is updated once when it is solved.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

// pickRetries bounds how often a random word set is redrawn when the
// generator cannot place it.
const pickRetries = 3

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Words []string `json:"words"` // optional explicit list
	Count int      `json:"count"` // random words to draw when Words is empty
}
type newGameRes struct {
	GameID string        `json:"gameId"`
	Game   game.Snapshot `json:"game"`
}

// handleNewGame creates an in-memory board and records an owner row.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, err := s.startFreeGame(w, r, req)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, Game: sess.Snapshot()})
}

// startFreeGame builds, stores and records a free-play session.
func (s *Server) startFreeGame(w http.ResponseWriter, r *http.Request, req newGameReq) (*game.Session, error) {
	sess, err := s.newFreeSession(s.ownerID(w, r), req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		return nil, err
	}
	s.recordStart(r.Context(), currentUser(r), sess, "free")
	return sess, nil
}

// newFreeSession lays out req.Words, or a random draw from the word list.
// Random draws that cannot be placed are redrawn a few times.
func (s *Server) newFreeSession(owner string, req newGameReq) (*game.Session, error) {
	gen := grid.New(&grid.Options{MaxAttempts: s.opts.PlacementAttempts})
	if len(req.Words) > 0 {
		ws := make([]string, len(req.Words))
		for i, w := range req.Words {
			ws[i] = words.Normalize(w)
		}
		if err := grid.ValidateWords(ws); err != nil {
			return nil, err
		}
		return game.NewSession(owner, "", ws, gen.Generate)
	}

	var err error
	for i := 0; i < pickRetries; i++ {
		var picked []string
		if picked, err = s.opts.Words.Pick(gen.Rand(), req.Count); err != nil {
			return nil, err
		}
		var sess *game.Session
		sess, err = game.NewSession(owner, "", picked, gen.Generate)
		if !errors.Is(err, grid.ErrUnplaceable) {
			return sess, err
		}
		log.Debug().Err(err).Strs("words", picked).Msg("redrawing words")
	}
	return nil, err
}

// handleGetGame returns the current snapshot.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Touch()
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

type selectReq struct {
	Path []grid.Cell `json:"path"`
}
type selectRes struct {
	Result game.Result   `json:"result"`
	Game   game.Snapshot `json:"game"`
}

// handleSelect evaluates one drag path and records the result when it
// solves the puzzle.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	res, snap, err := sess.Select(req.Path)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	if res.Completed {
		s.recordCompletion(r.Context(), currentUser(r), sess, snap)
	}
	_ = json.NewEncoder(w).Encode(selectRes{Result: res, Game: snap})
}

type restartReq struct {
	Regenerate *bool `json:"regenerate"` // nil means true
}

// handleRestart resets the board. A new layout is generated unless the
// client asks to keep the current one.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req restartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	regenerate := req.Regenerate == nil || *req.Regenerate
	snap, err := sess.Restart(regenerate)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	s.recordRestart(r.Context(), sess)
	_ = json.NewEncoder(w).Encode(snap)
}

// session loads the {id} session or writes 404.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

// writeGameError maps domain errors onto HTTP status codes.
func writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrCompleted):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrOutOfBounds),
		errors.Is(err, grid.ErrNoWords),
		errors.Is(err, grid.ErrEmptyWord),
		errors.Is(err, grid.ErrMalformedWord),
		errors.Is(err, grid.ErrWordTooLong),
		errors.Is(err, grid.ErrDuplicateWord),
		errors.Is(err, grid.ErrOverCapacity),
		errors.Is(err, words.ErrTooManyWords),
		errors.Is(err, words.ErrNotEnoughWords):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, grid.ErrUnplaceable):
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("game request failed")
		jsonError(w, http.StatusInternalServerError, "server_error")
	}
}

// ------------------------------ persistence ---------------------------------

// recordStart inserts the owner row for a new session and counts the game
// for signed-in players. Failures are logged, never returned.
func (s *Server) recordStart(ctx context.Context, me *authUser, sess *game.Session, mode string) {
	now := time.Now().UTC().Format(time.RFC3339)
	list := strings.Join(sess.Snapshot().Words, ",")

	var err error
	if me != nil {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO games (id, user_id, mode, words, started_at) VALUES (?,?,?,?,?)`,
			sess.ID, me.ID, mode, list, now)
		if err == nil {
			_, err = s.db.ExecContext(ctx, `UPDATE users SET games_played = games_played + 1 WHERE id=?`, me.ID)
		}
	} else {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO games (id, anonymous_id, mode, words, started_at) VALUES (?,?,?,?,?)`,
			sess.ID, sess.Owner, mode, list, now)
	}
	if err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("record game start")
	}
}

// recordRestart reopens a solved games row so the next solve counts again.
func (s *Server) recordRestart(ctx context.Context, sess *game.Session) {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE games SET status='playing', finished_at=NULL, elapsed_s=0 WHERE id=?`, sess.ID); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("record restart")
	}
}

// recordCompletion marks the games row solved, bumps user stats and, for
// daily sessions, submits a leaderboard result. A row already marked solved
// is left alone so a result is counted once per solve.
//
// A signed-in solver is credited even when the session was started as a
// guest: login claims the guest's games rows, so the row's user_id is the
// solver by the time the final word is found.
func (s *Server) recordCompletion(ctx context.Context, me *authUser, sess *game.Session, snap game.Snapshot) {
	l := log.With().Str("gameId", sess.ID).Int("elapsed", snap.Elapsed).Logger()
	credit := sess.Owner
	if me != nil {
		credit = me.ID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Warn().Err(err).Msg("begin completion tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE games SET status='solved', finished_at=?, elapsed_s=? WHERE id=? AND status='playing'`,
		time.Now().UTC().Format(time.RFC3339), snap.Elapsed, sess.ID)
	if err != nil {
		l.Warn().Err(err).Msg("finish game")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return
	}
	if me != nil {
		var rowUser sql.NullString
		if err := tx.QueryRowContext(ctx, `SELECT user_id FROM games WHERE id=?`, sess.ID).Scan(&rowUser); err != nil {
			l.Warn().Err(err).Msg("load game owner")
		} else if rowUser.String == me.ID {
			if err := bumpSolved(ctx, tx, me.ID, snap.Elapsed); err != nil {
				l.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		l.Warn().Err(err).Msg("commit completion")
		return
	}

	if sess.Daily != "" {
		if err := s.daily.store.InsertResult(ctx, daily.Result{
			UserID:     credit,
			Date:       sess.Daily,
			ElapsedSec: snap.Elapsed,
			Words:      strings.Join(snap.Words, ","),
		}); err != nil {
			l.Warn().Err(err).Msg("insert daily result")
		}
	}
	l.Info().Str("owner", credit).Msg("puzzle solved")
}

// bumpSolved increments solved and keeps the fastest solve time (within tx).
func bumpSolved(ctx context.Context, tx *sql.Tx, userID string, elapsed int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET solved = solved + 1,
		best_seconds = CASE WHEN best_seconds IS NULL OR best_seconds > ? THEN ? ELSE best_seconds END
		WHERE id=?`, elapsed, elapsed, userID)
	return err
}
