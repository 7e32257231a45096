// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes two endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses session)
//   - GET  /daily/leaderboard → fastest solves for today (or a given date)
//
// Everyone gets the same words and layout for a date (seeded from date + salt).
// Selection, restart and the timer go through the regular /game/{id} routes.
// A solve is recorded once per player per day (UNIQUE in daily_results).

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	now      func() time.Time
	sessions map[string]string // session ID keyed by owner|date
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	s.daily = &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		now:      time.Now,
		sessions: make(map[string]string),
	}
	// Flat paths: a /daily subrouter would also claim GET /daily, the page.
	r.Post("/daily/new", s.daily.handleNew)
	r.Get("/daily/leaderboard", s.daily.handleLeaderboard)
}

// dailyNewRes is returned by /daily/new. Game is omitted when the player
// already solved today's puzzle.
type dailyNewRes struct {
	GameID string         `json:"gameId"`
	Date   string         `json:"date"`
	Played bool           `json:"played"`
	Game   *game.Snapshot `json:"game,omitempty"`
}

// handleNew creates or reuses today's session for the caller.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	res, err := d.start(w, r)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// start is shared by POST /daily/new and the /daily page.
func (d *dailyServer) start(w http.ResponseWriter, r *http.Request) (dailyNewRes, error) {
	uid := d.srv.ownerID(w, r)
	now := d.now()
	date := daily.DateKey(now)

	// Already solved (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		return dailyNewRes{Date: date, Played: true}, nil
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.sessions[key]; ok {
		if sess, err := d.srv.store.Get(r.Context(), id); err == nil {
			sess.Touch()
			snap := sess.Snapshot()
			return dailyNewRes{GameID: sess.ID, Date: date, Game: &snap}, nil
		}
		delete(d.sessions, key) // expired before the ticker pruned it
	}

	sess, err := d.newSession(uid, now)
	if err != nil {
		return dailyNewRes{}, err
	}
	if err := d.srv.store.Save(r.Context(), sess); err != nil {
		return dailyNewRes{}, err
	}
	d.sessions[key] = sess.ID
	d.srv.recordStart(r.Context(), currentUser(r), sess, "daily")

	snap := sess.Snapshot()
	return dailyNewRes{GameID: sess.ID, Date: date, Game: &snap}, nil
}

// forget drops the owner's entry for date if it still points at id.
// The server ticker calls it when a daily session expires.
func (d *dailyServer) forget(owner, date, id string) {
	key := owner + "|" + date
	d.mu.Lock()
	if d.sessions[key] == id {
		delete(d.sessions, key)
	}
	d.mu.Unlock()
}

// tracked returns how many owner/date sessions are remembered.
func (d *dailyServer) tracked() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

// newSession builds the date's puzzle; restarts reproduce the same layout.
func (d *dailyServer) newSession(owner string, now time.Time) (*game.Session, error) {
	opts := d.srv.opts
	picked, _, err := daily.Puzzle(now, opts.DailySalt, opts.Words, words.DefaultCount, opts.PlacementAttempts)
	if err != nil {
		return nil, err
	}
	build := daily.Builder(now, opts.DailySalt, opts.Words, words.DefaultCount, opts.PlacementAttempts)
	return game.NewSession(owner, daily.DateKey(now), picked, build)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "server error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
