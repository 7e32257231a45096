// internal/game/session.go
//
// Session wraps a Board for use from HTTP handlers and the server ticker.
// Notes:
//   - Every method takes the session lock; the board itself stays single-threaded.
//   - Builder produces grids for the session's word list (initially and on restart).
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/robalobadob/wordsearch/internal/grid"
)

// Builder generates a grid holding words. (*grid.Generator).Generate is one.
type Builder func(words []string) (*grid.Grid, error)

// Session is one player's puzzle.
type Session struct {
	ID        string
	Owner     string // user id or anonymous id
	Daily     string // date key for daily puzzles, empty for free play
	CreatedAt time.Time

	mu       sync.Mutex
	board    *Board
	build    Builder
	lastSeen time.Time
}

// NewSession builds a grid for words and wraps it in a fresh board.
func NewSession(owner, daily string, words []string, build Builder) (*Session, error) {
	g, err := build(words)
	if err != nil {
		return nil, err
	}
	b, err := NewBoard(g, words)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:        randomID(),
		Owner:     owner,
		Daily:     daily,
		CreatedAt: now,
		board:     b,
		build:     build,
		lastSeen:  now,
	}, nil
}

// Select submits a full selection path.
func (s *Session) Select(path []grid.Cell) (Result, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	res, err := s.board.Submit(path)
	return res, s.board.Snapshot(), err
}

// Restart resets the board. With regenerate the builder lays out a new grid
// for the same words.
func (s *Session) Restart(regenerate bool) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	var g *grid.Grid
	if regenerate {
		var err error
		if g, err = s.build(s.board.words); err != nil {
			return s.board.Snapshot(), err
		}
	}
	if err := s.board.Restart(g); err != nil {
		return s.board.Snapshot(), err
	}
	return s.board.Snapshot(), nil
}

// Tick advances the board timer by one second.
func (s *Session) Tick() {
	s.mu.Lock()
	s.board.Tick()
	s.mu.Unlock()
}

// Snapshot returns a copy of the board state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Snapshot()
}

// Touch marks the session as in use.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// IdleSince reports how long the session has gone unused at now.
func (s *Session) IdleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
