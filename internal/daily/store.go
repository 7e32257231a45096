package daily

import (
	"context"
	"database/sql"
)

// Result is one player's completion of a daily puzzle.
type Result struct {
	UserID     string `json:"userId"`
	Date       string `json:"date"`
	ElapsedSec int    `json:"elapsedSec"`
	Words      string `json:"words"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r; a second result for the same user and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, elapsed_s, words)
		VALUES(?,?,?,?)`, r.UserID, r.Date, r.ElapsedSec, r.Words,
	)
	return err
}

type LBRow struct {
	UserID     string `json:"userId"`
	ElapsedSec int    `json:"elapsedSec"`
}

// Leaderboard returns the fastest completions for date.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, elapsed_s
		FROM daily_results
		WHERE date=?
		ORDER BY elapsed_s ASC, created_at ASC
		LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.ElapsedSec); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
