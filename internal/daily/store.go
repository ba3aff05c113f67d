package daily

import (
	"context"
	"database/sql"
)

// Result is one player's finished daily challenge.
type Result struct {
	UserID   string `json:"userId"`
	Date     string `json:"date"`
	RootWord string `json:"rootWord"`
	Score    int    `json:"score"`
	Words    int    `json:"words"`
}

// Store reads and writes the daily_results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r. A second result for the same user and date is
// ignored; the returned bool is false in that case.
func (s *Store) InsertResult(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, root_word, score, words)
		 VALUES(?,?,?,?,?)`, r.UserID, r.Date, r.RootWord, r.Score, r.Words,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ClaimAnonymous moves a guest's results to userID. Where the account already
// has a result for the same date, the account's result is kept and the
// guest's is dropped, so a player never holds two entries for one day.
func (s *Store) ClaimAnonymous(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" || anonID == userID {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE OR IGNORE daily_results SET user_id=? WHERE user_id=?`, userID, anonID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM daily_results WHERE user_id=?`, anonID); err != nil {
		return err
	}
	return tx.Commit()
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"`
	Words  int    `json:"words"`
}

// Leaderboard returns the best results for date: highest score first, then
// most words, then earliest submission.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, score, words
		 FROM daily_results
		 WHERE date=?
		 ORDER BY score DESC, words DESC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Score, &r.Words); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
