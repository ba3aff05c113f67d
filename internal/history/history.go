// internal/history/history.go
//
// Finished-round log and per-user stats.
// Responsibilities:
//   - Record a round when a game is reset or finished (games table).
//   - Bump games_played / total_score / best_score for signed-in users, in the
//     same transaction as the round row.
//   - Move anonymous rounds to an account after signup/login.
//
// Nothing here restores an in-progress game; rows describe finished rounds only.

package history

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Round is one finished round of a game.
type Round struct {
	GameID      string
	UserID      string // empty for guests
	AnonymousID string // set for guests
	RootWord    string
	Language    string
	Score       int
	Words       int
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Row is a round as listed for a player.
type Row struct {
	GameID     string `json:"gameId"`
	RootWord   string `json:"rootWord"`
	Score      int    `json:"score"`
	Words      int    `json:"words"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt"`
}

// Stats are the aggregate counters kept on the users table.
type Stats struct {
	GamesPlayed int `json:"gamesPlayed"`
	TotalScore  int `json:"totalScore"`
	BestScore   int `json:"bestScore"`
}

// Store wraps the games and users tables.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record stores r. Rounds without any accepted word are skipped and reported
// as not recorded.
func (s *Store) Record(ctx context.Context, r Round) (bool, error) {
	if r.Words == 0 {
		return false, nil
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now().UTC()
	}
	if r.Language == "" {
		r.Language = "en"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO games (game_id, user_id, anonymous_id, root_word, language, score, words, started_at, finished_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		r.GameID, nullable(r.UserID), nullable(r.AnonymousID), r.RootWord, r.Language, r.Score, r.Words,
		r.StartedAt.UTC().Format(time.RFC3339), r.FinishedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return false, err
	}
	if r.UserID != "" {
		if err := bumpStats(ctx, tx, r.UserID, r.Score); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// bumpStats increments games played and total score, and raises best score (within tx).
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, score int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE users
		 SET games_played = games_played + 1,
		     total_score  = total_score + ?,
		     best_score   = MAX(best_score, ?)
		 WHERE id=?`, score, score, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("history: unknown user " + userID)
	}
	return nil
}

// Recent lists a user's latest rounds, newest first.
func (s *Store) Recent(ctx context.Context, userID string, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, root_word, score, words, started_at, finished_at
		 FROM games WHERE user_id=? ORDER BY finished_at DESC, round_id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.GameID, &r.RootWord, &r.Score, &r.Words, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats returns the counters for userID.
func (s *Store) Stats(ctx context.Context, userID string) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT games_played, total_score, best_score FROM users WHERE id=?`, userID,
	).Scan(&st.GamesPlayed, &st.TotalScore, &st.BestScore)
	return st, err
}

// ClaimAnonymous transfers guest rounds to userID.
func (s *Store) ClaimAnonymous(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
