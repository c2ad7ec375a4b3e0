package daily

import (
	"context"
	"database/sql"
)

type Result struct {
	PlayerID  string `json:"playerId"`
	Date      string `json:"date"`
	PairIndex int    `json:"pairIndex"`
	Turns     int    `json:"turns"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE player_id=? AND date=?",
		playerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(player_id, date, pair_index, turns, elapsed_ms)
		 VALUES(?,?,?,?,?)`, r.PlayerID, r.Date, r.PairIndex, r.Turns, r.ElapsedMs,
	)
	return err
}

type LBRow struct {
	PlayerID  string `json:"playerId"`
	Turns     int    `json:"turns"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard ranks by fewest turns, then elapsed time, then arrival.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, turns, elapsed_ms
		 FROM daily_results
		 WHERE date=?
		 ORDER BY turns ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.Turns, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
