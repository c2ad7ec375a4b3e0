// internal/store/sqlite.go
//
// SQLite implementation of the Store interface: one row per game in the
// games table, with the list/map fields carried as JSON document columns.
// Upsert is a full-document replace via INSERT ... ON CONFLICT, matching
// the contract's idempotent upsert-by-id semantics.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/morphwords/go-server/internal/game"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened database (see openDB/migrate in main).
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Upsert(ctx context.Context, st *game.State) error {
	players, err := json.Marshal(st.PlayerIDs)
	if err != nil {
		return fmt.Errorf("marshal player ids: %w", err)
	}
	targets, err := json.Marshal(st.TargetWords)
	if err != nil {
		return fmt.Errorf("marshal target words: %w", err)
	}
	current, err := json.Marshal(st.CurrentWords)
	if err != nil {
		return fmt.Errorf("marshal current words: %w", err)
	}
	twists, err := json.Marshal(st.AvailableTwists)
	if err != nil {
		return fmt.Errorf("marshal twists: %w", err)
	}
	history, err := json.Marshal(st.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (id, player_ids, target_words, current_words, turn_number, status, available_twists, history, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET
            player_ids=excluded.player_ids,
            target_words=excluded.target_words,
            current_words=excluded.current_words,
            turn_number=excluded.turn_number,
            status=excluded.status,
            available_twists=excluded.available_twists,
            history=excluded.history,
            updated_at=excluded.updated_at`,
		st.GameID, string(players), string(targets), string(current),
		st.TurnNumber, string(st.GameStatus), string(twists), string(history),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert game %s: %w", st.GameID, err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*game.State, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, player_ids, target_words, current_words, turn_number, status, available_twists, history
        FROM games WHERE id=?`, id)

	var st game.State
	var players, targets, current, twists, history string
	var status string
	err := row.Scan(&st.GameID, &players, &targets, &current, &st.TurnNumber, &status, &twists, &history)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	st.GameStatus = game.Status(status)
	if err := json.Unmarshal([]byte(players), &st.PlayerIDs); err != nil {
		return nil, fmt.Errorf("decode player ids: %w", err)
	}
	if err := json.Unmarshal([]byte(targets), &st.TargetWords); err != nil {
		return nil, fmt.Errorf("decode target words: %w", err)
	}
	if err := json.Unmarshal([]byte(current), &st.CurrentWords); err != nil {
		return nil, fmt.Errorf("decode current words: %w", err)
	}
	if err := json.Unmarshal([]byte(twists), &st.AvailableTwists); err != nil {
		return nil, fmt.Errorf("decode twists: %w", err)
	}
	if err := json.Unmarshal([]byte(history), &st.History); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return &st, nil
}
