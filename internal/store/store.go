// internal/store/store.go
//
// Persistence contract for game documents: get-by-id / upsert-by-id with
// full-document replace semantics. Implementations may be backed by memory
// (memory.go) or SQLite (sqlite.go).

package store

import (
	"context"
	"errors"

	"github.com/morphwords/go-server/internal/game"
)

// ErrNotFound is returned by Get when no game exists for the id.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for game state.
type Store interface {
	// Get retrieves a game by id. Returns ErrNotFound if absent.
	// Implementations return a copy the caller may mutate freely.
	Get(ctx context.Context, id string) (*game.State, error)

	// Upsert persists the full document keyed by GameID, replacing any
	// previous version. Idempotent on GameID.
	Upsert(ctx context.Context, st *game.State) error
}
