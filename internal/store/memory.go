// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is a lightweight persistence layer used for ephemeral games,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores game documents keyed by GameID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Deep-copies on both Get and Upsert so an in-flight turn can never
//     alias the committed document.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/morphwords/go-server/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]*game.State
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.State)}
}

// Upsert replaces the stored document for st.GameID.
func (m *memory) Upsert(ctx context.Context, st *game.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[st.GameID] = st.Clone()
	return nil
}

// Get looks up a game by id and returns a copy.
func (m *memory) Get(ctx context.Context, id string) (*game.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.games[id]; ok {
		return st.Clone(), nil
	}
	return nil, ErrNotFound
}
