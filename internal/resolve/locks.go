// internal/resolve/locks.go
//
// Sharded per-game locks. Turns for one gameId serialize on that game's
// shard; a fixed shard count avoids both a single global lock across all
// games and an unbounded mutex-per-game map.

package resolve

import (
	"hash/fnv"
	"sync"
)

const lockShards = 64

type gameLocks struct {
	shards [lockShards]sync.Mutex
}

// lock acquires the shard for gameID and returns the matching unlock.
func (g *gameLocks) lock(gameID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(gameID))
	mu := &g.shards[h.Sum32()%lockShards]
	mu.Lock()
	return mu.Unlock
}
