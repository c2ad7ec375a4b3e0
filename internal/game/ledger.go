// internal/game/ledger.go
//
// Twist usage ledger for a single in-flight turn. The ledger is seeded from
// the persisted AvailableTwists map and mutated only by the simulator; its
// snapshot is written back only if the whole turn commits, so a rejected
// turn never decrements a persisted counter.

package game

// Ledger tracks remaining uses per twist type during one turn's simulation.
type Ledger struct {
	remaining map[TwistType]*int // nil count = unlimited
}

// NewLedger seeds a ledger from a game's AvailableTwists. The input map is
// deep-copied; the caller's state is never touched.
func NewLedger(avail map[TwistType]*int) *Ledger {
	l := &Ledger{remaining: make(map[TwistType]*int, len(avail))}
	for k, v := range avail {
		l.remaining[k] = copyCount(v)
	}
	return l
}

// Remaining returns the uses left for a twist type.
// unlimited is true when the type has no budget (nil sentinel).
// A twist type absent from the map is treated as unlimited.
func (l *Ledger) Remaining(t TwistType) (uses int, unlimited bool) {
	v, ok := l.remaining[t]
	if !ok || v == nil {
		return 0, true
	}
	return *v, false
}

// Consume spends one use of the given twist type.
// Returns false when the budget is exhausted; unlimited types always succeed
// and are never decremented.
func (l *Ledger) Consume(t TwistType) bool {
	v, ok := l.remaining[t]
	if !ok || v == nil {
		return true
	}
	if *v <= 0 {
		return false
	}
	n := *v - 1
	l.remaining[t] = &n
	return true
}

// Snapshot returns a deep copy of the current counters, suitable for
// carrying into the candidate next state on commit.
func (l *Ledger) Snapshot() map[TwistType]*int {
	out := make(map[TwistType]*int, len(l.remaining))
	for k, v := range l.remaining {
		out[k] = copyCount(v)
	}
	return out
}
