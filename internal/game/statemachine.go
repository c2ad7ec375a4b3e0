// internal/game/statemachine.go
//
// Game status evaluation after a committed turn.
// active → completed when the board matches the targets; active → failed is
// driven only by the configurable turn cap. Rejected turns never evaluate
// the machine, so status and turn number are untouched on rejection.

package game

import "strings"

// Policy configures the failure side of the state machine.
// MaxTurns is the number of committed turns a player may take;
// 0 means unlimited (the game can only end in a win).
type Policy struct {
	MaxTurns int
}

// Evaluate computes the status after a turn has been accepted.
// turnsTaken counts committed turns including the one being evaluated.
//
// The win check compares current and target words as case-insensitive
// multisets: splits and merges may reorder the board, so position is not
// load-bearing, but duplicates must match exactly.
func (p Policy) Evaluate(current, target []string, turnsTaken int) Status {
	if sameMultiset(current, target) {
		return StatusCompleted
	}
	if p.MaxTurns > 0 && turnsTaken >= p.MaxTurns {
		return StatusFailed
	}
	return StatusActive
}

// sameMultiset reports whether a and b contain the same words, ignoring
// case and order but respecting multiplicity.
func sameMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, w := range a {
		counts[strings.ToLower(w)]++
	}
	for _, w := range b {
		k := strings.ToLower(w)
		counts[k]--
		if counts[k] < 0 {
			return false
		}
	}
	return true
}
