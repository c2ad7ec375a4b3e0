// internal/game/simulator.go
//
// Deterministic action simulator for the morphwords turn engine.
// Responsibilities:
//   - Replay a submitted action sequence against the authoritative board.
//   - Validate every precondition (index bounds, letter payloads, SWAP
//     letter match, interior split points, merge index sets).
//   - Charge each action against the twist ledger.
//
// Notes:
//   - Actions compose sequentially: each one operates on the output of the
//     previous action in the same turn, so index references shift as SPLIT
//     and MERGE change the word count.
//   - The output is a pure function of (words, actions, ledger state):
//     no I/O, no randomness. The resolver relies on this for the anti-cheat
//     reconcile against the client's claimed final words.
//   - SWAP with a stale `from` letter is an error, not a no-op; a
//     desynchronized client must never succeed by accident.
//   - An action may never leave an empty word on the board.

package game

// Simulate applies actions in submission order to a copy of words,
// consulting ledger for twist budgets, and returns the resulting board.
// On failure it returns a *RuleError (INDEX_OUT_OF_RANGE, INVALID_ACTION,
// or TWIST_EXHAUSTED) identifying the offending action. The input slice is
// never mutated.
func Simulate(words []string, actions []PlayerAction, ledger *Ledger) ([]string, error) {
	board := append([]string(nil), words...)
	for i, a := range actions {
		next, err := applyAction(board, i, a, ledger)
		if err != nil {
			return nil, err
		}
		board = next
	}
	return board, nil
}

// applyAction validates and applies a single action against the board.
// The ledger is charged only after the action's preconditions pass, so an
// invalid action never costs a use.
func applyAction(board []string, i int, a PlayerAction, ledger *Ledger) ([]string, error) {
	var next []string
	var err error
	switch a.Type {
	case TwistLetter:
		next, err = applyLetterTwist(board, i, a)
	case TwistWord:
		next, err = applyWordTwist(board, i, a)
	case TwistSplit:
		next, err = applySplit(board, i, a)
	case TwistMerge:
		next, err = applyMerge(board, i, a)
	default:
		return nil, ErrInvalidAction(i, "unknown action type "+string(a.Type))
	}
	if err != nil {
		return nil, err
	}
	if !ledger.Consume(a.Type) {
		return nil, ErrTwistExhausted(i, a.Type)
	}
	return next, nil
}

// applyLetterTwist handles ADD/DROP/SWAP on a single word.
func applyLetterTwist(board []string, i int, a PlayerAction) ([]string, error) {
	if a.TargetWordIndex < 0 || a.TargetWordIndex >= len(board) {
		return nil, ErrIndexOutOfRange(i, a.TargetWordIndex, len(board))
	}
	d := a.Letter
	if d == nil {
		return nil, ErrInvalidAction(i, "letter twist is missing its detail payload")
	}
	word := board[a.TargetWordIndex]
	var mutated string
	switch d.Op {
	case LetterAdd:
		if !isLetter(d.Letter) {
			return nil, ErrInvalidAction(i, "ADD needs a single letter a-z")
		}
		if d.Position < 0 || d.Position > len(word) {
			return nil, ErrInvalidAction(i, "ADD position out of bounds")
		}
		mutated = word[:d.Position] + d.Letter + word[d.Position:]

	case LetterDrop:
		if d.Position < 0 || d.Position >= len(word) {
			return nil, ErrInvalidAction(i, "DROP position out of bounds")
		}
		if len(word) == 1 {
			return nil, ErrInvalidAction(i, "DROP would leave an empty word")
		}
		mutated = word[:d.Position] + word[d.Position+1:]

	case LetterSwap:
		if d.Position < 0 || d.Position >= len(word) {
			return nil, ErrInvalidAction(i, "SWAP position out of bounds")
		}
		if !isLetter(d.From) || !isLetter(d.To) {
			return nil, ErrInvalidAction(i, "SWAP needs single letters a-z for from/to")
		}
		if word[d.Position:d.Position+1] != d.From {
			return nil, ErrInvalidAction(i, "SWAP 'from' letter does not match the board")
		}
		mutated = word[:d.Position] + d.To + word[d.Position+1:]

	default:
		return nil, ErrInvalidAction(i, "unknown letter op "+string(d.Op))
	}

	next := append([]string(nil), board...)
	next[a.TargetWordIndex] = mutated
	return next, nil
}

// applyWordTwist replaces the target word with the player-asserted
// synonym/antonym. The semantic relation is not verified here; the
// replacement is validated like any other final word downstream.
func applyWordTwist(board []string, i int, a PlayerAction) ([]string, error) {
	if a.TargetWordIndex < 0 || a.TargetWordIndex >= len(board) {
		return nil, ErrIndexOutOfRange(i, a.TargetWordIndex, len(board))
	}
	if a.Replacement == "" || !isAlpha(a.Replacement) {
		return nil, ErrInvalidAction(i, "word twist replacement must be a non-empty lowercase word")
	}
	next := append([]string(nil), board...)
	next[a.TargetWordIndex] = a.Replacement
	return next, nil
}

// applySplit divides the target word at a strictly interior index,
// replacing one entry with two consecutive entries in place.
func applySplit(board []string, i int, a PlayerAction) ([]string, error) {
	if a.TargetWordIndex < 0 || a.TargetWordIndex >= len(board) {
		return nil, ErrIndexOutOfRange(i, a.TargetWordIndex, len(board))
	}
	word := board[a.TargetWordIndex]
	if a.SplitIndex <= 0 || a.SplitIndex >= len(word) {
		return nil, ErrInvalidAction(i, "split index must be strictly inside the word")
	}
	next := make([]string, 0, len(board)+1)
	next = append(next, board[:a.TargetWordIndex]...)
	next = append(next, word[:a.SplitIndex], word[a.SplitIndex:])
	next = append(next, board[a.TargetWordIndex+1:]...)
	return next, nil
}

// applyMerge concatenates the words at MergeIndices in the order given.
// The combined word lands at the lowest referenced index; every other
// referenced position is removed and later words shift down.
func applyMerge(board []string, i int, a PlayerAction) ([]string, error) {
	if len(a.MergeIndices) < 2 {
		return nil, ErrInvalidAction(i, "merge needs at least two word indices")
	}
	seen := make(map[int]struct{}, len(a.MergeIndices))
	lowest := a.MergeIndices[0]
	combined := ""
	for _, idx := range a.MergeIndices {
		if idx < 0 || idx >= len(board) {
			return nil, ErrIndexOutOfRange(i, idx, len(board))
		}
		if _, dup := seen[idx]; dup {
			return nil, ErrInvalidAction(i, "merge indices must be distinct")
		}
		seen[idx] = struct{}{}
		if idx < lowest {
			lowest = idx
		}
		combined += board[idx]
	}
	next := make([]string, 0, len(board)-len(a.MergeIndices)+1)
	for idx, w := range board {
		if idx == lowest {
			next = append(next, combined)
			continue
		}
		if _, merged := seen[idx]; merged {
			continue
		}
		next = append(next, w)
	}
	return next, nil
}

// isLetter reports whether s is exactly one lowercase ASCII letter.
func isLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'a' && s[0] <= 'z'
}

// isAlpha reports whether s consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
