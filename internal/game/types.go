// internal/game/types.go
//
// Core type definitions for the morphwords turn engine.
// Defines:
//   - Status: lifecycle state of a game (active/completed/failed).
//   - TwistType + LetterOp: the closed action vocabulary.
//   - PlayerAction: one edit instruction submitted by a client.
//   - TurnInput: the client's claim for a whole turn (actions + final words).
//   - TurnRecord: one committed turn in the append-only history.
//   - State: the authoritative record for one game.

package game

// Status represents the lifecycle state of a game.
// Transitions are one-way: active → completed or active → failed,
// and terminal once non-active.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// TwistType identifies one of the four action variants. Each type has a
// per-game usage budget tracked in State.AvailableTwists.
type TwistType string

const (
	TwistLetter TwistType = "LETTER_TWIST"
	TwistWord   TwistType = "WORD_TWIST"
	TwistSplit  TwistType = "SPLIT"
	TwistMerge  TwistType = "MERGE"
)

// LetterOp is the sub-variant of a LETTER_TWIST.
type LetterOp string

const (
	LetterAdd  LetterOp = "ADD"
	LetterDrop LetterOp = "DROP"
	LetterSwap LetterOp = "SWAP"
)

// LetterTwistDetail carries the payload for a LETTER_TWIST action.
// Field use by op:
//   - ADD:  Letter (single a–z char) inserted at Position in [0, len].
//   - DROP: character at Position in [0, len-1] removed.
//   - SWAP: character at Position must equal From; it becomes To.
type LetterTwistDetail struct {
	Op       LetterOp `json:"op"`
	Letter   string   `json:"letter,omitempty"`
	Position int      `json:"position"`
	From     string   `json:"from,omitempty"`
	To       string   `json:"to,omitempty"`
}

// PlayerAction is one edit instruction, dispatched on Type.
// TargetWordIndex addresses the word list as it stands after the previous
// actions of the same turn; MERGE ignores it in favor of MergeIndices.
type PlayerAction struct {
	Type            TwistType          `json:"type"`
	TargetWordIndex int                `json:"targetWordIndex"`
	Letter          *LetterTwistDetail `json:"letterTwist,omitempty"`
	Replacement     string             `json:"targetSynonymAntonym,omitempty"`
	SplitIndex      int                `json:"splitIndex,omitempty"`
	MergeIndices    []int              `json:"mergeIndices,omitempty"`
}

// TurnInput is the client's claim for one turn: the action sequence plus the
// word list the client believes those actions produce. The resolver replays
// the actions and rejects the turn if the claim does not match.
type TurnInput struct {
	Actions    []PlayerAction `json:"actions"`
	FinalWords []string       `json:"finalWords"`
}

// TurnRecord is one accepted turn in the append-only history.
// Never mutated after append; audit/replay only.
type TurnRecord struct {
	TurnNumber int            `json:"turnNumber"`
	Actions    []PlayerAction `json:"actions"`
	FinalWords []string       `json:"finalWords"`
}

// TwistAvailability is the per-game remaining budget for one twist type.
// UsesLeft == nil means unlimited.
type TwistAvailability struct {
	TwistID  TwistType `json:"twistId"`
	Name     string    `json:"name"`
	UsesLeft *int      `json:"usesLeft"`
}

// State holds the authoritative record for one game.
type State struct {
	GameID          string             `json:"gameId"`
	PlayerIDs       []string           `json:"playerIds"`
	TargetWords     []string           `json:"targetWords"`
	CurrentWords    []string           `json:"currentWords"`
	TurnNumber      int                `json:"turnNumber"`
	GameStatus      Status             `json:"gameStatus"`
	AvailableTwists map[TwistType]*int `json:"availableTwists"` // nil count = unlimited
	History         []TurnRecord       `json:"history"`
}

// twistNames maps twist types to display names.
var twistNames = map[TwistType]string{
	TwistLetter: "Letter Twist",
	TwistWord:   "Word Twist",
	TwistSplit:  "Split",
	TwistMerge:  "Merge",
}

// TwistList renders AvailableTwists as a stable slice
// (letter, word, split, merge order).
func (s *State) TwistList() []TwistAvailability {
	order := []TwistType{TwistLetter, TwistWord, TwistSplit, TwistMerge}
	out := make([]TwistAvailability, 0, len(order))
	for _, t := range order {
		uses, ok := s.AvailableTwists[t]
		if !ok {
			continue
		}
		out = append(out, TwistAvailability{TwistID: t, Name: twistNames[t], UsesLeft: copyCount(uses)})
	}
	return out
}

// Clone returns a deep copy of the state. Stores hand out clones so a
// rejected turn can never alias committed state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := &State{
		GameID:       s.GameID,
		TurnNumber:   s.TurnNumber,
		GameStatus:   s.GameStatus,
		PlayerIDs:    append([]string(nil), s.PlayerIDs...),
		TargetWords:  append([]string(nil), s.TargetWords...),
		CurrentWords: append([]string(nil), s.CurrentWords...),
	}
	if s.AvailableTwists != nil {
		c.AvailableTwists = make(map[TwistType]*int, len(s.AvailableTwists))
		for k, v := range s.AvailableTwists {
			c.AvailableTwists[k] = copyCount(v)
		}
	}
	if s.History != nil {
		c.History = make([]TurnRecord, len(s.History))
		for i, rec := range s.History {
			c.History[i] = TurnRecord{
				TurnNumber: rec.TurnNumber,
				Actions:    append([]PlayerAction(nil), rec.Actions...),
				FinalWords: append([]string(nil), rec.FinalWords...),
			}
		}
	}
	return c
}

// copyCount clones an optional counter; nil stays nil (unlimited).
func copyCount(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
