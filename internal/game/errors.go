// internal/game/errors.go
//
// Structured rule errors for turn resolution. Every rejection carries a
// machine-readable code, the offending word and/or action index where one
// exists, and a human-readable message. The HTTP layer maps codes to
// statuses; the resolver maps dependency failures to the retryable codes.

package game

import "fmt"

// Code is a machine-readable rejection or failure code.
type Code string

const (
	CodeGameNotFound         Code = "GAME_NOT_FOUND"
	CodeGameNotActive        Code = "GAME_NOT_ACTIVE"
	CodeInvalidInput         Code = "INVALID_INPUT"
	CodeIndexOutOfRange      Code = "INDEX_OUT_OF_RANGE"
	CodeInvalidAction        Code = "INVALID_ACTION"
	CodeTwistExhausted       Code = "TWIST_EXHAUSTED"
	CodeSimulationMismatch   Code = "SIMULATION_MISMATCH"
	CodeInvalidWord          Code = "INVALID_WORD"
	CodeProfanityDetected    Code = "PROFANITY_DETECTED"
	CodeValidatorUnavailable Code = "VALIDATOR_UNAVAILABLE"
	CodePersistenceError     Code = "PERSISTENCE_ERROR"
)

// RuleError is the structured rejection/failure type for a turn.
// ActionIndex is -1 when the error is not scoped to a single action.
type RuleError struct {
	Code        Code   `json:"errorCode"`
	Word        string `json:"offendingWord,omitempty"`
	ActionIndex int    `json:"actionIndex,omitempty"`
	Message     string `json:"message"`
}

func (e *RuleError) Error() string {
	if e.Word != "" {
		return fmt.Sprintf("%s: %s (word %q)", e.Code, e.Message, e.Word)
	}
	if e.ActionIndex >= 0 {
		return fmt.Sprintf("%s: %s (action %d)", e.Code, e.Message, e.ActionIndex)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Retryable reports whether the failure is a dependency fault the caller may
// retry, as opposed to a terminal rejection of the turn.
func (e *RuleError) Retryable() bool {
	return e.Code == CodeValidatorUnavailable || e.Code == CodePersistenceError
}

func ErrGameNotFound(id string) *RuleError {
	return &RuleError{Code: CodeGameNotFound, ActionIndex: -1, Message: fmt.Sprintf("no game with id %s", id)}
}

func ErrGameNotActive(status Status) *RuleError {
	return &RuleError{Code: CodeGameNotActive, ActionIndex: -1, Message: fmt.Sprintf("game is %s; no further turns accepted", status)}
}

func ErrInvalidInput(msg string) *RuleError {
	return &RuleError{Code: CodeInvalidInput, ActionIndex: -1, Message: msg}
}

func ErrIndexOutOfRange(action, index, wordCount int) *RuleError {
	return &RuleError{
		Code:        CodeIndexOutOfRange,
		ActionIndex: action,
		Message:     fmt.Sprintf("word index %d out of range (have %d words)", index, wordCount),
	}
}

func ErrInvalidAction(action int, reason string) *RuleError {
	return &RuleError{Code: CodeInvalidAction, ActionIndex: action, Message: reason}
}

func ErrTwistExhausted(action int, twist TwistType) *RuleError {
	return &RuleError{
		Code:        CodeTwistExhausted,
		ActionIndex: action,
		Message:     fmt.Sprintf("no uses of %s remaining", twist),
	}
}

func ErrSimulationMismatch(simulated, claimed []string) *RuleError {
	return &RuleError{
		Code:        CodeSimulationMismatch,
		ActionIndex: -1,
		Message:     fmt.Sprintf("replayed actions produce %v, claim was %v", simulated, claimed),
	}
}

func ErrInvalidWord(word, reason string) *RuleError {
	return &RuleError{Code: CodeInvalidWord, Word: word, ActionIndex: -1, Message: reason}
}

func ErrProfanityDetected(word string) *RuleError {
	return &RuleError{Code: CodeProfanityDetected, Word: word, ActionIndex: -1, Message: "word is on the block list"}
}

func ErrValidatorUnavailable(word string, cause error) *RuleError {
	return &RuleError{
		Code:        CodeValidatorUnavailable,
		Word:        word,
		ActionIndex: -1,
		Message:     fmt.Sprintf("dictionary lookup failed: %v", cause),
	}
}

func ErrPersistence(cause error) *RuleError {
	return &RuleError{
		Code:        CodePersistenceError,
		ActionIndex: -1,
		Message:     fmt.Sprintf("could not persist game state: %v", cause),
	}
}
