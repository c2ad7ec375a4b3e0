package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateWinIsCaseInsensitiveMultiset(t *testing.T) {
	p := Policy{}

	assert.Equal(t, StatusCompleted, p.Evaluate([]string{"sunset"}, []string{"Sunset"}, 1))
	assert.Equal(t, StatusCompleted, p.Evaluate([]string{"set", "sun"}, []string{"sun", "set"}, 1),
		"order must not matter")
	assert.Equal(t, StatusActive, p.Evaluate([]string{"sun"}, []string{"sun", "set"}, 1),
		"missing word is not a win")
	assert.Equal(t, StatusActive, p.Evaluate([]string{"sun", "sun"}, []string{"sun", "set"}, 1),
		"multiplicity must match")
}

func TestEvaluateTurnCap(t *testing.T) {
	p := Policy{MaxTurns: 3}

	assert.Equal(t, StatusActive, p.Evaluate([]string{"cat"}, []string{"rat"}, 2))
	assert.Equal(t, StatusFailed, p.Evaluate([]string{"cat"}, []string{"rat"}, 3))
	// Winning on the last turn still wins.
	assert.Equal(t, StatusCompleted, p.Evaluate([]string{"rat"}, []string{"rat"}, 3))
}

func TestEvaluateUnlimitedTurns(t *testing.T) {
	p := Policy{MaxTurns: 0}
	assert.Equal(t, StatusActive, p.Evaluate([]string{"cat"}, []string{"rat"}, 500))
}
