package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unlimited() *Ledger {
	return NewLedger(map[TwistType]*int{})
}

func letterAction(idx int, d LetterTwistDetail) PlayerAction {
	return PlayerAction{Type: TwistLetter, TargetWordIndex: idx, Letter: &d}
}

func TestSimulateSwap(t *testing.T) {
	out, err := Simulate([]string{"cat"}, []PlayerAction{
		letterAction(0, LetterTwistDetail{Op: LetterSwap, Position: 0, From: "c", To: "r"}),
	}, unlimited())
	require.NoError(t, err)
	assert.Equal(t, []string{"rat"}, out)
}

func TestSimulateAddThenDropRestoresWord(t *testing.T) {
	out, err := Simulate([]string{"cat"}, []PlayerAction{
		letterAction(0, LetterTwistDetail{Op: LetterAdd, Letter: "r", Position: 1}),
		letterAction(0, LetterTwistDetail{Op: LetterDrop, Position: 1}),
	}, unlimited())
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, out)
}

func TestSimulateActionsComposeSequentially(t *testing.T) {
	// ADD acts on the result of the previous ADD, not the original word.
	out, err := Simulate([]string{"cat"}, []PlayerAction{
		letterAction(0, LetterTwistDetail{Op: LetterAdd, Letter: "r", Position: 1}),
		letterAction(0, LetterTwistDetail{Op: LetterSwap, Position: 0, From: "c", To: "b"}),
	}, unlimited())
	require.NoError(t, err)
	assert.Equal(t, []string{"brat"}, out)
}

func TestSimulateIsDeterministic(t *testing.T) {
	actions := []PlayerAction{
		letterAction(0, LetterTwistDetail{Op: LetterAdd, Letter: "s", Position: 0}),
		{Type: TwistSplit, TargetWordIndex: 0, SplitIndex: 1},
	}
	first, err := Simulate([]string{"tone"}, actions, unlimited())
	require.NoError(t, err)
	second, err := Simulate([]string{"tone"}, actions, unlimited())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulateDoesNotMutateInput(t *testing.T) {
	words := []string{"cat", "dog"}
	_, err := Simulate(words, []PlayerAction{
		letterAction(0, LetterTwistDetail{Op: LetterSwap, Position: 0, From: "c", To: "b"}),
	}, unlimited())
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, words)
}

func TestSwapFromMismatchFails(t *testing.T) {
	_, err := Simulate([]string{"cat"}, []PlayerAction{
		letterAction(0, LetterTwistDetail{Op: LetterSwap, Position: 0, From: "x", To: "r"}),
	}, unlimited())
	require.Error(t, err)
	rerr := err.(*RuleError)
	assert.Equal(t, CodeInvalidAction, rerr.Code)
	assert.Equal(t, 0, rerr.ActionIndex)
}

func TestDropCannotEmptyWord(t *testing.T) {
	_, err := Simulate([]string{"a", "cat"}, []PlayerAction{
		letterAction(0, LetterTwistDetail{Op: LetterDrop, Position: 0}),
	}, unlimited())
	require.Error(t, err)
	assert.Equal(t, CodeInvalidAction, err.(*RuleError).Code)
}

func TestAddPositionBounds(t *testing.T) {
	// position == len is allowed (append), len+1 is not
	out, err := Simulate([]string{"cat"}, []PlayerAction{
		letterAction(0, LetterTwistDetail{Op: LetterAdd, Letter: "s", Position: 3}),
	}, unlimited())
	require.NoError(t, err)
	assert.Equal(t, []string{"cats"}, out)

	_, err = Simulate([]string{"cat"}, []PlayerAction{
		letterAction(0, LetterTwistDetail{Op: LetterAdd, Letter: "s", Position: 4}),
	}, unlimited())
	require.Error(t, err)
	assert.Equal(t, CodeInvalidAction, err.(*RuleError).Code)
}

func TestIndexOutOfRange(t *testing.T) {
	_, err := Simulate([]string{"cat"}, []PlayerAction{
		letterAction(1, LetterTwistDetail{Op: LetterDrop, Position: 0}),
	}, unlimited())
	require.Error(t, err)
	assert.Equal(t, CodeIndexOutOfRange, err.(*RuleError).Code)
}

func TestSplitInteriorOnly(t *testing.T) {
	out, err := Simulate([]string{"sunset"}, []PlayerAction{
		{Type: TwistSplit, TargetWordIndex: 0, SplitIndex: 3},
	}, unlimited())
	require.NoError(t, err)
	assert.Equal(t, []string{"sun", "set"}, out)

	for _, bad := range []int{0, 6, -1, 7} {
		_, err := Simulate([]string{"sunset"}, []PlayerAction{
			{Type: TwistSplit, TargetWordIndex: 0, SplitIndex: bad},
		}, unlimited())
		require.Error(t, err, "split index %d", bad)
		assert.Equal(t, CodeInvalidAction, err.(*RuleError).Code)
	}
}

func TestMergeTwoWords(t *testing.T) {
	out, err := Simulate([]string{"sun", "set"}, []PlayerAction{
		{Type: TwistMerge, MergeIndices: []int{0, 1}},
	}, unlimited())
	require.NoError(t, err)
	assert.Equal(t, []string{"sunset"}, out)
}

func TestMergeOrderAndPlacement(t *testing.T) {
	// Concatenation follows the order of mergeIndices; the combined word
	// lands at the lowest referenced index.
	out, err := Simulate([]string{"sun", "set", "top"}, []PlayerAction{
		{Type: TwistMerge, MergeIndices: []int{2, 0}},
	}, unlimited())
	require.NoError(t, err)
	assert.Equal(t, []string{"topsun", "set"}, out)
}

func TestMergeThenActOnShiftedIndex(t *testing.T) {
	// After the merge the board is ["topsun","set"]; index 1 must address
	// "set", not the pre-merge word list.
	out, err := Simulate([]string{"sun", "set", "top"}, []PlayerAction{
		{Type: TwistMerge, MergeIndices: []int{2, 0}},
		letterAction(1, LetterTwistDetail{Op: LetterSwap, Position: 0, From: "s", To: "g"}),
	}, unlimited())
	require.NoError(t, err)
	assert.Equal(t, []string{"topsun", "get"}, out)
}

func TestMergeRejectsDuplicatesAndSingletons(t *testing.T) {
	_, err := Simulate([]string{"sun", "set"}, []PlayerAction{
		{Type: TwistMerge, MergeIndices: []int{0, 0}},
	}, unlimited())
	require.Error(t, err)
	assert.Equal(t, CodeInvalidAction, err.(*RuleError).Code)

	_, err = Simulate([]string{"sun", "set"}, []PlayerAction{
		{Type: TwistMerge, MergeIndices: []int{0}},
	}, unlimited())
	require.Error(t, err)
	assert.Equal(t, CodeInvalidAction, err.(*RuleError).Code)
}

func TestWordTwistReplaces(t *testing.T) {
	out, err := Simulate([]string{"big", "dog"}, []PlayerAction{
		{Type: TwistWord, TargetWordIndex: 0, Replacement: "large"},
	}, unlimited())
	require.NoError(t, err)
	assert.Equal(t, []string{"large", "dog"}, out)
}

func TestTwistExhaustion(t *testing.T) {
	one := 1
	ledger := NewLedger(map[TwistType]*int{TwistSplit: &one})
	out, err := Simulate([]string{"sunset", "sundog"}, []PlayerAction{
		{Type: TwistSplit, TargetWordIndex: 0, SplitIndex: 3},
		{Type: TwistSplit, TargetWordIndex: 2, SplitIndex: 3},
	}, ledger)
	require.Error(t, err)
	assert.Nil(t, out)
	rerr := err.(*RuleError)
	assert.Equal(t, CodeTwistExhausted, rerr.Code)
	assert.Equal(t, 1, rerr.ActionIndex)
}

func TestInvalidActionDoesNotChargeLedger(t *testing.T) {
	one := 1
	ledger := NewLedger(map[TwistType]*int{TwistSplit: &one})
	_, err := Simulate([]string{"sunset"}, []PlayerAction{
		{Type: TwistSplit, TargetWordIndex: 0, SplitIndex: 0},
	}, ledger)
	require.Error(t, err)
	uses, unlimitedUses := ledger.Remaining(TwistSplit)
	assert.False(t, unlimitedUses)
	assert.Equal(t, 1, uses)
}
