// internal/words/words.go
//
// Process-wide immutable word data for the morphwords server.
//
// Responsibilities:
//   - Load the allowed word list, the puzzle pair list, and the profanity
//     block list from environment-provided files or fall back to the
//     embedded defaults in assets/.
//   - Maintain lookup sets for the local dictionary mode and the profanity
//     filter.
//   - Supply RandomPair / PairAt for game creation and the daily puzzle.
//
// Initialization behavior (Init):
//   - Each list independently prefers its env-configured file and falls
//     back to the embedded default.
//   - Words are normalized to lowercase; entries must be 2–24 letters a–z.
//   - Pair lines are "start,target"; malformed lines are skipped.
//   - Initialization runs once (sync.Once); everything is read-only after.
//
// Environment variables:
//   WORDS_ALLOWED_FILE=/path/to/allowed.txt
//   WORDS_PAIRS_FILE=/path/to/pairs.txt
//   WORDS_BLOCKED_FILE=/path/to/blocked.txt

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/morphwords/go-server/assets"
)

const (
	minLen = 2
	maxLen = 24
)

// Pair is one start/target puzzle.
type Pair struct {
	Start  string
	Target string
}

var (
	initOnce   sync.Once
	allowedSet map[string]struct{}
	blockedSet map[string]struct{}
	pairs      []Pair
	initialErr error
)

// Init loads all lists exactly once.
// Returns an error if the pair list ends up empty.
func Init() error {
	initOnce.Do(func() {
		allowList, err := loadList(os.Getenv("WORDS_ALLOWED_FILE"), assets.AllowedList)
		if err != nil {
			initialErr = err
			return
		}
		blockList, err := loadList(os.Getenv("WORDS_BLOCKED_FILE"), assets.BlockedList)
		if err != nil {
			initialErr = err
			return
		}
		pairLines, err := loadList(os.Getenv("WORDS_PAIRS_FILE"), assets.PairsList)
		if err != nil {
			initialErr = err
			return
		}

		allowedSet = make(map[string]struct{}, len(allowList))
		for _, w := range allowList {
			if validWord(w) {
				allowedSet[w] = struct{}{}
			}
		}
		blockedSet = make(map[string]struct{}, len(blockList))
		for _, w := range blockList {
			if validWord(w) {
				blockedSet[w] = struct{}{}
			}
		}
		for _, line := range pairLines {
			start, target, ok := strings.Cut(line, ",")
			start, target = strings.TrimSpace(start), strings.TrimSpace(target)
			if !ok || !validWord(start) || !validWord(target) {
				continue
			}
			pairs = append(pairs, Pair{Start: start, Target: target})
			// Puzzle words are playable by definition.
			allowedSet[start] = struct{}{}
			allowedSet[target] = struct{}{}
		}

		if len(pairs) == 0 {
			initialErr = errors.New("words: pair list is empty")
		}
	})
	return initialErr
}

// loadList reads one word per line from path, or from the embedded fallback
// when path is empty.
func loadList(path string, fallback func() ([]string, error)) ([]string, error) {
	if path == "" {
		return fallback()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(strings.ToLower(sc.Text()))
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// validWord enforces the board word shape: 2–24 lowercase ASCII letters.
func validWord(s string) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomPair returns a cryptographically random puzzle pair.
// Falls back to cat→rat if Init has not populated pairs.
func RandomPair() Pair {
	if len(pairs) == 0 {
		return Pair{Start: "cat", Target: "rat"}
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(pairs))))
	return pairs[nBig.Int64()]
}

// PairAt returns the pair at index i modulo the pair count.
// Used by the daily puzzle's deterministic selector.
func PairAt(i int) Pair {
	if len(pairs) == 0 {
		return Pair{Start: "cat", Target: "rat"}
	}
	return pairs[i%len(pairs)]
}

// PairCount reports how many puzzle pairs are loaded.
func PairCount() int { return len(pairs) }

// IsAllowed reports whether w is in the allowed word list.
func IsAllowed(w string) bool {
	_, ok := allowedSet[strings.ToLower(w)]
	return ok
}

// Blocked reports whether w is on the profanity block list
// (case-insensitive exact-token match).
func Blocked(w string) bool {
	_, ok := blockedSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded entries: (allowed, pairs, blocked).
func Stats() (allowedCount, pairCount, blockedCount int) {
	return len(allowedSet), len(pairs), len(blockedSet)
}
