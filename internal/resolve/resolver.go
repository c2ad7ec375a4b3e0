// internal/resolve/resolver.go
//
// Turn resolution pipeline for the morphwords server.
// Responsibilities:
//   - One full turn: load → active check → shape check → simulate →
//     reconcile claim → dictionary fan-out → profanity → build candidate →
//     status evaluation → persist → return.
//   - Game creation with configured twist budgets.
//   - Per-game serialization: the whole commit pipeline for a gameId runs
//     under that game's lock, so concurrent submissions for the same game
//     resolve one at a time. Different games proceed in parallel.
//
// Notes:
//   - Any rejection leaves the stored state untouched; the candidate next
//     state is built on a working copy and only reaches the store on a
//     fully validated turn.
//   - Dictionary lookups for the final words are issued concurrently and
//     joined before deciding; the first invalid word in finalWords order is
//     the one reported.
//   - Dependency faults (dictionary, store) surface as retryable codes,
//     never as a rule rejection.

package resolve

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/morphwords/go-server/internal/dict"
	"github.com/morphwords/go-server/internal/game"
	"github.com/morphwords/go-server/internal/store"
)

// Config carries the resolver's policy knobs.
type Config struct {
	// Blocked is the profanity membership test (case-insensitive inside).
	Blocked func(string) bool
	// Policy drives the state machine's failure side.
	Policy game.Policy
	// Budgets seeds AvailableTwists for new games; nil count = unlimited.
	Budgets map[game.TwistType]*int
	// DictTimeout bounds the whole dictionary fan-out for one turn.
	DictTimeout time.Duration
}

// Resolver orchestrates turn resolution against a store and a validator.
type Resolver struct {
	store store.Store
	dict  dict.Validator
	cfg   Config
	locks gameLocks
}

// New constructs a Resolver. A zero DictTimeout defaults to 5s.
func New(st store.Store, v dict.Validator, cfg Config) *Resolver {
	if cfg.DictTimeout <= 0 {
		cfg.DictTimeout = 5 * time.Second
	}
	if cfg.Blocked == nil {
		cfg.Blocked = func(string) bool { return false }
	}
	return &Resolver{store: st, dict: v, cfg: cfg}
}

// CreateGame builds and persists a fresh active game for one player.
// Words are stored lowercase; the board starts as [start].
func (r *Resolver) CreateGame(ctx context.Context, playerID, start, target string) (*game.State, error) {
	start, target = strings.ToLower(strings.TrimSpace(start)), strings.ToLower(strings.TrimSpace(target))
	if start == "" || target == "" || !isAlpha(start) || !isAlpha(target) {
		return nil, game.ErrInvalidInput("start and target must be words of letters a-z")
	}
	st := &game.State{
		GameID:          uuid.NewString(),
		PlayerIDs:       []string{playerID},
		TargetWords:     []string{target},
		CurrentWords:    []string{start},
		TurnNumber:      1,
		GameStatus:      game.StatusActive,
		AvailableTwists: game.NewLedger(r.cfg.Budgets).Snapshot(),
		History:         []game.TurnRecord{},
	}
	if err := r.persist(ctx, st); err != nil {
		return nil, err
	}
	log.Info().Str("gameId", st.GameID).Str("start", start).Str("target", target).Msg("game created")
	return st, nil
}

// ResolveTurn runs the full pipeline for one submitted turn.
// On success the committed next state is returned; on rejection or
// dependency failure a *game.RuleError is returned and the stored state is
// unchanged.
func (r *Resolver) ResolveTurn(ctx context.Context, gameID string, in game.TurnInput) (*game.State, error) {
	unlock := r.locks.lock(gameID)
	defer unlock()

	// 1. Load authoritative state.
	st, err := r.store.Get(ctx, gameID)
	if err == store.ErrNotFound {
		return nil, game.ErrGameNotFound(gameID)
	}
	if err != nil {
		return nil, game.ErrPersistence(err)
	}

	// 2. Only active games accept turns.
	if st.GameStatus != game.StatusActive {
		return nil, game.ErrGameNotActive(st.GameStatus)
	}

	// 3. Structural validation; final words are normalized here so the
	// simulator and reconcile work on exact lowercase strings throughout.
	claimed, rerr := normalizeClaim(in.FinalWords)
	if rerr != nil {
		return nil, rerr
	}

	// 4. Deterministic replay of the submitted actions.
	ledger := game.NewLedger(st.AvailableTwists)
	simulated, err := game.Simulate(st.CurrentWords, in.Actions, ledger)
	if err != nil {
		return nil, err
	}

	// 5. Anti-cheat reconcile: replay must match the claim exactly.
	if !equalWords(simulated, claimed) {
		return nil, game.ErrSimulationMismatch(simulated, claimed)
	}

	// 6–7. Word validation: dictionary fan-out, then profanity.
	if rerr := r.validateWords(ctx, claimed); rerr != nil {
		return nil, rerr
	}

	// 8. Candidate next state on a working copy.
	next := st.Clone()
	next.CurrentWords = claimed
	next.TurnNumber++
	next.AvailableTwists = ledger.Snapshot()
	next.History = append(next.History, game.TurnRecord{
		TurnNumber: st.TurnNumber,
		Actions:    in.Actions,
		FinalWords: claimed,
	})

	// 9. Status evaluation; turnsTaken counts committed turns.
	next.GameStatus = r.cfg.Policy.Evaluate(next.CurrentWords, next.TargetWords, next.TurnNumber-1)

	// 10. Commit. Only now does the turn exist.
	if err := r.persist(ctx, next); err != nil {
		return nil, err
	}

	log.Info().
		Str("gameId", gameID).
		Int("turn", st.TurnNumber).
		Str("status", string(next.GameStatus)).
		Strs("words", next.CurrentWords).
		Msg("turn committed")
	return next, nil
}

// validateWords runs the concurrent dictionary fan-out and the profanity
// filter over the accepted words. All lookups are collected before
// deciding; the first invalid word in list order wins. A confirmed
// invalid word takes precedence over a lookup fault on another word, so
// a definitive rejection is never masked by a retryable code.
func (r *Resolver) validateWords(ctx context.Context, finalWords []string) *game.RuleError {
	dctx, cancel := context.WithTimeout(ctx, r.cfg.DictTimeout)
	defer cancel()

	results := make([]dict.Result, len(finalWords))
	faults := make([]error, len(finalWords))
	var g errgroup.Group
	for i, w := range finalWords {
		i, w := i, w
		g.Go(func() error {
			res, err := r.dict.Check(dctx, w)
			if err != nil {
				faults[i] = err
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait() // goroutines record outcomes, never abort the group

	for i, res := range results {
		if faults[i] == nil && !res.Valid {
			return game.ErrInvalidWord(finalWords[i], res.Reason)
		}
	}
	for i, err := range faults {
		if err != nil {
			return game.ErrValidatorUnavailable(finalWords[i], err)
		}
	}

	for _, w := range finalWords {
		if r.cfg.Blocked(w) {
			return game.ErrProfanityDetected(w)
		}
	}
	return nil
}

// persist upserts with one local retry before surfacing PERSISTENCE_ERROR.
func (r *Resolver) persist(ctx context.Context, st *game.State) *game.RuleError {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if err := r.store.Upsert(ctx, st); err != nil {
			lastErr = err
			log.Warn().Err(err).Str("gameId", st.GameID).Int("attempt", attempt+1).Msg("upsert failed")
			continue
		}
		return nil
	}
	return game.ErrPersistence(lastErr)
}

// normalizeClaim trims and lowercases the claimed final words and enforces
// turn shape: a non-empty list of non-empty alphabetic words.
func normalizeClaim(finalWords []string) ([]string, *game.RuleError) {
	if len(finalWords) == 0 {
		return nil, game.ErrInvalidInput("finalWords must be a non-empty list")
	}
	out := make([]string, len(finalWords))
	for i, w := range finalWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			return nil, game.ErrInvalidInput("finalWords may not contain empty words")
		}
		if !isAlpha(w) {
			return nil, game.ErrInvalidInput("finalWords must be lowercase letters a-z")
		}
		out[i] = w
	}
	return out, nil
}

// equalWords is the strict element-by-element reconcile comparison.
func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
