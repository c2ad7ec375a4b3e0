// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle mode.
// Exposes two endpoints under /api/daily:
//   - POST /api/daily/games      → start today's puzzle (one per player per day)
//   - GET  /api/daily/leaderboard → top results for today (or a given date)
//
// Each player can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on win.
// Deterministic pair selection is based on date + salt.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/morphwords/go-server/internal/daily"
	"github.com/morphwords/go-server/internal/game"
	"github.com/morphwords/go-server/internal/words"
)

// dailyServer wraps dependencies for /api/daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by gameID
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily game.
type dailySession struct {
	PlayerID  string
	Date      string
	PairIndex int
	Start     time.Time
	Recorded  bool
}

// mountDaily registers all /api/daily routes.
func (s *Server) mountDaily(r chi.Router) {
	s.daily = &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/api/daily", func(r chi.Router) {
		r.Post("/games", s.daily.handleNew)
		r.Get("/leaderboard", s.daily.handleLeaderboard)
	})
}

// todayPair returns today's date key, deterministic pair index, and pair.
func (d *dailyServer) todayPair() (date string, idx int, p words.Pair) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	idx = daily.PairIndex(now, d.salt, words.PairCount())
	return date, idx, words.PairAt(idx)
}

// handleNew starts today's puzzle for the requesting player.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	playerID := d.srv.ensurePlayerID(w, r)
	date, idx, p := d.todayPair()

	played, err := d.store.AlreadyPlayed(r.Context(), playerID, date)
	if err != nil {
		log.Error().Err(err).Msg("daily already-played check")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if played {
		http.Error(w, `{"error":"already_played"}`, http.StatusConflict)
		return
	}

	st, err := d.srv.resolver.CreateGame(r.Context(), playerID, p.Start, p.Target)
	if err != nil {
		log.Error().Err(err).Msg("create daily game")
		http.Error(w, `{"error":"create_failed"}`, http.StatusInternalServerError)
		return
	}

	d.mu.Lock()
	d.sessions[st.GameID] = &dailySession{
		PlayerID:  playerID,
		Date:      date,
		PairIndex: idx,
		Start:     time.Now(),
	}
	d.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(st)
}

// recordIfDaily persists a completed daily game's result, best effort.
// Called by the turns handler after every committed turn; non-daily games
// and unfinished puzzles are ignored.
func (d *dailyServer) recordIfDaily(ctx context.Context, st *game.State) {
	if d == nil || st == nil || st.GameStatus != game.StatusCompleted {
		return
	}
	d.mu.Lock()
	sess := d.sessions[st.GameID]
	if sess == nil || sess.Recorded {
		d.mu.Unlock()
		return
	}
	sess.Recorded = true
	d.mu.Unlock()

	err := d.store.InsertResult(ctx, daily.Result{
		PlayerID:  sess.PlayerID,
		Date:      sess.Date,
		PairIndex: sess.PairIndex,
		Turns:     st.TurnNumber - 1,
		ElapsedMs: int(time.Since(sess.Start).Milliseconds()),
	})
	if err != nil {
		log.Warn().Err(err).Str("gameId", st.GameID).Msg("record daily result")
	}

	d.mu.Lock()
	delete(d.sessions, st.GameID)
	d.mu.Unlock()
}

// handleLeaderboard returns the top rows for ?date= (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.todayPair()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"date": date, "rows": rows})
}
