// internal/httpserver/server.go
//
// HTTP server wiring for the morphwords backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /api/games, GET /api/games/{gameId},
//     POST /api/games/{gameId}/turns.
//   - Daily puzzle endpoints mounted under /api/daily.
//   - Anonymous player cookie so daily results and games have a stable owner.
//   - Error-code → HTTP status mapping for turn rejections.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the player cookie works).
//   - Turn rejections always answer with the structured
//     {"isValid":false,"errorMessage":{...}} body; the turn is never
//     partially applied.

package httpserver

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/morphwords/go-server/internal/game"
	"github.com/morphwords/go-server/internal/resolve"
	"github.com/morphwords/go-server/internal/store"
	"github.com/morphwords/go-server/internal/words"
)

// Server bundles router, resolver, game store, and DB handle.
type Server struct {
	r        *chi.Mux
	resolver *resolve.Resolver
	store    store.Store
	db       *sql.DB
	daily    *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
func New(res *resolve.Resolver, st store.Store, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), resolver: res, store: st, db: db}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(15 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"morphwords-go","endpoints":["/health","POST /api/games","POST /api/games/{gameId}/turns","/api/daily/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, p, b := words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"allowed": a, "pairs": p, "blocked": b})
	})

	// --- game API ---
	s.r.Route("/api/games", func(r chi.Router) {
		r.Post("/", s.handleCreateGame)
		r.Get("/{gameId}", s.handleGetGame)
		r.Post("/{gameId}/turns", s.handleSubmitTurn)
	})

	// --- daily puzzle (needs the DB for results; optional in tests) ---
	if db != nil {
		s.mountDaily(s.r)
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// createGameReq allows tests and trainers to pin the puzzle words.
type createGameReq struct {
	StartWord  string `json:"startWord"`
	TargetWord string `json:"targetWord"`
}

// handleCreateGame creates a new game with a random start/target pair from
// the preloaded word list (or the pinned pair from the request body).
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	start, target := req.StartWord, req.TargetWord
	if start == "" || target == "" {
		p := words.RandomPair()
		start, target = p.Start, p.Target
	}

	st, err := s.resolver.CreateGame(r.Context(), s.ensurePlayerID(w, r), start, target)
	if err != nil {
		var rerr *game.RuleError
		if errors.As(err, &rerr) {
			writeRuleError(w, rerr)
			return
		}
		log.Error().Err(err).Msg("create game")
		http.Error(w, `{"error":"create_failed"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(st)
}

// handleGetGame returns the stored game document.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameId")
	st, err := s.store.Get(r.Context(), id)
	if err == store.ErrNotFound {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("load game")
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

// turnRes is the success envelope for a committed turn.
type turnRes struct {
	IsValid          bool        `json:"isValid"`
	UpdatedGameState *game.State `json:"updatedGameState"`
}

// turnErrRes is the rejection envelope.
type turnErrRes struct {
	IsValid      bool           `json:"isValid"`
	ErrorMessage turnErrMessage `json:"errorMessage"`
}

type turnErrMessage struct {
	ErrorCode     game.Code `json:"errorCode"`
	OffendingWord string    `json:"offendingWord,omitempty"`
	Message       string    `json:"message"`
}

// handleSubmitTurn resolves one claimed turn against the authoritative
// state and reports either the committed state or a structured rejection.
func (s *Server) handleSubmitTurn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameId")
	var in game.TurnInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeRuleError(w, game.ErrInvalidInput("body must be a JSON turn input"))
		return
	}

	st, err := s.resolver.ResolveTurn(r.Context(), id, in)
	if err != nil {
		var rerr *game.RuleError
		if errors.As(err, &rerr) {
			writeRuleError(w, rerr)
			return
		}
		log.Error().Err(err).Str("gameId", id).Msg("resolve turn")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}

	// Best effort: record a finished daily puzzle on the leaderboard.
	s.daily.recordIfDaily(r.Context(), st)

	_ = json.NewEncoder(w).Encode(turnRes{IsValid: true, UpdatedGameState: st})
}

// writeRuleError maps a structured rejection to an HTTP response.
// 404 for a missing game, 5xx for dependency faults, 400 for every
// rejected turn.
func writeRuleError(w http.ResponseWriter, rerr *game.RuleError) {
	status := http.StatusBadRequest
	switch rerr.Code {
	case game.CodeGameNotFound:
		status = http.StatusNotFound
	case game.CodeValidatorUnavailable:
		status = http.StatusServiceUnavailable
	case game.CodePersistenceError:
		status = http.StatusInternalServerError
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(turnErrRes{
		ErrorMessage: turnErrMessage{
			ErrorCode:     rerr.Code,
			OffendingWord: rerr.Word,
			Message:       rerr.Message,
		},
	})
}

// --------------------------- player cookie ---------------------------------

const playerCookieName = "morph_player"

// ensurePlayerID returns an existing player cookie or sets a new one.
// Used to give games and daily results a stable owner without accounts.
func (s *Server) ensurePlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("NODE_ENV") == "production",
		SameSite: func() http.SameSite {
			if os.Getenv("NODE_ENV") == "production" {
				return http.SameSiteNoneMode
			}
			return http.SameSiteLaxMode
		}(),
		Expires: time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
