package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/morphwords/go-server/internal/dict"
	"github.com/morphwords/go-server/internal/game"
	"github.com/morphwords/go-server/internal/httpserver"
	"github.com/morphwords/go-server/internal/resolve"
	"github.com/morphwords/go-server/internal/store"
	"github.com/morphwords/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	db, err := openDB(getEnv("SQLITE_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	var st store.Store
	switch getEnv("STORE", "sqlite") {
	case "memory":
		st = store.NewMemoryStore()
	default:
		st = store.NewSQLiteStore(db)
	}

	var validator dict.Validator
	switch getEnv("DICT_MODE", "api") {
	case "local":
		validator = dict.NewLocal(words.IsAllowed)
	default:
		validator = dict.NewClient(
			getEnv("DICT_API_URL", "https://api.dictionaryapi.dev/api/v2/entries/en"),
			time.Duration(getEnvInt("DICT_TIMEOUT_MS", 3000))*time.Millisecond,
		)
	}

	resolver := resolve.New(st, validator, resolve.Config{
		Blocked:     words.Blocked,
		Policy:      game.Policy{MaxTurns: getEnvInt("MAX_TURNS", 0)},
		Budgets:     twistBudgets(),
		DictTimeout: time.Duration(getEnvInt("DICT_TIMEOUT_MS", 3000)+2000) * time.Millisecond,
	})

	srv := httpserver.New(resolver, st, db)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting morphwords server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// twistBudgets reads the per-game twist budgets from the environment.
// Letter twists are unlimited; the structural twists default to small
// finite budgets. -1 means unlimited.
func twistBudgets() map[game.TwistType]*int {
	b := map[game.TwistType]*int{
		game.TwistLetter: nil,
		game.TwistWord:   budget(getEnvInt("TWISTS_WORD", 3)),
		game.TwistSplit:  budget(getEnvInt("TWISTS_SPLIT", 2)),
		game.TwistMerge:  budget(getEnvInt("TWISTS_MERGE", 2)),
	}
	return b
}

func budget(n int) *int {
	if n < 0 {
		return nil
	}
	return &n
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
