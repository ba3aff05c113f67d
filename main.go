// main.go
//
// Entry point for the WordScramble server.
//   - Loads .env (optional) and the typed config.
//   - Sets up zerolog (console plus optional rotating file).
//   - Loads the word lists, opens + migrates SQLite.
//   - Serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
//   - Sweeps idle games in the background.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/database"
	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/logging"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	closer, err := logging.Setup(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		log.Warn().Err(err).Str("level", cfg.LogLevel).Msg("bad log level, using info")
	}
	if closer != nil {
		defer closer.Close()
	}

	if err := words.Init(cfg.Language); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	start, dict := words.Stats()
	log.Info().Int("start", start).Int("dictionary", dict).Str("language", cfg.Language).Msg("word lists loaded")

	db, err := database.OpenMigrated(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()

	lists := &words.Lists{Start: words.StartWords(), Dictionary: words.Dictionary()}
	app := httpserver.New(cfg, store.NewMemoryStore(), db, lists)
	srv := app.HTTPServer(":" + cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.RunJanitor(ctx, cfg.GameSweepEvery)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("starting wordscramble server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
