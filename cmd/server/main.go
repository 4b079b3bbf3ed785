// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

// Command server runs the Taste-Kid HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tastekid/tastekid/internal/api"
	"github.com/tastekid/tastekid/internal/config"
	"github.com/tastekid/tastekid/internal/database"
	"github.com/tastekid/tastekid/internal/logging"
	"github.com/tastekid/tastekid/internal/recommend"
)

const shutdownGrace = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Cannot load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, database.Config{
		URL:                 cfg.Database.URL,
		MaxConns:            cfg.Database.MaxConns,
		MinConns:            cfg.Database.MinConns,
		EmbeddingDim:        cfg.Recommend.EmbeddingDim,
		NeutralRatingWeight: cfg.Recommend.NeutralRatingWeight,
		Migrate:             cfg.Database.Migrate,
	})
	if err != nil {
		return fmt.Errorf("store init: %w", err)
	}
	defer db.Close()

	engine := recommend.NewEngine(db, &cfg.Recommend)
	handler := api.NewHandler(db, engine, cfg)
	router := api.NewRouter(handler, cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
