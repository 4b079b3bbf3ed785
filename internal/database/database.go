// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

// Package database implements the store over Postgres with pgvector: typed,
// parameterized access to movies, movie_embeddings, users,
// user_movie_ratings, and user_profiles, plus the HNSW-backed cosine KNN
// the candidate sourcer draws from. It satisfies recommend.DataProvider.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
	"github.com/rs/zerolog"

	"github.com/tastekid/tastekid/internal/logging"
	"github.com/tastekid/tastekid/internal/metrics"
)

// Config holds store configuration.
type Config struct {
	// URL is the Postgres connection string.
	URL string

	// MaxConns / MinConns bound the connection pool.
	MaxConns int32
	MinConns int32

	// EmbeddingDim is the vector(D) dimension; 768 or 1024, never mixed.
	EmbeddingDim int

	// NeutralRatingWeight is the 3-star profile weight, forwarded to the
	// profile rebuild inside the rating transaction.
	NeutralRatingWeight float64

	// Migrate runs the schema DDL at startup when true.
	Migrate bool
}

// DB wraps the connection pool and the vector-index circuit breaker.
type DB struct {
	pool    *pgxpool.Pool
	cfg     Config
	logger  zerolog.Logger
	breaker *indexBreaker
}

// New connects to Postgres, registers the pgvector codec on every
// connection, and optionally applies the schema.
func New(ctx context.Context, cfg Config) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{
		pool:    pool,
		cfg:     cfg,
		logger:  logging.With().Str("component", "store").Logger(),
		breaker: newIndexBreaker(),
	}

	if cfg.Migrate {
		if err := db.Migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	db.logger.Info().
		Int32("max_conns", poolCfg.MaxConns).
		Int("embedding_dim", cfg.EmbeddingDim).
		Msg("Store connected")
	return db, nil
}

// Close releases the connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Ping checks connectivity; used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// observe records a store query duration. Use as:
//
//	defer db.observe("get_movie", time.Now())
func (db *DB) observe(op string, start time.Time) {
	metrics.ObserveStoreQuery(op, time.Since(start))
}
