// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaStatements returns the schema DDL for the configured embedding
// dimension. Statements are idempotent; the ingestion pipeline owns bulk
// population of movies and movie_embeddings.
func schemaStatements(dim int) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,

		`CREATE TABLE IF NOT EXISTS movies (
			id                BIGINT PRIMARY KEY,
			title             TEXT NOT NULL,
			original_title    TEXT,
			tagline           TEXT,
			overview          TEXT,
			release_date      DATE,
			runtime           INTEGER,
			original_language TEXT,
			vote_average      DOUBLE PRECISION NOT NULL DEFAULT 0,
			vote_count        BIGINT NOT NULL DEFAULT 0,
			genres            TEXT,
			keywords          TEXT,
			poster_path       TEXT,
			backdrop_path     TEXT
		)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS movie_embeddings (
			movie_id        BIGINT PRIMARY KEY REFERENCES movies(id),
			embedding       vector(%d) NOT NULL,
			embedding_model TEXT,
			doc_hash        TEXT,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, dim),

		`CREATE TABLE IF NOT EXISTS users (
			id           BIGSERIAL PRIMARY KEY,
			display_name TEXT,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS user_movie_ratings (
			user_id    BIGINT NOT NULL REFERENCES users(id),
			movie_id   BIGINT NOT NULL REFERENCES movies(id),
			rating     SMALLINT CHECK (rating BETWEEN 0 AND 5),
			status     TEXT NOT NULL CHECK (status IN ('watched', 'unwatched')),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, movie_id)
		)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id     BIGINT PRIMARY KEY REFERENCES users(id),
			embedding   vector(%d) NOT NULL,
			num_ratings INTEGER NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, dim),

		`CREATE INDEX IF NOT EXISTS idx_movie_embeddings_hnsw
			ON movie_embeddings USING hnsw (embedding vector_cosine_ops)`,

		`CREATE INDEX IF NOT EXISTS idx_ratings_user_updated
			ON user_movie_ratings (user_id, updated_at DESC, movie_id)`,

		`CREATE INDEX IF NOT EXISTS idx_movies_popularity
			ON movies (vote_count DESC, vote_average DESC, id)`,

		`CREATE INDEX IF NOT EXISTS idx_movies_title_lower
			ON movies (LOWER(title))`,
	}
}

// Migrate applies the schema DDL.
func (db *DB) Migrate(ctx context.Context) error {
	defer db.observe("migrate", time.Now())
	for _, stmt := range schemaStatements(db.cfg.EmbeddingDim) {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	db.logger.Info().Msg("Schema applied")
	return nil
}
