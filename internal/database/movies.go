// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/tastekid/tastekid/internal/models"
)

// GetMovieDetail returns the full movie record.
func (db *DB) GetMovieDetail(ctx context.Context, movieID int64) (*models.MovieDetail, error) {
	defer db.observe("get_movie_detail", time.Now())

	var (
		d           models.MovieDetail
		releaseDate *time.Time
		genres      string
		keywords    string
	)
	err := db.pool.QueryRow(ctx, `
		SELECT id, title, COALESCE(original_title, ''), COALESCE(tagline, ''),
			COALESCE(overview, ''), release_date, COALESCE(runtime, 0),
			COALESCE(original_language, ''), vote_average, vote_count,
			COALESCE(genres, ''), COALESCE(keywords, ''),
			COALESCE(poster_path, ''), COALESCE(backdrop_path, '')
		FROM movies
		WHERE id = $1`,
		movieID,
	).Scan(
		&d.ID, &d.Title, &d.OriginalTitle, &d.Tagline, &d.Overview,
		&releaseDate, &d.Runtime, &d.OriginalLanguage, &d.VoteAverage,
		&d.VoteCount, &genres, &keywords, &d.PosterPath, &d.BackdropPath,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie detail: %w", err)
	}

	if releaseDate != nil {
		d.ReleaseDate = releaseDate.Format("2006-01-02")
	}
	d.Genres = parseTokens(genres)
	d.Keywords = parseTokens(keywords)
	return &d, nil
}

// LookupMovieByTitle resolves a title to a movie: case-insensitive exact
// match first, then prefix, then substring. Ties break by vote count, then
// newest release, then id.
func (db *DB) LookupMovieByTitle(ctx context.Context, title string) (*models.MovieRef, error) {
	defer db.observe("lookup_movie", time.Now())

	escaped := escapeLike(title)
	var ref models.MovieRef
	err := db.pool.QueryRow(ctx, `
		SELECT id, title
		FROM movies
		WHERE title ILIKE $1
		ORDER BY (LOWER(title) = LOWER($2)) DESC,
			(title ILIKE $3) DESC,
			vote_count DESC,
			release_date DESC NULLS LAST,
			id ASC
		LIMIT 1`,
		"%"+escaped+"%", title, escaped+"%",
	).Scan(&ref.ID, &ref.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup movie: %w", err)
	}
	return &ref, nil
}

// MovieEmbedding returns a movie's embedding. ErrMovieNotFound for unknown
// ids, ErrEmbeddingNotFound for known movies never indexed.
func (db *DB) MovieEmbedding(ctx context.Context, movieID int64) ([]float32, error) {
	defer db.observe("get_movie_embedding", time.Now())

	var emb *pgvector.Vector
	err := db.pool.QueryRow(ctx, `
		SELECT e.embedding
		FROM movies m
		LEFT JOIN movie_embeddings e ON e.movie_id = m.id
		WHERE m.id = $1`,
		movieID,
	).Scan(&emb)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie embedding: %w", err)
	}
	if emb == nil {
		return nil, models.ErrEmbeddingNotFound
	}
	return emb.Slice(), nil
}

// MovieCandidate returns a movie hydrated with scoring features and its
// embedding when indexed. Distance is left for the caller to fill.
func (db *DB) MovieCandidate(ctx context.Context, movieID int64) (*models.Candidate, error) {
	defer db.observe("get_movie_candidate", time.Now())

	var (
		c           models.Candidate
		releaseDate *time.Time
		genres      string
		keywords    string
		emb         *pgvector.Vector
	)
	err := db.pool.QueryRow(ctx, `
		SELECT `+knnColumns+`, e.embedding
		FROM movies m
		LEFT JOIN movie_embeddings e ON e.movie_id = m.id
		WHERE m.id = $1`,
		movieID,
	).Scan(
		&c.ID, &c.Title, &releaseDate, &c.Runtime, &c.OriginalLanguage,
		&c.VoteAverage, &c.VoteCount, &genres, &keywords,
		&c.PosterPath, &c.BackdropPath, &emb,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie candidate: %w", err)
	}

	finishCandidate(&c, releaseDate, genres, keywords)
	if emb != nil {
		c.Embedding = emb.Slice()
	}
	return &c, nil
}
