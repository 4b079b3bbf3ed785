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

	"github.com/pgvector/pgvector-go"
	"github.com/sony/gobreaker/v2"

	"github.com/tastekid/tastekid/internal/logging"
	"github.com/tastekid/tastekid/internal/metrics"
	"github.com/tastekid/tastekid/internal/models"
)

// indexBreaker protects the vector index from hammering a failing backend.
// Open circuit surfaces models.ErrIndexUnavailable to callers.
type indexBreaker struct {
	cb *gobreaker.CircuitBreaker[[]models.Candidate]
}

func newIndexBreaker() *indexBreaker {
	settings := gobreaker.Settings{
		Name:        "vector-index",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetIndexBreakerState(breakerStateValue(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Vector index breaker state change")
		},
	}
	return &indexBreaker{cb: gobreaker.NewCircuitBreaker[[]models.Candidate](settings)}
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// knnColumns hydrates candidates in one round trip: movie features plus the
// embedding (needed downstream for dislike-centroid scoring).
const knnColumns = `m.id, m.title, m.release_date, COALESCE(m.runtime, 0),
	COALESCE(m.original_language, ''), m.vote_average, m.vote_count,
	COALESCE(m.genres, ''), COALESCE(m.keywords, ''),
	COALESCE(m.poster_path, ''), COALESCE(m.backdrop_path, '')`

// KNN returns up to k candidates ordered by ascending cosine distance to
// the query vector. Rows are hydrated; exclusion sets are applied by the
// caller (over-fetch and trim). Fewer than k rows is not an error.
func (db *DB) KNN(ctx context.Context, query []float32, k int) ([]models.Candidate, error) {
	defer db.observe("knn", time.Now())

	cands, err := db.breaker.cb.Execute(func() ([]models.Candidate, error) {
		return db.knnQuery(ctx, query, k)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open", models.ErrIndexUnavailable)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", models.ErrIndexUnavailable, err)
	}
	return cands, nil
}

func (db *DB) knnQuery(ctx context.Context, query []float32, k int) ([]models.Candidate, error) {
	vec := pgvector.NewVector(query)
	rows, err := db.pool.Query(ctx, `
		SELECT `+knnColumns+`,
			e.embedding,
			(e.embedding <=> $1)::float8 AS distance
		FROM movie_embeddings e
		JOIN movies m ON m.id = e.movie_id
		ORDER BY e.embedding <=> $1, m.id
		LIMIT $2`,
		vec, k)
	if err != nil {
		return nil, fmt.Errorf("knn query: %w", err)
	}
	defer rows.Close()

	var cands []models.Candidate
	for rows.Next() {
		var (
			c           models.Candidate
			releaseDate *time.Time
			genres      string
			keywords    string
			emb         pgvector.Vector
		)
		if err := rows.Scan(
			&c.ID, &c.Title, &releaseDate, &c.Runtime, &c.OriginalLanguage,
			&c.VoteAverage, &c.VoteCount, &genres, &keywords,
			&c.PosterPath, &c.BackdropPath, &emb, &c.Distance,
		); err != nil {
			return nil, fmt.Errorf("knn scan: %w", err)
		}
		finishCandidate(&c, releaseDate, genres, keywords)
		c.Embedding = emb.Slice()
		cands = append(cands, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("knn rows: %w", err)
	}
	return cands, nil
}

// finishCandidate derives the parsed token sets and date fields.
func finishCandidate(c *models.Candidate, releaseDate *time.Time, genres, keywords string) {
	if releaseDate != nil {
		c.ReleaseDate = releaseDate.Format("2006-01-02")
		c.Year = releaseDate.Year()
	}
	c.Genres = parseTokens(genres)
	c.Keywords = parseTokens(keywords)
}
