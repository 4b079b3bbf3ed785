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
	"github.com/tastekid/tastekid/internal/recommend"
)

// RateMovie upserts a rating and rebuilds the user's taste profile inside
// one transaction, so the profile always reflects the rating history once
// the call returns. Concurrent mutations for the same user serialize on a
// row-level lock of the users row. Never retried internally; an identical
// PUT is idempotent.
func (db *DB) RateMovie(ctx context.Context, userID, movieID int64, rating *int, status string) error {
	defer db.observe("rate_movie", time.Now())

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rating transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Lock serializes concurrent PUTs per user; last commit wins.
	var lockedID int64
	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&lockedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("lock user row: %w", err)
	}

	var movieExists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, movieID).Scan(&movieExists); err != nil {
		return fmt.Errorf("check movie: %w", err)
	}
	if !movieExists {
		return models.ErrMovieNotFound
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO user_movie_ratings (user_id, movie_id, rating, status, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			status = EXCLUDED.status,
			updated_at = now()`,
		userID, movieID, rating, status,
	); err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}

	if err := db.rebuildProfile(ctx, tx, userID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit rating transaction: %w", err)
	}
	return nil
}

// rebuildProfile recomputes the taste vector from contributing ratings
// (status=watched, rating >= 3) within the caller's transaction, upserting
// or deleting the profile row.
func (db *DB) rebuildProfile(ctx context.Context, tx pgx.Tx, userID int64) error {
	rows, err := tx.Query(ctx, `
		SELECT r.rating, e.embedding
		FROM user_movie_ratings r
		LEFT JOIN movie_embeddings e ON e.movie_id = r.movie_id
		WHERE r.user_id = $1 AND r.status = 'watched' AND r.rating >= 3
		ORDER BY r.movie_id`,
		userID)
	if err != nil {
		return fmt.Errorf("load contributors: %w", err)
	}
	defer rows.Close()

	var inputs []recommend.ProfileInput
	for rows.Next() {
		var (
			rating int
			emb    *pgvector.Vector
		)
		if err := rows.Scan(&rating, &emb); err != nil {
			return fmt.Errorf("scan contributor: %w", err)
		}
		in := recommend.ProfileInput{Rating: rating}
		if emb != nil {
			in.Embedding = emb.Slice()
		}
		inputs = append(inputs, in)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("contributor rows: %w", err)
	}

	profile := recommend.BuildProfile(inputs, db.cfg.NeutralRatingWeight)
	if profile == nil {
		if _, err := tx.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		return nil
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO user_profiles (user_id, embedding, num_ratings, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			num_ratings = EXCLUDED.num_ratings,
			updated_at = now()`,
		userID, pgvector.NewVector(profile.Vector), profile.NumRatings,
	); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// ListRatings pages a user's rating history, newest first. The caller
// passes limit = k+1 and trims the extra row for has_more.
func (db *DB) ListRatings(ctx context.Context, userID int64, filter models.RatingFilter, limit, offset int) ([]models.RatingEntry, error) {
	defer db.observe("list_ratings", time.Now())

	if err := db.UserExists(ctx, userID); err != nil {
		return nil, err
	}

	query := `
		SELECT r.movie_id, m.title, m.release_date, COALESCE(m.poster_path, ''),
			r.rating, r.status, r.updated_at
		FROM user_movie_ratings r
		JOIN movies m ON m.id = r.movie_id
		WHERE r.user_id = $1`
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.RatingMin != nil {
		args = append(args, *filter.RatingMin)
		query += fmt.Sprintf(" AND r.rating >= $%d", len(args))
	}
	if filter.RatingMax != nil {
		args = append(args, *filter.RatingMax)
		query += fmt.Sprintf(" AND r.rating <= $%d", len(args))
	}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since)
		query += fmt.Sprintf(" AND r.updated_at >= $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY r.updated_at DESC, r.movie_id ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	entries := make([]models.RatingEntry, 0, limit)
	for rows.Next() {
		var (
			e           models.RatingEntry
			releaseDate *time.Time
		)
		if err := rows.Scan(&e.MovieID, &e.Title, &releaseDate, &e.PosterPath, &e.Rating, &e.Status, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		if releaseDate != nil {
			e.ReleaseDate = releaseDate.Format("2006-01-02")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rating rows: %w", err)
	}
	return entries, nil
}

// SeenMovieIDs returns every movie id with a rating row for the user,
// watched or unwatched. Used as the sourcing exclusion set.
func (db *DB) SeenMovieIDs(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	defer db.observe("seen_movie_ids", time.Now())

	rows, err := db.pool.Query(ctx, `SELECT movie_id FROM user_movie_ratings WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("seen movie ids: %w", err)
	}
	defer rows.Close()

	seen := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan seen id: %w", err)
		}
		seen[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("seen rows: %w", err)
	}
	return seen, nil
}

// RecentRatings returns the most recent watched+rated rows with the movie
// features the scoring context aggregates, newest first.
func (db *DB) RecentRatings(ctx context.Context, userID int64, limit int) ([]models.ContextRating, error) {
	defer db.observe("recent_ratings", time.Now())

	rows, err := db.pool.Query(ctx, `
		SELECT r.rating, COALESCE(m.genres, ''), COALESCE(m.keywords, ''),
			COALESCE(m.runtime, 0), m.release_date,
			COALESCE(m.original_language, ''), e.embedding
		FROM user_movie_ratings r
		JOIN movies m ON m.id = r.movie_id
		LEFT JOIN movie_embeddings e ON e.movie_id = r.movie_id
		WHERE r.user_id = $1 AND r.status = 'watched' AND r.rating IS NOT NULL
		ORDER BY r.updated_at DESC, r.movie_id ASC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent ratings: %w", err)
	}
	defer rows.Close()

	var out []models.ContextRating
	for rows.Next() {
		var (
			cr          models.ContextRating
			genres      string
			keywords    string
			releaseDate *time.Time
			emb         *pgvector.Vector
		)
		if err := rows.Scan(&cr.Rating, &genres, &keywords, &cr.Runtime, &releaseDate, &cr.OriginalLanguage, &emb); err != nil {
			return nil, fmt.Errorf("scan recent rating: %w", err)
		}
		cr.Genres = parseTokens(genres)
		cr.Keywords = parseTokens(keywords)
		if releaseDate != nil {
			cr.Year = releaseDate.Year()
		}
		if emb != nil {
			cr.Embedding = emb.Slice()
		}
		out = append(out, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent rating rows: %w", err)
	}
	return out, nil
}
