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

// CreateUser inserts a user and returns its summary.
func (db *DB) CreateUser(ctx context.Context, displayName string) (*models.UserSummary, error) {
	defer db.observe("create_user", time.Now())

	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (display_name) VALUES (NULLIF($1, '')) RETURNING id`,
		displayName,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &models.UserSummary{ID: id, DisplayName: displayName}, nil
}

// GetUserSummary returns the public user record.
func (db *DB) GetUserSummary(ctx context.Context, userID int64) (*models.UserSummary, error) {
	defer db.observe("get_user_summary", time.Now())

	var s models.UserSummary
	err := db.pool.QueryRow(ctx, `
		SELECT u.id, COALESCE(u.display_name, ''),
			(SELECT COUNT(*) FROM user_movie_ratings r WHERE r.user_id = u.id),
			p.updated_at
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.id = $1`,
		userID,
	).Scan(&s.ID, &s.DisplayName, &s.NumRatings, &s.ProfileUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user summary: %w", err)
	}
	return &s, nil
}

// UserExists fails with models.ErrUserNotFound when the id has no row.
func (db *DB) UserExists(ctx context.Context, userID int64) error {
	defer db.observe("user_exists", time.Now())

	var exists bool
	if err := db.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return models.ErrUserNotFound
	}
	return nil
}

// ProfileVector returns the user's taste vector, or ErrProfileNotFound.
// Profiles are read without locks; a stale read of one inflight mutation
// is acceptable on the read path.
func (db *DB) ProfileVector(ctx context.Context, userID int64) ([]float32, error) {
	defer db.observe("get_profile_vector", time.Now())

	var emb pgvector.Vector
	err := db.pool.QueryRow(ctx, `SELECT embedding FROM user_profiles WHERE user_id = $1`, userID).Scan(&emb)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile vector: %w", err)
	}
	return emb.Slice(), nil
}

// ProfileStats returns the aggregate profile view: contributor count,
// liked count, and the stored vector's L2 norm.
func (db *DB) ProfileStats(ctx context.Context, userID int64) (*models.ProfileStats, error) {
	defer db.observe("get_profile_stats", time.Now())

	if err := db.UserExists(ctx, userID); err != nil {
		return nil, err
	}

	var (
		stats models.ProfileStats
		emb   pgvector.Vector
	)
	err := db.pool.QueryRow(ctx, `
		SELECT p.user_id, p.embedding, p.num_ratings, p.updated_at,
			(SELECT COUNT(*) FROM user_movie_ratings r
			 WHERE r.user_id = p.user_id AND r.status = 'watched' AND r.rating >= 4)
		FROM user_profiles p
		WHERE p.user_id = $1`,
		userID,
	).Scan(&stats.UserID, &emb, &stats.NumRatings, &stats.UpdatedAt, &stats.NumLiked)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile stats: %w", err)
	}

	stats.EmbeddingNorm = recommend.Norm(emb.Slice())
	return &stats, nil
}
