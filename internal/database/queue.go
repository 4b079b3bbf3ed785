// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tastekid/tastekid/internal/models"
)

// PopularityQueue pages movies by (vote_count desc, vote_average desc,
// id asc), excluding the user's seen set. An unwatched (skipped) row
// re-enters the queue once it is older than cooldownDays; cooldownDays <= 0
// keeps every seen row excluded. embeddedOnly drops movies without an
// embedding row.
func (db *DB) PopularityQueue(ctx context.Context, userID int64, limit, offset, cooldownDays int, embeddedOnly bool) ([]models.Candidate, error) {
	defer db.observe("popularity_queue", time.Now())

	rows, err := db.pool.Query(ctx, `
		SELECT `+knnColumns+`
		FROM movies m
		WHERE NOT EXISTS (
			SELECT 1 FROM user_movie_ratings r
			WHERE r.user_id = $1 AND r.movie_id = m.id
				AND (r.status = 'watched'
					OR $4 <= 0
					OR r.updated_at > now() - ($4 * interval '1 day'))
		)
		AND (NOT $5 OR EXISTS (
			SELECT 1 FROM movie_embeddings emb WHERE emb.movie_id = m.id
		))
		ORDER BY m.vote_count DESC, m.vote_average DESC, m.id ASC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset, cooldownDays, embeddedOnly)
	if err != nil {
		return nil, fmt.Errorf("popularity queue: %w", err)
	}
	defer rows.Close()

	cands := make([]models.Candidate, 0, limit)
	for rows.Next() {
		var (
			c           models.Candidate
			releaseDate *time.Time
			genres      string
			keywords    string
		)
		if err := rows.Scan(
			&c.ID, &c.Title, &releaseDate, &c.Runtime, &c.OriginalLanguage,
			&c.VoteAverage, &c.VoteCount, &genres, &keywords,
			&c.PosterPath, &c.BackdropPath,
		); err != nil {
			return nil, fmt.Errorf("scan queue row: %w", err)
		}
		finishCandidate(&c, releaseDate, genres, keywords)
		cands = append(cands, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("queue rows: %w", err)
	}
	return cands, nil
}
