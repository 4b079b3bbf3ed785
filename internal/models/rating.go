// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package models

import "time"

// Rating statuses. Unwatched means "skip/hide": it excludes the movie from
// sourcing but never contributes to the taste profile.
const (
	StatusWatched   = "watched"
	StatusUnwatched = "unwatched"
)

// ValidStatus reports whether s is a recognized rating status.
func ValidStatus(s string) bool {
	return s == StatusWatched || s == StatusUnwatched
}

// RatingEntry is one row of a user's rating history joined with movie
// identity, as returned by GET /v1/users/{id}/ratings.
type RatingEntry struct {
	MovieID     int64     `json:"movie_id"`
	Title       string    `json:"title"`
	ReleaseDate string    `json:"release_date,omitempty"`
	PosterPath  string    `json:"-"`
	PosterURL   string    `json:"poster_url,omitempty"`
	Rating      *int      `json:"rating"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RatingFilter narrows ListRatings. Zero values mean "no constraint".
type RatingFilter struct {
	Status    string
	RatingMin *int
	RatingMax *int
	Since     time.Time
}

// ContextRating is a recent watched+rated row with the movie features the
// scoring context aggregates. Embedding is nil when the movie was never
// indexed.
type ContextRating struct {
	Rating           int
	Genres           []string
	Keywords         []string
	Runtime          int
	Year             int
	OriginalLanguage string
	Embedding        []float32
}

// UserSummary is the public user record.
type UserSummary struct {
	ID               int64      `json:"id"`
	DisplayName      string     `json:"display_name,omitempty"`
	NumRatings       int        `json:"num_ratings"`
	ProfileUpdatedAt *time.Time `json:"profile_updated_at"`
}
