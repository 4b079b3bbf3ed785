// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

// Package models defines the domain records exchanged between the store,
// the recommendation engine, and the HTTP layer. Dynamic payloads from the
// legacy system become explicit typed records here; genre and keyword
// columns are normalized to lowercase token sets on read.
package models

import "time"

// MovieRef is the minimal movie identity returned by title lookup.
type MovieRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// MovieDetail is the full movie record served by GET /v1/movies/{id}.
type MovieDetail struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	OriginalTitle    string   `json:"original_title,omitempty"`
	Tagline          string   `json:"tagline,omitempty"`
	Overview         string   `json:"overview,omitempty"`
	ReleaseDate      string   `json:"release_date,omitempty"`
	Runtime          int      `json:"runtime,omitempty"`
	OriginalLanguage string   `json:"original_language,omitempty"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int64    `json:"vote_count"`
	Genres           []string `json:"genres"`
	Keywords         []string `json:"keywords"`
	PosterPath       string   `json:"-"`
	BackdropPath     string   `json:"-"`
	PosterURL        string   `json:"poster_url,omitempty"`
	BackdropURL      string   `json:"backdrop_url,omitempty"`
}

// Candidate is a movie produced by candidate sourcing: hydrated metadata
// plus the cosine distance to the query vector. The embedding is carried
// for dislike-centroid scoring and never serialized.
type Candidate struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	ReleaseDate      string    `json:"release_date,omitempty"`
	Year             int       `json:"-"`
	Runtime          int       `json:"-"`
	OriginalLanguage string    `json:"-"`
	VoteAverage      float64   `json:"vote_average"`
	VoteCount        int64     `json:"vote_count"`
	Genres           []string  `json:"genres"`
	Keywords         []string  `json:"-"`
	PosterPath       string    `json:"-"`
	BackdropPath     string    `json:"-"`
	PosterURL        string    `json:"poster_url,omitempty"`
	BackdropURL      string    `json:"backdrop_url,omitempty"`
	Embedding        []float32 `json:"-"`
	Distance         float64   `json:"distance"`
}

// ScoredCandidate is a candidate after reranking. Score is the batch
// min-max normalized value in [0, 1].
type ScoredCandidate struct {
	Candidate
	Similarity float64 `json:"similarity"`
	Score      float64 `json:"score"`
}

// FeedItem is a feed or next-movie entry. Score is null on the popularity
// fallback path, where no profile exists to score against.
type FeedItem struct {
	Candidate
	Similarity *float64 `json:"similarity"`
	Score      *float64 `json:"score"`
	Source     string   `json:"source"`
}

// Feed item sources.
const (
	FeedSourceProfile    = "profile"
	FeedSourcePopularity = "popularity"
)

// ProfileStats is the aggregate served by GET /v1/users/{id}/profile.
type ProfileStats struct {
	UserID        int64     `json:"user_id"`
	NumRatings    int       `json:"num_ratings"`
	NumLiked      int       `json:"num_liked"`
	EmbeddingNorm float64   `json:"embedding_norm"`
	UpdatedAt     time.Time `json:"updated_at"`
}
