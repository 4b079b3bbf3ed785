// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package api

import (
	"context"
	"net/http"

	"github.com/tastekid/tastekid/internal/config"
	"github.com/tastekid/tastekid/internal/models"
)

// Store is the slice of the database the handlers use directly. Kept as an
// interface so handler tests run against fakes.
type Store interface {
	Ping(ctx context.Context) error
	GetMovieDetail(ctx context.Context, movieID int64) (*models.MovieDetail, error)
	LookupMovieByTitle(ctx context.Context, title string) (*models.MovieRef, error)
	CreateUser(ctx context.Context, displayName string) (*models.UserSummary, error)
	GetUserSummary(ctx context.Context, userID int64) (*models.UserSummary, error)
	ProfileStats(ctx context.Context, userID int64) (*models.ProfileStats, error)
	RateMovie(ctx context.Context, userID, movieID int64, rating *int, status string) error
	ListRatings(ctx context.Context, userID int64, filter models.RatingFilter, limit, offset int) ([]models.RatingEntry, error)
	PopularityQueue(ctx context.Context, userID int64, limit, offset, cooldownDays int, embeddedOnly bool) ([]models.Candidate, error)
}

// Recommender is the engine surface behind the read operations.
type Recommender interface {
	Similar(ctx context.Context, movieID int64, k, offset int) ([]models.ScoredCandidate, bool, error)
	Recommendations(ctx context.Context, userID int64, k, offset int) ([]models.ScoredCandidate, bool, error)
	Feed(ctx context.Context, userID int64, k, offset int) ([]models.FeedItem, bool, error)
	Match(ctx context.Context, userID, movieID int64) (*int, error)
	Next(ctx context.Context, userID int64) (*models.FeedItem, error)
}

// Handler carries the dependencies of all /v1 endpoints.
type Handler struct {
	store Store
	rec   Recommender
	cfg   *config.Config
}

// NewHandler creates the endpoint handler set.
func NewHandler(store Store, rec Recommender, cfg *config.Config) *Handler {
	return &Handler{store: store, rec: rec, cfg: cfg}
}

// Health reports liveness, including store connectivity.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if err := h.store.Ping(r.Context()); err != nil {
		rw.DomainError(err)
		return
	}
	rw.Success(map[string]string{"status": "ok"})
}
