// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

// Package recommend implements the personalization and similarity engine:
// taste-vector maintenance from ratings, candidate sourcing over the vector
// index, per-user scoring contexts, and the deterministic feature-weighted
// reranker behind the similar, recommendations, feed, match, and next
// operations.
package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tastekid/tastekid/internal/logging"
	"github.com/tastekid/tastekid/internal/models"
)

// DataProvider supplies the engine with store and vector-index access.
// Implemented by *database.DB; kept as an interface so engine tests run
// against fakes.
type DataProvider interface {
	// MovieEmbedding returns a movie's embedding. Fails with
	// models.ErrMovieNotFound for unknown ids and
	// models.ErrEmbeddingNotFound for unindexed movies.
	MovieEmbedding(ctx context.Context, movieID int64) ([]float32, error)

	// MovieCandidate returns a movie hydrated with scoring features and
	// embedding (embedding may be empty when unindexed). Distance is left
	// zero; callers fill it against their query vector.
	MovieCandidate(ctx context.Context, movieID int64) (*models.Candidate, error)

	// ProfileVector returns the user's taste vector, or
	// models.ErrProfileNotFound.
	ProfileVector(ctx context.Context, userID int64) ([]float32, error)

	// UserExists fails with models.ErrUserNotFound for unknown users.
	UserExists(ctx context.Context, userID int64) error

	// KNN returns up to k candidates by ascending cosine distance to the
	// query, hydrated with movie features and embeddings.
	KNN(ctx context.Context, query []float32, k int) ([]models.Candidate, error)

	// SeenMovieIDs returns the ids of every movie with a rating row for
	// the user, watched or unwatched.
	SeenMovieIDs(ctx context.Context, userID int64) (map[int64]struct{}, error)

	// RecentRatings returns the user's most recent watched+rated rows with
	// scoring features, newest first.
	RecentRatings(ctx context.Context, userID int64, limit int) ([]models.ContextRating, error)

	// PopularityQueue pages movies by (vote_count desc, vote_average desc,
	// id asc), excluding the user's seen set. Unwatched rows re-enter
	// after cooldownDays; cooldownDays <= 0 excludes them indefinitely.
	// embeddedOnly restricts the page to movies with an embedding.
	PopularityQueue(ctx context.Context, userID int64, limit, offset, cooldownDays int, embeddedOnly bool) ([]models.Candidate, error)
}

// Engine composes sourcing, context building, and reranking into the five
// read operations of the service.
type Engine struct {
	provider DataProvider
	cfg      *Config
	logger   zerolog.Logger
}

// NewEngine creates an Engine. cfg must be validated by the caller.
func NewEngine(provider DataProvider, cfg *Config) *Engine {
	return &Engine{
		provider: provider,
		cfg:      cfg,
		logger:   logging.With().Str("component", "recommend").Logger(),
	}
}

// Similar returns movies near the anchor, reranked against the anchor's
// own features. Pagination is offset-based over the reranked pool; hasMore
// reports whether another page exists.
func (e *Engine) Similar(ctx context.Context, movieID int64, k, offset int) ([]models.ScoredCandidate, bool, error) {
	emb, err := withRetry(ctx, func(ctx context.Context) ([]float32, error) {
		return e.provider.MovieEmbedding(ctx, movieID)
	})
	if err != nil {
		return nil, false, err
	}

	anchor, err := e.provider.MovieCandidate(ctx, movieID)
	if err != nil {
		return nil, false, err
	}

	cands, err := e.source(ctx, emb, k, sourceOptions{
		anchorID:   movieID,
		fetchFloor: e.cfg.SimCandidatesK,
	})
	if err != nil {
		return nil, false, err
	}

	var ranked []models.ScoredCandidate
	if e.cfg.SimRerankEnabled {
		anchorCtx := ScoringContext{Like: candidateFeatures(anchor)}
		ranked = Rank(cands, &anchorCtx, e.cfg)
	} else {
		ranked = RankByDistance(cands)
	}
	page, hasMore := slicePage(ranked, k, offset)
	return page, hasMore, nil
}

// Recommendations returns the reranked personal feed for a user with a
// profile. Fails with models.ErrProfileNotFound when no profile exists and
// models.ErrUserNotFound for unknown users.
func (e *Engine) Recommendations(ctx context.Context, userID int64, k, offset int) ([]models.ScoredCandidate, bool, error) {
	if err := e.provider.UserExists(ctx, userID); err != nil {
		return nil, false, err
	}
	profile, err := withRetry(ctx, func(ctx context.Context) ([]float32, error) {
		return e.provider.ProfileVector(ctx, userID)
	})
	if err != nil {
		return nil, false, err
	}

	// Seen-set and context loads are independent sub-queries.
	var (
		seen   map[int64]struct{}
		recent []models.ContextRating
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		seen, err = withRetry(gctx, func(ctx context.Context) (map[int64]struct{}, error) {
			return e.provider.SeenMovieIDs(ctx, userID)
		})
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = withRetry(gctx, func(ctx context.Context) ([]models.ContextRating, error) {
			return e.provider.RecentRatings(ctx, userID, e.cfg.ScoringContextLimit)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	cands, err := e.source(ctx, profile, k, sourceOptions{exclude: seen})
	if err != nil {
		return nil, false, err
	}

	sc := BuildScoringContext(recent, e.cfg)
	ranked := Rank(cands, &sc, e.cfg)
	page, hasMore := slicePage(ranked, k, offset)
	return page, hasMore, nil
}

// Feed returns the recommendation stream when the user has a profile and
// falls back to the popularity queue (score null) when they do not.
func (e *Engine) Feed(ctx context.Context, userID int64, k, offset int) ([]models.FeedItem, bool, error) {
	ranked, hasMore, err := e.Recommendations(ctx, userID, k, offset)
	switch {
	case err == nil:
		items := make([]models.FeedItem, len(ranked))
		for i := range ranked {
			sim, score := ranked[i].Similarity, ranked[i].Score
			items[i] = models.FeedItem{
				Candidate:  ranked[i].Candidate,
				Similarity: &sim,
				Score:      &score,
				Source:     models.FeedSourceProfile,
			}
		}
		return items, hasMore, nil
	case errors.Is(err, models.ErrProfileNotFound):
		return e.popularityFeed(ctx, userID, k, offset)
	default:
		return nil, false, err
	}
}

// popularityFeed is the cold-start path: popularity queue minus seen, no
// scores.
func (e *Engine) popularityFeed(ctx context.Context, userID int64, k, offset int) ([]models.FeedItem, bool, error) {
	e.logger.Debug().Int64("user_id", userID).Msg("No profile, serving popularity feed")
	cands, err := withRetry(ctx, func(ctx context.Context) ([]models.Candidate, error) {
		return e.provider.PopularityQueue(ctx, userID, k+1, offset, 0, false)
	})
	if err != nil {
		return nil, false, err
	}
	hasMore := len(cands) > k
	if hasMore {
		cands = cands[:k]
	}
	items := make([]models.FeedItem, len(cands))
	for i := range cands {
		items[i] = models.FeedItem{Candidate: cands[i], Source: models.FeedSourcePopularity}
	}
	return items, hasMore, nil
}

// Match scores one user-vs-movie pairing as an integer 0..100. Soft cases
// (no profile, movie not indexed) return nil rather than an error; unknown
// user or movie ids still fail.
func (e *Engine) Match(ctx context.Context, userID, movieID int64) (*int, error) {
	if err := e.provider.UserExists(ctx, userID); err != nil {
		return nil, err
	}
	cand, err := e.provider.MovieCandidate(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if len(cand.Embedding) == 0 {
		return nil, nil
	}
	profile, err := withRetry(ctx, func(ctx context.Context) ([]float32, error) {
		return e.provider.ProfileVector(ctx, userID)
	})
	if errors.Is(err, models.ErrProfileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	recent, err := withRetry(ctx, func(ctx context.Context) ([]models.ContextRating, error) {
		return e.provider.RecentRatings(ctx, userID, e.cfg.ScoringContextLimit)
	})
	if err != nil {
		return nil, err
	}

	cand.Distance = 1 - CosineSimilarity(profile, cand.Embedding)
	sc := BuildScoringContext(recent, e.cfg)
	score := MatchScore(cand, &sc, e.cfg)
	return &score, nil
}

// Next returns the single next movie to offer: the nearest unseen profile
// candidate when a profile exists, otherwise the top of the popularity
// queue. When a profile exists the result always carries an embedding.
func (e *Engine) Next(ctx context.Context, userID int64) (*models.FeedItem, error) {
	if err := e.provider.UserExists(ctx, userID); err != nil {
		return nil, err
	}

	ranked, _, err := e.Recommendations(ctx, userID, 1, 0)
	switch {
	case err == nil && len(ranked) > 0:
		sim, score := ranked[0].Similarity, ranked[0].Score
		return &models.FeedItem{
			Candidate:  ranked[0].Candidate,
			Similarity: &sim,
			Score:      &score,
			Source:     models.FeedSourceProfile,
		}, nil
	case err != nil && !errors.Is(err, models.ErrProfileNotFound):
		return nil, err
	}

	// err is nil here only when the profile path ran but came up empty;
	// a profiled user is never offered an unindexed movie.
	embeddedOnly := err == nil
	cands, err := withRetry(ctx, func(ctx context.Context) ([]models.Candidate, error) {
		return e.provider.PopularityQueue(ctx, userID, 1, 0, e.cfg.UnwatchedCooldownDays, embeddedOnly)
	})
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("queue exhausted: %w", models.ErrMovieNotFound)
	}
	return &models.FeedItem{Candidate: cands[0], Source: models.FeedSourcePopularity}, nil
}

// slicePage applies offset pagination over the full ranked pool.
func slicePage(ranked []models.ScoredCandidate, k, offset int) ([]models.ScoredCandidate, bool) {
	if offset >= len(ranked) {
		return nil, false
	}
	end := offset + k
	if end >= len(ranked) {
		return ranked[offset:], false
	}
	return ranked[offset:end], true
}

// withRetry retries fn once on transient failures. Domain sentinels and
// context errors are never retried; mutations never pass through here.
func withRetry[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err == nil || !isTransient(err) {
		return v, err
	}
	logging.Ctx(ctx).Warn().Err(err).Msg("Transient read failure, retrying once")
	return fn(ctx)
}

// isTransient reports whether err is worth one retry.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	for _, sentinel := range []error{
		models.ErrMovieNotFound,
		models.ErrUserNotFound,
		models.ErrEmbeddingNotFound,
		models.ErrProfileNotFound,
	} {
		if errors.Is(err, sentinel) {
			return false
		}
	}
	return true
}
