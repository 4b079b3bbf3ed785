// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package recommend

import "fmt"

// Config holds recommendation engine tunables. Loaded once at startup and
// immutable thereafter.
type Config struct {
	// NeutralRatingWeight is the profile weight of a 3-star rating
	// (5 stars weigh 1.0, 4 stars 0.8).
	NeutralRatingWeight float64 `koanf:"neutral_rating_weight"`

	// DislikeWeight scales the dislike penalty subtracted from the like
	// score during reranking.
	DislikeWeight float64 `koanf:"dislike_weight"`

	// DislikeMinCount is the minimum number of recent dislikes before the
	// penalty applies at all.
	DislikeMinCount int `koanf:"dislike_min_count"`

	// ScoringContextLimit is how many recent ratings feed the scoring
	// context.
	ScoringContextLimit int `koanf:"scoring_context_limit"`

	// RerankFetchMultiplier expands the candidate fetch relative to the
	// requested page size.
	RerankFetchMultiplier int `koanf:"rerank_fetch_multiplier"`

	// MaxFetchCandidates caps the expanded candidate fetch.
	MaxFetchCandidates int `koanf:"max_fetch_candidates"`

	// MaxScoringGenres / MaxScoringKeywords cap the aggregated context
	// feature sets, keeping the highest-weighted tokens.
	MaxScoringGenres   int `koanf:"max_scoring_genres"`
	MaxScoringKeywords int `koanf:"max_scoring_keywords"`

	// SimCandidatesK is the index fetch floor for the similar-movies path.
	SimCandidatesK int `koanf:"sim_candidates_k"`

	// SimTopN is the default page size for similar-movies results.
	SimTopN int `koanf:"sim_top_n"`

	// SimRerankEnabled toggles feature reranking on the similar-movies
	// path; when off, results are ordered by raw distance.
	SimRerankEnabled bool `koanf:"sim_rerank_enabled"`

	// UnwatchedCooldownDays is how long an "unwatched" (skipped) movie
	// stays out of the popularity queue before re-entering.
	UnwatchedCooldownDays int `koanf:"unwatched_cooldown_days"`

	// VoteCountCap saturates the popularity-quality feature.
	VoteCountCap int64 `koanf:"vote_count_cap"`

	// EmbeddingDim is the deploy-time embedding dimension. Legacy deploys
	// used 768 or 1024; the two are never mixed.
	EmbeddingDim int `koanf:"embedding_dim"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		NeutralRatingWeight:   0.2,
		DislikeWeight:         0.35,
		DislikeMinCount:       3,
		ScoringContextLimit:   50,
		RerankFetchMultiplier: 5,
		MaxFetchCandidates:    500,
		MaxScoringGenres:      8,
		MaxScoringKeywords:    16,
		SimCandidatesK:        200,
		SimTopN:               20,
		SimRerankEnabled:      true,
		UnwatchedCooldownDays: 90,
		VoteCountCap:          100000,
		EmbeddingDim:          768,
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.NeutralRatingWeight < 0 || c.NeutralRatingWeight > 1 {
		return fmt.Errorf("neutral_rating_weight must be in [0,1], got %v", c.NeutralRatingWeight)
	}
	if c.DislikeWeight < 0 || c.DislikeWeight > 1 {
		return fmt.Errorf("dislike_weight must be in [0,1], got %v", c.DislikeWeight)
	}
	if c.DislikeMinCount < 0 {
		return fmt.Errorf("dislike_min_count must be >= 0, got %d", c.DislikeMinCount)
	}
	if c.ScoringContextLimit < 1 {
		return fmt.Errorf("scoring_context_limit must be >= 1, got %d", c.ScoringContextLimit)
	}
	if c.RerankFetchMultiplier < 1 {
		return fmt.Errorf("rerank_fetch_multiplier must be >= 1, got %d", c.RerankFetchMultiplier)
	}
	if c.MaxFetchCandidates < 1 {
		return fmt.Errorf("max_fetch_candidates must be >= 1, got %d", c.MaxFetchCandidates)
	}
	if c.MaxScoringGenres < 1 || c.MaxScoringKeywords < 1 {
		return fmt.Errorf("max_scoring_genres and max_scoring_keywords must be >= 1")
	}
	if c.SimCandidatesK < 1 || c.SimTopN < 1 {
		return fmt.Errorf("sim_candidates_k and sim_top_n must be >= 1")
	}
	if c.VoteCountCap < 1 {
		return fmt.Errorf("vote_count_cap must be >= 1, got %d", c.VoteCountCap)
	}
	if c.EmbeddingDim != 768 && c.EmbeddingDim != 1024 {
		return fmt.Errorf("embedding_dim must be 768 or 1024, got %d", c.EmbeddingDim)
	}
	return nil
}
