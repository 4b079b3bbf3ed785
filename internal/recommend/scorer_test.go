// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package recommend

import (
	"reflect"
	"testing"

	"github.com/tastekid/tastekid/internal/models"
)

func testCandidates() []models.Candidate {
	return []models.Candidate{
		{
			ID: 1, Title: "Heat", Genres: []string{"crime", "thriller"},
			Keywords: []string{"heist"}, Runtime: 170, Year: 1995,
			OriginalLanguage: "en", VoteCount: 50000,
			Embedding: []float32{1, 0}, Distance: 0.10,
		},
		{
			ID: 2, Title: "Paddington", Genres: []string{"family", "comedy"},
			Runtime: 95, Year: 2014, OriginalLanguage: "en", VoteCount: 20000,
			Embedding: []float32{0, 1}, Distance: 0.30,
		},
		{
			ID: 3, Title: "Stalker", Genres: []string{"drama"},
			Keywords: []string{"slow burn"}, Runtime: 162, Year: 1979,
			OriginalLanguage: "ru", VoteCount: 3000,
			Embedding: []float32{0.6, 0.8}, Distance: 0.50,
		},
	}
}

func TestRankDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	sc := ScoringContext{Like: FeatureBundle{
		Genres:   toSet([]string{"crime", "thriller"}),
		Runtime:  150,
		Year:     1999,
		Language: "en",
	}}

	a := Rank(testCandidates(), &sc, &cfg)
	b := Rank(testCandidates(), &sc, &cfg)
	if !reflect.DeepEqual(a, b) {
		t.Error("Rank() not deterministic for identical inputs")
	}
}

func TestRankScoreRangeAndOrdering(t *testing.T) {
	cfg := DefaultConfig()
	sc := ScoringContext{Like: FeatureBundle{
		Genres:   toSet([]string{"crime", "thriller"}),
		Runtime:  150,
		Year:     1999,
		Language: "en",
	}}

	ranked := Rank(testCandidates(), &sc, &cfg)
	if len(ranked) != 3 {
		t.Fatalf("len = %d, want 3", len(ranked))
	}
	for i, r := range ranked {
		if r.Score < 0 || r.Score > 1 {
			t.Errorf("ranked[%d].Score = %v, outside [0,1]", i, r.Score)
		}
		if i > 0 && ranked[i-1].Score < r.Score {
			t.Errorf("ranked[%d] out of order: %v < %v", i, ranked[i-1].Score, r.Score)
		}
	}

	// Min-max over a non-degenerate batch pins the extremes.
	if ranked[0].Score != 1.0 {
		t.Errorf("top score = %v, want 1.0", ranked[0].Score)
	}
	if ranked[len(ranked)-1].Score != 0.0 {
		t.Errorf("bottom score = %v, want 0.0", ranked[len(ranked)-1].Score)
	}
	// The crime/thriller candidate dominates on every feature axis.
	if ranked[0].ID != 1 {
		t.Errorf("top candidate = %d, want 1", ranked[0].ID)
	}
}

func TestRankTieBreaks(t *testing.T) {
	cfg := DefaultConfig()
	// Identical candidates differing only in id produce equal raw scores;
	// the degenerate batch falls back to absolute normalization and ties
	// resolve by ascending id.
	cands := []models.Candidate{
		{ID: 9, Genres: []string{"drama"}, VoteCount: 100, Embedding: []float32{1, 0}, Distance: 0.2},
		{ID: 4, Genres: []string{"drama"}, VoteCount: 100, Embedding: []float32{1, 0}, Distance: 0.2},
	}
	sc := ScoringContext{}

	ranked := Rank(cands, &sc, &cfg)
	if ranked[0].ID != 4 || ranked[1].ID != 9 {
		t.Errorf("tie order = [%d %d], want [4 9]", ranked[0].ID, ranked[1].ID)
	}
	if ranked[0].Score != ranked[1].Score {
		t.Errorf("tied candidates scored %v vs %v, want equal", ranked[0].Score, ranked[1].Score)
	}
	if ranked[0].Score <= 0 {
		t.Errorf("degenerate-batch score = %v, want > 0", ranked[0].Score)
	}
}

func TestRankDistanceTieBreak(t *testing.T) {
	cfg := DefaultConfig()
	// Equal scores, different distances: closer candidate wins.
	cands := []models.Candidate{
		{ID: 1, Genres: []string{"drama"}, VoteCount: 100, Embedding: []float32{1, 0}, Distance: 0.4},
		{ID: 2, Genres: []string{"drama"}, VoteCount: 100, Embedding: []float32{1, 0}, Distance: 0.4},
		{ID: 3, Genres: []string{"drama"}, VoteCount: 500, Embedding: []float32{1, 0}, Distance: 0.4},
	}
	sc := ScoringContext{}

	ranked := Rank(cands, &sc, &cfg)
	// Same raw score except id 3's popularity edge; after min-max id 3 is
	// the batch max and ids 1/2 tie at 0, ordered by vote count then id.
	if ranked[0].ID != 3 {
		t.Errorf("ranked[0].ID = %d, want 3", ranked[0].ID)
	}
	if ranked[1].ID != 1 || ranked[2].ID != 2 {
		t.Errorf("tail order = [%d %d], want [1 2]", ranked[1].ID, ranked[2].ID)
	}
}

func TestRankDislikePenalty(t *testing.T) {
	cfg := DefaultConfig()
	like := ScoringContext{Like: FeatureBundle{}}
	disliked := ScoringContext{
		Like:            FeatureBundle{},
		Dislike:         FeatureBundle{Genres: toSet([]string{"crime", "thriller"})},
		DislikeCount:    3,
		DislikeCentroid: []float32{1, 0},
	}

	baseline := Rank(testCandidates(), &like, &cfg)
	penalized := Rank(testCandidates(), &disliked, &cfg)

	scoreOf := func(ranked []models.ScoredCandidate, id int64) float64 {
		for _, r := range ranked {
			if r.ID == id {
				return r.Score
			}
		}
		t.Fatalf("candidate %d missing from ranking", id)
		return 0
	}

	// Candidate 1 sits on the dislike centroid and matches the disliked
	// genres; its score must drop once the penalty engages.
	if got, want := scoreOf(penalized, 1), scoreOf(baseline, 1); got >= want {
		t.Errorf("disliked candidate score = %v, want < %v", got, want)
	}
}

func TestRankDislikeBelowThreshold(t *testing.T) {
	cfg := DefaultConfig()
	sc := ScoringContext{
		Like:            FeatureBundle{},
		Dislike:         FeatureBundle{Genres: toSet([]string{"crime"})},
		DislikeCount:    cfg.DislikeMinCount - 1,
		DislikeCentroid: []float32{1, 0},
	}
	baseline := ScoringContext{Like: FeatureBundle{}}

	a := Rank(testCandidates(), &sc, &cfg)
	b := Rank(testCandidates(), &baseline, &cfg)
	if !reflect.DeepEqual(a, b) {
		t.Error("penalty applied below the dislike threshold")
	}
}

func TestRankEmpty(t *testing.T) {
	cfg := DefaultConfig()
	if got := Rank(nil, &ScoringContext{}, &cfg); got != nil {
		t.Errorf("Rank(nil) = %v, want nil", got)
	}
}

func TestRankByDistance(t *testing.T) {
	cands := []models.Candidate{
		{ID: 2, Distance: 0.5},
		{ID: 1, Distance: 0.1},
		{ID: 3, Distance: 0.5},
	}
	ranked := RankByDistance(cands)
	wantOrder := []int64{1, 2, 3}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Errorf("ranked[%d].ID = %d, want %d", i, ranked[i].ID, want)
		}
	}
	if ranked[0].Score != 0.9 {
		t.Errorf("Score = %v, want similarity 0.9", ranked[0].Score)
	}
}

func TestMatchScoreRange(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		cand models.Candidate
		sc   ScoringContext
	}{
		{
			"aligned candidate",
			models.Candidate{ID: 1, Genres: []string{"crime"}, Runtime: 150, Year: 1999,
				OriginalLanguage: "en", VoteCount: 50000, Embedding: []float32{1, 0}, Distance: 0.05},
			ScoringContext{Like: FeatureBundle{Genres: toSet([]string{"crime"}), Runtime: 150, Year: 1999, Language: "en"}},
		},
		{
			"distant candidate",
			models.Candidate{ID: 2, Genres: []string{"romance"}, Embedding: []float32{0, 1}, Distance: 0.95},
			ScoringContext{Like: FeatureBundle{Genres: toSet([]string{"horror"})}},
		},
		{
			"heavy dislike",
			models.Candidate{ID: 3, Genres: []string{"horror"}, Embedding: []float32{1, 0}, Distance: 0.5},
			ScoringContext{
				Like:            FeatureBundle{},
				Dislike:         FeatureBundle{Genres: toSet([]string{"horror"})},
				DislikeCount:    5,
				DislikeCentroid: []float32{1, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchScore(&tt.cand, &tt.sc, &cfg)
			if got < 0 || got > 100 {
				t.Errorf("MatchScore() = %d, outside [0,100]", got)
			}
		})
	}
}

func TestMatchScoreMonotone(t *testing.T) {
	cfg := DefaultConfig()
	sc := ScoringContext{Like: FeatureBundle{Genres: toSet([]string{"crime"})}}

	near := models.Candidate{ID: 1, Genres: []string{"crime"}, Embedding: []float32{1, 0}, Distance: 0.05}
	far := models.Candidate{ID: 2, Genres: []string{"romance"}, Embedding: []float32{0, 1}, Distance: 0.9}

	if n, f := MatchScore(&near, &sc, &cfg), MatchScore(&far, &sc, &cfg); n <= f {
		t.Errorf("MatchScore near = %d, far = %d, want near > far", n, f)
	}
}
