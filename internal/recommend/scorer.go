// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package recommend

import (
	"math"
	"sort"

	"github.com/tastekid/tastekid/internal/models"
)

// rawScore computes the unnormalized feature-weighted score of one
// candidate against a feature side. sim is the cosine similarity of the
// candidate to that side's vector (query vector for likes, dislike
// centroid for dislikes), already clamped to [0,1].
func rawScore(cand *FeatureBundle, voteCount int64, sim float64, context *FeatureBundle, voteCap int64) float64 {
	score := weightSimilarity * sim
	score += weightGenreOverlap * jaccard(cand.Genres, context.Genres)
	score += weightStyleOverlap * jaccard(cand.Style, context.Style)
	score += weightRuntime * runtimeProximity(cand.Runtime, context.Runtime)
	score += weightYear * yearProximity(cand.Year, context.Year)
	if cand.Language != "" && cand.Language == context.Language {
		score += weightLanguage
	}
	score += weightPopularity * popularityQuality(voteCount, voteCap)
	if tonalMismatch(cand.Genres, context.Genres) {
		score -= weightTonalMismatch
	}
	return score
}

// minMaxNormalize maps raw scores onto [0,1] within the batch. When the
// batch is degenerate (one candidate, or all raws equal) it falls back to
// dividing by the maximum attainable raw score so a lone candidate still
// reports a meaningful value.
func minMaxNormalize(raws []float64) []float64 {
	out := make([]float64, len(raws))
	if len(raws) == 0 {
		return out
	}
	minRaw, maxRaw := raws[0], raws[0]
	for _, r := range raws[1:] {
		minRaw = math.Min(minRaw, r)
		maxRaw = math.Max(maxRaw, r)
	}
	if maxRaw-minRaw < 1e-12 {
		for i, r := range raws {
			out[i] = clamp01(r / maxRawScore)
		}
		return out
	}
	for i, r := range raws {
		out[i] = (r - minRaw) / (maxRaw - minRaw)
	}
	return out
}

// Rank scores candidates against the user or anchor context and returns
// them ordered. Deterministic: identical inputs produce identical ordering
// and scores. Ties break by ascending distance, then descending vote count,
// then ascending id.
func Rank(cands []models.Candidate, sc *ScoringContext, cfg *Config) []models.ScoredCandidate {
	if len(cands) == 0 {
		return nil
	}

	likeRaws := make([]float64, len(cands))
	for i := range cands {
		feats := candidateFeatures(&cands[i])
		sim := clamp01(1 - cands[i].Distance)
		likeRaws[i] = rawScore(&feats, cands[i].VoteCount, sim, &sc.Like, cfg.VoteCountCap)
	}
	scores := minMaxNormalize(likeRaws)

	if sc.DislikeCount >= cfg.DislikeMinCount {
		dislikeRaws := make([]float64, len(cands))
		for i := range cands {
			feats := candidateFeatures(&cands[i])
			sim := clamp01(CosineSimilarity(cands[i].Embedding, sc.DislikeCentroid))
			dislikeRaws[i] = rawScore(&feats, cands[i].VoteCount, sim, &sc.Dislike, cfg.VoteCountCap)
		}
		dislikeScores := minMaxNormalize(dislikeRaws)
		for i := range scores {
			scores[i] = clamp01(scores[i] - cfg.DislikeWeight*dislikeScores[i])
		}
	}

	out := make([]models.ScoredCandidate, len(cands))
	for i := range cands {
		out[i] = models.ScoredCandidate{
			Candidate:  cands[i],
			Similarity: clamp01(1 - cands[i].Distance),
			Score:      scores[i],
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		if out[i].VoteCount != out[j].VoteCount {
			return out[i].VoteCount > out[j].VoteCount
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RankByDistance is the rerank-disabled path: candidates keep the index
// order and report their similarity as the score.
func RankByDistance(cands []models.Candidate) []models.ScoredCandidate {
	out := make([]models.ScoredCandidate, len(cands))
	for i := range cands {
		sim := clamp01(1 - cands[i].Distance)
		out[i] = models.ScoredCandidate{Candidate: cands[i], Similarity: sim, Score: sim}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// MatchScore projects a single user-vs-movie comparison onto 0..100. It
// reuses the reranker's feature function with the degenerate-batch
// normalization, so a match is consistent with recommendation scores.
func MatchScore(cand *models.Candidate, sc *ScoringContext, cfg *Config) int {
	feats := candidateFeatures(cand)
	sim := clamp01(1 - cand.Distance)
	score := clamp01(rawScore(&feats, cand.VoteCount, sim, &sc.Like, cfg.VoteCountCap) / maxRawScore)

	if sc.DislikeCount >= cfg.DislikeMinCount {
		dSim := clamp01(CosineSimilarity(cand.Embedding, sc.DislikeCentroid))
		dScore := clamp01(rawScore(&feats, cand.VoteCount, dSim, &sc.Dislike, cfg.VoteCountCap) / maxRawScore)
		score = clamp01(score - cfg.DislikeWeight*dScore)
	}

	m := int(math.Round(score * 100))
	if m < 0 {
		m = 0
	}
	if m > 100 {
		m = 100
	}
	return m
}
