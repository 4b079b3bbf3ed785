// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package recommend

import (
	"sort"

	"github.com/tastekid/tastekid/internal/models"
)

// ScoringContext is the per-user signal bundle the reranker scores
// against: the aggregate features of recent likes, and (when present)
// the aggregate features plus embedding centroid of recent dislikes.
type ScoringContext struct {
	Like         FeatureBundle
	Dislike      FeatureBundle
	DislikeCount int

	// DislikeCentroid is the unit-normalized mean of dislike embeddings;
	// nil when no recent dislike had an embedding.
	DislikeCentroid []float32
}

// likeContextWeight weighs a liked rating's feature contribution; mirrors
// the profile weights so a 5-star row dominates a 4-star one.
func likeContextWeight(rating int) float64 {
	if rating >= 5 {
		return 1.0
	}
	return 0.8
}

// dislikeContextWeight weighs a disliked rating's feature contribution;
// bottom-of-the-scale ratings count double a mere 2.
func dislikeContextWeight(rating int) float64 {
	if rating <= 1 {
		return 1.0
	}
	return 0.5
}

// BuildScoringContext aggregates the most recent watched+rated rows into
// like and dislike feature bundles. Likes are ratings >= 4, dislikes <= 2;
// 3-star rows shape the profile vector but not the context. Deterministic
// for a fixed input order.
func BuildScoringContext(rows []models.ContextRating, cfg *Config) ScoringContext {
	var likes, dislikes []weightedRow
	for _, r := range rows {
		switch {
		case r.Rating >= 4:
			likes = append(likes, weightedRow{row: r, weight: likeContextWeight(r.Rating)})
		case r.Rating <= 2:
			dislikes = append(dislikes, weightedRow{row: r, weight: dislikeContextWeight(r.Rating)})
		}
	}

	sc := ScoringContext{
		Like:         aggregateFeatures(likes, cfg),
		Dislike:      aggregateFeatures(dislikes, cfg),
		DislikeCount: len(dislikes),
	}

	if centroid := embeddingCentroid(dislikes); centroid != nil {
		sc.DislikeCentroid = centroid
	}
	return sc
}

type weightedRow struct {
	row    models.ContextRating
	weight float64
}

// aggregateFeatures folds weighted rows into one feature bundle: weighted
// genre/style-keyword frequencies trimmed to the configured caps, weighted
// mean runtime and year, and the weighted modal language.
func aggregateFeatures(rows []weightedRow, cfg *Config) FeatureBundle {
	genreWeight := map[string]float64{}
	styleWeight := map[string]float64{}
	langWeight := map[string]float64{}

	var runtimeSum, runtimeW, yearSum, yearW float64

	for _, wr := range rows {
		w := wr.weight
		for _, g := range wr.row.Genres {
			genreWeight[g] += w
		}
		for _, k := range filterStyleKeywords(wr.row.Keywords) {
			styleWeight[k] += w
		}
		if wr.row.Runtime > 0 {
			runtimeSum += w * float64(wr.row.Runtime)
			runtimeW += w
		}
		if wr.row.Year > 0 {
			yearSum += w * float64(wr.row.Year)
			yearW += w
		}
		if wr.row.OriginalLanguage != "" {
			langWeight[wr.row.OriginalLanguage] += w
		}
	}

	b := FeatureBundle{
		Genres:   topTokens(genreWeight, cfg.MaxScoringGenres),
		Style:    topTokens(styleWeight, cfg.MaxScoringKeywords),
		Language: modalToken(langWeight),
	}
	if runtimeW > 0 {
		b.Runtime = runtimeSum / runtimeW
	}
	if yearW > 0 {
		b.Year = yearSum / yearW
	}
	return b
}

// topTokens keeps the n highest-weighted tokens; ties break lexicographically
// so the bundle is deterministic.
func topTokens(weights map[string]float64, n int) map[string]struct{} {
	tokens := make([]string, 0, len(weights))
	for t := range weights {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool {
		wi, wj := weights[tokens[i]], weights[tokens[j]]
		if wi != wj {
			return wi > wj
		}
		return tokens[i] < tokens[j]
	})
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return toSet(tokens)
}

// modalToken returns the highest-weighted token, ties lexicographic.
func modalToken(weights map[string]float64) string {
	best, bestW := "", -1.0
	for t, w := range weights {
		if w > bestW || (w == bestW && t < best) {
			best, bestW = t, w
		}
	}
	return best
}

// embeddingCentroid returns the unit-normalized mean of the rows'
// embeddings, or nil when none carries one.
func embeddingCentroid(rows []weightedRow) []float32 {
	var sum []float32
	count := 0
	for _, wr := range rows {
		emb := wr.row.Embedding
		if len(emb) == 0 {
			continue
		}
		if sum == nil {
			sum = make([]float32, len(emb))
		}
		if len(emb) != len(sum) {
			continue
		}
		for i, v := range emb {
			sum[i] += v
		}
		count++
	}
	if sum == nil || count == 0 {
		return nil
	}
	for i := range sum {
		sum[i] /= float32(count)
	}
	normalize(sum)
	return sum
}
