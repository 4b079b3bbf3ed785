// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package recommend

import (
	"math"

	"github.com/tastekid/tastekid/internal/models"
)

// FeatureBundle is the feature side of a scoring comparison: either an
// anchor movie's features or the aggregate of a user's like/dislike
// context. Zero-valued fields (empty sets, runtime 0, year 0, language "")
// contribute nothing to the score.
type FeatureBundle struct {
	Genres   map[string]struct{}
	Style    map[string]struct{}
	Runtime  float64
	Year     float64
	Language string
}

// Feature weights. The similarity term dominates; everything else is an
// additive bonus or penalty on top of it.
const (
	weightSimilarity    = 1.00
	weightGenreOverlap  = 0.25
	weightStyleOverlap  = 0.15
	weightRuntime       = 0.05
	weightYear          = 0.05
	weightLanguage      = 0.05
	weightPopularity    = 0.05
	weightTonalMismatch = 0.10

	// maxRawScore is the sum of all positive weights; used to normalize a
	// raw score when batch min-max normalization degenerates.
	maxRawScore = weightSimilarity + weightGenreOverlap + weightStyleOverlap +
		weightRuntime + weightYear + weightLanguage + weightPopularity

	runtimeProximityScaleMin = 60.0
	yearProximityScaleYears  = 30.0
)

// Tonal mismatch genre groups. A tense candidate against a gentle context
// (or vice versa) takes the mismatch penalty.
var (
	tenseGenres  = map[string]struct{}{"horror": {}, "thriller": {}}
	gentleGenres = map[string]struct{}{"family": {}, "animation": {}}
)

// candidateFeatures extracts the scoring features of a single movie.
func candidateFeatures(c *models.Candidate) FeatureBundle {
	return FeatureBundle{
		Genres:   toSet(c.Genres),
		Style:    toSet(filterStyleKeywords(c.Keywords)),
		Runtime:  float64(c.Runtime),
		Year:     float64(c.Year),
		Language: c.OriginalLanguage,
	}
}

func toSet(tokens []string) map[string]struct{} {
	s := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// jaccard computes |a ∩ b| / |a ∪ b|; empty-vs-empty is 0.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// runtimeProximity maps |Δminutes| onto [0,1], zero beyond an hour apart.
// Unknown runtimes (0) contribute nothing.
func runtimeProximity(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	return 1 - math.Min(1, math.Abs(a-b)/runtimeProximityScaleMin)
}

// yearProximity maps |Δyears| onto [0,1], zero beyond thirty years apart.
// Unknown years (0) contribute nothing.
func yearProximity(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	return 1 - math.Min(1, math.Abs(a-b)/yearProximityScaleYears)
}

// popularityQuality is log-saturating in vote count, reaching 1.0 at the
// configured cap.
func popularityQuality(voteCount, voteCap int64) float64 {
	if voteCount <= 0 || voteCap <= 0 {
		return 0
	}
	v := math.Log10(1+float64(voteCount)) / math.Log10(1+float64(voteCap))
	return clamp01(v)
}

// tonalMismatch reports whether the candidate and context genre sets sit on
// opposite sides of the tense/gentle divide.
func tonalMismatch(candidate, context map[string]struct{}) bool {
	candTense, candGentle := intersects(candidate, tenseGenres), intersects(candidate, gentleGenres)
	ctxTense, ctxGentle := intersects(context, tenseGenres), intersects(context, gentleGenres)
	return (candTense && ctxGentle) || (candGentle && ctxTense)
}

func intersects(a, b map[string]struct{}) bool {
	for t := range b {
		if _, ok := a[t]; ok {
			return true
		}
	}
	return false
}

// CosineSimilarity computes a·b / (‖a‖‖b‖). Returns 0 for mismatched
// dimensions or zero-norm inputs.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
