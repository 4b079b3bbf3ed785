// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package recommend

import "math"

// ProfileInput is one contributing rating row: status=watched, rating >= 3.
// Embedding is nil when the movie was never indexed; such rows count toward
// NumRatings but cannot shape the vector.
type ProfileInput struct {
	Rating    int
	Embedding []float32
}

// Profile is the result of a taste-vector rebuild.
type Profile struct {
	Vector     []float32
	NumRatings int
}

// profileWeight maps a contributing rating to its aggregation weight.
func profileWeight(rating int, neutralWeight float64) float64 {
	switch {
	case rating >= 5:
		return 1.0
	case rating == 4:
		return 0.8
	default:
		return neutralWeight
	}
}

// BuildProfile recomputes a user's taste vector from its contributing
// ratings: the weighted mean of the contributor embeddings, L2-normalized.
// Returns nil when no contributor carries an embedding, in which case the
// caller deletes the profile row.
//
// The function is pure; it runs inside the rating-mutation transaction so
// the profile is consistent with the rating history on commit.
func BuildProfile(inputs []ProfileInput, neutralWeight float64) *Profile {
	var (
		sum        []float32
		weightSum  float64
		numRatings int
	)

	for _, in := range inputs {
		numRatings++
		if len(in.Embedding) == 0 {
			continue
		}
		w := profileWeight(in.Rating, neutralWeight)
		if sum == nil {
			sum = make([]float32, len(in.Embedding))
		}
		if len(in.Embedding) != len(sum) {
			// Mixed-dimension embeddings indicate a broken index; skip.
			continue
		}
		for i, v := range in.Embedding {
			sum[i] += float32(w * float64(v))
		}
		weightSum += w
	}

	if sum == nil || weightSum == 0 {
		return nil
	}

	for i := range sum {
		sum[i] = float32(float64(sum[i]) / weightSum)
	}
	normalize(sum)

	return &Profile{Vector: sum, NumRatings: numRatings}
}

// normalize scales vec to unit L2 norm in place. Zero vectors are left
// untouched.
func normalize(vec []float32) {
	var n float64
	for _, v := range vec {
		n += float64(v) * float64(v)
	}
	if n == 0 {
		return
	}
	n = math.Sqrt(n)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / n)
	}
}

// Norm returns the L2 norm of vec.
func Norm(vec []float32) float64 {
	var n float64
	for _, v := range vec {
		n += float64(v) * float64(v)
	}
	return math.Sqrt(n)
}
