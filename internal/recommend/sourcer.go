// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package recommend

import (
	"context"
	"fmt"

	"github.com/tastekid/tastekid/internal/models"
)

// sourceOptions controls candidate expansion for one query.
type sourceOptions struct {
	// anchorID is excluded from the results (similar-to-movie mode).
	anchorID int64

	// exclude is the seen set in user mode; nil in anchor mode.
	exclude map[int64]struct{}

	// fetchFloor raises the index fetch above the multiplier-derived size
	// (the similar path over-fetches to a fixed pool).
	fetchFloor int
}

// source expands the candidate set for a query vector: over-fetch from the
// vector index, then drop the anchor, the excluded (seen) set, and any
// defensively unindexed row. Every surviving row is returned; the pool is
// sized from the page size alone, never the cursor, so identical queries
// produce the same pool at every offset and pages slice one stable
// ranking. Output preserves the index's ascending distance order.
func (e *Engine) source(ctx context.Context, query []float32, k int, opts sourceOptions) ([]models.Candidate, error) {
	kFetch := k * e.cfg.RerankFetchMultiplier
	if kFetch < opts.fetchFloor {
		kFetch = opts.fetchFloor
	}
	if kFetch > e.cfg.MaxFetchCandidates {
		kFetch = e.cfg.MaxFetchCandidates
	}

	raw, err := withRetry(ctx, func(ctx context.Context) ([]models.Candidate, error) {
		return e.provider.KNN(ctx, query, kFetch)
	})
	if err != nil {
		return nil, fmt.Errorf("candidate fetch: %w", err)
	}

	out := make([]models.Candidate, 0, len(raw))
	for _, c := range raw {
		if opts.anchorID != 0 && c.ID == opts.anchorID {
			continue
		}
		if opts.exclude != nil {
			if _, seen := opts.exclude[c.ID]; seen {
				continue
			}
		}
		if len(c.Embedding) == 0 {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
