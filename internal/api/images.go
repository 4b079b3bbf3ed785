// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package api

import "github.com/tastekid/tastekid/internal/models"

// imageURL joins the configured image base with a stored path. Stored
// paths start with a slash; empty paths yield no URL.
func (h *Handler) imageURL(size, path string) string {
	if path == "" || h.cfg.Images.BaseURL == "" {
		return ""
	}
	return h.cfg.Images.BaseURL + "/" + size + path
}

func (h *Handler) decorateCandidate(c *models.Candidate) {
	c.PosterURL = h.imageURL(h.cfg.Images.PosterSize, c.PosterPath)
	c.BackdropURL = h.imageURL(h.cfg.Images.BackdropSize, c.BackdropPath)
}

func (h *Handler) decorateScored(items []models.ScoredCandidate) {
	for i := range items {
		h.decorateCandidate(&items[i].Candidate)
	}
}

func (h *Handler) decorateFeed(items []models.FeedItem) {
	for i := range items {
		h.decorateCandidate(&items[i].Candidate)
	}
}

func (h *Handler) decorateDetail(d *models.MovieDetail) {
	d.PosterURL = h.imageURL(h.cfg.Images.PosterSize, d.PosterPath)
	d.BackdropURL = h.imageURL(h.cfg.Images.BackdropSize, d.BackdropPath)
}

func (h *Handler) decorateRatings(entries []models.RatingEntry) {
	for i := range entries {
		entries[i].PosterURL = h.imageURL(h.cfg.Images.PosterSize, entries[i].PosterPath)
	}
}
