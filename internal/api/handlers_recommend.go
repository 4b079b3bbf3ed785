// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package api

import "net/http"

// Recommendations returns the reranked personal stream.
// GET /v1/users/{userID}/recommendations?k=&cursor=
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathID(r, "userID")
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}
	page, err := h.pagination(r)
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}

	items, hasMore, err := h.rec.Recommendations(r.Context(), userID, page.K, page.Offset)
	if err != nil {
		rw.DomainError(err)
		return
	}
	h.decorateScored(items)
	rw.SuccessPage(items, nextCursor(page, hasMore), hasMore)
}

// Feed returns recommendations for profiled users and the popularity
// fallback (score null) for new ones.
// GET /v1/users/{userID}/feed?k=&cursor=
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathID(r, "userID")
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}
	page, err := h.pagination(r)
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}

	items, hasMore, err := h.rec.Feed(r.Context(), userID, page.K, page.Offset)
	if err != nil {
		rw.DomainError(err)
		return
	}
	h.decorateFeed(items)
	rw.SuccessPage(items, nextCursor(page, hasMore), hasMore)
}

// Match scores one user-vs-movie pairing as 0..100; soft cases (no
// profile, no embedding) return a null score.
// GET /v1/users/{userID}/movies/{movieID}/match
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathID(r, "userID")
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}
	movieID, err := pathID(r, "movieID")
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}

	score, err := h.rec.Match(r.Context(), userID, movieID)
	if err != nil {
		rw.DomainError(err)
		return
	}
	rw.Success(map[string]*int{"score": score})
}

// Next returns the single next movie to offer.
// GET /v1/users/{userID}/next
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathID(r, "userID")
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}

	item, err := h.rec.Next(r.Context(), userID)
	if err != nil {
		rw.DomainError(err)
		return
	}
	h.decorateCandidate(&item.Candidate)
	rw.Success(item)
}
