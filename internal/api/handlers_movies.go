// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package api

import (
	"net/http"
	"strings"
)

// LookupMovie resolves a title to a movie id.
// GET /v1/movies/lookup?title=
func (h *Handler) LookupMovie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		rw.InvalidArgument("title must not be empty")
		return
	}

	ref, err := h.store.LookupMovieByTitle(r.Context(), title)
	if err != nil {
		rw.DomainError(err)
		return
	}
	rw.Success(ref)
}

// GetMovie returns the full movie record.
// GET /v1/movies/{movieID}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	movieID, err := pathID(r, "movieID")
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}

	detail, err := h.store.GetMovieDetail(r.Context(), movieID)
	if err != nil {
		rw.DomainError(err)
		return
	}
	h.decorateDetail(detail)
	rw.Success(detail)
}

// Similar returns movies near the anchor, reranked against its features.
// GET /v1/movies/{movieID}/similar?k=&cursor=
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	movieID, err := pathID(r, "movieID")
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}
	page, err := h.pagination(r)
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}

	items, hasMore, err := h.rec.Similar(r.Context(), movieID, page.K, page.Offset)
	if err != nil {
		rw.DomainError(err)
		return
	}
	h.decorateScored(items)
	rw.SuccessPage(items, nextCursor(page, hasMore), hasMore)
}
