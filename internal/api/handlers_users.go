// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tastekid/tastekid/internal/models"
)

// CreateUser registers a new user.
// POST /v1/users  body: {display_name?}
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var body struct {
		DisplayName string `json:"display_name"`
	}
	if err := decodeBody(r, &body); err != nil {
		rw.InvalidArgument(err.Error())
		return
	}

	summary, err := h.store.CreateUser(r.Context(), body.DisplayName)
	if err != nil {
		rw.DomainError(err)
		return
	}
	rw.Created(summary)
}

// GetUser returns the public user record.
// GET /v1/users/{userID}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathID(r, "userID")
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}

	summary, err := h.store.GetUserSummary(r.Context(), userID)
	if err != nil {
		rw.DomainError(err)
		return
	}
	rw.Success(summary)
}

// GetProfile returns the taste profile aggregate.
// GET /v1/users/{userID}/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathID(r, "userID")
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}

	stats, err := h.store.ProfileStats(r.Context(), userID)
	if err != nil {
		rw.DomainError(err)
		return
	}
	rw.Success(stats)
}

// ratingPayload is the mutation body shared by the PUT and POST forms.
type ratingPayload struct {
	Rating *int    `json:"rating"`
	Status *string `json:"status"`
}

// resolve applies the rating semantics: at least one of rating/status must
// be present; an omitted status defaults to watched when a rating is given
// and unwatched otherwise; marking unwatched clears the rating.
func (p *ratingPayload) resolve() (*int, string, error) {
	if p.Rating == nil && p.Status == nil {
		return nil, "", fmt.Errorf("rating or status is required")
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return nil, "", fmt.Errorf("rating must be in 0..5")
	}

	status := models.StatusWatched
	if p.Rating == nil {
		status = models.StatusUnwatched
	}
	if p.Status != nil {
		if !models.ValidStatus(*p.Status) {
			return nil, "", fmt.Errorf("status must be %q or %q", models.StatusWatched, models.StatusUnwatched)
		}
		status = *p.Status
	}

	rating := p.Rating
	if status == models.StatusUnwatched {
		rating = nil
	}
	return rating, status, nil
}

// PutRating upserts a rating; the profile rebuild happens in the same
// transaction, so a subsequent read observes it.
// PUT /v1/users/{userID}/ratings/{movieID}  body: {rating?, status?}
func (h *Handler) PutRating(w http.ResponseWriter, r *http.Request) {
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

	var payload ratingPayload
	if err := decodeBody(r, &payload); err != nil {
		rw.InvalidArgument(err.Error())
		return
	}
	h.applyRating(rw, r, userID, movieID, &payload)
}

// RateMovie is the POST-form alias of PutRating, kept for UI
// compatibility.
// POST /v1/users/{userID}/rate  body: {movie_id, rating?, status?}
func (h *Handler) RateMovie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathID(r, "userID")
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}

	var body struct {
		MovieID int64 `json:"movie_id"`
		ratingPayload
	}
	if err := decodeBody(r, &body); err != nil {
		rw.InvalidArgument(err.Error())
		return
	}
	if body.MovieID < 1 {
		rw.InvalidArgument("movie_id must be a positive integer")
		return
	}
	h.applyRating(rw, r, userID, body.MovieID, &body.ratingPayload)
}

func (h *Handler) applyRating(rw *ResponseWriter, r *http.Request, userID, movieID int64, payload *ratingPayload) {
	rating, status, err := payload.resolve()
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}
	if err := h.store.RateMovie(r.Context(), userID, movieID, rating, status); err != nil {
		rw.DomainError(err)
		return
	}
	rw.Success(map[string]string{"status": "ok"})
}

// ListRatings pages the rating history, newest first.
// GET /v1/users/{userID}/ratings?k=&cursor=&status=&min_rating=&max_rating=&days=
func (h *Handler) ListRatings(w http.ResponseWriter, r *http.Request) {
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
	filter, err := ratingFilter(r)
	if err != nil {
		rw.InvalidArgument(err.Error())
		return
	}

	entries, err := h.store.ListRatings(r.Context(), userID, filter, page.K+1, page.Offset)
	if err != nil {
		rw.DomainError(err)
		return
	}
	hasMore := len(entries) > page.K
	if hasMore {
		entries = entries[:page.K]
	}
	h.decorateRatings(entries)
	rw.SuccessPage(entries, nextCursor(page, hasMore), hasMore)
}

// ratingFilter parses the optional ListRatings query filters.
func ratingFilter(r *http.Request) (models.RatingFilter, error) {
	var f models.RatingFilter
	q := r.URL.Query()

	if status := q.Get("status"); status != "" {
		if !models.ValidStatus(status) {
			return f, fmt.Errorf("status must be %q or %q", models.StatusWatched, models.StatusUnwatched)
		}
		f.Status = status
	}
	for name, dst := range map[string]**int{"min_rating": &f.RatingMin, "max_rating": &f.RatingMax} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 5 {
			return f, fmt.Errorf("%s must be in 0..5", name)
		}
		*dst = &v
	}
	if raw := q.Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			return f, fmt.Errorf("days must be a positive integer")
		}
		f.Since = time.Now().AddDate(0, 0, -days)
	}
	return f, nil
}

// RatingQueue pages the popularity queue minus the user's seen set;
// skipped movies re-enter after the configured cooldown.
// GET /v1/users/{userID}/rating-queue?k=&cursor=
func (h *Handler) RatingQueue(w http.ResponseWriter, r *http.Request) {
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
	if _, err := h.store.GetUserSummary(r.Context(), userID); err != nil {
		rw.DomainError(err)
		return
	}

	cands, err := h.store.PopularityQueue(r.Context(), userID, page.K+1, page.Offset,
		h.cfg.Recommend.UnwatchedCooldownDays, false)
	if err != nil {
		rw.DomainError(err)
		return
	}
	hasMore := len(cands) > page.K
	if hasMore {
		cands = cands[:page.K]
	}
	for i := range cands {
		h.decorateCandidate(&cands[i])
	}
	rw.SuccessPage(cands, nextCursor(page, hasMore), hasMore)
}

// decodeBody decodes a JSON request body; an empty body decodes to the
// zero value.
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("malformed JSON body")
	}
	return nil
}
