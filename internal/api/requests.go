// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tastekid/tastekid/internal/validation"
)

// pageRequest is the validated pagination input: k in 1..100 and a
// non-negative offset decoded from the string cursor.
type pageRequest struct {
	K      int `validate:"min=1,max=100"`
	Offset int `validate:"min=0"`
}

// pagination parses k and cursor query parameters, applying the configured
// default page size. The cursor is a string-encoded non-negative offset.
func (h *Handler) pagination(r *http.Request) (pageRequest, error) {
	page := pageRequest{K: h.cfg.API.DefaultPageSize}

	if raw := r.URL.Query().Get("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("k must be an integer")
		}
		page.K = k
	}
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("cursor must be a non-negative integer")
		}
		page.Offset = offset
	}

	if verr := validation.ValidateStruct(&page); verr != nil {
		return page, fmt.Errorf("%s", verr.Error())
	}
	return page, nil
}

// nextCursor computes the cursor of the following page.
func nextCursor(page pageRequest, hasMore bool) string {
	if !hasMore {
		return ""
	}
	return strconv.Itoa(page.Offset + page.K)
}

// pathID parses an int64 path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}
