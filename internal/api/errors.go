// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tastekid/tastekid/internal/logging"
	"github.com/tastekid/tastekid/internal/models"
)

// DomainError performs the single central mapping from domain failures to
// HTTP status and stable error codes. Only unexpected failures log at
// error severity; not-found cases are routine.
func (rw *ResponseWriter) DomainError(err error) {
	switch {
	case errors.Is(err, models.ErrMovieNotFound):
		rw.Error(http.StatusNotFound, CodeMovieNotFound, "Movie not found")
	case errors.Is(err, models.ErrUserNotFound):
		rw.Error(http.StatusNotFound, CodeUserNotFound, "User not found")
	case errors.Is(err, models.ErrEmbeddingNotFound):
		rw.Error(http.StatusNotFound, CodeEmbeddingNotFound, "Movie has no embedding")
	case errors.Is(err, models.ErrProfileNotFound):
		rw.Error(http.StatusNotFound, CodeProfileNotFound, "User has no taste profile yet")
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, CodeDeadlineExceeded, "Request deadline exceeded")
	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Request failed")
		rw.Error(http.StatusInternalServerError, CodeInternal, "Internal error")
	}
}
