// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package models

import "errors"

// Sentinel errors shared between the store and the recommendation engine.
// The HTTP layer performs a single central mapping from these to status
// codes and stable error codes (see internal/api).
var (
	// ErrMovieNotFound indicates the requested movie id or title has no row.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrUserNotFound indicates the requested user id has no row.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmbeddingNotFound indicates the movie exists but was never indexed.
	ErrEmbeddingNotFound = errors.New("movie embedding not found")

	// ErrProfileNotFound indicates the user has no taste profile yet
	// (no contributing ratings).
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrIndexUnavailable indicates the vector index backend failed or the
	// circuit protecting it is open.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
