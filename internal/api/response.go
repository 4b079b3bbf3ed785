// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

// Package api provides the /v1 HTTP surface: chi routing, the response
// envelope, request validation, and one central mapping from domain
// failures to stable error codes.
package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tastekid/tastekid/internal/logging"
)

// Envelope shapes. Every success is {data, meta}; every failure is
// {error:{code,message,details?}}.
type successEnvelope struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// Meta carries pagination state; NextCursor is null on the last page.
type Meta struct {
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody is the failure payload.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Stable error codes.
const (
	CodeMovieNotFound     = "MOVIE_NOT_FOUND"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeEmbeddingNotFound = "EMBEDDING_NOT_FOUND"
	CodeProfileNotFound   = "PROFILE_NOT_FOUND"
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeDeadlineExceeded  = "DEADLINE_EXCEEDED"
	CodeInternal          = "INTERNAL"
)

// ResponseWriter writes enveloped responses for one request.
type ResponseWriter struct {
	w http.ResponseWriter
	r *http.Request
}

// NewResponseWriter creates a response writer for the request.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r}
}

// Success writes an unpaginated 200 response.
func (rw *ResponseWriter) Success(data interface{}) {
	rw.writeJSON(http.StatusOK, successEnvelope{Data: data, Meta: Meta{}})
}

// Created writes a 201 response.
func (rw *ResponseWriter) Created(data interface{}) {
	rw.writeJSON(http.StatusCreated, successEnvelope{Data: data, Meta: Meta{}})
}

// SuccessPage writes a paginated 200 response. nextCursor "" means the
// last page.
func (rw *ResponseWriter) SuccessPage(data interface{}, nextCursor string, hasMore bool) {
	meta := Meta{HasMore: hasMore}
	if nextCursor != "" {
		meta.NextCursor = &nextCursor
	}
	rw.writeJSON(http.StatusOK, successEnvelope{Data: data, Meta: meta})
}

// Error writes a failure envelope with the given status.
func (rw *ResponseWriter) Error(statusCode int, code, message string) {
	rw.ErrorWithDetails(statusCode, code, message, nil)
}

// ErrorWithDetails writes a failure envelope with extra details.
func (rw *ResponseWriter) ErrorWithDetails(statusCode int, code, message string, details interface{}) {
	rw.writeJSON(statusCode, errorEnvelope{Error: ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// InvalidArgument writes a 400 INVALID_ARGUMENT failure.
func (rw *ResponseWriter) InvalidArgument(message string) {
	rw.Error(http.StatusBadRequest, CodeInvalidArgument, message)
}

// writeJSON writes the payload with proper headers.
func (rw *ResponseWriter) writeJSON(statusCode int, payload interface{}) {
	rw.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(statusCode)
	if err := json.NewEncoder(rw.w).Encode(payload); err != nil {
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}
