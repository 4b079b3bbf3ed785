// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tastekid/tastekid/internal/config"
	"github.com/tastekid/tastekid/internal/metrics"
	"github.com/tastekid/tastekid/internal/middleware"
)

// NewRouter assembles the middleware stack and the /v1 route tree. The
// request timeout propagates as a context deadline to every store and
// index call; on expiry the request fails with DEADLINE_EXCEEDED.
func NewRouter(h *Handler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Timeout(cfg.Server.Timeout))
	r.Use(httprate.LimitByIP(cfg.API.RateLimitReqs, cfg.API.RateLimitWindow))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/lookup", h.LookupMovie)
			r.Route("/{movieID}", func(r chi.Router) {
				r.Get("/", h.GetMovie)
				r.Get("/similar", h.Similar)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.CreateUser)
			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Get("/profile", h.GetProfile)
				r.Put("/ratings/{movieID}", h.PutRating)
				r.Post("/rate", h.RateMovie)
				r.Get("/ratings", h.ListRatings)
				r.Get("/rating-queue", h.RatingQueue)
				r.Get("/next", h.Next)
				r.Get("/recommendations", h.Recommendations)
				r.Get("/feed", h.Feed)
				r.Get("/movies/{movieID}/match", h.Match)
			})
		})
	})

	return r
}
