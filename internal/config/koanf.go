// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, first hit wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tastekid/config.yaml",
	"/etc/tastekid/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps flat environment variable names onto nested koanf
// paths. Unmapped variables are skipped so arbitrary environment noise
// never pollutes the configuration.
//
// Examples:
//   - DATABASE_URL -> database.url
//   - HTTP_PORT -> server.port
//   - NEUTRAL_RATING_WEIGHT -> recommend.neutral_rating_weight
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Database mappings
		"database_url":       "database.url",
		"database_max_conns": "database.max_conns",
		"database_min_conns": "database.min_conns",
		"database_migrate":   "database.migrate",

		// Server mappings
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",

		// API mappings
		"api_default_page_size": "api.default_page_size",
		"api_max_page_size":     "api.max_page_size",
		"rate_limit_requests":   "api.rate_limit_reqs",
		"rate_limit_window":     "api.rate_limit_window",

		// Image URL mappings
		"images_base_url":      "images.base_url",
		"images_poster_size":   "images.poster_size",
		"images_backdrop_size": "images.backdrop_size",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Recommendation engine mappings
		"neutral_rating_weight":   "recommend.neutral_rating_weight",
		"dislike_weight":          "recommend.dislike_weight",
		"dislike_min_count":       "recommend.dislike_min_count",
		"scoring_context_limit":   "recommend.scoring_context_limit",
		"rerank_fetch_multiplier": "recommend.rerank_fetch_multiplier",
		"max_fetch_candidates":    "recommend.max_fetch_candidates",
		"max_scoring_genres":      "recommend.max_scoring_genres",
		"max_scoring_keywords":    "recommend.max_scoring_keywords",
		"sim_candidates_k":        "recommend.sim_candidates_k",
		"sim_top_n":               "recommend.sim_top_n",
		"sim_rerank_enabled":      "recommend.sim_rerank_enabled",
		"unwatched_cooldown_days": "recommend.unwatched_cooldown_days",
		"vote_count_cap":          "recommend.vote_count_cap",
		"embedding_dim":           "recommend.embedding_dim",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
