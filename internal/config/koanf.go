// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

const (
	// ConfigPathEnvVar overrides the config file search.
	ConfigPathEnvVar = "CONFIG_PATH"

	// DotEnvPathEnvVar overrides the .env file location.
	DotEnvPathEnvVar = "DOTENV_PATH"

	// apiKeyAliasEnvVar is the credential name used by older deployments.
	apiKeyAliasEnvVar = "API_KEY"
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    0, // derived from the poster budget at load
			ShutdownTimeout: 10 * time.Second,
			Environment:     "production",
		},
		Catalog: CatalogConfig{
			Format:         "json",
			MoviesPath:     "data/movies.json",
			SimilarityPath: "data/similarity.json",
		},
		Poster: PosterConfig{
			BaseURL:        "https://api.themoviedb.org/3",
			ImageBaseURL:   "https://image.tmdb.org/t/p/w500/",
			Language:       "en-US",
			Timeout:        10 * time.Second,
			MaxAttempts:    5,
			BackoffBase:    500 * time.Millisecond,
			RateLimit:      40,
			RateBurst:      10,
			MaxConcurrency: 5,
			BreakerEnabled: true,
			BreakerTimeout: 30 * time.Second,
		},
		Recommend: RecommendConfig{
			TopK:        5,
			GenreLimit:  10,
			SearchLimit: 20,
		},
		Security: SecurityConfig{
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration in layers:
//
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. .env file (never overrides variables already in the environment)
//  4. Environment variables
//
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	applyEnvAliases(cfg)
	applyDerivedDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadDotEnv populates the process environment from a .env file if one
// exists. A missing file is not an error.
func loadDotEnv() error {
	path := ".env"
	if p := os.Getenv(DotEnvPathEnvVar); p != "" {
		path = p
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// applyEnvAliases fills fields that have a legacy env var name when the
// primary name was not set.
func applyEnvAliases(cfg *Config) {
	if cfg.Poster.APIKey == "" {
		cfg.Poster.APIKey = strings.TrimSpace(os.Getenv(apiKeyAliasEnvVar))
	}
}

// applyDerivedDefaults fills settings whose defaults depend on others.
func applyDerivedDefaults(cfg *Config) {
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = cfg.PageBudget() + WriteTimeoutSlack
	}
}

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

// sliceConfigPaths are parsed as comma-separated lists when they come from
// the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Unlisted variables are ignored so unrelated environment does not leak
// into the configuration.
var envMappings = map[string]string{
	"http_port":               "server.port",
	"http_host":               "server.host",
	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",
	"environment":             "server.environment",

	"catalog_format":          "catalog.format",
	"catalog_movies_path":     "catalog.movies_path",
	"catalog_similarity_path": "catalog.similarity_path",

	"tmdb_api_key":           "poster.api_key",
	"tmdb_base_url":          "poster.base_url",
	"tmdb_image_base_url":    "poster.image_base_url",
	"tmdb_language":          "poster.language",
	"poster_timeout":         "poster.timeout",
	"poster_max_attempts":    "poster.max_attempts",
	"poster_backoff_base":    "poster.backoff_base",
	"poster_rate_limit":      "poster.rate_limit",
	"poster_rate_burst":      "poster.rate_burst",
	"poster_max_concurrency": "poster.max_concurrency",
	"poster_breaker_enabled": "poster.breaker_enabled",
	"poster_breaker_timeout": "poster.breaker_timeout",
	"poster_warmup_enabled":  "poster.warmup_enabled",

	"recommend_top_k":        "recommend.top_k",
	"recommend_genre_limit":  "recommend.genre_limit",
	"recommend_search_limit": "recommend.search_limit",

	"rate_limit_reqs":    "security.rate_limit_reqs",
	"rate_limit_window":  "security.rate_limit_window",
	"disable_rate_limit": "security.rate_limit_disabled",
	"cors_origins":       "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its config path,
// returning "" for variables Marquee does not read.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
