// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearCredentialEnv unsets both credential names for the duration of the
// test. t.Setenv registers the restore; the unset lets .env files fill them.
func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"TMDB_API_KEY", apiKeyAliasEnvVar} {
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("unset %s: %v", name, err)
		}
	}
	t.Setenv(DotEnvPathEnvVar, filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Poster.Timeout != 10*time.Second {
		t.Errorf("Poster.Timeout = %v, want 10s", cfg.Poster.Timeout)
	}
	if cfg.Poster.MaxAttempts != 5 {
		t.Errorf("Poster.MaxAttempts = %d, want 5", cfg.Poster.MaxAttempts)
	}
	if cfg.Poster.BackoffBase != 500*time.Millisecond {
		t.Errorf("Poster.BackoffBase = %v, want 500ms", cfg.Poster.BackoffBase)
	}
	if cfg.Poster.ImageBaseURL != "https://image.tmdb.org/t/p/w500/" {
		t.Errorf("Poster.ImageBaseURL = %q", cfg.Poster.ImageBaseURL)
	}
	if cfg.Poster.Language != "en-US" {
		t.Errorf("Poster.Language = %q, want en-US", cfg.Poster.Language)
	}
	if cfg.Recommend.TopK != 5 {
		t.Errorf("Recommend.TopK = %d, want 5", cfg.Recommend.TopK)
	}
	if cfg.Recommend.GenreLimit != 10 {
		t.Errorf("Recommend.GenreLimit = %d, want 10", cfg.Recommend.GenreLimit)
	}
	if cfg.Catalog.Format != "json" {
		t.Errorf("Catalog.Format = %q, want json", cfg.Catalog.Format)
	}
	if cfg.Poster.APIKey != "" {
		t.Error("Poster.APIKey must have no default")
	}
}

func TestLoadWithKoanf_MissingAPIKey(t *testing.T) {
	clearCredentialEnv(t)

	_, err := LoadWithKoanf()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("LoadWithKoanf() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("TMDB_API_KEY", "env-key")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("POSTER_TIMEOUT", "3s")
	t.Setenv("CATALOG_FORMAT", "duckdb")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Poster.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.Poster.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Poster.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Poster.Timeout)
	}
	if cfg.Catalog.Format != "duckdb" {
		t.Errorf("Format = %q, want duckdb", cfg.Catalog.Format)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != want[0] || cfg.Security.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadWithKoanf_APIKeyAlias(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv(apiKeyAliasEnvVar, "alias-key")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Poster.APIKey != "alias-key" {
		t.Errorf("APIKey = %q, want alias-key", cfg.Poster.APIKey)
	}
}

func TestLoadWithKoanf_DotEnv(t *testing.T) {
	clearCredentialEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("API_KEY=dotenv-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(DotEnvPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Poster.APIKey != "dotenv-key" {
		t.Errorf("APIKey = %q, want dotenv-key", cfg.Poster.APIKey)
	}
}

func TestLoadWithKoanf_YAMLFile(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("TMDB_API_KEY", "k")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
catalog:
  movies_path: /srv/movies.parquet
  similarity_path: /srv/similarity.parquet
  format: duckdb
recommend:
  top_k: 7
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMEND_TOP_K", "8")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Catalog.MoviesPath != "/srv/movies.parquet" {
		t.Errorf("MoviesPath = %q", cfg.Catalog.MoviesPath)
	}
	if cfg.Recommend.TopK != 8 {
		t.Errorf("TopK = %d, want env value 8 to win over file", cfg.Recommend.TopK)
	}
}

func TestPageBudget(t *testing.T) {
	cfg := defaultConfig()

	// 5 attempts x 10s, plus 0.5s + 1s + 2s + 4s of backoff.
	if got, want := cfg.Poster.LookupBudget(), 57500*time.Millisecond; got != want {
		t.Errorf("LookupBudget() = %v, want %v", got, want)
	}
	// 10 genre movies at concurrency 5 resolve in two waves.
	if got, want := cfg.PageBudget(), 115*time.Second; got != want {
		t.Errorf("PageBudget() = %v, want %v", got, want)
	}

	cfg.Poster.MaxAttempts = 1
	cfg.Poster.MaxConcurrency = 10
	if got, want := cfg.PageBudget(), 10*time.Second; got != want {
		t.Errorf("PageBudget() single attempt = %v, want %v", got, want)
	}
}

func TestLoadWithKoanf_DerivesWriteTimeout(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("TMDB_API_KEY", "k")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if want := cfg.PageBudget() + WriteTimeoutSlack; cfg.Server.WriteTimeout != want {
		t.Errorf("WriteTimeout = %v, want %v", cfg.Server.WriteTimeout, want)
	}

	t.Setenv("SERVER_WRITE_TIMEOUT", "200s")
	cfg, err = LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.WriteTimeout != 200*time.Second {
		t.Errorf("WriteTimeout = %v, want explicit 200s", cfg.Server.WriteTimeout)
	}

	t.Setenv("SERVER_WRITE_TIMEOUT", "30s")
	if _, err := LoadWithKoanf(); err == nil || !strings.Contains(err.Error(), "SERVER_WRITE_TIMEOUT") {
		t.Errorf("LoadWithKoanf() error = %v, want SERVER_WRITE_TIMEOUT rejection", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad catalog format", func(c *Config) { c.Catalog.Format = "csv" }, "CATALOG_FORMAT"},
		{"zero attempts", func(c *Config) { c.Poster.MaxAttempts = 0 }, "POSTER_MAX_ATTEMPTS"},
		{"non-http base url", func(c *Config) { c.Poster.BaseURL = "ftp://x" }, "TMDB_BASE_URL"},
		{"zero timeout", func(c *Config) { c.Poster.Timeout = 0 }, "POSTER_TIMEOUT"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"write timeout below page budget", func(c *Config) { c.Server.WriteTimeout = 60 * time.Second }, "SERVER_WRITE_TIMEOUT"},
		{"write timeout covers page budget", func(c *Config) { c.Server.WriteTimeout = 2 * time.Minute }, ""},
		{"rate limit off skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Poster.APIKey = "k"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
