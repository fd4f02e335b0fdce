// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
)

func movieTitles(movies []catalog.Movie) []string {
	return titles(movies, func(m catalog.Movie) string { return m.Title })
}

func genreCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	movies := []catalog.Movie{
		{ID: 1, Title: "Interstellar", Tags: strPtr("space sciencefict drama")},
		{ID: 2, Title: "Marriage Story", Tags: strPtr("drama")},
		{ID: 3, Title: "Untagged", Tags: nil},
		{ID: 4, Title: "Alien", Tags: strPtr("horror sciencefict")},
		{ID: 5, Title: "Empty Tags", Tags: strPtr("")},
		{ID: 6, Title: "Shouting", Tags: strPtr("SCIENCEFICT")},
	}
	n := len(movies)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		rows[i][i] = 1
	}
	return mustCatalog(t, movies, rows)
}

func TestFilterByGenre(t *testing.T) {
	t.Parallel()

	movies := genreCatalog(t).Movies()

	tests := []struct {
		name    string
		keyword string
		limit   int
		want    []string
	}{
		{"science fiction", "sciencefict", 10, []string{"Interstellar", "Alien"}},
		{"drama", "drama", 10, []string{"Interstellar", "Marriage Story"}},
		{"limit keeps catalog order", "sciencefict", 1, []string{"Interstellar"}},
		{"no limit", "sciencefict", 0, []string{"Interstellar", "Alien"}},
		{"case sensitive", "Drama", 10, []string{}},
		{"stemmed prefix inside token", "scienc", 10, []string{"Interstellar", "Alien"}},
		{"no matches", "western", 10, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := movieTitles(FilterByGenre(movies, tt.keyword, tt.limit))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterByGenre(%q) = %v, want %v", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestFilterByGenreNeverMatchesUntagged(t *testing.T) {
	t.Parallel()

	movies := genreCatalog(t).Movies()
	// Every movie with tags matches the empty keyword; the untagged one does not.
	for _, m := range FilterByGenre(movies, "", 0) {
		if m.Title == "Untagged" {
			t.Fatal("movie without tags matched")
		}
	}
}

func TestFilterByGenreLimitTen(t *testing.T) {
	t.Parallel()

	movies := make([]catalog.Movie, 25)
	for i := range movies {
		movies[i] = catalog.Movie{ID: int64(i + 1), Title: fmt.Sprintf("M%d", i), Tags: strPtr("action")}
	}
	got := FilterByGenre(movies, "action", 10)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if got[0].Title != "M0" || got[9].Title != "M9" {
		t.Errorf("not the first ten in catalog order: %v", movieTitles(got))
	}
}

func TestLookupGenre(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		keyword string
		ok      bool
	}{
		{"all", "", true},
		{"All", "", true},
		{"science-fiction", "sciencefict", true},
		{"Science Fiction", "sciencefict", true},
		{"ADVENTURE", "adventur", true},
		{" comedy ", "comedi", true},
		{"western", "", false},
	}

	for _, tt := range tests {
		g, ok := LookupGenre(tt.in)
		if ok != tt.ok || g.Keyword != tt.keyword {
			t.Errorf("LookupGenre(%q) = (%+v, %v), want keyword %q ok %v", tt.in, g, ok, tt.keyword, tt.ok)
		}
	}
}

func TestGenresTable(t *testing.T) {
	t.Parallel()

	if len(Genres) != 12 {
		t.Fatalf("len(Genres) = %d, want 12", len(Genres))
	}
	if !Genres[0].All() {
		t.Error("first genre should be the All sentinel")
	}
	seen := map[string]bool{}
	for _, g := range Genres[1:] {
		if g.All() {
			t.Errorf("%s has no keyword", g.Name)
		}
		if seen[g.Slug] {
			t.Errorf("duplicate slug %q", g.Slug)
		}
		seen[g.Slug] = true
	}
}

func TestBrowseGenre(t *testing.T) {
	t.Parallel()

	src := &mockPosterSource{none: map[int64]bool{4: true}}
	e := mustEngine(t, genreCatalog(t), src)

	sf, _ := LookupGenre("science-fiction")
	entries := e.BrowseGenre(context.Background(), sf)
	if len(entries) != 2 || entries[0].Movie.Title != "Interstellar" || entries[1].Movie.Title != "Alien" {
		t.Fatalf("BrowseGenre(sf) = %+v", entries)
	}
	if entries[0].Poster.DisplayURL() != "https://img/1.jpg" || entries[1].Poster.DisplayURL() != "" {
		t.Errorf("posters = %q, %q", entries[0].Poster.DisplayURL(), entries[1].Poster.DisplayURL())
	}

	horror, _ := LookupGenre("horror")
	if got := e.BrowseGenre(context.Background(), horror); len(got) != 1 {
		t.Errorf("BrowseGenre(horror) = %d entries, want 1", len(got))
	}

	western := Genre{Name: "Western", Slug: "western", Keyword: "western"}
	if got := e.BrowseGenre(context.Background(), western); got == nil || len(got) != 0 {
		t.Errorf("BrowseGenre(western) = %v, want empty non-nil", got)
	}

	all := e.BrowseGenre(context.Background(), GenreAll)
	if len(all) != 6 || all[2].Movie.Title != "Untagged" {
		t.Errorf("BrowseGenre(All) = %d entries", len(all))
	}
}

func TestBrowseGenreLogsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	e, err := NewEngine(DefaultConfig(), genreCatalog(t), &mockPosterSource{}, logger)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	ctx := logging.ContextWithRequestID(context.Background(), "req-browse-1")
	horror, _ := LookupGenre("horror")
	e.BrowseGenre(ctx, horror)

	out := buf.String()
	if !strings.Contains(out, "Genre browse completed") {
		t.Fatalf("log output = %q, want browse message", out)
	}
	if !strings.Contains(out, `"request_id":"req-browse-1"`) {
		t.Errorf("log output = %q, want request_id field", out)
	}
	if !strings.Contains(out, `"genre":"Horror"`) {
		t.Errorf("log output = %q, want genre field", out)
	}
}

func TestGenreCoverage(t *testing.T) {
	t.Parallel()

	cat := genreCatalog(t)
	counts := map[string]int{}
	for _, c := range GenreCoverage(cat) {
		counts[c.Genre.Name] = c.Matches
	}
	if len(counts) != 11 {
		t.Errorf("coverage has %d genres, want 11", len(counts))
	}
	if counts["Science Fiction"] != 2 || counts["Drama"] != 2 || counts["Horror"] != 1 || counts["Action"] != 0 {
		t.Errorf("coverage = %v", counts)
	}

	var buf bytes.Buffer
	LogGenreCoverage(zerolog.New(&buf), cat)
	out := buf.String()
	if !strings.Contains(out, `"genre":"Science Fiction"`) || !strings.Contains(out, `"matches":2`) {
		t.Errorf("log output missing coverage line: %s", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("expected warn for genres without matches: %s", out)
	}
}
