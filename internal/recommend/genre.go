// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
)

// Genre is one entry of the genre selector.
type Genre struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Keyword string `json:"keyword,omitempty"`
}

// All reports whether g is the unfiltered sentinel.
func (g Genre) All() bool {
	return g.Keyword == ""
}

// GenreAll is the sentinel that disables genre filtering.
var GenreAll = Genre{Name: "All", Slug: "all"}

// Genres lists the selector entries in display order. Keywords are the
// stemmed tokens found in catalog tag strings.
var Genres = []Genre{
	GenreAll,
	{Name: "Action", Slug: "action", Keyword: "action"},
	{Name: "Adventure", Slug: "adventure", Keyword: "adventur"},
	{Name: "Animation", Slug: "animation", Keyword: "anim"},
	{Name: "Comedy", Slug: "comedy", Keyword: "comedi"},
	{Name: "Crime", Slug: "crime", Keyword: "crime"},
	{Name: "Drama", Slug: "drama", Keyword: "drama"},
	{Name: "Fantasy", Slug: "fantasy", Keyword: "fantasi"},
	{Name: "Horror", Slug: "horror", Keyword: "horror"},
	{Name: "Romance", Slug: "romance", Keyword: "romanc"},
	{Name: "Science Fiction", Slug: "science-fiction", Keyword: "sciencefict"},
	{Name: "Thriller", Slug: "thriller", Keyword: "thriller"},
}

// LookupGenre finds a genre by slug or display name, ignoring case.
func LookupGenre(name string) (Genre, bool) {
	name = strings.TrimSpace(name)
	for _, g := range Genres {
		if strings.EqualFold(g.Slug, name) || strings.EqualFold(g.Name, name) {
			return g, true
		}
	}
	return Genre{}, false
}

// FilterByGenre returns up to limit movies whose tags contain keyword, in
// catalog order. Movies without tags never match. limit <= 0 means no limit.
func FilterByGenre(movies []catalog.Movie, keyword string, limit int) []catalog.Movie {
	out := []catalog.Movie{}
	for _, m := range movies {
		if !m.TagsContain(keyword) {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Coverage is the number of catalog movies matching one genre.
type Coverage struct {
	Genre   Genre
	Matches int
}

// GenreCoverage counts matches for every filterable genre.
func GenreCoverage(cat *catalog.Catalog) []Coverage {
	movies := cat.Movies()
	out := make([]Coverage, 0, len(Genres)-1)
	for _, g := range Genres {
		if g.All() {
			continue
		}
		out = append(out, Coverage{Genre: g, Matches: len(FilterByGenre(movies, g.Keyword, 0))})
	}
	return out
}

// LogGenreCoverage writes one line per genre with its match count and warns
// for genres that match nothing, which usually means the tag pipeline and
// the keyword table disagree.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func LogGenreCoverage(logger zerolog.Logger, cat *catalog.Catalog) {
	for _, c := range GenreCoverage(cat) {
		ev := logger.Info()
		if c.Matches == 0 {
			ev = logger.Warn()
		}
		ev.Str("genre", c.Genre.Name).
			Str("keyword", c.Genre.Keyword).
			Int("matches", c.Matches).
			Msg("Genre coverage")
	}
}
