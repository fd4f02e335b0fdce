// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend ranks catalog movies by precomputed content similarity
// and browses the catalog by genre keyword.
//
// # Ranking
//
// Recommend looks up the row of the requested title in the similarity
// matrix and orders every other movie by descending score. The sort is
// stable, so equal scores keep catalog order and repeated calls return the
// same list. The requested movie itself is never part of the result.
//
// # Genres
//
// Genres maps the twelve display names offered by the UI to the stemmed
// keywords produced by the tag pipeline ("Science Fiction" is
// "sciencefict"). Keywords are opaque: a movie matches when its tag string
// contains the keyword as a case-sensitive substring. "All" has no keyword
// and is never passed to FilterByGenre.
//
// # Posters
//
// Both Recommend and BrowseGenre resolve posters for their results through
// a PosterSource, concurrently, and return them in ranked or catalog order.
// Poster failures never fail a request; they surface as a poster.Result
// without a display URL.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, cat, resolver, logging.Logger())
//	recs, err := engine.Recommend(ctx, "Avatar")
//	if errors.Is(err, catalog.ErrNotFound) {
//		// unknown title
//	}
package recommend
