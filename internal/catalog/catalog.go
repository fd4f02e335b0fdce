// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package catalog holds the immutable movie table and its similarity matrix.
//
// Both are loaded once at startup (see Load) and never mutated afterwards,
// so a *Catalog is safe for concurrent use without locking. Catalog position
// i is the same axis as row and column i of the matrix.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/validation"
)

var (
	// ErrNotFound is returned when a title is not in the catalog.
	ErrNotFound = errors.New("movie not found in catalog")

	// ErrSchema wraps every load-time schema violation.
	ErrSchema = errors.New("catalog schema violation")
)

// Movie is one catalog row. Tags is nil when the source had no usable tag
// string for the movie, which is distinct from an empty string.
type Movie struct {
	ID    int64   `json:"movie_id" validate:"gt=0"`
	Title string  `json:"title" validate:"required,notblank"`
	Tags  *string `json:"tags,omitempty"`
}

// HasTags reports whether the movie carries a tag string.
func (m Movie) HasTags() bool {
	return m.Tags != nil
}

// TagsContain reports whether the tag string contains keyword as a
// case-sensitive substring. Movies without tags never match.
func (m Movie) TagsContain(keyword string) bool {
	if m.Tags == nil {
		return false
	}
	return strings.Contains(*m.Tags, keyword)
}

// Catalog is the loaded movie table plus its similarity matrix.
type Catalog struct {
	movies  []Movie
	byTitle map[string]int
	matrix  *Matrix
	titles  *cache.PrefixIndex
}

// New validates movies against matrix and builds a Catalog. Every
// violation is reported as an error wrapping ErrSchema.
func New(movies []Movie, matrix *Matrix) (*Catalog, error) {
	if len(movies) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrSchema)
	}
	if matrix == nil {
		return nil, fmt.Errorf("%w: similarity matrix is missing", ErrSchema)
	}
	if matrix.Size() != len(movies) {
		return nil, fmt.Errorf("%w: catalog has %d movies but similarity matrix is %dx%d",
			ErrSchema, len(movies), matrix.Size(), matrix.Size())
	}

	c := &Catalog{
		movies:  make([]Movie, len(movies)),
		byTitle: make(map[string]int, len(movies)),
		matrix:  matrix,
		titles:  cache.NewPrefixIndex(),
	}
	for i, m := range movies {
		if verr := validation.ValidateStruct(&m); verr != nil {
			return nil, fmt.Errorf("%w: row %d: %s", ErrSchema, i, verr.Error())
		}
		if prev, dup := c.byTitle[m.Title]; dup {
			return nil, fmt.Errorf("%w: title %q appears at rows %d and %d", ErrSchema, m.Title, prev, i)
		}
		if m.Tags != nil {
			tags := *m.Tags
			m.Tags = &tags
		}
		c.movies[i] = m
		c.byTitle[m.Title] = i
		c.titles.Insert(m.Title, i)
	}
	return c, nil
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Movie returns the movie at catalog position i.
func (c *Catalog) Movie(i int) Movie {
	return c.movies[i]
}

// Movies returns the catalog in order. The slice is shared; callers must
// not modify it.
func (c *Catalog) Movies() []Movie {
	return c.movies
}

// IndexOf returns the catalog position of the movie with exactly this
// title. Matching is case-sensitive.
func (c *Catalog) IndexOf(title string) (int, error) {
	i, ok := c.byTitle[title]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	return i, nil
}

// Similarities returns row i of the similarity matrix. The slice is
// shared; callers must not modify it.
func (c *Catalog) Similarities(i int) []float64 {
	return c.matrix.Row(i)
}

// SearchTitles returns up to limit movies whose title starts with prefix,
// ignoring case, in catalog order.
func (c *Catalog) SearchTitles(prefix string, limit int) []Movie {
	ids := c.titles.Lookup(prefix, limit)
	out := make([]Movie, len(ids))
	for i, id := range ids {
		out[i] = c.movies[id]
	}
	return out
}

// TaggedCount returns how many movies carry a tag string.
func (c *Catalog) TaggedCount() int {
	n := 0
	for _, m := range c.movies {
		if m.HasTags() {
			n++
		}
	}
	return n
}
