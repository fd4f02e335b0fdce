// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package poster resolves TMDB movie ids to poster image URLs.
//
// A lookup never returns an error to its caller. Every outcome is a Result:
// the poster was found, the movie has no poster, or the lookup failed. The
// HTTP layer collapses a Result to an optional URL with DisplayURL and
// renders a placeholder when it is empty.
//
// Results are memoized per movie id for the life of the process, including
// "no poster" and failed outcomes, and concurrent lookups for one id share a
// single request. See Resolver.
package poster

import "errors"

var (
	// ErrStatus marks a non-200 response from the metadata service.
	ErrStatus = errors.New("unexpected status from metadata service")

	// ErrDecode marks a response body that is not the expected JSON.
	ErrDecode = errors.New("malformed metadata response")

	// ErrUnavailable marks a lookup that was not attempted because the
	// circuit breaker is open.
	ErrUnavailable = errors.New("metadata service unavailable")
)

// Status classifies a lookup outcome.
type Status int

const (
	// StatusFound means the service returned a poster path.
	StatusFound Status = iota + 1
	// StatusMissing means the service answered but has no poster.
	StatusMissing
	// StatusFailed means the lookup did not produce an answer.
	StatusFailed
)

// String returns the metric/log label for s.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusMissing:
		return "missing"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of resolving one movie id.
type Result struct {
	MovieID int64
	Status  Status
	URL     string // set only for StatusFound
	Err     error  // set only for StatusFailed
}

// Found reports whether a poster URL is available.
func (r Result) Found() bool {
	return r.Status == StatusFound
}

// DisplayURL returns the poster URL, or "" when the UI should show a
// placeholder.
func (r Result) DisplayURL() string {
	if r.Status != StatusFound {
		return ""
	}
	return r.URL
}

func found(id int64, url string) Result {
	return Result{MovieID: id, Status: StatusFound, URL: url}
}

func missing(id int64) Result {
	return Result{MovieID: id, Status: StatusMissing}
}

func failed(id int64, err error) Result {
	return Result{MovieID: id, Status: StatusFailed, Err: err}
}
