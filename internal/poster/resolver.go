// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package poster

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// CacheName labels the poster memo in cache_* metrics.
const CacheName = "poster"

// Fetcher performs one uncached poster lookup. *Client implements it.
//
// A non-nil error means the lookup was not attempted and its Result must
// not be memoized.
type Fetcher interface {
	Fetch(ctx context.Context, movieID int64) (Result, error)
}

// Resolver memoizes poster lookups by movie id.
//
// The memo holds the first outcome for each id forever, whether a URL, "no
// poster" or a failed attempt. Concurrent Resolve calls for an uncached id
// share one in-flight fetch, so each id reaches the network at most once.
type Resolver struct {
	fetcher     Fetcher
	memo        *cache.Memo[int64, Result]
	group       singleflight.Group
	concurrency int
}

// NewResolver creates a Resolver. memo may be shared with other readers
// (health reporting) but only the Resolver should write to it.
func NewResolver(fetcher Fetcher, memo *cache.Memo[int64, Result], concurrency int) *Resolver {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Resolver{
		fetcher:     fetcher,
		memo:        memo,
		concurrency: concurrency,
	}
}

// Resolve returns the poster outcome for movieID. It never fails: errors
// are reported inside the Result.
//
// The network fetch is detached from ctx cancellation so that a fetch
// started for one caller completes and is memoized for every waiter. If
// ctx ends first, this caller gets a transient failed Result.
func (r *Resolver) Resolve(ctx context.Context, movieID int64) Result {
	if res, ok := r.memo.Get(movieID); ok {
		return res
	}

	ch := r.group.DoChan(strconv.FormatInt(movieID, 10), func() (interface{}, error) {
		// A flight for this id may have finished between Get and DoChan.
		if res, ok := r.memo.Peek(movieID); ok {
			return res, nil
		}
		res, err := r.fetcher.Fetch(context.WithoutCancel(ctx), movieID)
		if err != nil {
			return res, err
		}
		return r.memo.SetIfAbsent(movieID, res), nil
	})

	select {
	case out := <-ch:
		if out.Shared {
			metrics.PosterSharedLookups.Inc()
		}
		res, _ := out.Val.(Result)
		if out.Err != nil {
			logging.Ctx(ctx).Debug().Int64("movie_id", movieID).Err(out.Err).Msg("Poster lookup skipped")
			return failed(movieID, out.Err)
		}
		return res
	case <-ctx.Done():
		return failed(movieID, ctx.Err())
	}
}

// ResolveAll resolves every id concurrently, at most r.concurrency at a
// time. The result slice is index-aligned with ids.
func (r *Resolver) ResolveAll(ctx context.Context, ids []int64) []Result {
	results := make([]Result, len(ids))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = r.Resolve(ctx, id)
			return nil
		})
	}
	_ = g.Wait() // Resolve never fails

	return results
}

// Cached returns the memoized outcome for movieID without fetching.
func (r *Resolver) Cached(movieID int64) (Result, bool) {
	return r.memo.Peek(movieID)
}

// CacheStats returns a snapshot of memo statistics.
func (r *Resolver) CacheStats() cache.Stats {
	return r.memo.GetStats()
}
