// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"time"
)

// APIResponse is the envelope written by every JSON endpoint.
//
// Status is "success" or "error". On error, Data is null and Error is set.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"title": "Avatar", "recommendations": [...]},
//	  "metadata": {
//	    "timestamp": "2026-10-18T12:00:00Z",
//	    "query_time_ms": 45
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "NOT_FOUND",
//	    "message": "movie not found in catalog: \"Avatar 3\""
//	  },
//	  "metadata": {"timestamp": "2026-10-18T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response timing information. QueryTimeMS covers
// ranking plus poster resolution.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is the machine-readable part of an error response.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid query or path parameters
//   - NOT_FOUND: Unknown title, genre or route
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - INTERNAL_ERROR: Unexpected server failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
