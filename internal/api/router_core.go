// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/tomtom215/marquee/internal/config"
)

// Router wires handlers and middleware into an http.Handler.
type Router struct {
	handler       *Handler
	ui            *UI
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. sec may be nil, in which case CORS allows no
// origins and the default rate limit applies.
func NewRouter(handler *Handler, ui *UI, sec *config.SecurityConfig) *Router {
	mwCfg := DefaultChiMiddlewareConfig()
	if sec != nil {
		mwCfg = ChiMiddlewareConfigFrom(sec)
	}
	return &Router{
		handler:       handler,
		ui:            ui,
		chiMiddleware: NewChiMiddleware(mwCfg),
	}
}

func notFoundJSON(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, ErrCodeNotFound, "Resource not found", nil)
}

func methodNotAllowedJSON(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
}
