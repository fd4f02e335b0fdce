// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

const (
	// ThemeCookie stores the visitor's colour scheme. It has no effect
	// beyond styling.
	ThemeCookie = "marquee_theme"

	themeLight = "light"
	themeDark  = "dark"
)

// UI renders the single-page HTML front end.
type UI struct {
	handler *Handler
	tmpl    *template.Template
}

type pageData struct {
	Theme           string
	ReturnTo        string
	Genres          []recommend.Genre
	SelectedGenre   recommend.Genre
	GenreLimit      int
	GenreMovies     []models.MovieView
	Titles          []string
	SelectedTitle   string
	Recommendations []models.RecommendationView
	Error           string
}

// NewUI parses the embedded page template.
func NewUI(h *Handler) (*UI, error) {
	if h == nil {
		return nil, errors.New("handler is required")
	}
	tmpl, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, err
	}
	return &UI{handler: h, tmpl: tmpl}, nil
}

// Index handles GET /.
//
// Query parameters:
//   - genre: selector slug; anything other than "all" shows that genre's grid
//   - title: with genre "all", show recommendations for this catalog title
func (u *UI) Index(w http.ResponseWriter, r *http.Request) {
	engine := u.handler.engine
	q := r.URL.Query()
	status := http.StatusOK

	data := pageData{
		Theme:         themeFromRequest(r),
		ReturnTo:      r.URL.RequestURI(),
		Genres:        recommend.Genres,
		SelectedGenre: recommend.GenreAll,
		GenreLimit:    engine.Config().GenreLimit,
	}

	if slug := strings.TrimSpace(q.Get("genre")); slug != "" {
		g, ok := recommend.LookupGenre(slug)
		if ok {
			data.SelectedGenre = g
		} else {
			data.Error = "Unknown genre: " + slug
		}
	}

	if !data.SelectedGenre.All() {
		entries := engine.BrowseGenre(r.Context(), data.SelectedGenre)
		data.GenreMovies = make([]models.MovieView, len(entries))
		for i, e := range entries {
			data.GenreMovies[i] = toMovieView(e)
		}
		u.render(w, r, status, &data)
		return
	}

	movies := engine.Catalog().Movies()
	data.Titles = make([]string, len(movies))
	for i, m := range movies {
		data.Titles[i] = m.Title
	}

	if title := q.Get("title"); title != "" {
		data.SelectedTitle = title
		recs, err := engine.Recommend(r.Context(), title)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			status = http.StatusNotFound
			data.Error = "Movie not found: " + title
		case err != nil:
			logging.Ctx(r.Context()).Error().Err(err).Str("title", sanitizeLogValue(title)).Msg("Recommendation failed")
			status = http.StatusInternalServerError
			data.Error = "Failed to generate recommendations"
		default:
			data.Recommendations = make([]models.RecommendationView, len(recs))
			for i, rec := range recs {
				data.Recommendations[i] = toRecommendationView(i+1, rec)
			}
		}
	}

	u.render(w, r, status, &data)
}

// SetTheme handles POST /settings/theme.
// Form field "theme" is "dark" or absent (light). Redirects back to the
// page the form was submitted from.
func (u *UI) SetTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	theme := r.PostForm.Get("theme")
	switch theme {
	case "", themeLight:
		theme = themeLight
	case themeDark:
	default:
		http.Error(w, "theme must be light or dark", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    theme,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, safeReturnPath(r.PostForm.Get("return")), http.StatusSeeOther)
}

func (u *UI) render(w http.ResponseWriter, r *http.Request, status int, data *pageData) {
	var buf bytes.Buffer
	if err := u.tmpl.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write page")
	}
}

func themeFromRequest(r *http.Request) string {
	c, err := r.Cookie(ThemeCookie)
	if err == nil && c.Value == themeDark {
		return themeDark
	}
	return themeLight
}

// safeReturnPath only allows local absolute paths.
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
