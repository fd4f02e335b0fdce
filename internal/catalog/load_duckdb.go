// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver

	"github.com/tomtom215/marquee/internal/logging"
)

// loadDuckDB reads both artifacts through an in-memory DuckDB connection.
//
// The movie table needs columns movie_id, title and tags. The similarity
// matrix is stored long-form with columns i, j and score, one row per cell.
// CSV, Parquet and JSON files are accepted, chosen by extension.
func loadDuckDB(ctx context.Context, moviesPath, similarityPath string) ([]Movie, *Matrix, error) {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open in-memory duckdb: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close duckdb connection")
		}
	}()

	if err := conn.PingContext(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to duckdb: %w", err)
	}

	movies, err := queryMovies(ctx, conn, moviesPath)
	if err != nil {
		return nil, nil, err
	}
	matrix, err := queryMatrix(ctx, conn, similarityPath, len(movies))
	if err != nil {
		return nil, nil, err
	}
	return movies, matrix, nil
}

// tableFunction returns the DuckDB reader call for path.
func tableFunction(path string) (string, error) {
	lit := sqlStringLiteral(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return "read_parquet(" + lit + ")", nil
	case ".csv", ".tsv":
		return "read_csv_auto(" + lit + ", header = true)", nil
	case ".json", ".ndjson", ".jsonl":
		return "read_json_auto(" + lit + ")", nil
	default:
		return "", fmt.Errorf("unsupported artifact extension for %s", path)
	}
}

// sqlStringLiteral quotes s as a SQL string literal.
func sqlStringLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func queryMovies(ctx context.Context, conn *sql.DB, path string) ([]Movie, error) {
	from, err := tableFunction(path)
	if err != nil {
		return nil, err
	}
	// #nosec G202 -- from is built from a quoted literal
	query := "SELECT CAST(movie_id AS BIGINT), CAST(title AS VARCHAR), CAST(tags AS VARCHAR) FROM " + from

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: movies file %s: %v", ErrSchema, path, err)
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		var (
			id    sql.NullInt64
			title sql.NullString
			tags  sql.NullString
		)
		if err := rows.Scan(&id, &title, &tags); err != nil {
			return nil, fmt.Errorf("%w: movies row %d: %v", ErrSchema, len(movies), err)
		}
		if !id.Valid || !title.Valid {
			return nil, fmt.Errorf("%w: movies row %d has a null movie_id or title", ErrSchema, len(movies))
		}
		m := Movie{ID: id.Int64, Title: title.String}
		if tags.Valid {
			s := tags.String
			m.Tags = &s
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movies file %s: %w", path, err)
	}
	return movies, nil
}

func queryMatrix(ctx context.Context, conn *sql.DB, path string, n int) (*Matrix, error) {
	if n == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrSchema)
	}
	from, err := tableFunction(path)
	if err != nil {
		return nil, err
	}
	// #nosec G202 -- from is built from a quoted literal
	query := "SELECT CAST(i AS BIGINT), CAST(j AS BIGINT), CAST(score AS DOUBLE) FROM " + from

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity file %s: %v", ErrSchema, path, err)
	}
	defer rows.Close()

	data := make([]float64, n*n)
	seen := make([]bool, n*n)
	count := 0
	for rows.Next() {
		var i, j int64
		var score sql.NullFloat64
		if err := rows.Scan(&i, &j, &score); err != nil {
			return nil, fmt.Errorf("%w: similarity row %d: %v", ErrSchema, count, err)
		}
		if i < 0 || j < 0 || i >= int64(n) || j >= int64(n) {
			return nil, fmt.Errorf("%w: similarity cell (%d,%d) outside %dx%d", ErrSchema, i, j, n, n)
		}
		if !score.Valid {
			return nil, fmt.Errorf("%w: similarity cell (%d,%d) is null", ErrSchema, i, j)
		}
		k := int(i)*n + int(j)
		if seen[k] {
			return nil, fmt.Errorf("%w: similarity cell (%d,%d) appears twice", ErrSchema, i, j)
		}
		seen[k] = true
		data[k] = score.Float64
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read similarity file %s: %w", path, err)
	}
	if count != n*n {
		return nil, fmt.Errorf("%w: similarity file has %d cells, want %d for %d movies", ErrSchema, count, n*n, n)
	}
	return newDenseMatrix(n, data)
}
