// Package source provides the SQLite-backed data source the catalog loads
// from. It deliberately stays dumb: rows in, raw records out. All
// normalization lives with the catalog.
package source

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/royentertainment/roy-server/internal/catalog"
	"github.com/royentertainment/roy-server/internal/logger"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB is a SQLite-backed catalog.Source.
type DB struct {
	db  *sql.DB
	log *logger.Logger
}

// Open creates the movie database at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
func Open(path string, log *logger.Logger) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &DB{db: db, log: log}, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// FetchAll returns every movie row, newest first. This is the bulk fetch the
// catalog store loads from; the caller treats an error as an empty catalog.
func (d *DB) FetchAll(ctx context.Context) ([]catalog.RawRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, title, description, director, actors, country, quality,
		       runtime, genre, release_year, rating, poster_url, banner_url,
		       youtube_id, created_at
		FROM movies
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var records []catalog.RawRecord
	for rows.Next() {
		var rec catalog.RawRecord
		var createdAt string
		if err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Description, &rec.Director, &rec.Actors,
			&rec.Country, &rec.Quality, &rec.Runtime, &rec.Genre,
			&rec.ReleaseYear, &rec.Rating, &rec.PosterURL, &rec.BannerURL,
			&rec.YouTubeID, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		ts, err := parseTime(createdAt)
		if err != nil {
			// A broken timestamp is not worth losing the row over.
			d.log.Warn("movie has malformed created_at", "id", rec.ID, "value", createdAt)
		}
		rec.CreatedAt = ts
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	return records, nil
}

// Put inserts or replaces a movie row. Used by seeding and tests.
func (d *DB) Put(ctx context.Context, rec catalog.RawRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO movies (
			id, title, description, director, actors, country, quality,
			runtime, genre, release_year, rating, poster_url, banner_url,
			youtube_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			director = excluded.director,
			actors = excluded.actors,
			country = excluded.country,
			quality = excluded.quality,
			runtime = excluded.runtime,
			genre = excluded.genre,
			release_year = excluded.release_year,
			rating = excluded.rating,
			poster_url = excluded.poster_url,
			banner_url = excluded.banner_url,
			youtube_id = excluded.youtube_id`,
		rec.ID, rec.Title, rec.Description, rec.Director, rec.Actors,
		rec.Country, rec.Quality, rec.Runtime, rec.Genre, rec.ReleaseYear,
		rec.Rating, rec.PosterURL, rec.BannerURL, rec.YouTubeID,
		formatTime(rec.CreatedAt))
	if err != nil {
		return fmt.Errorf("upsert movie %s: %w", rec.ID, err)
	}
	return nil
}

// Count returns the number of movie rows.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

// formatTime formats a time.Time to RFC3339Nano for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
