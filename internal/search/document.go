// Package search provides full-text movie search using Bleve. It powers the
// site search box: typo-tolerant suggestion queries over titles, people and
// descriptions, independent of the catalog engine's exact substring filter.
package search

import (
	"github.com/royentertainment/roy-server/internal/domain"
)

// MovieDocument is the indexed shape of a movie. It carries only the fields
// suggestion queries search or display; the full record stays in the catalog.
type MovieDocument struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Director    string   `json:"director,omitempty"`
	Actors      string   `json:"actors,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	ReleaseYear int      `json:"release_year,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	CreatedAt   int64    `json:"created_at"` // Unix millis
}

// FromMovie converts a catalog movie to its indexed document. Display
// fallbacks are applied here so an untitled record is still findable and
// presentable in suggestions.
func FromMovie(m *domain.Movie) *MovieDocument {
	return &MovieDocument{
		ID:          m.ID,
		Title:       m.DisplayTitle(),
		Description: m.Description,
		Director:    m.Director,
		Actors:      m.Actors,
		Genres:      m.Genres,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
		CreatedAt:   m.CreatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *MovieDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"created_at": d.CreatedAt,
	}

	// Optional fields - only add if non-empty
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Director != "" {
		m["director"] = d.Director
	}
	if d.Actors != "" {
		m["actors"] = d.Actors
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}
	if d.ReleaseYear > 0 {
		m["release_year"] = d.ReleaseYear
	}
	if d.Rating > 0 {
		m["rating"] = d.Rating
	}

	return m
}
