// Package domain contains the core entities of the Roy Entertainment catalog.
package domain

import "time"

// YearUnknown marks a movie whose release year could not be determined at
// ingestion. Unknown years always sort after known years, regardless of
// direction.
const YearUnknown = 0

// Display fallbacks applied when a record carries no usable value.
const (
	FallbackTitle       = "Untitled"
	FallbackDescription = "No description available."
)

// Movie is a fully normalized catalog item. Instances are built once at
// ingestion; downstream code never re-normalizes fields.
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Director    string    `json:"director,omitempty"`
	Actors      string    `json:"actors,omitempty"`
	Country     string    `json:"country,omitempty"`
	Quality     string    `json:"quality,omitempty"`
	Runtime     string    `json:"runtime,omitempty"`
	Genres      []string  `json:"genres,omitempty"`
	ReleaseYear int       `json:"release_year"`
	Rating      float64   `json:"rating"`
	PosterURL   string    `json:"poster_url,omitempty"`
	BannerURL   string    `json:"banner_url,omitempty"`
	YouTubeID   string    `json:"youtube_id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// DisplayTitle returns the title, or the fallback when empty.
func (m *Movie) DisplayTitle() string {
	if m.Title == "" {
		return FallbackTitle
	}
	return m.Title
}

// DisplayDescription returns the description, or the fallback when empty.
func (m *Movie) DisplayDescription() string {
	if m.Description == "" {
		return FallbackDescription
	}
	return m.Description
}

// YearKnown reports whether the release year was determined at ingestion.
func (m *Movie) YearKnown() bool {
	return m.ReleaseYear != YearUnknown
}

// HasGenre reports exact, case-sensitive genre membership.
func (m *Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
