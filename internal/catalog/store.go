// Package catalog implements the in-memory movie catalog: a load-once store,
// a pure filter/sort engine, and debounced query sessions on top of it.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/royentertainment/roy-server/internal/domain"
	"github.com/royentertainment/roy-server/internal/logger"
	"github.com/royentertainment/roy-server/internal/normalize"
)

// Source supplies the raw movie records the store is built from. FetchAll is
// called exactly once per Load; implementations decide where the records
// come from.
type Source interface {
	FetchAll(ctx context.Context) ([]RawRecord, error)
}

// RawRecord is an un-normalized movie row as a Source delivers it. String
// shapes are deliberately loose: Genre may be a single name, a delimited
// list, or JSON array text; ReleaseYear and Rating may hold anything.
type RawRecord struct {
	ID          string
	Title       string
	Description string
	Director    string
	Actors      string
	Country     string
	Quality     string
	Runtime     string
	Genre       string
	ReleaseYear string
	Rating      string
	PosterURL   string
	BannerURL   string
	YouTubeID   string
	CreatedAt   time.Time
}

// Store holds the normalized catalog. It is populated once by Load and
// read-only afterwards; all query state lives in sessions, not here.
type Store struct {
	source Source
	log    *logger.Logger

	mu     sync.RWMutex
	items  []domain.Movie
	loaded bool
}

// NewStore creates an empty store backed by the given source.
func NewStore(source Source, log *logger.Logger) *Store {
	return &Store{
		source: source,
		log:    log,
	}
}

// Load fetches and normalizes the catalog. A failing source yields an empty
// catalog rather than an error: the rest of the system keeps working against
// zero items. Calling Load again replaces the previous contents.
func (s *Store) Load(ctx context.Context) int {
	records, err := s.source.FetchAll(ctx)
	if err != nil {
		s.log.WithError(err).Warn("catalog source failed, continuing with empty catalog")
		records = nil
	}

	items := make([]domain.Movie, 0, len(records))
	for _, rec := range records {
		items = append(items, normalizeRecord(rec))
	}

	s.mu.Lock()
	s.items = items
	s.loaded = true
	s.mu.Unlock()

	s.log.Info("catalog loaded", "movies", len(items))
	return len(items)
}

// All returns the normalized catalog in ingestion order. The returned slice
// is shared; callers must not mutate it. The engine copies before sorting.
func (s *Store) All() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Len returns the number of movies in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Loaded reports whether Load has completed at least once.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// normalizeRecord converts a raw record into a catalog movie. This is the
// only place normalization happens; a malformed field becomes its default
// and the record is always kept.
func normalizeRecord(rec RawRecord) domain.Movie {
	return domain.Movie{
		ID:          normalize.String(rec.ID),
		Title:       normalize.String(rec.Title),
		Description: normalize.String(rec.Description),
		Director:    normalize.String(rec.Director),
		Actors:      normalize.String(rec.Actors),
		Country:     normalize.String(rec.Country),
		Quality:     normalize.String(rec.Quality),
		Runtime:     normalize.String(rec.Runtime),
		Genres:      normalize.Genres(rec.Genre),
		ReleaseYear: normalize.Year(rec.ReleaseYear),
		Rating:      normalize.Rating(rec.Rating),
		PosterURL:   normalize.String(rec.PosterURL),
		BannerURL:   normalize.String(rec.BannerURL),
		YouTubeID:   normalize.String(rec.YouTubeID),
		CreatedAt:   rec.CreatedAt,
	}
}
