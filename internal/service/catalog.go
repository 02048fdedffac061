// Package service orchestrates the catalog, query sessions and search on top
// of the storage and engine packages. HTTP handlers talk to services, never
// to stores or indexes directly.
package service

import (
	"context"
	"sort"
	"time"

	"github.com/royentertainment/roy-server/internal/catalog"
	"github.com/royentertainment/roy-server/internal/domain"
	domainerrors "github.com/royentertainment/roy-server/internal/errors"
	"github.com/royentertainment/roy-server/internal/logger"
)

// CatalogService answers stateless catalog queries: one-shot listings,
// lookups and facet values. Stateful browsing (debounce, pagination cursors)
// lives in SessionService.
type CatalogService struct {
	store *catalog.Store
	log   *logger.Logger
	now   func() time.Time
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *catalog.Store, log *logger.Logger) *CatalogService {
	return &CatalogService{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Load pulls the catalog from its source. It never fails: a broken source
// leaves an empty, fully functional catalog.
func (s *CatalogService) Load(ctx context.Context) int {
	return s.store.Load(ctx)
}

// List evaluates the given criteria against the catalog and returns the full
// matching list, filtered and sorted.
func (s *CatalogService) List(criteria domain.FilterCriteria) []domain.Movie {
	return catalog.Filter(s.store.All(), criteria, s.now().Year())
}

// GetMovie returns a single movie by ID.
func (s *CatalogService) GetMovie(movieID string) (*domain.Movie, error) {
	for _, m := range s.store.All() {
		if m.ID == movieID {
			found := m
			return &found, nil
		}
	}
	return nil, domainerrors.NotFoundf("movie %s not found", movieID)
}

// Featured returns the n highest rated movies, for the landing page carousel.
func (s *CatalogService) Featured(n int) []domain.Movie {
	criteria := domain.DefaultCriteria()
	criteria.Sort = domain.SortRatingHigh

	ranked := catalog.Filter(s.store.All(), criteria, s.now().Year())
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Genres returns every distinct genre in the catalog, sorted alphabetically.
// Genre names are case sensitive, so "Drama" and "drama" are two entries.
func (s *CatalogService) Genres() []string {
	seen := make(map[string]struct{})
	for _, m := range s.store.All() {
		for _, g := range m.Genres {
			seen[g] = struct{}{}
		}
	}

	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// Years returns every known release year in the catalog, newest first.
// Unknown years are not listed as a facet value.
func (s *CatalogService) Years() []int {
	seen := make(map[int]struct{})
	for _, m := range s.store.All() {
		if m.YearKnown() {
			seen[m.ReleaseYear] = struct{}{}
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Count returns the catalog size.
func (s *CatalogService) Count() int {
	return s.store.Len()
}
