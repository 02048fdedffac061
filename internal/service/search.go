package service

import (
	"context"
	"fmt"

	"github.com/royentertainment/roy-server/internal/catalog"
	"github.com/royentertainment/roy-server/internal/logger"
	"github.com/royentertainment/roy-server/internal/search"
)

// SearchService bridges the search index with the catalog store. It handles
// full reindexing on startup and suggestion queries for the site search box.
type SearchService struct {
	index *search.Index
	store *catalog.Store
	log   *logger.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, store *catalog.Store, log *logger.Logger) *SearchService {
	return &SearchService{
		index: index,
		store: store,
		log:   log,
	}
}

// Suggest runs a suggestion query against the index.
func (s *SearchService) Suggest(ctx context.Context, query string, limit int) (*search.SuggestResult, error) {
	return s.index.Suggest(ctx, query, limit)
}

// ReindexAll drops the index and rebuilds it from the current catalog.
// Returns the number of movies indexed.
func (s *SearchService) ReindexAll(_ context.Context) (int, error) {
	if err := s.index.Rebuild(); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}

	movies := s.store.All()
	docs := make([]*search.MovieDocument, len(movies))
	for i := range movies {
		docs[i] = search.FromMovie(&movies[i])
	}

	if err := s.index.IndexMovies(docs); err != nil {
		return 0, fmt.Errorf("index movies: %w", err)
	}

	s.log.Info("search index rebuilt", "movies", len(docs))
	return len(docs), nil
}

// DocumentCount returns the number of indexed movies.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}
