package api

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/royentertainment/roy-server/internal/catalog"
	"github.com/royentertainment/roy-server/internal/config"
	"github.com/royentertainment/roy-server/internal/logger"
	"github.com/royentertainment/roy-server/internal/search"
	"github.com/royentertainment/roy-server/internal/service"
)

// testEnvelope mirrors the client-side envelope shape for decoding responses.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// stubSource feeds fixed records into a catalog store.
type stubSource struct {
	records []catalog.RawRecord
}

func (s *stubSource) FetchAll(context.Context) ([]catalog.RawRecord, error) {
	return s.records, nil
}

type testServer struct {
	*Server
	api      humatest.TestAPI
	services *Services
}

// testCatalogRecords is the fixture catalog shared by handler tests.
func testCatalogRecords() []catalog.RawRecord {
	return []catalog.RawRecord{
		{ID: "mov-1", Title: "Night Train", Description: "A thriller on rails.", Director: "Sofia Lee", Genre: "Thriller", ReleaseYear: "2024", Rating: "7.8"},
		{ID: "mov-2", Title: "Night Shift", Description: "Hospital drama.", Director: "Omar Diaz", Genre: "Drama", ReleaseYear: "2021", Rating: "8.4"},
		{ID: "mov-3", Title: "Harvest Moon", Description: "A farm saga.", Director: "Sofia Lee", Genre: "Drama", ReleaseYear: "2019", Rating: "6.9"},
		{ID: "mov-4", Title: "Glass City", Description: "Architecture documentary.", Director: "Ana Silva", Genre: "Documentary", Rating: "9.1"},
		{ID: "mov-5", Title: "Ember", Description: "Coming of age.", Director: "Omar Diaz", Genre: "Drama", ReleaseYear: "2025", Rating: "8.0"},
	}
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.New(logger.Config{Writer: io.Discard, Format: "json", Level: slog.LevelError})

	store := catalog.NewStore(&stubSource{records: testCatalogRecords()}, log)
	store.Load(context.Background())

	index, err := search.NewIndex(search.Options{DataPath: t.TempDir(), Logger: log})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	browseService := service.NewBrowseService(store, service.BrowseOptions{
		PageSize: 2,
		Debounce: 10 * time.Millisecond,
		Expiry:   time.Hour,
	}, log)
	t.Cleanup(browseService.Stop)

	searchService := service.NewSearchService(index, store, log)
	_, err = searchService.ReindexAll(context.Background())
	require.NoError(t, err)

	services := &Services{
		Catalog: service.NewCatalogService(store, log),
		Browse:  browseService,
		Search:  searchService,
	}

	cfg := &config.Config{}
	cfg.Server.Name = "Roy Entertainment Test"
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Search.SuggestRPS = 100
	cfg.Search.SuggestBurst = 100

	s := NewServer(cfg, services, log)

	return &testServer{
		Server:   s,
		api:      humatest.Wrap(t, s.api),
		services: services,
	}
}
