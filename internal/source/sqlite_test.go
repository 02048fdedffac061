package source

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/royentertainment/roy-server/internal/catalog"
	"github.com/royentertainment/roy-server/internal/logger"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	log := logger.New(logger.Config{Writer: io.Discard, Format: "json", Level: slog.LevelError})
	db, err := Open(filepath.Join(t.TempDir(), "catalog.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_PutAndFetchAll(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rec := catalog.RawRecord{
		ID:          "mov-1",
		Title:       "Night Train",
		Description: "A thriller on rails.",
		Director:    "Lee",
		Genre:       "Thriller, Drama",
		ReleaseYear: "2024",
		Rating:      "7.8",
		PosterURL:   "https://example.com/p.jpg",
		YouTubeID:   "abc123",
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Put(ctx, rec))

	records, err := db.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "mov-1", got.ID)
	assert.Equal(t, "Night Train", got.Title)
	assert.Equal(t, "Thriller, Drama", got.Genre)
	assert.Equal(t, "2024", got.ReleaseYear)
	assert.Equal(t, "7.8", got.Rating)
	assert.True(t, got.CreatedAt.Equal(rec.CreatedAt))
}

func TestDB_FetchAllEmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	records, err := db.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDB_FetchAllNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Put(ctx, catalog.RawRecord{ID: "old", CreatedAt: base}))
	require.NoError(t, db.Put(ctx, catalog.RawRecord{ID: "new", CreatedAt: base.Add(48 * time.Hour)}))
	require.NoError(t, db.Put(ctx, catalog.RawRecord{ID: "mid", CreatedAt: base.Add(24 * time.Hour)}))

	records, err := db.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "mid", records[1].ID)
	assert.Equal(t, "old", records[2].ID)
}

func TestDB_PutUpsertsById(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Put(ctx, catalog.RawRecord{ID: "mov-1", Title: "Draft"}))
	require.NoError(t, db.Put(ctx, catalog.RawRecord{ID: "mov-1", Title: "Final"}))

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records, err := db.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Final", records[0].Title)
}

func TestDB_KeepsRawValuesVerbatim(t *testing.T) {
	// The source never normalizes; whatever shape the row has comes back.
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Put(ctx, catalog.RawRecord{
		ID:          "mov-raw",
		Genre:       `["Drama","Action"]`,
		ReleaseYear: "soon",
		Rating:      "N/A",
	}))

	records, err := db.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `["Drama","Action"]`, records[0].Genre)
	assert.Equal(t, "soon", records[0].ReleaseYear)
	assert.Equal(t, "N/A", records[0].Rating)
}

func TestDB_WorksAsCatalogSource(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Put(ctx, catalog.RawRecord{ID: "mov-1", Title: "Alpha", Genre: "Drama", ReleaseYear: "2020", Rating: "9.0"}))

	log := logger.New(logger.Config{Writer: io.Discard, Format: "json", Level: slog.LevelError})
	store := catalog.NewStore(db, log)
	n := store.Load(ctx)

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Drama"}, store.All()[0].Genres)
}
