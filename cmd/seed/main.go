// Package main provides a tool to seed the movie database.
//
// It reads a JSON file of movie records, validates them, and upserts them
// into the SQLite catalog. With --sample it writes a small built-in catalog
// instead, which is handy for local development.
//
// Usage:
//
//	DATA_PATH=~/RoyEntertainment/data go run ./cmd/seed --file movies.json
//	DATA_PATH=~/RoyEntertainment/data go run ./cmd/seed --sample
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/royentertainment/roy-server/internal/catalog"
	"github.com/royentertainment/roy-server/internal/id"
	"github.com/royentertainment/roy-server/internal/logger"
	"github.com/royentertainment/roy-server/internal/source"
	"github.com/royentertainment/roy-server/internal/validation"
)

var (
	file   = flag.String("file", "", "Path to a JSON array of movie records")
	sample = flag.Bool("sample", false, "Seed the built-in sample catalog instead of a file")
)

// seedMovie is the JSON shape of one movie record. Fields are loose strings
// on purpose; the catalog normalizes them at load time.
type seedMovie struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required,max=300"`
	Description string `json:"description"`
	Director    string `json:"director"`
	Actors      string `json:"actors"`
	Country     string `json:"country"`
	Quality     string `json:"quality"`
	Runtime     string `json:"runtime"`
	Genre       string `json:"genre"`
	ReleaseYear string `json:"release_year"`
	Rating      string `json:"rating"`
	PosterURL   string `json:"poster" validate:"omitempty,url"`
	BannerURL   string `json:"banner" validate:"omitempty,url"`
	YouTubeID   string `json:"youtube_id"`
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/RoyEntertainment/data")
	}
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataPath, "catalog.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	quiet := logger.New(logger.Config{Writer: io.Discard, Format: "json", Level: slog.LevelError})
	db, err := source.Open(dbPath, quiet)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var movies []seedMovie
	switch {
	case *sample:
		movies = sampleMovies()
	case *file != "":
		movies, err = readSeedFile(*file)
		if err != nil {
			log.Fatalf("Failed to read seed file: %v", err)
		}
	default:
		log.Fatal("Nothing to do: pass --file <path> or --sample")
	}

	validator := validation.New()
	ctx := context.Background()
	seeded := 0

	for i := range movies {
		m := &movies[i]
		if err := validator.Validate(m); err != nil {
			log.Printf("Skipping record %d (%q): %v", i, m.Title, err)
			continue
		}
		if m.ID == "" {
			m.ID = id.MustGenerate("mov")
		}

		if err := db.Put(ctx, toRawRecord(m)); err != nil {
			log.Printf("Failed to store %q: %v", m.Title, err)
			continue
		}
		seeded++
	}

	count, err := db.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count movies: %v", err)
	}

	fmt.Printf("Seeded %d movies (%d total in catalog)\n", seeded, count)
}

func readSeedFile(path string) ([]seedMovie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var movies []seedMovie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return movies, nil
}

func toRawRecord(m *seedMovie) catalog.RawRecord {
	return catalog.RawRecord{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Director:    m.Director,
		Actors:      m.Actors,
		Country:     m.Country,
		Quality:     m.Quality,
		Runtime:     m.Runtime,
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
		PosterURL:   m.PosterURL,
		BannerURL:   m.BannerURL,
		YouTubeID:   m.YouTubeID,
	}
}

// sampleMovies is a small catalog for local development.
func sampleMovies() []seedMovie {
	return []seedMovie{
		{Title: "Night Train", Description: "A detective boards the last train out of the city and finds every passenger hiding something.", Director: "Sofia Lee", Actors: "Mara Voss, Theo Grant", Country: "USA", Quality: "HD", Runtime: "118 min", Genre: `["Thriller","Crime"]`, ReleaseYear: "2024", Rating: "7.8"},
		{Title: "Night Shift", Description: "Three nurses hold an understaffed hospital together through one impossible night.", Director: "Omar Diaz", Actors: "Lena Park, Jo Whitfield", Country: "UK", Quality: "HD", Runtime: "104 min", Genre: "Drama", ReleaseYear: "2021", Rating: "8.4"},
		{Title: "Harvest Moon", Description: "A farm family weathers a season that will decide whether they keep their land.", Director: "Sofia Lee", Actors: "June Calder", Country: "Canada", Quality: "SD", Runtime: "97 min", Genre: "Drama", ReleaseYear: "2019", Rating: "6.9"},
		{Title: "Glass City", Description: "Architects race to finish a tower that the city has already started to doubt.", Director: "Ana Silva", Actors: "Rui Costa", Country: "Portugal", Quality: "4K", Runtime: "89 min", Genre: "Documentary", Rating: "9.1"},
		{Title: "Ember", Description: "A coming of age story set in a town that burns its past every solstice.", Director: "Omar Diaz", Actors: "Nils Berg, Ida Strand", Country: "Sweden", Quality: "HD", Runtime: "112 min", Genre: `["Drama","Fantasy"]`, ReleaseYear: "2026", Rating: "8.0"},
		{Title: "Paper Planes", Description: "Two estranged siblings reconnect through the letters their mother never sent.", Director: "Hana Sato", Actors: "Yui Mori, Ken Abe", Country: "Japan", Quality: "HD", Runtime: "101 min", Genre: "Romance", ReleaseYear: "2023", Rating: "7.2"},
	}
}
