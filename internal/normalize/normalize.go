// Package normalize provides utilities for normalizing raw catalog fields.
//
// Upstream movie records are loosely typed: genres arrive as a single name,
// a delimited list, or a JSON array; numbers arrive as strings. Everything
// here is forgiving and total: malformed input yields a usable default,
// never an error.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Genres converts a raw genre value to a trimmed list of non-empty names.
// Accepted shapes:
//   - JSON array text: ["Drama","Action"]
//   - delimited list: "Drama, Action" or "Drama|Action"
//   - single name: "Drama"
//
// Name casing is preserved; membership tests downstream are case sensitive.
func Genres(raw string) []string {
	raw = strings.TrimSpace(String(raw))
	if raw == "" {
		return nil
	}

	var parts []string
	if strings.HasPrefix(raw, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			parts = arr
		} else {
			// Malformed JSON array text degrades to a delimited parse.
			parts = splitList(strings.Trim(raw, "[]"))
		}
	} else {
		parts = splitList(raw)
	}

	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			genres = append(genres, p)
		}
	}
	if len(genres) == 0 {
		return nil
	}
	return genres
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|'
	})
}

// Year parses a raw release year. It accepts a bare integer or a value with
// a leading year such as "2024-06-01". Anything else, including zero and
// negative values, yields unknown (0).
func Year(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if len(raw) > 4 {
		if sep := raw[4]; sep == '-' || sep == '/' {
			raw = raw[:4]
		}
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return 0
	}
	return year
}

// Rating parses a raw rating and clamps it to the [0, 10] scale.
// Unparseable input yields 0.
func Rating(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	switch {
	case rating < 0:
		return 0
	case rating > 10:
		return 10
	default:
		return rating
	}
}

// String trims whitespace and strips null bytes, which upset both SQLite
// and JSON encoding when they sneak in from scraped sources.
func String(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
