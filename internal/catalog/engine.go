package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/royentertainment/roy-server/internal/domain"
)

// Filter evaluates fully specified criteria against a catalog snapshot and
// returns a freshly allocated, ordered result. It is a pure function: no
// clocks, no I/O, no mutation of the input, and it never fails. currentYear
// anchors the latest/upcoming categories and is injected by the caller.
//
// Stages run in a fixed order: text, category, genre, year, rating, sort.
func Filter(items []domain.Movie, c domain.FilterCriteria, currentYear int) []domain.Movie {
	out := make([]domain.Movie, 0, len(items))
	needle := strings.ToLower(strings.TrimSpace(c.SearchText))

	for _, m := range items {
		if !matchesText(&m, needle) {
			continue
		}
		if !matchesCategory(&m, c.Category, currentYear) {
			continue
		}
		if c.Genre != domain.GenreAll && !m.HasGenre(c.Genre) {
			continue
		}
		if c.Year != domain.YearAll && m.ReleaseYear != c.Year {
			continue
		}
		if c.MinRating != domain.RatingAll && m.Rating < c.MinRating {
			continue
		}
		out = append(out, m)
	}

	sortMovies(out, c.Sort)
	return out
}

// matchesText is a case-insensitive substring match over title, description
// and director. An empty needle matches everything.
func matchesText(m *domain.Movie, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Title), needle) ||
		strings.Contains(strings.ToLower(m.Description), needle) ||
		strings.Contains(strings.ToLower(m.Director), needle)
}

func matchesCategory(m *domain.Movie, cat domain.Category, currentYear int) bool {
	switch cat {
	case domain.CategoryLatest:
		return m.ReleaseYear == currentYear
	case domain.CategoryPopular:
		return m.Rating >= domain.PopularRatingFloor
	case domain.CategoryUpcoming:
		return m.ReleaseYear > currentYear
	default:
		return true
	}
}

// sortMovies orders the slice in place. All orders are stable, so movies
// that compare equal keep their catalog order.
func sortMovies(items []domain.Movie, key domain.SortKey) {
	switch key {
	case domain.SortNewestFirst:
		sort.SliceStable(items, func(i, j int) bool {
			return yearGreater(items[i].ReleaseYear, items[j].ReleaseYear)
		})
	case domain.SortOldestFirst:
		sort.SliceStable(items, func(i, j int) bool {
			return yearLess(items[i].ReleaseYear, items[j].ReleaseYear)
		})
	case domain.SortRatingHigh:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Rating > items[j].Rating
		})
	case domain.SortRatingLow:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Rating < items[j].Rating
		})
	case domain.SortTitleAZ:
		coll := titleCollator()
		sort.SliceStable(items, func(i, j int) bool {
			return coll.CompareString(items[i].Title, items[j].Title) < 0
		})
	case domain.SortTitleZA:
		coll := titleCollator()
		sort.SliceStable(items, func(i, j int) bool {
			return coll.CompareString(items[i].Title, items[j].Title) > 0
		})
	}
}

// yearLess orders release years ascending with unknown always last.
func yearLess(a, b int) bool {
	switch {
	case a == domain.YearUnknown:
		return false
	case b == domain.YearUnknown:
		return true
	default:
		return a < b
	}
}

// yearGreater orders release years descending, still with unknown last.
// Descending is deliberately not the mirror of ascending: flipping direction
// must never float unknown years to the top.
func yearGreater(a, b int) bool {
	switch {
	case a == domain.YearUnknown:
		return false
	case b == domain.YearUnknown:
		return true
	default:
		return a > b
	}
}

// titleCollator builds the locale-aware case-insensitive comparator used by
// the title orders. Collators are not safe for concurrent use, so each sort
// gets its own.
func titleCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}
