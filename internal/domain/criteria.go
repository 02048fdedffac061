package domain

import "fmt"

// Category is a predefined catalog slice evaluated against an injected
// current year, never a wall clock.
type Category string

// Catalog categories.
const (
	CategoryAll      Category = "all"
	CategoryLatest   Category = "latest"   // released this year
	CategoryPopular  Category = "popular"  // rating at or above PopularRatingFloor
	CategoryUpcoming Category = "upcoming" // released after this year
)

// PopularRatingFloor is the minimum rating for the popular category.
const PopularRatingFloor = 8.0

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryAll, CategoryLatest, CategoryPopular, CategoryUpcoming:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// SortKey selects the ordering applied after filtering.
type SortKey string

// Sort keys. Title ordering is locale-aware and case-insensitive; year
// ordering puts unknown years last in both directions.
const (
	SortNewestFirst SortKey = "newest"
	SortOldestFirst SortKey = "oldest"
	SortRatingHigh  SortKey = "rating_desc"
	SortRatingLow   SortKey = "rating_asc"
	SortTitleAZ     SortKey = "title_az"
	SortTitleZA     SortKey = "title_za"
)

// ParseSortKey converts a string to a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortNewestFirst, SortOldestFirst, SortRatingHigh, SortRatingLow, SortTitleAZ, SortTitleZA:
		return SortKey(s), nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// Wildcard sentinels. Criteria are always fully specified; "no filter" is an
// explicit value, never a missing one.
const (
	GenreAll  = "all" // Genre: no genre constraint
	YearAll   = 0     // Year: no year constraint
	RatingAll = -1.0  // MinRating: no rating floor
)

// FilterCriteria captures the complete query state of a catalog page. The
// zero value is not valid; use DefaultCriteria.
type FilterCriteria struct {
	SearchText string   `json:"search_text"`
	Category   Category `json:"category"`
	Genre      string   `json:"genre"`
	Year       int      `json:"year"`
	MinRating  float64  `json:"min_rating"`
	Sort       SortKey  `json:"sort"`
}

// DefaultCriteria returns the state of a freshly opened catalog page:
// everything wildcarded, newest first.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		SearchText: "",
		Category:   CategoryAll,
		Genre:      GenreAll,
		Year:       YearAll,
		MinRating:  RatingAll,
		Sort:       SortNewestFirst,
	}
}
