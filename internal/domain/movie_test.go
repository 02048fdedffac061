package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovie_DisplayFallbacks(t *testing.T) {
	m := &Movie{}
	assert.Equal(t, "Untitled", m.DisplayTitle())
	assert.Equal(t, "No description available.", m.DisplayDescription())

	m = &Movie{Title: "Night Train", Description: "A thriller."}
	assert.Equal(t, "Night Train", m.DisplayTitle())
	assert.Equal(t, "A thriller.", m.DisplayDescription())
}

func TestMovie_YearKnown(t *testing.T) {
	assert.False(t, (&Movie{ReleaseYear: YearUnknown}).YearKnown())
	assert.True(t, (&Movie{ReleaseYear: 2024}).YearKnown())
}

func TestMovie_HasGenre(t *testing.T) {
	m := &Movie{Genres: []string{"Drama", "Sci-Fi"}}

	assert.True(t, m.HasGenre("Drama"))
	assert.False(t, m.HasGenre("drama"), "genre membership is case sensitive")
	assert.False(t, m.HasGenre("Comedy"))
	assert.False(t, (&Movie{}).HasGenre("Drama"))
}

func TestParseCategory(t *testing.T) {
	for _, s := range []string{"all", "latest", "popular", "upcoming"} {
		c, err := ParseCategory(s)
		require.NoError(t, err)
		assert.Equal(t, Category(s), c)
	}

	_, err := ParseCategory("trending")
	assert.Error(t, err)
	_, err = ParseCategory("")
	assert.Error(t, err)
}

func TestParseSortKey(t *testing.T) {
	for _, s := range []string{"newest", "oldest", "rating_desc", "rating_asc", "title_az", "title_za"} {
		k, err := ParseSortKey(s)
		require.NoError(t, err)
		assert.Equal(t, SortKey(s), k)
	}

	_, err := ParseSortKey("random")
	assert.Error(t, err)
}

func TestDefaultCriteria(t *testing.T) {
	c := DefaultCriteria()

	assert.Empty(t, c.SearchText)
	assert.Equal(t, CategoryAll, c.Category)
	assert.Equal(t, GenreAll, c.Genre)
	assert.Equal(t, YearAll, c.Year)
	assert.Equal(t, RatingAll, c.MinRating)
	assert.Equal(t, SortNewestFirst, c.Sort)
}
