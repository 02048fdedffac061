package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Suggestion limits. Queries shorter than MinQueryLength return nothing;
// a limit outside (0, MaxLimit] is clamped.
const (
	MinQueryLength = 2
	DefaultLimit   = 20
	MaxLimit       = 50
)

// SuggestResult is a page of suggestion hits for the site search box.
type SuggestResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SuggestHit `json:"hits"`
}

// SuggestHit is a single suggestion.
type SuggestHit struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Director    string  `json:"director,omitempty"`
	ReleaseYear int     `json:"release_year,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Score       float64 `json:"score"`
}

// Suggest runs a suggestion query: fuzzy and prefix tolerant matching over
// title, director, actors and description, best matches first. Queries below
// the minimum length yield an empty result rather than an error.
func (s *Index) Suggest(ctx context.Context, q string, limit int) (*SuggestResult, error) {
	q = strings.TrimSpace(q)
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	result := &SuggestResult{Query: q, Hits: []SuggestHit{}}
	if len(q) < MinQueryLength {
		return result, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	searchRequest := bleve.NewSearchRequestOptions(buildSuggestQuery(q), limit, 0, false)
	searchRequest.SortBy([]string{"-_score"})
	searchRequest.Fields = []string{"id", "title", "director", "release_year", "rating"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute suggest: %w", err)
	}

	result.Total = searchResult.Total
	result.TookMs = searchResult.Took.Milliseconds()

	for _, hit := range searchResult.Hits {
		suggestHit := SuggestHit{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if t, ok := hit.Fields["title"].(string); ok {
			suggestHit.Title = t
		}
		if d, ok := hit.Fields["director"].(string); ok {
			suggestHit.Director = d
		}
		if y, ok := hit.Fields["release_year"].(float64); ok {
			suggestHit.ReleaseYear = int(y)
		}
		if r, ok := hit.Fields["rating"].(float64); ok {
			suggestHit.Rating = r
		}
		result.Hits = append(result.Hits, suggestHit)
	}

	return result, nil
}

// buildSuggestQuery constructs the Bleve query for a suggestion term.
// Title matches dominate; people and description matches trail. A fuzzy
// title query picks up typos and a prefix query feeds autocomplete while
// the term is still being typed.
func buildSuggestQuery(q string) query.Query {
	titleMatch := bleve.NewMatchQuery(q)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)

	titleFuzzy := bleve.NewFuzzyQuery(q)
	titleFuzzy.SetField("title")
	titleFuzzy.SetFuzziness(1)
	titleFuzzy.SetBoost(0.8)

	titlePrefix := bleve.NewPrefixQuery(strings.ToLower(q))
	titlePrefix.SetField("title")
	titlePrefix.SetBoost(0.5)

	directorMatch := bleve.NewMatchQuery(q)
	directorMatch.SetField("director")
	directorMatch.SetBoost(1.5)

	actorsMatch := bleve.NewMatchQuery(q)
	actorsMatch.SetField("actors")
	actorsMatch.SetBoost(1.2)

	descMatch := bleve.NewMatchQuery(q)
	descMatch.SetField("description")

	return bleve.NewDisjunctionQuery(
		titleMatch, titleFuzzy, titlePrefix,
		directorMatch, actorsMatch, descMatch,
	)
}
