package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/royentertainment/roy-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "suggest",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search suggestions",
		Description: "Typo-tolerant suggestion search over titles, people and descriptions",
		Tags:        []string{"Search"},
		Middlewares: huma.Middlewares{s.rateLimitSuggest},
	}, s.handleSuggest)
}

// === DTOs ===

// SuggestInput contains parameters for a suggestion query.
type SuggestInput struct {
	Query string `query:"q" validate:"omitempty,max=200" doc:"Search term"`
	Limit int    `query:"limit" validate:"omitempty,gte=1,lte=50" doc:"Max suggestions (default 20)"`
}

// SuggestOutput wraps suggestion results for Huma.
type SuggestOutput struct {
	Body search.SuggestResult
}

// === Handlers ===

func (s *Server) handleSuggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error) {
	result, err := s.services.Search.Suggest(ctx, input.Query, input.Limit)
	if err != nil {
		s.logger.WithError(err).Error("suggest query failed", "query", input.Query)
		return nil, err
	}

	return &SuggestOutput{Body: *result}, nil
}
