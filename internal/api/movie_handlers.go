package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/royentertainment/roy-server/internal/domain"
	domainerrors "github.com/royentertainment/roy-server/internal/errors"
)

func (s *Server) registerMovieRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies",
		Summary:     "List movies",
		Description: "Filters and sorts the catalog in one stateless evaluation",
		Tags:        []string{"Movies"},
	}, s.handleListMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFeaturedMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/featured",
		Summary:     "Featured movies",
		Description: "Returns the highest rated movies for the landing page",
		Tags:        []string{"Movies"},
	}, s.handleGetFeaturedMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMovie",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{id}",
		Summary:     "Get movie",
		Tags:        []string{"Movies"},
	}, s.handleGetMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "List genres",
		Description: "Distinct genres across the catalog, for the filter dropdown",
		Tags:        []string{"Movies"},
	}, s.handleListGenres)

	huma.Register(s.api, huma.Operation{
		OperationID: "listYears",
		Method:      http.MethodGet,
		Path:        "/api/v1/years",
		Summary:     "List release years",
		Description: "Known release years across the catalog, newest first",
		Tags:        []string{"Movies"},
	}, s.handleListYears)
}

// === DTOs ===

// ListMoviesInput contains the complete query state of a catalog listing.
// Wildcards are explicit values, not missing parameters.
type ListMoviesInput struct {
	Query     string  `query:"q" validate:"omitempty,max=200" doc:"Substring to match against title, description and director"`
	Category  string  `query:"category" default:"all" enum:"all,latest,popular,upcoming" doc:"Catalog slice"`
	Genre     string  `query:"genre" default:"all" doc:"Exact genre name, or 'all'"`
	Year      int     `query:"year" validate:"omitempty,gte=0" doc:"Exact release year, or 0 for all"`
	MinRating float64 `query:"min_rating" default:"-1" doc:"Inclusive rating floor, or -1 for all"`
	Sort      string  `query:"sort" default:"newest" enum:"newest,oldest,rating_desc,rating_asc,title_az,title_za" doc:"Result ordering"`
	Limit     int     `query:"limit" validate:"omitempty,gte=1,lte=100" doc:"Max movies to return (omit for all)"`
	Offset    int     `query:"offset" validate:"omitempty,gte=0" doc:"Number of movies to skip"`
}

// ListMoviesResponse contains a filtered slice of the catalog.
type ListMoviesResponse struct {
	Total  int            `json:"total" doc:"Matches before limit/offset"`
	Count  int            `json:"count" doc:"Movies in this response"`
	Offset int            `json:"offset" doc:"Offset applied"`
	Movies []domain.Movie `json:"movies" doc:"Matching movies"`
}

// ListMoviesOutput wraps the listing response for Huma.
type ListMoviesOutput struct {
	Body ListMoviesResponse
}

// FeaturedMoviesInput contains parameters for the featured listing.
type FeaturedMoviesInput struct {
	Limit int `query:"limit" default:"10" validate:"omitempty,gte=1,lte=50" doc:"Number of movies"`
}

// FeaturedMoviesOutput wraps the featured listing for Huma.
type FeaturedMoviesOutput struct {
	Body struct {
		Movies []domain.Movie `json:"movies"`
	}
}

// GetMovieInput identifies a single movie.
type GetMovieInput struct {
	ID string `path:"id" maxLength:"64" doc:"Movie ID"`
}

// GetMovieOutput wraps a single movie for Huma.
type GetMovieOutput struct {
	Body domain.Movie
}

// GenresResponse lists the catalog's distinct genres.
type GenresResponse struct {
	Genres []string `json:"genres"`
	Count  int      `json:"count"`
}

// GenresOutput wraps the genre listing for Huma.
type GenresOutput struct {
	Body GenresResponse
}

// YearsResponse lists the catalog's known release years.
type YearsResponse struct {
	Years []int `json:"years"`
	Count int   `json:"count"`
}

// YearsOutput wraps the year listing for Huma.
type YearsOutput struct {
	Body YearsResponse
}

// === Handlers ===

func (s *Server) handleListMovies(_ context.Context, input *ListMoviesInput) (*ListMoviesOutput, error) {
	criteria, err := criteriaFromInput(input)
	if err != nil {
		return nil, err
	}

	movies := s.services.Catalog.List(criteria)
	total := len(movies)

	offset := input.Offset
	if offset > total {
		offset = total
	}
	movies = movies[offset:]
	if input.Limit > 0 && input.Limit < len(movies) {
		movies = movies[:input.Limit]
	}

	return &ListMoviesOutput{
		Body: ListMoviesResponse{
			Total:  total,
			Count:  len(movies),
			Offset: offset,
			Movies: movies,
		},
	}, nil
}

func (s *Server) handleGetFeaturedMovies(_ context.Context, input *FeaturedMoviesInput) (*FeaturedMoviesOutput, error) {
	out := &FeaturedMoviesOutput{}
	out.Body.Movies = s.services.Catalog.Featured(input.Limit)
	return out, nil
}

func (s *Server) handleGetMovie(_ context.Context, input *GetMovieInput) (*GetMovieOutput, error) {
	movie, err := s.services.Catalog.GetMovie(input.ID)
	if err != nil {
		return nil, err
	}
	return &GetMovieOutput{Body: *movie}, nil
}

func (s *Server) handleListGenres(_ context.Context, _ *struct{}) (*GenresOutput, error) {
	genres := s.services.Catalog.Genres()
	return &GenresOutput{
		Body: GenresResponse{Genres: genres, Count: len(genres)},
	}, nil
}

func (s *Server) handleListYears(_ context.Context, _ *struct{}) (*YearsOutput, error) {
	years := s.services.Catalog.Years()
	return &YearsOutput{
		Body: YearsResponse{Years: years, Count: len(years)},
	}, nil
}

// criteriaFromInput builds engine criteria from listing parameters.
func criteriaFromInput(input *ListMoviesInput) (domain.FilterCriteria, error) {
	criteria := domain.DefaultCriteria()
	criteria.SearchText = input.Query
	criteria.Genre = input.Genre
	criteria.Year = input.Year
	criteria.MinRating = input.MinRating

	if input.Genre == "" {
		criteria.Genre = domain.GenreAll
	}

	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return criteria, domainerrors.Validationf("unknown category %q", input.Category)
	}
	criteria.Category = category

	sortKey, err := domain.ParseSortKey(input.Sort)
	if err != nil {
		return criteria, domainerrors.Validationf("unknown sort key %q", input.Sort)
	}
	criteria.Sort = sortKey

	return criteria, nil
}
