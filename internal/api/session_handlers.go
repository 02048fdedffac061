package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/royentertainment/roy-server/internal/catalog"
	"github.com/royentertainment/roy-server/internal/domain"
	domainerrors "github.com/royentertainment/roy-server/internal/errors"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions",
		Summary:     "Create browse session",
		Description: "Opens a query session with default criteria and the full catalog revealed one page at a time",
		Tags:        []string{"Sessions"},
	}, s.handleCreateSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}",
		Summary:     "Get session state",
		Tags:        []string{"Sessions"},
	}, s.handleGetSession)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteSession",
		Method:        http.MethodDelete,
		Path:          "/api/v1/sessions/{id}",
		Summary:       "Close session",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Sessions"},
	}, s.handleDeleteSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "sessionSearch",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/search",
		Summary:     "Stage search text",
		Description: "Stages a search term; the result list updates after the debounce quiet period",
		Tags:        []string{"Sessions"},
	}, s.handleSessionSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "sessionFacets",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/facets",
		Summary:     "Apply facets",
		Description: "Applies facet and sort changes synchronously, cancelling any pending debounce",
		Tags:        []string{"Sessions"},
	}, s.handleSessionFacets)

	huma.Register(s.api, huma.Operation{
		OperationID: "sessionLoadMore",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/more",
		Summary:     "Reveal next page",
		Tags:        []string{"Sessions"},
	}, s.handleSessionLoadMore)

	huma.Register(s.api, huma.Operation{
		OperationID: "sessionClear",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/clear",
		Summary:     "Clear all filters",
		Tags:        []string{"Sessions"},
	}, s.handleSessionClear)
}

// === DTOs ===

// SessionResponse is the full visible state of a browse session.
type SessionResponse struct {
	ID       string                `json:"id" doc:"Session ID"`
	State    string                `json:"state" doc:"idle, pending_debounce or ready"`
	Criteria domain.FilterCriteria `json:"criteria" doc:"Live criteria, staged search text included"`
	Total    int                   `json:"total" doc:"Result list size"`
	Visible  int                   `json:"visible" doc:"Movies revealed so far"`
	Movies   []domain.Movie        `json:"movies" doc:"The revealed movies"`
}

// SessionOutput wraps session state for Huma.
type SessionOutput struct {
	Body SessionResponse
}

// SessionRefInput identifies a session.
type SessionRefInput struct {
	ID string `path:"id" maxLength:"64" doc:"Session ID"`
}

// SessionSearchInput stages a search term.
type SessionSearchInput struct {
	ID   string `path:"id" maxLength:"64" doc:"Session ID"`
	Body struct {
		Text string `json:"text" maxLength:"200" doc:"Search term; empty clears the text filter"`
	}
}

// SessionFacetsInput applies facet changes. Omitted fields keep their
// current value.
type SessionFacetsInput struct {
	ID   string `path:"id" maxLength:"64" doc:"Session ID"`
	Body struct {
		Category  *string  `json:"category,omitempty" enum:"all,latest,popular,upcoming" doc:"Catalog slice"`
		Genre     *string  `json:"genre,omitempty" doc:"Exact genre name, or 'all'"`
		Year      *int     `json:"year,omitempty" doc:"Exact release year, or 0 for all"`
		MinRating *float64 `json:"min_rating,omitempty" doc:"Inclusive rating floor, or -1 for all"`
		Sort      *string  `json:"sort,omitempty" enum:"newest,oldest,rating_desc,rating_asc,title_az,title_za" doc:"Result ordering"`
	}
}

// === Handlers ===

func (s *Server) handleCreateSession(_ context.Context, _ *struct{}) (*SessionOutput, error) {
	sessionID, session, err := s.services.Browse.Create()
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: sessionView(sessionID, session)}, nil
}

func (s *Server) handleGetSession(_ context.Context, input *SessionRefInput) (*SessionOutput, error) {
	session, err := s.services.Browse.Get(input.ID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: sessionView(input.ID, session)}, nil
}

func (s *Server) handleDeleteSession(_ context.Context, input *SessionRefInput) (*struct{}, error) {
	if err := s.services.Browse.Destroy(input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleSessionSearch(_ context.Context, input *SessionSearchInput) (*SessionOutput, error) {
	session, err := s.services.Browse.Get(input.ID)
	if err != nil {
		return nil, err
	}

	session.SetTextSearch(input.Body.Text)
	return &SessionOutput{Body: sessionView(input.ID, session)}, nil
}

func (s *Server) handleSessionFacets(_ context.Context, input *SessionFacetsInput) (*SessionOutput, error) {
	session, err := s.services.Browse.Get(input.ID)
	if err != nil {
		return nil, err
	}

	if input.Body.Category != nil {
		category, err := domain.ParseCategory(*input.Body.Category)
		if err != nil {
			return nil, domainerrors.Validationf("unknown category %q", *input.Body.Category)
		}
		session.SetCategory(category)
	}
	if input.Body.Genre != nil {
		genre := *input.Body.Genre
		if genre == "" {
			genre = domain.GenreAll
		}
		session.SetGenre(genre)
	}
	if input.Body.Year != nil {
		if *input.Body.Year < 0 {
			return nil, domainerrors.Validation("year must not be negative")
		}
		session.SetYear(*input.Body.Year)
	}
	if input.Body.MinRating != nil {
		session.SetMinRating(*input.Body.MinRating)
	}
	if input.Body.Sort != nil {
		sortKey, err := domain.ParseSortKey(*input.Body.Sort)
		if err != nil {
			return nil, domainerrors.Validationf("unknown sort key %q", *input.Body.Sort)
		}
		session.SetSort(sortKey)
	}

	return &SessionOutput{Body: sessionView(input.ID, session)}, nil
}

func (s *Server) handleSessionLoadMore(_ context.Context, input *SessionRefInput) (*SessionOutput, error) {
	session, err := s.services.Browse.Get(input.ID)
	if err != nil {
		return nil, err
	}

	session.LoadMore()
	return &SessionOutput{Body: sessionView(input.ID, session)}, nil
}

func (s *Server) handleSessionClear(_ context.Context, input *SessionRefInput) (*SessionOutput, error) {
	session, err := s.services.Browse.Get(input.ID)
	if err != nil {
		return nil, err
	}

	session.ClearAll()
	return &SessionOutput{Body: sessionView(input.ID, session)}, nil
}

// sessionView snapshots a session into its response shape.
func sessionView(sessionID string, session *catalog.Session) SessionResponse {
	page := session.CurrentPage()
	return SessionResponse{
		ID:       sessionID,
		State:    string(session.State()),
		Criteria: session.Criteria(),
		Total:    session.ResultCount(),
		Visible:  len(page),
		Movies:   page,
	}
}
