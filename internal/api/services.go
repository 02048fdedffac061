package api

import (
	"github.com/royentertainment/roy-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Catalog *service.CatalogService // Stateless listings and lookups
	Browse  *service.BrowseService  // Live query sessions
	Search  *service.SearchService  // Suggestion queries
}
